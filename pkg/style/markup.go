package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

type markupTag struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// markupTags maps [tag]text[/tag] spans to styles. Messages use them to
// highlight package names and versions.
var markupTags = func() []markupTag {
	styles := map[string]lipgloss.Style{
		"package":  PackageStyle,
		"version":  VersionStyle,
		"direct":   DirectStyle,
		"indirect": IndirectStyle,
		"muted":    MutedStyle,
		"error":    ErrorStyle,
		"bold":     lipgloss.NewStyle().Bold(true),
	}
	tags := make([]markupTag, 0, len(styles))
	for tag, style := range styles {
		tags = append(tags, markupTag{
			pattern: regexp.MustCompile(`\[` + tag + `\](.*?)\[/` + tag + `\]`),
			style:   style,
		})
	}
	return tags
}()

// Render replaces markup tags in text with styled output. Tags may nest.
func Render(text string) string {
	for {
		before := text
		for _, tag := range markupTags {
			text = tag.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return tag.style.Render(tag.pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

// Strip removes markup tags, keeping their content
func Strip(text string) string {
	for {
		before := text
		for _, tag := range markupTags {
			text = tag.pattern.ReplaceAllString(text, "$1")
		}
		if text == before {
			return text
		}
	}
}
