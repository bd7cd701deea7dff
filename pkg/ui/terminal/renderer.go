// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/nox/pkg/commands"
	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/planner"
	"github.com/arthur-debert/nox/pkg/style"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/arthur-debert/nox/pkg/ui/markdown"
	"github.com/arthur-debert/nox/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss and pterm styling
type Renderer struct {
	output   io.Writer
	markdown *markdown.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markdown: markdown.New(0)}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *commands.RunResult:
		return r.write(r.run(v))
	case *commands.ListResult:
		return r.write(r.list(v))
	case *commands.InfoResult:
		return r.write(r.markdown.Render(v.Markdown()))
	case *commands.SnippetResult:
		// Left unstyled so it can be pasted into an rc file
		return r.write(v.Snippet + "\n")
	case string:
		return r.write(v)
	default:
		return r.write(fmt.Sprintf("%+v\n", result))
	}
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

func (r *Renderer) run(res *commands.RunResult) string {
	var b strings.Builder

	if len(res.Plan.Actions) == 0 {
		b.WriteString(style.Indicator(style.StatusNoop) + " " + style.MutedStyle.Render("Nothing to do, everything is in place.") + "\n")
		return b.String()
	}

	if res.DryRun {
		b.WriteString(style.TitleStyle.Render("Plan") + "\n")
		for _, a := range res.Plan.Actions {
			fmt.Fprintf(&b, "%s %s\n", style.Badge(style.StatusPlanned), actionText(a))
		}
		b.WriteString("\n" + style.WarningStyle.Render("Dry run: nothing was changed") + "\n")
		return b.String()
	}

	for _, o := range res.Result.Outcomes {
		fmt.Fprintf(&b, "%s %s\n", style.Badge(style.Status(o.Status)), actionText(o.Action))
		if o.Error != "" {
			b.WriteString(style.Indent(style.ErrorStyle.Render(o.Error), 2) + "\n")
		}
	}

	summary := text.Summary(res)
	if res.Result.Count(planner.Failed) > 0 {
		summary = style.ErrorIndicator + " " + summary
	} else {
		summary = style.SuccessIndicator + " " + summary
	}
	b.WriteString("\n" + summary + "\n")
	return b.String()
}

func actionText(a planner.Action) string {
	line := fmt.Sprintf("%s %s", a.Kind, style.PackageStyle.Render(string(a.Ref)))
	if a.Force {
		line += " " + style.MutedStyle.Render("(forced)")
	}
	return line
}

func (r *Renderer) list(res *commands.ListResult) string {
	if len(res.Packages) == 0 {
		return style.MutedStyle.Render("No packages installed.") + "\n"
	}

	headers := []string{"PACKAGE", "VERSION", "TYPE", "INSTALLED", "SOURCE"}
	rows := make([][]string, 0, len(res.Packages))
	for _, p := range res.Packages {
		rows = append(rows, []string{
			style.PackageStyle.Render(string(p.Ref)),
			style.VersionStyle.Render(p.Version),
			installTypeStyle(p).Render(text.InstallTypeText(p)),
			style.MutedStyle.Render(text.InstallDateText(p)),
			style.MutedStyle.Render(p.Source),
		})
	}
	return table(headers, rows)
}

func installTypeStyle(p commands.PackageRow) lipgloss.Style {
	switch {
	case !p.Installed:
		return style.MutedStyle
	case p.InstallType == types.Indirect:
		return style.IndirectStyle
	default:
		return style.DirectStyle
	}
}

// table lays rows out in columns sized to their widest cell
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string, cellStyle lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cellStyle.Width(widths[i] + 2).Render(cell)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ") + "\n"
	}

	var b strings.Builder
	b.WriteString(line(headers, style.HeaderStyle))
	for _, row := range rows {
		b.WriteString(line(row, style.CellStyle))
	}
	return b.String()
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(pterm.Error.Prefix.Text)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		b.WriteString(" " + pterm.Error.MessageStyle.Sprint(string(code)))
	}
	b.WriteString(" " + style.ErrorStyle.Render(err.Error()) + "\n")

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(style.Indent(fmt.Sprintf("%s %s", style.MutedStyle.Render(k+":"), fmt.Sprint(details[k])), 2) + "\n")
	}
	return r.write(b.String())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(style.InfoIndicator + " " + style.Render(msg) + "\n")
}
