package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer
type Format int

const (
	// FormatAuto picks FormatTerminal for color terminals, FormatText otherwise
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
	FormatYAML
)

var formatNames = []string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
}

// formatAliases are accepted by ParseFormat in addition to the names above
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat parses a --format value, case-insensitively
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(s)
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (use %s)",
		s, strings.Join(formatNames, ", "))
}

// DetectFormat resolves FormatAuto for output: styled output only for a
// terminal that supports color and when NO_COLOR is unset
func DetectFormat(output *os.File) Format {
	if IsColorTerminal(output) {
		return FormatTerminal
	}
	return FormatText
}

// IsColorTerminal reports whether output is a terminal that should get
// colors and styling
func IsColorTerminal(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.NewOutput(output).Profile != termenv.Ascii
}
