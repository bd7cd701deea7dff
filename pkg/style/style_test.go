package style

import (
	"strings"
	"testing"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected string
	}{
		{name: "no indent", level: 0, expected: "Hello"},
		{name: "one level", level: 1, expected: "  Hello"},
		{name: "two levels", level: 2, expected: "    Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Indent("Hello", tt.level)
			if result != tt.expected {
				t.Errorf("Indent(%q, %d) = %q, want %q", "Hello", tt.level, result, tt.expected)
			}
		})
	}
}

func TestMarkupRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "package tag", input: "[package]gcc[/package]", want: "gcc"},
		{name: "version tag", input: "[version]12.2.0[/version]", want: "12.2.0"},
		{name: "nested tags", input: "[bold][direct]jdk[/direct][/bold]", want: "jdk"},
		{name: "no tags", input: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Render(tt.input)
			if !strings.Contains(result, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, result, tt.want)
			}
			if strings.Contains(result, "[/") {
				t.Errorf("Render(%q) left a closing tag: %q", tt.input, result)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	got := Strip("[bold][package]gcc[/package][/bold] [version]12.2.0[/version] [unknown]x[/unknown]")
	if got != "gcc 12.2.0 [unknown]x[/unknown]" {
		t.Errorf("Strip() = %q", got)
	}
}

func TestStatusBadges(t *testing.T) {
	for _, status := range []Status{StatusDone, StatusKept, StatusFailed, StatusPlanned, StatusNoop} {
		t.Run(string(status), func(t *testing.T) {
			if badge := Badge(status); !strings.Contains(badge, string(status)) {
				t.Errorf("Badge(%q) = %q", status, badge)
			}
			if Indicator(status) == "" {
				t.Errorf("Indicator(%q) is empty", status)
			}
		})
	}
}
