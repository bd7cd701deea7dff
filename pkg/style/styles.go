package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
)

// Package styles
var (
	PackageStyle  = lipgloss.NewStyle().Foreground(PackageColor).Bold(true)
	DirectStyle   = lipgloss.NewStyle().Foreground(DirectColor)
	IndirectStyle = lipgloss.NewStyle().Foreground(IndirectColor)
	VersionStyle  = lipgloss.NewStyle().Foreground(VersionColor)

	// HeaderStyle is used for table headers
	HeaderStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			Padding(0, 1)

	// CellStyle is used for table cells
	CellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Status glyphs
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

// Indent pads every line of s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
