package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminals
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F3F4F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"}
)

// Package colors
var (
	PackageColor  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	DirectColor   = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}
	IndirectColor = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	VersionColor  = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}
)
