package style

import (
	"github.com/pterm/pterm"
)

// Status is the outcome of a command on one package
type Status string

const (
	StatusDone    Status = "done"    // Action carried out
	StatusKept    Status = "kept"    // Left in place, e.g. still needed by another package
	StatusFailed  Status = "failed"  // Action failed
	StatusPlanned Status = "planned" // Shown by dry runs
	StatusNoop    Status = "noop"    // Nothing to do
)

// StatusStyle returns the pterm style for a status badge
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusDone:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusPlanned:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusKept:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator returns the single-glyph marker for a status
func Indicator(status Status) string {
	switch status {
	case StatusDone:
		return SuccessIndicator
	case StatusFailed:
		return ErrorIndicator
	case StatusKept:
		return WarningIndicator
	case StatusPlanned:
		return PendingIndicator
	default:
		return InfoIndicator
	}
}

// Badge renders a fixed-width status badge
func Badge(status Status) string {
	return StatusStyle(status).Sprintf(" %-7s ", string(status))
}
