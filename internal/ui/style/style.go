// Package style provides shared UI styling primitives including brand colors,
// icons and severity styles for consistent presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#3B82F6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Info    = "i"
	Dot     = "●"
)

// Severity names as they appear in reports.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// SeverityIcon returns the icon for a severity name.
func SeverityIcon(severity string) string {
	switch severity {
	case SeverityError:
		return Cross
	case SeverityWarning:
		return Warning
	default:
		return Info
	}
}

// SeverityColor returns the color for a severity name.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case SeverityError:
		return Red
	case SeverityWarning:
		return Yellow
	default:
		return Blue
	}
}
