package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	// Pane Styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// Row Styles.
	cleanStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(colorWhite)
)

func severityStyle(s domain.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(style.SeverityColor(s.String()))
}
