package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/envspec/internal/ui/style"
)

// View renders the dependency list, the findings pane and the status bar.
//
//nolint:gocritic // hugeParam ignored
func (m Model) View() string {
	if m.Viewport.Height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.dependencyList(), m.findingsPane()),
		m.statusBar(),
	)
}

func (m Model) dependencyList() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("DEPENDENCIES") + "\n")

	// Keep the cursor inside the visible window.
	start := 0
	if visible := m.Height; visible > 0 && m.Cursor >= visible {
		start = m.Cursor - visible + 1
	}
	end := len(m.Rows)
	if m.Height > 0 {
		end = min(end, start+m.Height)
	}

	for i := start; i < end; i++ {
		row := m.Rows[i]
		icon, rowStyle := style.Check, cleanStyle
		if worst, ok := row.Worst(); ok {
			icon = style.SeverityIcon(worst.String())
			rowStyle = severityStyle(worst)
		}

		line := fmt.Sprintf("%s %s", icon, row.Label)
		if i == m.Cursor {
			line = selectedStyle.Render("> ") + rowStyle.Render(line)
		} else {
			line = "  " + rowStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}

	return listStyle.Width(m.ListWidth).Render(s.String())
}

func (m Model) findingsPane() string {
	header := titleStyle.Render("FINDINGS")
	if m.Cursor < len(m.Rows) {
		header = titleStyle.Render("FINDINGS: " + m.Rows[m.Cursor].Label)
	}

	return detailStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.Viewport.View(),
		),
	)
}

func (m Model) statusBar() string {
	parts := []string{"watching " + m.Path}

	if m.Report != nil {
		s := m.Report.Summary()
		parts = append(parts,
			fmt.Sprintf("check #%d at %s", m.Checks, m.Report.CheckedAt.Format("15:04:05")),
			fmt.Sprintf("%d errors, %d warnings, %d infos", s.Errors, s.Warnings, s.Infos),
		)
	}
	parts = append(parts, "↑/↓ select · q quit")

	bar := mutedStyle.Render(strings.Join(parts, " · "))
	if m.Err != nil {
		bar = errorStyle.Render(style.Cross+" "+m.Err.Error()) + "\n" + bar
	}
	return bar
}
