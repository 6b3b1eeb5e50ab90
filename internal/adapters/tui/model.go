// Package tui provides the interactive watch dashboard.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
)

const (
	listWidthRatio  = 0.35
	paneBorderWidth = 4
	chromeHeight    = 3 // pane title plus status bar
)

// MsgResult delivers a finished check to the dashboard.
type MsgResult struct {
	Result ports.CheckResult
}

// Row is one entry of the dependency list together with its findings.
type Row struct {
	Label    string
	Line     int
	Findings []domain.Finding
}

// Worst returns the highest severity among the row's findings.
// It reports false when the row has no findings.
func (r Row) Worst() (domain.Severity, bool) {
	if len(r.Findings) == 0 {
		return domain.SeverityInfo, false
	}
	worst := domain.SeverityInfo
	for _, f := range r.Findings {
		worst = max(worst, f.Severity)
	}
	return worst, true
}

// BuildRows groups the report's findings by dependency entry.
// The first row holds the findings about the descriptor itself.
func BuildRows(report *domain.Report, deps []domain.Dependency) []Row {
	rows := make([]Row, 0, len(deps)+1)
	rows = append(rows, Row{Label: filepath.Base(report.Path)})

	byLine := make(map[int]int, len(deps))
	for _, dep := range deps {
		label := dep.DisplayName
		if label == "" {
			label = strings.TrimSpace(dep.Raw)
		}
		if dep.Source == domain.SourcePip {
			label += " (pip)"
		}
		byLine[dep.Line] = len(rows)
		rows = append(rows, Row{Label: label, Line: dep.Line})
	}

	for _, f := range report.Findings {
		i, ok := byLine[f.Line]
		if !ok || f.Line == 0 {
			i = 0
		}
		rows[i].Findings = append(rows[i].Findings, f)
	}
	return rows
}

// Model is the dashboard state.
type Model struct {
	Path      string
	Rows      []Row
	Cursor    int
	Report    *domain.Report
	Err       error
	Checks    int
	ListWidth int
	Height    int
	Viewport  viewport.Model
}

// NewModel creates a dashboard for the descriptor at path.
func NewModel(path string) Model {
	return Model{
		Path:     path,
		Viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses, resizes and check results.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.selectRow(m.Cursor - 1)
		case "down", "j":
			m.selectRow(m.Cursor + 1)
		case "home", "g":
			m.selectRow(0)
		case "end", "G":
			m.selectRow(len(m.Rows) - 1)
		default:
			var cmd tea.Cmd
			m.Viewport, cmd = m.Viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.ListWidth = int(float64(msg.Width) * listWidthRatio)
		m.Height = max(msg.Height-chromeHeight, 1)
		m.Viewport.Width = max(msg.Width-m.ListWidth-paneBorderWidth, 1)
		m.Viewport.Height = m.Height
		m.refresh()

	case MsgResult:
		m.Checks++
		m.Err = msg.Result.Err
		if msg.Result.Report != nil {
			selected := m.selectedLabel()
			m.Report = msg.Result.Report
			m.Rows = BuildRows(msg.Result.Report, msg.Result.Dependencies)
			m.Cursor = 0
			for i, row := range m.Rows {
				if row.Label == selected {
					m.Cursor = i
					break
				}
			}
		}
		m.refresh()
	}

	return m, nil
}

func (m *Model) selectRow(i int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(i, 0), len(m.Rows)-1)
	m.refresh()
}

func (m *Model) selectedLabel() string {
	if m.Cursor < len(m.Rows) {
		return m.Rows[m.Cursor].Label
	}
	return ""
}

func (m *Model) refresh() {
	m.Viewport.SetContent(m.details())
	m.Viewport.GotoTop()
}

// details renders the findings of the selected row.
func (m *Model) details() string {
	if len(m.Rows) == 0 {
		return mutedStyle.Render("Waiting for the first check...")
	}
	row := m.Rows[m.Cursor]
	if len(row.Findings) == 0 {
		return cleanStyle.Render(row.Label + ": no problems")
	}

	wrap := lipgloss.NewStyle()
	if m.Viewport.Width > 2 {
		wrap = wrap.Width(m.Viewport.Width - 2)
	}

	var b strings.Builder
	for i, f := range row.Findings {
		if i > 0 {
			b.WriteString("\n")
		}
		loc := "descriptor"
		if f.Line > 0 {
			loc = fmt.Sprintf("line %d", f.Line)
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			mutedStyle.Render(loc),
			severityStyle(f.Severity).Render(f.Severity.String()),
			mutedStyle.Render(string(f.Rule)),
		)
		b.WriteString(wrap.PaddingLeft(2).Render(f.Message))
		b.WriteString("\n")
	}
	return b.String()
}
