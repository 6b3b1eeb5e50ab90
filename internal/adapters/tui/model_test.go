package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/adapters/tui"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
)

func sampleResult() ports.CheckResult {
	deps := []domain.Dependency{
		domain.NewDependency("numpy >=1.13,<2.0", domain.SourceConda, 5),
		domain.NewDependency("shapely", domain.SourceConda, 6),
		domain.NewDependency("scipy >=2.0,<1.0", domain.SourceConda, 7),
		domain.NewDependency("owslib==0.14.0", domain.SourcePip, 9),
	}
	report := &domain.Report{
		Path:         "/project/environment.yml",
		Dependencies: len(deps),
		CheckedAt:    time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	report.Add(
		domain.NewFinding(domain.RuleMissingName, 0, "name", "descriptor has no name"),
		domain.NewFinding(domain.RuleUnpinned, 6, "shapely", "shapely has no version constraint"),
		domain.NewFinding(domain.RuleUnsatisfiable, 7, "scipy", `constraint ">=2.0,<1.0" for scipy admits no version`),
	)
	return ports.CheckResult{Report: report, Dependencies: deps}
}

func update(t *testing.T, m tui.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tui.Model)
		require.True(t, ok)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBuildRows(t *testing.T) {
	res := sampleResult()
	rows := tui.BuildRows(res.Report, res.Dependencies)

	require.Len(t, rows, 5)
	assert.Equal(t, "environment.yml", rows[0].Label)
	assert.Equal(t, "numpy", rows[1].Label)
	assert.Equal(t, "owslib (pip)", rows[4].Label)

	require.Len(t, rows[0].Findings, 1)
	assert.Equal(t, domain.RuleMissingName, rows[0].Findings[0].Rule)
	assert.Empty(t, rows[1].Findings)
	require.Len(t, rows[3].Findings, 1)
	assert.Equal(t, domain.RuleUnsatisfiable, rows[3].Findings[0].Rule)
}

func TestRow_Worst(t *testing.T) {
	_, ok := tui.Row{}.Worst()
	assert.False(t, ok)

	row := tui.Row{Findings: []domain.Finding{
		domain.NewFinding(domain.RuleUnpinned, 1, "a", "info"),
		domain.NewFinding(domain.RuleDuplicatePackage, 1, "a", "error"),
		domain.NewFinding(domain.RuleUnknownKey, 1, "a", "warning"),
	}}
	worst, ok := row.Worst()
	assert.True(t, ok)
	assert.Equal(t, domain.SeverityError, worst)
}

func TestModel_Result(t *testing.T) {
	m := update(t, tui.NewModel("/project/environment.yml"),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tui.MsgResult{Result: sampleResult()},
	)

	assert.Equal(t, 1, m.Checks)
	assert.Len(t, m.Rows, 5)
	assert.Equal(t, 0, m.Cursor)
	assert.Contains(t, m.Viewport.View(), "descriptor has no name")
}

func TestModel_Navigation(t *testing.T) {
	m := update(t, tui.NewModel("/project/environment.yml"),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tui.MsgResult{Result: sampleResult()},
	)

	m = update(t, m, key("down"), key("down"))
	assert.Equal(t, 2, m.Cursor)
	assert.Contains(t, m.Viewport.View(), "shapely has no version constraint")

	m = update(t, m, key("j"))
	assert.Equal(t, 3, m.Cursor)
	assert.Contains(t, m.Viewport.View(), "admits no version")

	m = update(t, m, key("G"), key("down"))
	assert.Equal(t, 4, m.Cursor, "cursor stops at the last row")
	assert.Contains(t, m.Viewport.View(), "no problems")

	m = update(t, m, key("g"), key("up"), key("k"))
	assert.Equal(t, 0, m.Cursor, "cursor stops at the first row")
}

func TestModel_KeepsSelectionAcrossChecks(t *testing.T) {
	m := update(t, tui.NewModel("/project/environment.yml"),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tui.MsgResult{Result: sampleResult()},
		key("down"), key("down"),
	)
	require.Equal(t, "shapely", m.Rows[m.Cursor].Label)

	res := sampleResult()
	res.Dependencies = res.Dependencies[1:]
	m = update(t, m, tui.MsgResult{Result: res})

	assert.Equal(t, 2, m.Checks)
	assert.Equal(t, "shapely", m.Rows[m.Cursor].Label)
}

func TestModel_LoadError(t *testing.T) {
	m := update(t, tui.NewModel("/project/environment.yml"),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tui.MsgResult{Result: sampleResult()},
		tui.MsgResult{Result: ports.CheckResult{Err: errors.New("failed to parse environment descriptor")}},
	)

	require.Error(t, m.Err)
	assert.NotNil(t, m.Report, "the last good report stays visible")
	assert.Contains(t, m.View(), "failed to parse environment descriptor")

	m = update(t, m, tui.MsgResult{Result: sampleResult()})
	assert.NoError(t, m.Err)
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			_, cmd := tui.NewModel("environment.yml").Update(key(k))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}
