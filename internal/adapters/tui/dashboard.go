package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Dashboard = (*Dashboard)(nil)

// Dashboard runs the Bubble Tea program behind the watch command.
type Dashboard struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

// NewDashboard creates a dashboard reading keys from in and drawing to out.
func NewDashboard(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Dashboard {
	return &Dashboard{in: in, out: out, opts: opts}
}

// Run shows each received result until the user quits or ctx is cancelled.
func (d *Dashboard) Run(ctx context.Context, path string, results <-chan ports.CheckResult) error {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(d.in),
		tea.WithOutput(d.out),
	}, d.opts...)
	program := tea.NewProgram(NewModel(path), opts...)

	go func() {
		for res := range results {
			program.Send(MsgResult{Result: res})
		}
	}()

	_, err := program.Run()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return zerr.Wrap(err, domain.ErrDashboardFailed.Error())
	}
	return nil
}
