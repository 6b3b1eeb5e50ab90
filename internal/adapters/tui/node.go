package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grindlemire/graft"
	"go.trai.ch/envspec/internal/core/ports"
)

// NodeID is the unique identifier for the dashboard Graft node.
const NodeID graft.ID = "adapter.dashboard"

func init() {
	graft.Register(graft.Node[ports.Dashboard]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Dashboard, error) {
			return NewDashboard(os.Stdin, os.Stdout, tea.WithAltScreen()), nil
		},
	})
}
