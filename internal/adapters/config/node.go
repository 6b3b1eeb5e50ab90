package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envspec/internal/adapters/logger"
	"go.trai.ch/envspec/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the descriptor loader Graft node.
	NodeID graft.ID = "adapter.descriptor_loader"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.DescriptorLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DescriptorLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
