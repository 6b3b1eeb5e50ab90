package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envspec/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/channel" //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/report"  //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/tui"     //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/envspec/internal/engine/validator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			channel.NodeID,
			cas.NodeID,
			report.NodeID,
			watcher.NodeID,
			tui.NodeID,
			validator.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.DescriptorLoader](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	indexes, err := graft.Dep[ports.PackageIndexFactory](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	renderers, err := graft.Dep[ports.RendererFactory](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	dashboard, err := graft.Dep[ports.Dashboard](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*validator.Engine](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, settings, indexes, store, renderers, watch, dashboard, engine, log), nil
}
