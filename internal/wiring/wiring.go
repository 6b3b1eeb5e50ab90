// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/envspec/internal/adapters/cas"
	_ "go.trai.ch/envspec/internal/adapters/channel"
	_ "go.trai.ch/envspec/internal/adapters/config"
	_ "go.trai.ch/envspec/internal/adapters/logger"
	_ "go.trai.ch/envspec/internal/adapters/report"
	_ "go.trai.ch/envspec/internal/adapters/tui"
	_ "go.trai.ch/envspec/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/envspec/internal/app"
	_ "go.trai.ch/envspec/internal/engine/validator"
)
