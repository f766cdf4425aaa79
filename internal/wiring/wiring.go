// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/docullim/internal/adapters/cachestore"
	_ "go.trai.ch/docullim/internal/adapters/config"
	_ "go.trai.ch/docullim/internal/adapters/fs"
	_ "go.trai.ch/docullim/internal/adapters/logger"
	_ "go.trai.ch/docullim/internal/adapters/provider"
	_ "go.trai.ch/docullim/internal/adapters/python"
	_ "go.trai.ch/docullim/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/docullim/internal/adapters/writer"
	// Register app and engine nodes.
	_ "go.trai.ch/docullim/internal/app"
	_ "go.trai.ch/docullim/internal/engine/scheduler"
)
