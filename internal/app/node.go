package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/adapters/cachestore" //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/provider"   //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/python"     //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/adapters/writer"     //nolint:depguard // Wired in app layer
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/docullim/internal/engine/scheduler"
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
			fs.ResolverNodeID,
			python.ScannerNodeID,
			fs.HasherNodeID,
			cachestore.NodeID,
			provider.NodeID,
			writer.NodeID,
			python.InstallerNodeID,
			scheduler.NodeID,
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
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.FileResolver](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.CacheStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	providers, err := graft.Dep[ports.ProviderFactory](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Writer](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.MarkerInstaller](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, scanner, hasher, stores, providers, w, installer, sched, log), nil
}
