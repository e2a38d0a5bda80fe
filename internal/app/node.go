package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mill/internal/adapters/cache"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mill/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mill/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mill/internal/adapters/tracking" //nolint:depguard // Wired in app layer
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/mill/internal/engine/executor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			executor.NodeID,
			tracking.NodeID,
			cache.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			exec, err := graft.Dep[*executor.Executor](ctx)
			if err != nil {
				return nil, err
			}

			trackers, err := graft.Dep[ports.TrackerFactory](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, exec, trackers, store, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    a,
				Logger: log,
			}, nil
		},
	})
}

// Components contains the initialized application components exposed to the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
