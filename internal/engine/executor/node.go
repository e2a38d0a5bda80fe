package executor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mill/internal/adapters/cache"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mill/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mill/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mill/internal/adapters/telemetry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mill/internal/core/ports"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "engine.executor"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			fingerprint.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, fingerprinter, tracer, log), nil
		},
	})
}
