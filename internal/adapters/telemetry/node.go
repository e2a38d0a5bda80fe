package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/mattn/go-isatty"
	progrockadapter "go.trai.ch/mill/internal/adapters/telemetry/progrock"
	"go.trai.ch/mill/internal/core/ports"
)

// TracerNodeID is the unique identifier for the telemetry Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			// Progress rendering only makes sense on a terminal.
			if !isatty.IsTerminal(os.Stderr.Fd()) {
				return NewNoOpTracer(), nil
			}
			return progrockadapter.New(), nil
		},
	})
}
