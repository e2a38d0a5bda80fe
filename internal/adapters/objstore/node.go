package objstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
)

// NodeID is the unique identifier for the object store factory Graft node.
const NodeID graft.ID = "adapter.objstore"

// Factory builds object stores from per-pipeline storage config.
type Factory struct{}

// New builds an ObjectStore for the given config, or nil when storage is
// not configured.
func (f *Factory) New(cfg domain.StorageConfig) (ports.ObjectStore, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return NewS3Store(cfg)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Factory, error) {
			return &Factory{}, nil
		},
	})
}
