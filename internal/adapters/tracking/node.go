package tracking

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mill/internal/adapters/logger"
	"go.trai.ch/mill/internal/adapters/objstore"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
)

// NodeID is the unique identifier for the tracker factory Graft node.
const NodeID graft.ID = "adapter.tracking"

var _ ports.TrackerFactory = (*Factory)(nil)

// Factory builds trackers from per-pipeline collaborator config.
type Factory struct {
	stores *objstore.Factory
	logger ports.Logger
}

// NewFactory creates a tracker factory.
func NewFactory(stores *objstore.Factory, log ports.Logger) *Factory {
	return &Factory{
		stores: stores,
		logger: log,
	}
}

// New builds the tracker for one pipeline execution: a REST client when a
// tracking URL is configured, a noop otherwise.
func (f *Factory) New(tracking domain.TrackingConfig, storage domain.StorageConfig) (ports.Tracker, error) {
	if !tracking.Enabled() {
		return NewNoopTracker(), nil
	}

	store, err := f.stores.New(storage)
	if err != nil {
		return nil, err
	}
	return NewClient(tracking, store, storage.Bucket, f.logger), nil
}

func init() {
	graft.Register(graft.Node[ports.TrackerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			objstore.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.TrackerFactory, error) {
			stores, err := graft.Dep[*objstore.Factory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(stores, log), nil
		},
	})
}
