package tracking

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
)

var _ ports.Tracker = (*NoopTracker)(nil)

// NoopTracker satisfies ports.Tracker when no tracking server is configured.
// Run identifiers are still generated so the run record stays usable.
type NoopTracker struct{}

// NewNoopTracker creates a new NoopTracker.
func NewNoopTracker() *NoopTracker {
	return &NoopTracker{}
}

// StartRun returns a locally generated run identifier.
func (t *NoopTracker) StartRun(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// LogParam does nothing.
func (t *NoopTracker) LogParam(_ context.Context, _, _, _ string) error {
	return nil
}

// LogMetric does nothing.
func (t *NoopTracker) LogMetric(_ context.Context, _, _ string, _ float64, _ int64) error {
	return nil
}

// LogArtifact registers the artifact by its local path.
func (t *NoopTracker) LogArtifact(_ context.Context, _, path string) (string, error) {
	return path, nil
}

// EndRun does nothing.
func (t *NoopTracker) EndRun(_ context.Context, _ string, _ domain.RunStatus) error {
	return nil
}
