package ports

import (
	"context"

	"go.trai.ch/mill/internal/core/domain"
)

// Tracker is the experiment-tracking collaborator. Calls are synchronous;
// implementations apply their own timeouts.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type Tracker interface {
	// StartRun opens a run on the tracking server and returns its identifier.
	StartRun(ctx context.Context) (string, error)

	// LogParam records a (key, value) parameter against the run.
	LogParam(ctx context.Context, runID, key, value string) error

	// LogMetric records a (key, value, step) metric against the run.
	LogMetric(ctx context.Context, runID, key string, value float64, step int64) error

	// LogArtifact uploads the file or directory at path and registers it
	// against the run. It returns the stored artifact reference.
	LogArtifact(ctx context.Context, runID, path string) (string, error)

	// EndRun finalizes the run with the given status.
	EndRun(ctx context.Context, runID string, status domain.RunStatus) error
}

// TrackerFactory builds a Tracker for one pipeline execution from the
// pipeline's collaborator configuration.
type TrackerFactory interface {
	New(tracking domain.TrackingConfig, storage domain.StorageConfig) (Tracker, error)
}
