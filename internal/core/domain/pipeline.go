package domain

import "time"

// TrackingConfig describes the experiment-tracking collaborator.
// An empty URL means tracking is disabled for the run.
type TrackingConfig struct {
	URL        string
	Experiment string
	Token      string
	Timeout    time.Duration
}

// Enabled reports whether a tracking server is configured.
func (c TrackingConfig) Enabled() bool {
	return c.URL != ""
}

// StorageConfig describes the S3-compatible artifact store.
// An empty bucket means artifacts are referenced by local path only.
type StorageConfig struct {
	Endpoint       string
	Region         string
	Bucket         string
	ForcePathStyle bool
}

// Enabled reports whether an object store is configured.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// Pipeline is a loaded pipeline definition: the task registry plus the
// collaborator configuration the run needs.
type Pipeline struct {
	Version  string
	Tracking TrackingConfig
	Storage  StorageConfig
	Registry *Registry
}
