package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// RunStatus represents the final state of one pipeline execution.
type RunStatus string

const (
	// RunStatusRunning indicates the run is still in progress.
	RunStatusRunning RunStatus = "running"
	// RunStatusFinished indicates the run completed without a halting failure.
	RunStatusFinished RunStatus = "finished"
	// RunStatusFailed indicates the run was halted by a task failure.
	RunStatusFailed RunStatus = "failed"
)

// MetricEntry is a single (key, value, step) metric observation.
type MetricEntry struct {
	Key   string    `json:"key"`
	Value float64   `json:"value"`
	Step  int64     `json:"step"`
	At    time.Time `json:"at"`
}

// ParamEntry is a single (key, value) parameter.
type ParamEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RunRecord is the ordered log of one end-to-end pipeline execution.
// The executor is its sole owner and writer, and finalizes it exactly once.
type RunRecord struct {
	id        string
	startedAt time.Time

	metrics   []MetricEntry
	params    []ParamEntry
	artifacts []string

	status   RunStatus
	closedAt time.Time
}

// NewRunRecord creates an open run record with the given run identifier.
func NewRunRecord(id string) *RunRecord {
	return &RunRecord{
		id:        id,
		startedAt: time.Now(),
		status:    RunStatusRunning,
	}
}

// ID returns the run identifier.
func (r *RunRecord) ID() string {
	return r.id
}

// AddMetric appends a metric observation to the run log.
func (r *RunRecord) AddMetric(key string, value float64, step int64) error {
	if r.Closed() {
		return zerr.With(ErrRunClosed, "run_id", r.id)
	}
	r.metrics = append(r.metrics, MetricEntry{Key: key, Value: value, Step: step, At: time.Now()})
	return nil
}

// AddParam appends a parameter to the run log.
func (r *RunRecord) AddParam(key, value string) error {
	if r.Closed() {
		return zerr.With(ErrRunClosed, "run_id", r.id)
	}
	r.params = append(r.params, ParamEntry{Key: key, Value: value})
	return nil
}

// AddArtifact appends an artifact reference to the run log.
func (r *RunRecord) AddArtifact(ref string) error {
	if r.Closed() {
		return zerr.With(ErrRunClosed, "run_id", r.id)
	}
	r.artifacts = append(r.artifacts, ref)
	return nil
}

// Close finalizes the record with the given status. Only the first call
// takes effect; later calls report ErrRunClosed.
func (r *RunRecord) Close(status RunStatus) error {
	if r.Closed() {
		return zerr.With(ErrRunClosed, "run_id", r.id)
	}
	r.status = status
	r.closedAt = time.Now()
	return nil
}

// Closed reports whether the record has been finalized.
func (r *RunRecord) Closed() bool {
	return r.status != RunStatusRunning
}

// Status returns the record's current status.
func (r *RunRecord) Status() RunStatus {
	return r.status
}

// Metrics returns the ordered metric log.
func (r *RunRecord) Metrics() []MetricEntry {
	out := make([]MetricEntry, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Params returns the ordered parameter log.
func (r *RunRecord) Params() []ParamEntry {
	out := make([]ParamEntry, len(r.params))
	copy(out, r.params)
	return out
}

// Artifacts returns the ordered artifact references.
func (r *RunRecord) Artifacts() []string {
	out := make([]string, len(r.artifacts))
	copy(out, r.artifacts)
	return out
}

// Duration returns how long the run has been (or was) open.
func (r *RunRecord) Duration() time.Duration {
	if r.Closed() {
		return r.closedAt.Sub(r.startedAt)
	}
	return time.Since(r.startedAt)
}
