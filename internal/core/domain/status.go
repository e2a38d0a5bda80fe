package domain

import "strings"

// TaskStatus represents the lifecycle state of a task during one pipeline execution.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "pending"
	// StatusRunning indicates the task's compute function is executing.
	StatusRunning TaskStatus = "running"
	// StatusSucceeded indicates the compute function returned successfully.
	StatusSucceeded TaskStatus = "succeeded"
	// StatusFailed indicates the compute function returned an error.
	StatusFailed TaskStatus = "failed"
	// StatusSkippedCached indicates the task was skipped because a cached
	// result matched its fingerprint.
	StatusSkippedCached TaskStatus = "skipped_cached"
	// StatusSkippedDependencyFailed indicates the task was skipped because an
	// upstream task failed.
	StatusSkippedDependencyFailed TaskStatus = "skipped_dependency_failed"
)

// IsTerminal reports whether the status is a terminal state.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkippedCached, StatusSkippedDependencyFailed:
		return true
	default:
		return false
	}
}

// NormalizeTaskStatus converts a string to a TaskStatus, defaulting to pending
// if unknown. Useful at API boundaries and when reading persisted records.
func NormalizeTaskStatus(s string) TaskStatus {
	switch strings.ToLower(s) {
	case string(StatusRunning):
		return StatusRunning
	case string(StatusSucceeded):
		return StatusSucceeded
	case string(StatusFailed):
		return StatusFailed
	case string(StatusSkippedCached):
		return StatusSkippedCached
	case string(StatusSkippedDependencyFailed):
		return StatusSkippedDependencyFailed
	default:
		return StatusPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
