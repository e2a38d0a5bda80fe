package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateTask is returned when registering a task whose name is already taken.
	ErrDuplicateTask = zerr.New("duplicate task")

	// ErrUnknownTask is returned when looking up a task that was never registered.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrUndefinedDependency is returned when a task declares an upstream name
	// that is not present in the registry.
	ErrUndefinedDependency = zerr.New("undefined dependency")

	// ErrCycleDetected is returned when a task transitively depends on itself.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskExecution is returned when a task's compute function fails at run time.
	ErrTaskExecution = zerr.New("task execution failed")

	// ErrDependencyFailed marks tasks skipped because an upstream task failed.
	ErrDependencyFailed = zerr.New("dependency failed")

	// ErrRunClosed is returned when logging against a run record that has been finalized.
	ErrRunClosed = zerr.New("run record closed")

	// ErrObjectNotFound is returned when a key is absent from the object store.
	ErrObjectNotFound = zerr.New("object not found")

	// ErrPipelineFailed signals that one or more tasks failed during execution.
	// Callers use it to distinguish task failures from configuration errors.
	ErrPipelineFailed = zerr.New("pipeline execution failed")
)
