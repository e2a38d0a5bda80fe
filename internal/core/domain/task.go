package domain

import "context"

// Result is the opaque, serializable output of a task's compute function.
// The engine never inspects its contents; it only stores, fingerprints and
// forwards it to downstream tasks.
type Result []byte

// ComputeFunc is the calling convention for a task's compute reference.
// Inputs arrive in the order of the task's Upstream declaration.
type ComputeFunc func(ctx context.Context, inputs []Result) (Result, error)

// Task represents a named unit of computation with declared dependencies.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name InternedString

	// Compute produces the task's Result from its resolved upstream outputs.
	Compute ComputeFunc

	// Identity is a stable description of the compute reference (for shell
	// tasks, the command line). It is hashed into the fingerprint so that
	// changing what a task does invalidates its cache entries.
	Identity string

	// Upstream lists the tasks whose Results feed into Compute, in order.
	Upstream []InternedString

	// Config holds static literal values hashed into the fingerprint.
	Config map[string]string

	// BestEffort marks a task whose failure does not halt the pipeline.
	// Downstream tasks are still skipped.
	BestEffort bool

	// Artifacts are paths logged against the run after the task succeeds.
	Artifacts []InternedString
}
