// Package executor implements sequential, memoized execution of task plans.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor walks an execution plan in order, invoking each task's compute
// function with its resolved upstream outputs and consulting the memoization
// store. It is the sole owner of the run record for the duration of one
// pipeline execution and finalizes it exactly once.
type Executor struct {
	store         ports.ResultStore
	fingerprinter ports.Fingerprinter
	tracer        ports.Tracer
	logger        ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]domain.TaskStatus
}

// New creates a new Executor.
func New(
	store ports.ResultStore,
	fingerprinter ports.Fingerprinter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Executor {
	return &Executor{
		store:         store,
		fingerprinter: fingerprinter,
		tracer:        tracer,
		logger:        logger,
		status:        make(map[domain.InternedString]domain.TaskStatus),
	}
}

// Options configures one pipeline execution.
type Options struct {
	// NoCache bypasses memoization lookups; results are still stored.
	NoCache bool

	// Tracker receives the run record's params, metrics and artifacts.
	// Must not be nil; callers without a tracking server pass a noop.
	Tracker ports.Tracker
}

// Execute runs the plan sequentially. It returns the finalized run record
// together with the first halting error, or the joined errors of best-effort
// failures. Cancellation granularity is "do not start the next task".
func (e *Executor) Execute(
	ctx context.Context,
	plan []domain.InternedString,
	reg *domain.Registry,
	graph *domain.Graph,
	opts Options,
) (rec *domain.RunRecord, err error) {
	e.resetStatuses(plan)

	runID, err := opts.Tracker.StartRun(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start tracking run")
	}
	rec = domain.NewRunRecord(runID)
	defer func() {
		e.finalize(ctx, opts.Tracker, rec, err)
	}()

	e.tracer.EmitPlan(ctx, taskNames(plan))

	inPlan := make(map[domain.InternedString]bool, len(plan))
	for _, name := range plan {
		inPlan[name] = true
	}

	results := make(map[domain.InternedString]domain.Result, len(plan))
	prints := make(map[domain.InternedString]string, len(plan))
	depFailed := make(map[domain.InternedString]domain.InternedString)

	var softErrs error

	for _, name := range plan {
		if ctx.Err() != nil {
			err = errors.Join(softErrs, ctx.Err())
			return rec, err
		}

		task, gerr := reg.Get(name)
		if gerr != nil {
			err = gerr
			return rec, err
		}

		if cause, skipped := depFailed[name]; skipped {
			e.recordDependencySkip(ctx, opts.Tracker, rec, name, cause)
			continue
		}

		upstream := graph.Upstream(name)
		inputs := make([]domain.Result, len(upstream))
		upstreamPrints := make([]string, len(upstream))
		for i, dep := range upstream {
			inputs[i] = results[dep]
			upstreamPrints[i] = prints[dep]
		}

		fp, ferr := e.fingerprinter.Fingerprint(task, upstreamPrints)
		if ferr != nil {
			err = errors.Join(softErrs, ferr)
			return rec, err
		}
		prints[name] = fp
		e.logParam(ctx, opts.Tracker, rec, "fingerprint."+name.String(), fp)

		if !opts.NoCache {
			entry, lerr := e.store.Lookup(fp)
			if lerr != nil {
				err = errors.Join(softErrs, lerr)
				return rec, err
			}
			if entry != nil {
				results[name] = entry.Result
				e.setStatus(name, domain.StatusSkippedCached)
				_, span := e.tracer.Start(ctx, name.String())
				span.Cached()
				span.End(nil)
				e.logMetric(ctx, opts.Tracker, rec, "cache_hit."+name.String(), 1, 0)
				continue
			}
		}

		e.setStatus(name, domain.StatusRunning)
		spanCtx, span := e.tracer.Start(ctx, name.String())
		start := time.Now()
		out, cerr := invoke(spanCtx, task, inputs)
		elapsed := time.Since(start)
		span.End(cerr)

		if cerr != nil {
			taskErr := zerr.With(
				zerr.Wrap(errors.Join(domain.ErrTaskExecution, cerr), "task execution failed"),
				"task", name.String())
			e.setStatus(name, domain.StatusFailed)
			e.logger.Error(taskErr)
			e.logParam(ctx, opts.Tracker, rec, "error."+name.String(), cerr.Error())
			e.markDependentsFailed(graph, name, inPlan, depFailed)

			if task.BestEffort {
				softErrs = errors.Join(softErrs, taskErr)
				continue
			}
			err = errors.Join(softErrs, taskErr)
			return rec, err
		}

		results[name] = out
		e.setStatus(name, domain.StatusSucceeded)
		e.logMetric(ctx, opts.Tracker, rec, "duration_seconds."+name.String(), elapsed.Seconds(), 0)

		if serr := e.store.Store(domain.CacheEntry{
			TaskName:    name.String(),
			Fingerprint: fp,
			Result:      out,
			CreatedAt:   time.Now(),
		}); serr != nil {
			err = errors.Join(softErrs, zerr.Wrap(serr, "failed to store result"))
			return rec, err
		}

		e.logArtifacts(ctx, opts.Tracker, rec, task)
	}

	err = softErrs
	return rec, err
}

// Statuses returns a snapshot of per-task states for the last execution.
func (e *Executor) Statuses() map[domain.InternedString]domain.TaskStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[domain.InternedString]domain.TaskStatus, len(e.status))
	for name, status := range e.status {
		out[name] = status
	}
	return out
}

// invoke calls the task's compute function, converting a panic into an error
// so one misbehaving compute reference cannot take down the run.
func invoke(ctx context.Context, task *domain.Task, inputs []domain.Result) (out domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New("compute function panicked"), "panic", fmt.Sprint(r))
		}
	}()

	if task.Compute == nil {
		return nil, zerr.With(zerr.New("task has no compute function"), "task", task.Name.String())
	}
	return task.Compute(ctx, inputs)
}

func (e *Executor) resetStatuses(plan []domain.InternedString) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = make(map[domain.InternedString]domain.TaskStatus, len(plan))
	for _, name := range plan {
		e.status[name] = domain.StatusPending
	}
}

func (e *Executor) setStatus(name domain.InternedString, status domain.TaskStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status[name] = status
}

// markDependentsFailed marks every planned task downstream of the failed one
// so the loop skips it instead of executing against missing inputs.
func (e *Executor) markDependentsFailed(
	graph *domain.Graph,
	failed domain.InternedString,
	inPlan map[domain.InternedString]bool,
	depFailed map[domain.InternedString]domain.InternedString,
) {
	for _, dep := range graph.TransitiveDependents(failed) {
		if !inPlan[dep] {
			continue
		}
		if _, already := depFailed[dep]; already {
			continue
		}
		depFailed[dep] = failed
		e.setStatus(dep, domain.StatusSkippedDependencyFailed)
	}
}

func (e *Executor) recordDependencySkip(
	ctx context.Context,
	tracker ports.Tracker,
	rec *domain.RunRecord,
	name, cause domain.InternedString,
) {
	skipErr := zerr.With(zerr.With(domain.ErrDependencyFailed,
		"task", name.String()),
		"failed_dependency", cause.String())
	e.logger.Warn(skipErr.Error())
	e.logParam(ctx, tracker, rec, "skipped."+name.String(), cause.String())
}

// logParam mirrors a parameter into the run record and the tracking server.
// Tracking failures degrade to warnings; they never fail the task.
func (e *Executor) logParam(ctx context.Context, tracker ports.Tracker, rec *domain.RunRecord, key, value string) {
	_ = rec.AddParam(key, value)
	if err := tracker.LogParam(ctx, rec.ID(), key, value); err != nil {
		e.logger.Warn("failed to log param: " + err.Error())
	}
}

func (e *Executor) logMetric(ctx context.Context, tracker ports.Tracker, rec *domain.RunRecord, key string, value float64, step int64) {
	_ = rec.AddMetric(key, value, step)
	if err := tracker.LogMetric(ctx, rec.ID(), key, value, step); err != nil {
		e.logger.Warn("failed to log metric: " + err.Error())
	}
}

func (e *Executor) logArtifacts(ctx context.Context, tracker ports.Tracker, rec *domain.RunRecord, task *domain.Task) {
	for _, artifact := range task.Artifacts {
		ref, err := tracker.LogArtifact(ctx, rec.ID(), artifact.String())
		if err != nil {
			e.logger.Warn("failed to log artifact: " + err.Error())
			continue
		}
		_ = rec.AddArtifact(ref)
	}
}

// finalize closes the run record and ends the tracking run exactly once,
// even when the pipeline failed or the context was cancelled.
func (e *Executor) finalize(ctx context.Context, tracker ports.Tracker, rec *domain.RunRecord, runErr error) {
	if rec == nil || rec.Closed() {
		return
	}
	status := domain.RunStatusFinished
	if runErr != nil {
		status = domain.RunStatusFailed
	}
	if err := rec.Close(status); err != nil {
		return
	}
	if err := tracker.EndRun(context.WithoutCancel(ctx), rec.ID(), status); err != nil {
		e.logger.Error(zerr.Wrap(err, "failed to end tracking run"))
	}
}

func taskNames(plan []domain.InternedString) []string {
	out := make([]string, len(plan))
	for i, name := range plan {
		out[i] = name.String()
	}
	return out
}
