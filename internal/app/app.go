// Package app implements the application layer for mill.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/mill/internal/engine/executor"
	"go.trai.ch/mill/internal/engine/planner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	executor *executor.Executor
	trackers ports.TrackerFactory
	store    ports.ResultStore
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	exec *executor.Executor,
	trackers ports.TrackerFactory,
	store ports.ResultStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:   loader,
		executor: exec,
		trackers: trackers,
		store:    store,
		logger:   logger,
	}
}

// RunOptions configures one pipeline execution.
type RunOptions struct {
	// NoCache bypasses memoization lookups.
	NoCache bool
}

// Run executes the pipeline for the specified targets. With no targets the
// whole pipeline runs.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	pipeline, graph, plan, err := a.load(targets)
	if err != nil {
		return err
	}

	tracker, err := a.trackers.New(pipeline.Tracking, pipeline.Storage)
	if err != nil {
		return zerr.Wrap(err, "failed to build tracker")
	}

	rec, err := a.executor.Execute(ctx, plan, pipeline.Registry, graph, executor.Options{
		NoCache: opts.NoCache,
		Tracker: tracker,
	})
	if rec != nil {
		a.summarize(rec, plan)
	}
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrPipelineFailed, err), "pipeline execution failed")
	}
	return nil
}

// Plan returns the execution order for the specified targets without running anything.
func (a *App) Plan(_ context.Context, targets []string) ([]string, error) {
	_, _, plan, err := a.load(targets)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(plan))
	for i, name := range plan {
		names[i] = name.String()
	}
	return names, nil
}

// Clean drops every memoized result.
func (a *App) Clean(_ context.Context) error {
	if err := a.store.Reset(); err != nil {
		return zerr.Wrap(err, "failed to reset result store")
	}
	a.logger.Info("result store cleaned")
	return nil
}

// load reads the pipeline file, validates the graph and computes the plan.
// Configuration errors surface here, before any execution starts.
func (a *App) load(targets []string) (*domain.Pipeline, *domain.Graph, []domain.InternedString, error) {
	pipeline, err := a.loader.Load(".")
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, "failed to load pipeline")
	}

	graph, err := domain.BuildGraph(pipeline.Registry)
	if err != nil {
		return nil, nil, nil, err
	}

	interned := make([]domain.InternedString, len(targets))
	for i, t := range targets {
		interned[i] = domain.NewInternedString(t)
	}

	plan, err := planner.PlanFor(graph, pipeline.Registry, interned)
	if err != nil {
		return nil, nil, nil, err
	}
	return pipeline, graph, plan, nil
}

func (a *App) summarize(rec *domain.RunRecord, plan []domain.InternedString) {
	var cached, succeeded, failed, skipped int
	statuses := a.executor.Statuses()
	for _, name := range plan {
		switch statuses[name] {
		case domain.StatusSkippedCached:
			cached++
		case domain.StatusSucceeded:
			succeeded++
		case domain.StatusFailed:
			failed++
		case domain.StatusSkippedDependencyFailed:
			skipped++
		}
	}
	a.logger.Info(fmt.Sprintf("run %s: %d succeeded, %d cached, %d failed, %d skipped (%.2fs)",
		rec.ID(), succeeded, cached, failed, skipped, rec.Duration().Seconds()))
}
