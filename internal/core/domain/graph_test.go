package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/zerr"
)

func registry(t *testing.T, tasks ...*domain.Task) *domain.Registry {
	t.Helper()
	reg := domain.NewRegistry()
	for _, task := range tasks {
		if err := reg.Register(task); err != nil {
			t.Fatalf("failed to register %s: %v", task.Name.String(), err)
		}
	}
	return reg
}

func task(name string, upstream ...string) *domain.Task {
	deps := make([]domain.InternedString, len(upstream))
	for i, dep := range upstream {
		deps[i] = domain.NewInternedString(dep)
	}
	return &domain.Task{Name: domain.NewInternedString(name), Upstream: deps}
}

func TestBuildGraph_UndefinedDependency(t *testing.T) {
	reg := registry(t, task("A", "ghost"))

	_, err := domain.BuildGraph(reg)
	if err == nil {
		t.Fatal("expected error for undefined dependency, got nil")
	}
	if !errors.Is(err, domain.ErrUndefinedDependency) {
		t.Errorf("expected ErrUndefinedDependency, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if dep, ok := meta["dependency"].(string); !ok || dep != "ghost" {
		t.Errorf("expected metadata dependency=ghost, got %v", meta["dependency"])
	}
}

func TestBuildGraph_Cycle(t *testing.T) {
	reg := registry(t,
		task("A", "B"),
		task("B", "A"),
	)

	_, err := domain.BuildGraph(reg)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}

	// Verify metadata contains cycle information
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if cycle, ok := meta["cycle"].(string); !ok || cycle != "A -> B -> A" {
		t.Errorf("expected metadata cycle=A -> B -> A, got %v", meta["cycle"])
	}
}

func TestBuildGraph_SelfCycle(t *testing.T) {
	reg := registry(t, task("A", "A"))

	_, err := domain.BuildGraph(reg)
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestGraph_UpstreamOrder(t *testing.T) {
	reg := registry(t,
		task("C"),
		task("B"),
		task("A", "B", "C"),
	)

	g, err := domain.BuildGraph(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Declaration order, not registration order.
	upstream := g.Upstream(domain.NewInternedString("A"))
	if len(upstream) != 2 || upstream[0].String() != "B" || upstream[1].String() != "C" {
		t.Errorf("unexpected upstream order: %v", upstream)
	}

	if g.TaskCount() != 3 {
		t.Errorf("expected 3 tasks, got %d", g.TaskCount())
	}
}

func TestGraph_TransitiveDependents(t *testing.T) {
	// A <- B <- C, A <- D
	reg := registry(t,
		task("A"),
		task("B", "A"),
		task("C", "B"),
		task("D", "A"),
	)

	g, err := domain.BuildGraph(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dependents := g.TransitiveDependents(domain.NewInternedString("A"))
	got := make(map[string]bool, len(dependents))
	for _, d := range dependents {
		got[d.String()] = true
	}
	for _, want := range []string{"B", "C", "D"} {
		if !got[want] {
			t.Errorf("expected %s among transitive dependents, got %v", want, dependents)
		}
	}
	if len(dependents) != 3 {
		t.Errorf("expected 3 transitive dependents, got %d", len(dependents))
	}

	if deps := g.TransitiveDependents(domain.NewInternedString("C")); len(deps) != 0 {
		t.Errorf("expected no dependents for leaf C, got %v", deps)
	}
}
