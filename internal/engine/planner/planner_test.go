package planner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/engine/planner"
)

func buildRegistry(t *testing.T, tasks ...*domain.Task) (*domain.Registry, *domain.Graph) {
	t.Helper()
	reg := domain.NewRegistry()
	for _, task := range tasks {
		require.NoError(t, reg.Register(task))
	}
	graph, err := domain.BuildGraph(reg)
	require.NoError(t, err)
	return reg, graph
}

func named(name string, upstream ...string) *domain.Task {
	deps := make([]domain.InternedString, len(upstream))
	for i, dep := range upstream {
		deps[i] = domain.NewInternedString(dep)
	}
	return &domain.Task{Name: domain.NewInternedString(name), Upstream: deps}
}

func names(plan []domain.InternedString) []string {
	out := make([]string, len(plan))
	for i, n := range plan {
		out[i] = n.String()
	}
	return out
}

func TestPlan_UpstreamBeforeDependent(t *testing.T) {
	reg, graph := buildRegistry(t,
		named("C", "B"),
		named("B", "A"),
		named("A"),
	)

	plan := planner.Plan(graph, reg)
	assert.Equal(t, []string{"A", "B", "C"}, names(plan))
}

func TestPlan_RegistrationOrderTieBreak(t *testing.T) {
	// Three independent tasks: with no ordering constraint between them,
	// the plan must follow registration order, not name order.
	reg, graph := buildRegistry(t,
		named("zeta"),
		named("alpha"),
		named("mid"),
	)

	want := []string{"zeta", "alpha", "mid"}
	for range 20 {
		plan := planner.Plan(graph, reg)
		require.Equal(t, want, names(plan))
	}
}

func TestPlan_Diamond(t *testing.T) {
	// B and C both depend on A; D depends on both.
	reg, graph := buildRegistry(t,
		named("A"),
		named("C", "A"),
		named("B", "A"),
		named("D", "B", "C"),
	)

	plan := planner.Plan(graph, reg)
	// C registered before B, so it wins the tie.
	assert.Equal(t, []string{"A", "C", "B", "D"}, names(plan))
}

func TestPlanFor_RestrictsToUpstreamClosure(t *testing.T) {
	reg, graph := buildRegistry(t,
		named("A"),
		named("B", "A"),
		named("C", "B"),
		named("unrelated"),
	)

	plan, err := planner.PlanFor(graph, reg, []domain.InternedString{domain.NewInternedString("B")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(plan))
}

func TestPlanFor_NoTargetsPlansEverything(t *testing.T) {
	reg, graph := buildRegistry(t,
		named("A"),
		named("B", "A"),
	)

	plan, err := planner.PlanFor(graph, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(plan))
}

func TestPlanFor_UnknownTarget(t *testing.T) {
	reg, graph := buildRegistry(t, named("A"))

	_, err := planner.PlanFor(graph, reg, []domain.InternedString{domain.NewInternedString("ghost")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTask))
}
