// Package planner computes deterministic execution plans for task graphs.
package planner

import (
	"sort"

	"go.trai.ch/mill/internal/core/domain"
)

// Plan returns a topological ordering of every task in the graph.
// Tasks with no remaining ordering constraint are emitted in registration
// order, so identical registries always produce identical plans.
func Plan(graph *domain.Graph, reg *domain.Registry) []domain.InternedString {
	return plan(graph, reg, reg.Names())
}

// PlanFor returns a plan restricted to the given targets and their
// transitive upstream closure. With no targets it plans the whole graph.
// Unknown targets surface as ErrUnknownTask.
func PlanFor(graph *domain.Graph, reg *domain.Registry, targets []domain.InternedString) ([]domain.InternedString, error) {
	if len(targets) == 0 {
		return Plan(graph, reg), nil
	}

	needed := make(map[domain.InternedString]bool)
	queue := make([]domain.InternedString, 0, len(targets))
	for _, t := range targets {
		if _, err := reg.Get(t); err != nil {
			return nil, err
		}
		queue = append(queue, t)
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if needed[next] {
			continue
		}
		needed[next] = true
		queue = append(queue, graph.Upstream(next)...)
	}

	members := make([]domain.InternedString, 0, len(needed))
	for _, name := range reg.Names() {
		if needed[name] {
			members = append(members, name)
		}
	}
	return plan(graph, reg, members), nil
}

// plan runs Kahn's algorithm over the member set with a ready queue kept
// sorted by registration index.
func plan(graph *domain.Graph, reg *domain.Registry, members []domain.InternedString) []domain.InternedString {
	index := make(map[domain.InternedString]int, reg.Len())
	for i, name := range reg.Names() {
		index[name] = i
	}

	member := make(map[domain.InternedString]bool, len(members))
	for _, name := range members {
		member[name] = true
	}

	inDegree := make(map[domain.InternedString]int, len(members))
	for _, name := range members {
		for _, dep := range graph.Upstream(name) {
			if member[dep] {
				inDegree[name]++
			}
		}
	}

	var ready []domain.InternedString
	push := func(name domain.InternedString) {
		i := sort.Search(len(ready), func(i int) bool {
			return index[ready[i]] > index[name]
		})
		ready = append(ready, name)
		copy(ready[i+1:], ready[i:])
		ready[i] = name
	}

	for _, name := range members {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	out := make([]domain.InternedString, 0, len(members))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		out = append(out, next)

		for _, dep := range graph.Dependents(next) {
			if !member[dep] {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				push(dep)
			}
		}
	}
	return out
}
