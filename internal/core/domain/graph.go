// Package domain contains the core domain models for the task pipeline.
package domain

import "go.trai.ch/zerr"

// Graph is the validated dependency graph of a registry: a mapping from
// task name to its upstream task names, guaranteed acyclic and closed
// (every referenced name is registered).
type Graph struct {
	upstream   map[InternedString][]InternedString
	dependents map[InternedString][]InternedString
}

// BuildGraph converts a registry into a dependency graph.
// It returns ErrUndefinedDependency if a task references an unregistered
// upstream name, or ErrCycleDetected if a task transitively depends on
// itself. The cycle error carries the offending path in its metadata.
func BuildGraph(reg *Registry) (*Graph, error) {
	g := &Graph{
		upstream:   make(map[InternedString][]InternedString, reg.Len()),
		dependents: make(map[InternedString][]InternedString, reg.Len()),
	}

	for _, name := range reg.Names() {
		task, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		for _, dep := range task.Upstream {
			if _, err := reg.Get(dep); err != nil {
				return nil, zerr.With(zerr.With(ErrUndefinedDependency,
					"task_name", name.String()),
					"dependency", dep.String())
			}
			g.upstream[name] = append(g.upstream[name], dep)
			g.dependents[dep] = append(g.dependents[dep], name)
		}
		if _, ok := g.upstream[name]; !ok {
			g.upstream[name] = nil
		}
	}

	if err := g.checkAcyclic(reg); err != nil {
		return nil, err
	}
	return g, nil
}

// checkAcyclic runs a depth-first traversal with tri-color marking.
// Revisiting an in-progress node signals a cycle.
func (g *Graph) checkAcyclic(reg *Registry) error {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[InternedString]int, len(g.upstream))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		for _, dep := range g.upstream[u] {
			if state[dep] == visiting {
				return cycleError(path, dep)
			}
			if state[dep] == unvisited {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		return nil
	}

	// Registration order makes the reported cycle stable across runs.
	for _, name := range reg.Names() {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError constructs an ErrCycleDetected carrying the cycle path metadata.
func cycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cyclePath := ""
	for i := start; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Upstream returns the upstream task names of the given task, in declaration order.
func (g *Graph) Upstream(name InternedString) []InternedString {
	return g.upstream[name]
}

// Dependents returns the tasks that directly depend on the given task.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// TransitiveDependents returns every task that transitively depends on the
// given task. Used to skip the downstream set of a failed task.
func (g *Graph) TransitiveDependents(name InternedString) []InternedString {
	seen := make(map[InternedString]bool)
	var out []InternedString
	queue := append([]InternedString(nil), g.dependents[name]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		out = append(out, next)
		queue = append(queue, g.dependents[next]...)
	}
	return out
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.upstream)
}
