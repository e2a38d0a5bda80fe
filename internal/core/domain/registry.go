package domain

import "go.trai.ch/zerr"

// Registry stores task definitions and preserves registration order.
// Registration order is observable because the planner uses it as the
// tie-break for tasks with no relative ordering constraint.
type Registry struct {
	tasks map[InternedString]*Task
	order []InternedString
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[InternedString]*Task),
	}
}

// Register adds a task definition.
// It returns ErrDuplicateTask if a task with the same name already exists.
func (r *Registry) Register(t *Task) error {
	if _, exists := r.tasks[t.Name]; exists {
		return zerr.With(ErrDuplicateTask, "task_name", t.Name.String())
	}
	r.tasks[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Get retrieves a task by name.
// It returns ErrUnknownTask if no task with that name was registered.
func (r *Registry) Get(name InternedString) (*Task, error) {
	t, ok := r.tasks[name]
	if !ok {
		return nil, zerr.With(ErrUnknownTask, "task_name", name.String())
	}
	return t, nil
}

// Names returns all task names in registration order.
func (r *Registry) Names() []InternedString {
	names := make([]InternedString, len(r.order))
	copy(names, r.order)
	return names
}

// Index returns the registration position of a task, or -1 if absent.
func (r *Registry) Index(name InternedString) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}
