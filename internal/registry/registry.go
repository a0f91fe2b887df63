// Package registry owns the authoritative in-memory collection of
// remediation tasks.
package registry

import (
	"encoding/json"
	"strconv"
	"sync"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/task"
)

// Mutation is a partial field update applied to a task. Nil fields are
// left untouched. Only the merge engine should construct mutations for
// status, progress, assignee, and the result slots; no other component
// writes those fields.
type Mutation struct {
	Status           *task.Status
	Progress         *int
	Assignee         *string
	AIResult         json.RawMessage
	ConfirmationData json.RawMessage
}

// Registry is the authoritative task collection. All reads and the
// Update critical section run under one lock, so callers never observe
// a task in a half-mutated state.
type Registry struct {
	mu    sync.RWMutex
	tasks []*task.Task
	byID  map[int]*task.Task
}

// New creates a registry seeded with the given tasks, preserving
// insertion order. Tasks are validated; duplicate IDs are rejected.
func New(tasks []task.Task) (*Registry, error) {
	r := &Registry{
		byID: make(map[int]*task.Task, len(tasks)),
	}
	for i := range tasks {
		t := tasks[i]
		if err := t.Validate(); err != nil {
			return nil, remedyerrors.ErrSeedInvalid(err.Error())
		}
		if _, exists := r.byID[t.ID]; exists {
			return nil, remedyerrors.ErrSeedInvalid("duplicate task id " + strconv.Itoa(t.ID))
		}
		stored := t.Clone()
		r.tasks = append(r.tasks, &stored)
		r.byID[stored.ID] = &stored
	}
	return r, nil
}

// GetAll returns a snapshot of all tasks in insertion order.
func (r *Registry) GetAll() []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// GetByID returns the task with the given id.
func (r *Registry) GetByID(id int) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return task.Task{}, remedyerrors.ErrTaskNotFound(id)
	}
	return t.Clone(), nil
}

// FilterByCategory returns the tasks whose category matches key, in
// insertion order. The "all" key is the identity filter.
func (r *Registry) FilterByCategory(key string) []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []task.Task
	for _, t := range r.tasks {
		if key == task.CategoryAll || string(t.Category) == key {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Count returns the number of tasks in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// Update atomically applies a partial mutation to the task with the
// given id and returns the updated task.
func (r *Registry) Update(id int, m Mutation) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return task.Task{}, remedyerrors.ErrTaskNotFound(id)
	}

	if m.Status != nil {
		t.Status = *m.Status
	}
	if m.Progress != nil {
		t.Progress = *m.Progress
	}
	if m.Assignee != nil {
		t.Assignee = *m.Assignee
	}
	if m.AIResult != nil {
		t.AIResult = append(json.RawMessage(nil), m.AIResult...)
	}
	if m.ConfirmationData != nil {
		t.ConfirmationData = append(json.RawMessage(nil), m.ConfirmationData...)
	}

	return t.Clone(), nil
}
