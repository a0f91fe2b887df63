// Package merge reconciles workflow result payloads into task state.
// It is the only writer of task status, progress, assignee, and the
// two result slots.
package merge

import (
	"strconv"

	"github.com/randalmurphal/remedy/internal/events"
	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/task"
)

// Engine applies manual confirmation and automated processing results
// to tasks in the registry.
type Engine struct {
	reg        *registry.Registry
	pub        events.Publisher
	agentLabel string
}

// New creates a merge engine. agentLabel is recorded as the assignee
// when the automated workflow completes a task.
func New(reg *registry.Registry, pub events.Publisher, agentLabel string) *Engine {
	if pub == nil {
		pub = events.NewNopPublisher()
	}
	return &Engine{reg: reg, pub: pub, agentLabel: agentLabel}
}

// MergeConfirmation applies a manual confirmation result to the task.
//
// The confirmation payload is always stored; a nil or empty result is
// stored as an empty object so the slot reflects the latest
// confirmation either way. Only a payload whose status field is
// "resolved" completes the task (status completed, progress 100); any
// other payload leaves status and progress alone, modeling partial
// manual progress such as an escalation.
func (e *Engine) MergeConfirmation(taskID int, result []byte) (task.Task, error) {
	m := registry.Mutation{ConfirmationData: normalizeResult(result)}
	if task.IsResolved(result) {
		status := task.StatusCompleted
		progress := 100
		m.Status = &status
		m.Progress = &progress
	}

	updated, err := e.reg.Update(taskID, m)
	if err != nil {
		return task.Task{}, err
	}

	e.publishMerge(updated, "confirmation")
	return updated, nil
}

// MergeAutomated applies an automated processing result to the task.
//
// Unlike manual confirmation there is no partial path: any automated
// completion is full resolution. Status, progress, and assignee are
// set unconditionally and the payload is stored in the AI result slot.
func (e *Engine) MergeAutomated(taskID int, result []byte) (task.Task, error) {
	status := task.StatusCompleted
	progress := 100
	assignee := e.agentLabel

	updated, err := e.reg.Update(taskID, registry.Mutation{
		Status:   &status,
		Progress: &progress,
		Assignee: &assignee,
		AIResult: normalizeResult(result),
	})
	if err != nil {
		return task.Task{}, err
	}

	e.publishMerge(updated, "automated")
	return updated, nil
}

// normalizeResult keeps result slots non-nil: a nil payload would be
// skipped by the registry's partial mutation and leave stale data.
func normalizeResult(result []byte) []byte {
	if len(result) == 0 {
		return []byte("{}")
	}
	return result
}

func (e *Engine) publishMerge(t task.Task, source string) {
	id := strconv.Itoa(t.ID)
	e.pub.Publish(events.NewEvent(events.EventMergeApplied, id, events.MergeData{
		TaskID:   t.ID,
		Source:   source,
		Status:   string(t.Status),
		Progress: t.Progress,
		Assignee: t.Assignee,
	}))
	e.pub.Publish(events.NewEvent(events.EventTaskUpdated, id, t))
}
