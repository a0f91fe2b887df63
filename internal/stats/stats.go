// Package stats derives aggregate metrics and category summaries from
// the task registry. Everything here is a pure function of a registry
// snapshot; nothing is stored.
package stats

import (
	"math"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/task"
)

// Overview is the aggregate progress view over all tasks.
type Overview struct {
	// OverallProgress is the arithmetic mean of all tasks' progress,
	// rounded to the nearest integer.
	OverallProgress int `json:"overall_progress"`

	// CompletedCount, InProgressCount, and PendingCount partition the
	// task set by status. They always sum to Total.
	CompletedCount  int `json:"completed_count"`
	InProgressCount int `json:"in_progress_count"`
	PendingCount    int `json:"pending_count"`

	// Total is the number of tasks in the registry.
	Total int `json:"total"`
}

// CategorySummary is the derived per-category view.
type CategorySummary struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ComputeOverview aggregates progress and status counts over a task
// snapshot.
//
// Zero tasks is an EMPTY_REGISTRY error: the mean is undefined and
// must not silently become a bogus number. A status outside the closed
// enumeration is an INVALID_STATUS error rather than being excluded
// from the counts.
func ComputeOverview(tasks []task.Task) (Overview, error) {
	if len(tasks) == 0 {
		return Overview{}, remedyerrors.ErrEmptyRegistry()
	}

	var o Overview
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
		switch t.Status {
		case task.StatusCompleted:
			o.CompletedCount++
		case task.StatusInProgress:
			o.InProgressCount++
		case task.StatusPending:
			o.PendingCount++
		default:
			return Overview{}, remedyerrors.ErrInvalidStatus(t.ID, string(t.Status))
		}
	}

	o.Total = len(tasks)
	o.OverallProgress = int(math.Round(float64(sum) / float64(len(tasks))))
	return o, nil
}

// Categories returns the fixed category taxonomy plus the identity
// "all" entry, with live counts from the snapshot. Tasks with a
// category outside the closed enumeration are counted in "all" but
// summarized under no category key.
func Categories(tasks []task.Task) []CategorySummary {
	counts := make(map[task.Category]int)
	for _, t := range tasks {
		counts[t.Category]++
	}

	out := []CategorySummary{{
		Key:   task.CategoryAll,
		Label: task.CategoryLabel(task.CategoryAll),
		Count: len(tasks),
	}}
	for _, c := range task.ValidCategories() {
		out = append(out, CategorySummary{
			Key:   string(c),
			Label: task.CategoryLabel(string(c)),
			Count: counts[c],
		})
	}
	return out
}
