package stats

import (
	"errors"
	"testing"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/task"
)

func tasksWithProgress(progresses ...int) []task.Task {
	out := make([]task.Task, len(progresses))
	for i, p := range progresses {
		status := task.StatusInProgress
		switch {
		case p == 0:
			status = task.StatusPending
		case p == 100:
			status = task.StatusCompleted
		}
		out[i] = task.Task{
			ID:       i + 1,
			Category: task.CategoryPhone,
			Priority: task.PriorityMedium,
			Status:   status,
			Progress: p,
		}
	}
	return out
}

func TestComputeOverviewMean(t *testing.T) {
	o, err := ComputeOverview(tasksWithProgress(75, 100, 0, 60, 45))
	if err != nil {
		t.Fatalf("ComputeOverview: %v", err)
	}

	// Mean of 75+100+0+60+45 is 56.
	if o.OverallProgress != 56 {
		t.Errorf("OverallProgress = %d, want 56", o.OverallProgress)
	}
	if o.CompletedCount != 1 || o.InProgressCount != 3 || o.PendingCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/3/1", o.CompletedCount, o.InProgressCount, o.PendingCount)
	}
	if o.Total != 5 {
		t.Errorf("Total = %d, want 5", o.Total)
	}
}

func TestComputeOverviewRoundsToNearest(t *testing.T) {
	// Mean of 1 and 2 is 1.5, rounds up to 2.
	o, err := ComputeOverview(tasksWithProgress(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if o.OverallProgress != 2 {
		t.Errorf("OverallProgress = %d, want 2", o.OverallProgress)
	}
}

func TestComputeOverviewEmptyRegistry(t *testing.T) {
	_, err := ComputeOverview(nil)
	if !errors.Is(err, remedyerrors.ErrEmptyRegistry()) {
		t.Errorf("expected EMPTY_REGISTRY, got %v", err)
	}
}

func TestComputeOverviewInvalidStatus(t *testing.T) {
	tasks := tasksWithProgress(10, 20)
	tasks[1].Status = "archived"

	_, err := ComputeOverview(tasks)
	if !errors.Is(err, remedyerrors.ErrInvalidStatus(0, "")) {
		t.Errorf("expected INVALID_STATUS, got %v", err)
	}
}

func TestCountsSumToTotal(t *testing.T) {
	o, err := ComputeOverview(tasksWithProgress(0, 10, 20, 100, 100, 55))
	if err != nil {
		t.Fatal(err)
	}
	if o.CompletedCount+o.InProgressCount+o.PendingCount != o.Total {
		t.Errorf("counts %d+%d+%d do not sum to total %d",
			o.CompletedCount, o.InProgressCount, o.PendingCount, o.Total)
	}
}

func TestCategories(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Category: task.CategoryPhone},
		{ID: 2, Category: task.CategoryPhone},
		{ID: 3, Category: task.CategoryContract},
	}

	summaries := Categories(tasks)

	if len(summaries) != 6 {
		t.Fatalf("len = %d, want 6 (all + 5 categories)", len(summaries))
	}
	if summaries[0].Key != "all" || summaries[0].Count != 3 {
		t.Errorf("all = %+v, want count 3", summaries[0])
	}

	byKey := make(map[string]CategorySummary)
	for _, s := range summaries {
		byKey[s.Key] = s
	}
	if byKey["phone"].Count != 2 {
		t.Errorf("phone count = %d, want 2", byKey["phone"].Count)
	}
	if byKey["contract"].Count != 1 {
		t.Errorf("contract count = %d, want 1", byKey["contract"].Count)
	}
	if byKey["address"].Count != 0 {
		t.Errorf("address count = %d, want 0", byKey["address"].Count)
	}
	if byKey["contract"].Label != "Contract" {
		t.Errorf("contract label = %q, want Contract", byKey["contract"].Label)
	}
}

func TestCategoriesEmptySnapshot(t *testing.T) {
	summaries := Categories(nil)
	for _, s := range summaries {
		if s.Count != 0 {
			t.Errorf("%s count = %d, want 0", s.Key, s.Count)
		}
	}
}
