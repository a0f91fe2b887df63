package task

import (
	"testing"
	"time"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{Status("done"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		if IsValidStatus(tt.status) != tt.valid {
			t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, !tt.valid, tt.valid)
		}
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range ValidCategories() {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false, want true", c)
		}
	}
	if IsValidCategory(Category("all")) {
		t.Error("'all' is a filter key, not a category")
	}
	if IsValidCategory(Category("email")) {
		t.Error("unknown category should be invalid")
	}
}

func TestStatusLabelFallback(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "Pending"},
		{StatusInProgress, "In Progress"},
		{StatusCompleted, "Completed"},
		{Status("bogus"), "Pending"},
	}

	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestPriorityLabelFallback(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityHigh, "High"},
		{PriorityMedium, "Medium"},
		{PriorityLow, "Low"},
		{Priority("urgent"), "Medium"},
	}

	for _, tt := range tests {
		if got := PriorityLabel(tt.priority); got != tt.want {
			t.Errorf("PriorityLabel(%q) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("all"); got != "All" {
		t.Errorf("CategoryLabel(all) = %q, want All", got)
	}
	if got := CategoryLabel("contract"); got != "Contract" {
		t.Errorf("CategoryLabel(contract) = %q, want Contract", got)
	}
	// Unknown keys pass through so callers never render an empty label.
	if got := CategoryLabel("email"); got != "email" {
		t.Errorf("CategoryLabel(email) = %q, want email", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Task{
		ID:       1,
		Title:    "Phone anomaly detection",
		Category: CategoryPhone,
		Priority: PriorityHigh,
		Status:   StatusInProgress,
		Progress: 75,
		Deadline: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid task: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"bad category", func(tk *Task) { tk.Category = "email" }},
		{"bad priority", func(tk *Task) { tk.Priority = "urgent" }},
		{"bad status", func(tk *Task) { tk.Status = "done" }},
		{"progress below range", func(tk *Task) { tk.Progress = -1 }},
		{"progress above range", func(tk *Task) { tk.Progress = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := valid
			tt.mutate(&tk)
			if err := tk.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCloneIsolatesPayloads(t *testing.T) {
	orig := Task{
		ID:       2,
		Category: CategoryAddress,
		Priority: PriorityMedium,
		Status:   StatusCompleted,
		Progress: 100,
		AIResult: []byte(`{"auto_resolved":10}`),
	}

	c := orig.Clone()
	c.AIResult[2] = 'X'

	if string(orig.AIResult) != `{"auto_resolved":10}` {
		t.Error("mutating the clone's payload changed the original")
	}
}
