// Package task provides the remediation task entity model for remedy.
package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category represents the subject matter of a remediation task.
type Category string

const (
	// CategoryPhone indicates anomalous phone number remediation.
	CategoryPhone Category = "phone"
	// CategoryAddress indicates incomplete address remediation.
	CategoryAddress Category = "address"
	// CategoryContract indicates contract consistency checks.
	CategoryContract Category = "contract"
	// CategoryCertificate indicates certificate validity checks.
	CategoryCertificate Category = "certificate"
	// CategoryCall indicates outbound call verification.
	CategoryCall Category = "call"
)

// CategoryAll is the identity filter key; it is not a task category.
const CategoryAll = "all"

// ValidCategories returns all valid category values.
func ValidCategories() []Category {
	return []Category{CategoryPhone, CategoryAddress, CategoryContract, CategoryCertificate, CategoryCall}
}

// IsValidCategory returns true if the category is a valid category value.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryPhone, CategoryAddress, CategoryContract, CategoryCertificate, CategoryCall:
		return true
	default:
		return false
	}
}

// categoryLabels maps categories to display labels.
var categoryLabels = map[Category]string{
	CategoryPhone:       "Phone",
	CategoryAddress:     "Address",
	CategoryContract:    "Contract",
	CategoryCertificate: "Certificate",
	CategoryCall:        "Outbound Call",
}

// CategoryLabel returns the display label for a category.
// The "all" key labels the identity filter.
func CategoryLabel(key string) string {
	if key == CategoryAll {
		return "All"
	}
	if label, ok := categoryLabels[Category(key)]; ok {
		return label
	}
	return key
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValidPriority returns true if the priority is a valid priority value.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// PriorityLabel returns the display label for a priority.
// Unknown priorities fall back to the medium label.
func PriorityLabel(p Priority) string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValidStatus returns true if the status is a valid status value.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// StatusLabel returns the display label for a status.
// Unknown statuses fall back to the pending label.
func StatusLabel(s Status) string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// Task represents a unit of data-quality remediation work.
//
// Identity is the integer ID, unique and immutable after creation.
// Title, Description, Category, Priority, Deadline, and AutoProcessable
// are fixed at creation; Status, Progress, Assignee, AIResult, and
// ConfirmationData are mutated only by the merge engine.
type Task struct {
	// ID is the unique identifier.
	ID int `yaml:"id" json:"id"`

	// Title is a short description of the task.
	Title string `yaml:"title" json:"title"`

	// Description is the full task description.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Category is the subject matter classification.
	Category Category `yaml:"category" json:"category"`

	// Priority indicates the urgency of the task.
	Priority Priority `yaml:"priority" json:"priority"`

	// Status is the current lifecycle state.
	Status Status `yaml:"status" json:"status"`

	// Progress is the completion percentage, 0-100 inclusive.
	// It is non-decreasing in practice but this is not enforced;
	// a merge may reset it.
	Progress int `yaml:"progress" json:"progress"`

	// Assignee is the current or last resolver: a human operator
	// label or the automated agent label.
	Assignee string `yaml:"assignee" json:"assignee"`

	// Deadline is the date the task is due.
	Deadline time.Time `yaml:"deadline" json:"deadline"`

	// AutoProcessable gates whether the automated workflow may be
	// offered for this task. Fixed at creation.
	AutoProcessable bool `yaml:"auto_processable" json:"auto_processable"`

	// AIResult is the last automated-workflow result payload, retained
	// for display. At most one is held; a subsequent automated run
	// overwrites it.
	AIResult json.RawMessage `yaml:"-" json:"ai_result,omitempty"`

	// ConfirmationData is the last manual-workflow result payload,
	// retained for display. Independent of AIResult; both slots may be
	// populated over a task's life.
	ConfirmationData json.RawMessage `yaml:"-" json:"confirmation_data,omitempty"`
}

// IsCompleted returns true if the task has reached the completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Validate checks the task's enumerated fields and progress bounds.
func (t *Task) Validate() error {
	if !IsValidCategory(t.Category) {
		return fmt.Errorf("task %d: invalid category %q", t.ID, t.Category)
	}
	if !IsValidPriority(t.Priority) {
		return fmt.Errorf("task %d: invalid priority %q", t.ID, t.Priority)
	}
	if !IsValidStatus(t.Status) {
		return fmt.Errorf("task %d: invalid status %q", t.ID, t.Status)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task %d: progress %d out of range 0-100", t.ID, t.Progress)
	}
	return nil
}

// Clone returns a copy of the task safe to hand to callers while the
// original keeps being mutated under the registry lock.
func (t *Task) Clone() Task {
	c := *t
	if t.AIResult != nil {
		c.AIResult = append(json.RawMessage(nil), t.AIResult...)
	}
	if t.ConfirmationData != nil {
		c.ConfirmationData = append(json.RawMessage(nil), t.ConfirmationData...)
	}
	return c
}
