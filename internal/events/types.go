// Package events provides event types and publishing infrastructure for remedy.
package events

import (
	"time"
)

// EventType defines the type of event.
type EventType string

const (
	// EventTaskUpdated indicates a task's state changed after a merge.
	EventTaskUpdated EventType = "task_updated"
	// EventSessionOpened indicates a workflow session was opened.
	EventSessionOpened EventType = "session_opened"
	// EventSessionClosed indicates a workflow session completed.
	EventSessionClosed EventType = "session_closed"
	// EventSessionCancelled indicates a workflow session was discarded.
	EventSessionCancelled EventType = "session_cancelled"
	// EventMergeApplied indicates a result payload was merged into a task.
	EventMergeApplied EventType = "merge_applied"
	// EventReassignRequested indicates the reassignment hook was triggered.
	// No task state changes; downstream schedulers may react.
	EventReassignRequested EventType = "reassign_requested"
)

// Event represents a published event.
type Event struct {
	Type   EventType `json:"type"`
	TaskID string    `json:"task_id"`
	Data   any       `json:"data"`
	Time   time.Time `json:"time"`
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, taskID string, data any) Event {
	return Event{
		Type:   eventType,
		TaskID: taskID,
		Data:   data,
		Time:   time.Now(),
	}
}

// SessionData describes a session lifecycle change.
type SessionData struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"` // manual, automated
	TaskID    int    `json:"task_id"`
}

// MergeData describes an applied merge.
type MergeData struct {
	TaskID   int    `json:"task_id"`
	Source   string `json:"source"` // confirmation, automated
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Assignee string `json:"assignee"`
}
