// Package session enforces the single-active-workflow rule and routes
// workflow results into the merge layer.
package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/events"
	"github.com/randalmurphal/remedy/internal/merge"
	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/task"
)

// Mode identifies which workflow a session runs.
type Mode string

const (
	ModeManual    Mode = "manual"
	ModeAutomated Mode = "automated"
)

// Session is an open resolution workflow bound to one task.
type Session struct {
	ID       string    `json:"id"`
	Mode     Mode      `json:"mode"`
	TaskID   int       `json:"task_id"`
	OpenedAt time.Time `json:"opened_at"`
}

// Controller owns the process-wide active session slot. At most one
// session, manual or automated, may be open at a time. Opening is a
// check-and-set under a single lock so concurrent callers get the
// same guarantee a single UI event loop would.
type Controller struct {
	mu      sync.Mutex
	current *Session

	reg *registry.Registry
	eng *merge.Engine
	pub events.Publisher
}

// NewController creates a session controller over the given registry
// and merge engine. A nil publisher disables event emission.
func NewController(reg *registry.Registry, eng *merge.Engine, pub events.Publisher) *Controller {
	if pub == nil {
		pub = events.NewNopPublisher()
	}
	return &Controller{reg: reg, eng: eng, pub: pub}
}

// OpenManual opens a manual confirmation session for the task. Any
// task may be opened manually, including completed ones, which lets
// an operator review or re-confirm past work.
func (c *Controller) OpenManual(taskID int) (Session, error) {
	return c.open(taskID, ModeManual)
}

// OpenAutomated opens an automated processing session for the task.
// Fails for tasks not marked auto-processable.
func (c *Controller) OpenAutomated(taskID int) (Session, error) {
	return c.open(taskID, ModeAutomated)
}

func (c *Controller) open(taskID int, mode Mode) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return Session{}, remedyerrors.ErrSessionActive(string(c.current.Mode), c.current.TaskID)
	}

	t, err := c.reg.GetByID(taskID)
	if err != nil {
		return Session{}, err
	}
	if mode == ModeAutomated && !t.AutoProcessable {
		return Session{}, remedyerrors.ErrNotAutoProcessable(taskID)
	}

	s := Session{
		ID:       uuid.New().String(),
		Mode:     mode,
		TaskID:   taskID,
		OpenedAt: time.Now(),
	}
	c.current = &s

	c.publishSession(events.EventSessionOpened, s)
	return s, nil
}

// Confirm merges a manual confirmation result for the active manual
// session's task and returns the controller to idle. The session stays
// open if the merge fails.
func (c *Controller) Confirm(result []byte) (task.Task, error) {
	return c.close(ModeManual, result)
}

// Complete merges an automated processing result for the active
// automated session's task and returns the controller to idle.
func (c *Controller) Complete(result []byte) (task.Task, error) {
	return c.close(ModeAutomated, result)
}

func (c *Controller) close(mode Mode, result []byte) (task.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.Mode != mode {
		return task.Task{}, remedyerrors.ErrNoSession()
	}

	var (
		updated task.Task
		err     error
	)
	if mode == ModeManual {
		updated, err = c.eng.MergeConfirmation(c.current.TaskID, result)
	} else {
		updated, err = c.eng.MergeAutomated(c.current.TaskID, result)
	}
	if err != nil {
		return task.Task{}, err
	}

	s := *c.current
	c.current = nil
	c.publishSession(events.EventSessionClosed, s)
	return updated, nil
}

// Cancel discards the active session without touching the task.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return remedyerrors.ErrNoSession()
	}

	s := *c.current
	c.current = nil
	c.publishSession(events.EventSessionCancelled, s)
	return nil
}

// Current returns a copy of the active session, if any.
func (c *Controller) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

// RequestReassignment signals that a task should be handed to a
// different assignee. The task itself is not mutated; the event is a
// hook for an external scheduler.
func (c *Controller) RequestReassignment(taskID int) error {
	t, err := c.reg.GetByID(taskID)
	if err != nil {
		return err
	}
	c.pub.Publish(events.NewEvent(events.EventReassignRequested, strconv.Itoa(t.ID), map[string]any{
		"task_id":  t.ID,
		"assignee": t.Assignee,
	}))
	return nil
}

func (c *Controller) publishSession(typ events.EventType, s Session) {
	c.pub.Publish(events.NewEvent(typ, strconv.Itoa(s.TaskID), events.SessionData{
		SessionID: s.ID,
		Mode:      string(s.Mode),
		TaskID:    s.TaskID,
	}))
}
