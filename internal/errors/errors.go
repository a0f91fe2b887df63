// Package errors provides structured error types for remedy.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for remedy.
const (
	// Task errors
	CodeTaskNotFound Code = "TASK_NOT_FOUND"

	// Session errors
	CodeNotAutoProcessable Code = "NOT_AUTO_PROCESSABLE"
	CodeSessionActive      Code = "SESSION_ACTIVE"
	CodeNoSession          Code = "NO_SESSION"

	// Aggregation errors
	CodeEmptyRegistry Code = "EMPTY_REGISTRY"
	CodeInvalidStatus Code = "INVALID_STATUS"

	// Config / seed errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeSeedInvalid   Code = "SEED_INVALID"
)

// Category groups error codes for HTTP status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryBadRequest
	CategoryConflict
	CategoryInternal
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeTaskNotFound:       CategoryNotFound,
	CodeNotAutoProcessable: CategoryBadRequest,
	CodeSessionActive:      CategoryConflict,
	CodeNoSession:          CategoryConflict,
	CodeEmptyRegistry:      CategoryConflict,
	CodeInvalidStatus:      CategoryInternal,
	CodeConfigInvalid:      CategoryBadRequest,
	CodeSeedInvalid:        CategoryBadRequest,
}

// HTTPStatus returns the HTTP status code for a category.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryNotFound:
		return 404
	case CategoryBadRequest:
		return 400
	case CategoryConflict:
		return 409
	default:
		return 500
	}
}

// RemedyError is the structured error type for remedy.
type RemedyError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *RemedyError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *RemedyError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *RemedyError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Category returns the error category for HTTP status mapping.
func (e *RemedyError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *RemedyError) HTTPStatus() int {
	return e.Category().HTTPStatus()
}

// MarshalJSON implements json.Marshaler.
func (e *RemedyError) MarshalJSON() ([]byte, error) {
	type alias RemedyError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a RemedyError with the same code.
func (e *RemedyError) Is(target error) bool {
	t, ok := target.(*RemedyError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *RemedyError) WithCause(err error) *RemedyError {
	return &RemedyError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrTaskNotFound returns an error when a task doesn't exist.
func ErrTaskNotFound(id int) *RemedyError {
	return &RemedyError{
		Code: CodeTaskNotFound,
		What: fmt.Sprintf("task %d not found", id),
		Why:  "No task with this ID exists in the registry",
		Fix:  "Run 'remedy list' to see available tasks",
	}
}

// ErrNotAutoProcessable returns an error when automated processing is
// requested for a task that does not allow it.
func ErrNotAutoProcessable(id int) *RemedyError {
	return &RemedyError{
		Code: CodeNotAutoProcessable,
		What: fmt.Sprintf("task %d cannot be processed automatically", id),
		Why:  "The task was created without the auto-processable flag",
		Fix:  fmt.Sprintf("Resolve it manually with 'remedy resolve %d'", id),
	}
}

// ErrSessionActive returns an error when a workflow session is already open.
func ErrSessionActive(mode string, taskID int) *RemedyError {
	return &RemedyError{
		Code: CodeSessionActive,
		What: "a workflow session is already active",
		Why:  fmt.Sprintf("A %s session for task %d is in progress; only one session may be open at a time", mode, taskID),
		Fix:  "Cancel or complete the current session before opening another",
	}
}

// ErrNoSession returns an error when a session operation is attempted
// while no session is open.
func ErrNoSession() *RemedyError {
	return &RemedyError{
		Code: CodeNoSession,
		What: "no workflow session is active",
		Why:  "Confirm, complete, and cancel require an open session",
		Fix:  "Open a session first with a manual or automated workflow",
	}
}

// ErrEmptyRegistry returns an error when an aggregate is requested over
// zero tasks.
func ErrEmptyRegistry() *RemedyError {
	return &RemedyError{
		Code: CodeEmptyRegistry,
		What: "registry contains no tasks",
		Why:  "Overall progress is undefined for an empty task set",
		Fix:  "Seed the registry before requesting aggregate metrics",
	}
}

// ErrInvalidStatus returns an error when a task carries a status outside
// the closed enumeration.
func ErrInvalidStatus(id int, status string) *RemedyError {
	return &RemedyError{
		Code: CodeInvalidStatus,
		What: fmt.Sprintf("task %d has invalid status %q", id, status),
		Why:  "Statuses outside the pending/in-progress/completed set indicate corrupted task data",
		Fix:  "Repair the task seed data or the mutation that wrote this status",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *RemedyError {
	return &RemedyError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check the remedy config file and fix the invalid field",
	}
}

// ErrSeedInvalid returns an error for an invalid task seed file.
func ErrSeedInvalid(reason string) *RemedyError {
	return &RemedyError{
		Code: CodeSeedInvalid,
		What: "task seed data is invalid",
		Why:  reason,
		Fix:  "Fix the seed file or remove it to fall back to the built-in seed set",
	}
}

// AsRemedyError attempts to convert an error to a RemedyError.
// Returns nil if the error is not a RemedyError.
func AsRemedyError(err error) *RemedyError {
	var rerr *RemedyError
	if As(err, &rerr) {
		return rerr
	}
	return nil
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return asError(err, target)
}

// asError implements errors.As behavior.
func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if rerr, ok := err.(*RemedyError); ok {
		if t, ok := target.(**RemedyError); ok {
			*t = rerr
			return true
		}
	}
	// Check unwrapped error
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// Wrap wraps a generic error into a RemedyError with unknown code.
func Wrap(err error, what string) *RemedyError {
	return &RemedyError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
