package api

import (
	"encoding/json"
	"net/http"
)

// resultRequest is the body for confirm/complete: the raw workflow
// result payload to merge.
type resultRequest struct {
	Result json.RawMessage `json:"result"`
}

// reassignRequest is the body for the reassignment hook.
type reassignRequest struct {
	TaskID int `json:"task_id"`
}

// handleGetSession returns the active workflow session, if any.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.controller.Current()
	if !ok {
		JSONResponse(w, map[string]any{"active": false})
		return
	}
	JSONResponse(w, map[string]any{
		"active":  true,
		"session": cur,
	})
}

// handleOpenManual opens a manual confirmation session for the task.
func (s *Server) handleOpenManual(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	sess, err := s.controller.OpenManual(id)
	if err != nil {
		HandleError(w, err)
		return
	}
	s.logger.Info("manual session opened", "task", id, "session", sess.ID)
	JSONResponseStatus(w, sess, http.StatusCreated)
}

// handleOpenAutomated opens an automated processing session for the task.
func (s *Server) handleOpenAutomated(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	sess, err := s.controller.OpenAutomated(id)
	if err != nil {
		HandleError(w, err)
		return
	}
	s.logger.Info("automated session opened", "task", id, "session", sess.ID)
	JSONResponseStatus(w, sess, http.StatusCreated)
}

// handleConfirmSession merges a manual confirmation result and closes
// the session.
func (s *Server) handleConfirmSession(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := s.controller.Confirm(req.Result)
	if err != nil {
		HandleError(w, err)
		return
	}
	s.logger.Info("manual session confirmed", "task", updated.ID, "status", updated.Status)
	JSONResponse(w, updated)
}

// handleCompleteSession merges an automated processing result and
// closes the session.
func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := s.controller.Complete(req.Result)
	if err != nil {
		HandleError(w, err)
		return
	}
	s.logger.Info("automated session completed", "task", updated.ID)
	JSONResponse(w, updated)
}

// handleCancelSession discards the active session without touching
// the task.
func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Cancel(); err != nil {
		HandleError(w, err)
		return
	}
	NoContent(w)
}

// handleReassign triggers the reassignment hook for a task. The task
// is not mutated; an event is published for external schedulers.
func (s *Server) handleReassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.controller.RequestReassignment(req.TaskID); err != nil {
		HandleError(w, err)
		return
	}
	JSONResponse(w, map[string]any{"requested": true, "task_id": req.TaskID})
}
