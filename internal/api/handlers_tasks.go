package api

import (
	"net/http"
	"strconv"

	"github.com/randalmurphal/remedy/internal/task"
)

// TaskDetail is the task representation returned by the detail
// endpoint. Summary is derived from the stored automated result and
// omitted until one exists.
type TaskDetail struct {
	task.Task
	Summary *task.Summary `json:"summary,omitempty"`
}

// handleListTasks returns tasks in insertion order, optionally
// filtered to one category via ?category=. The "all" key (and an
// absent parameter) return the whole list.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("category")
	if key == "" {
		key = task.CategoryAll
	}
	if key != task.CategoryAll && !task.IsValidCategory(task.Category(key)) {
		JSONError(w, "unknown category: "+key, http.StatusBadRequest)
		return
	}

	tasks := s.registry.FilterByCategory(key)
	JSONResponse(w, map[string]any{
		"tasks":    tasks,
		"category": key,
		"count":    len(tasks),
	})
}

// handleGetTask returns a single task with its result summary.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	t, err := s.registry.GetByID(id)
	if err != nil {
		HandleError(w, err)
		return
	}

	detail := TaskDetail{Task: t}
	if len(t.AIResult) > 0 {
		sum := task.ExtractSummary(t.AIResult)
		detail.Summary = &sum
	}
	JSONResponse(w, detail)
}

// parseTaskID reads the {id} path value. Writes a 400 and returns
// false when it is not an integer.
func parseTaskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		JSONError(w, "task id must be an integer: "+raw, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
