package api

import (
	"net/http"

	"github.com/randalmurphal/remedy/internal/stats"
)

// handleStatsOverview returns the aggregate progress overview. Served
// through the TTL cache so dashboard polling does not rescan the
// registry on every request.
func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.stats.Overview()
	if err != nil {
		HandleError(w, err)
		return
	}
	JSONResponse(w, ov)
}

// handleCategories returns per-category task counts, "all" first.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, map[string]any{
		"categories": stats.Categories(s.registry.GetAll()),
	})
}
