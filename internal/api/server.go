package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/randalmurphal/remedy/internal/config"
	"github.com/randalmurphal/remedy/internal/events"
	"github.com/randalmurphal/remedy/internal/merge"
	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/session"
)

// Server is the remedy API server.
type Server struct {
	addr   string
	mux    *http.ServeMux
	logger *slog.Logger

	cfg *config.Config

	registry   *registry.Registry
	controller *session.Controller

	// Event publisher for real-time updates
	publisher *events.MemoryPublisher
	wsHandler *WSHandler

	stats *statsCache
}

// Config holds server configuration.
type Config struct {
	Addr   string
	Logger *slog.Logger

	// Remedy is the application configuration. Defaults are used when nil.
	Remedy *config.Config

	// Registry overrides seed loading when set. Mostly for tests.
	Registry *registry.Registry
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:   ":8080",
		Logger: slog.Default(),
	}
}

// New creates a new API server. Returns an error when the seed file is
// unreadable or invalid.
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	remedyCfg := cfg.Remedy
	if remedyCfg == nil {
		remedyCfg = config.Default()
	}

	addr := cfg.Addr
	if addr == "" {
		addr = remedyCfg.Server.Addr
	}

	reg := cfg.Registry
	if reg == nil {
		var err error
		reg, err = registry.Open(remedyCfg.SeedFile)
		if err != nil {
			return nil, err
		}
	}

	pub := events.NewMemoryPublisher(events.WithBufferSize(remedyCfg.EventBufferSize))
	eng := merge.New(reg, pub, remedyCfg.AgentLabel)

	s := &Server{
		addr:       addr,
		mux:        http.NewServeMux(),
		logger:     logger,
		cfg:        remedyCfg,
		registry:   reg,
		controller: session.NewController(reg, eng, pub),
		publisher:  pub,
		stats:      newStatsCache(reg, remedyCfg.Server.StatsCacheTTL.Std()),
	}

	s.wsHandler = NewWSHandler(pub, s, logger)

	go s.watchMerges()

	s.registerRoutes()
	return s, nil
}

// watchMerges invalidates the stats cache whenever a merge lands, so
// the overview endpoint never serves a full TTL window of stale data
// after a write. Exits when the publisher is closed.
func (s *Server) watchMerges() {
	ch := s.publisher.Subscribe(events.GlobalTaskID)
	for ev := range ch {
		if ev.Type == events.EventMergeApplied {
			s.stats.Invalidate()
		}
	}
}

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes() {
	// CORS middleware wrapper
	cors := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			h(w, r)
		}
	}

	// Health check
	s.mux.HandleFunc("GET /api/health", cors(s.handleHealth))

	// Tasks
	s.mux.HandleFunc("GET /api/tasks", cors(s.handleListTasks))
	s.mux.HandleFunc("GET /api/tasks/{id}", cors(s.handleGetTask))

	// Aggregates
	s.mux.HandleFunc("GET /api/stats/overview", cors(s.handleStatsOverview))
	s.mux.HandleFunc("GET /api/categories", cors(s.handleCategories))

	// Workflow sessions
	s.mux.HandleFunc("GET /api/session", cors(s.handleGetSession))
	s.mux.HandleFunc("POST /api/tasks/{id}/session/manual", cors(s.handleOpenManual))
	s.mux.HandleFunc("POST /api/tasks/{id}/session/automated", cors(s.handleOpenAutomated))
	s.mux.HandleFunc("POST /api/session/confirm", cors(s.handleConfirmSession))
	s.mux.HandleFunc("POST /api/session/complete", cors(s.handleCompleteSession))
	s.mux.HandleFunc("POST /api/session/cancel", cors(s.handleCancelSession))

	// Reassignment hook
	s.mux.HandleFunc("POST /api/reassign", cors(s.handleReassign))

	// WebSocket event stream
	s.mux.HandleFunc("GET /api/ws", s.wsHandler.ServeHTTP)
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the API server.
func (s *Server) Start() error {
	return s.StartContext(context.Background())
}

// StartContext starts the API server with graceful shutdown on context
// cancellation.
func (s *Server) StartContext(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}

	go func() {
		<-ctx.Done()
		s.wsHandler.Close()
		s.publisher.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting API server", "addr", s.addr, "tasks", s.registry.Count())
	return server.ListenAndServe()
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, map[string]any{
		"status": "ok",
		"tasks":  s.registry.Count(),
	})
}
