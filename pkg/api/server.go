// Package api serves the task board, the focus timer and the scratchpad over
// HTTP for browser and desktop surfaces.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/scratchpad"
	"tableflip.dev/focus/pkg/session"
)

// Server represents the API server.
type Server struct {
	Addr string

	tasks    *app.Service
	timer    *session.Timer
	pad      *scratchpad.Pad
	metrics  http.Handler
	location *time.Location
	now      func() time.Time

	router *chi.Mux
	server *http.Server
}

// Options configures NewServer. Nil collaborators disable their routes.
type Options struct {
	Addr     string
	Tasks    *app.Service
	Timer    *session.Timer
	Pad      *scratchpad.Pad
	Metrics  http.Handler
	Location *time.Location
	Now      func() time.Time
}

// NewServer creates a new API server.
func NewServer(opts Options) *Server {
	s := &Server{
		Addr:     opts.Addr,
		tasks:    opts.Tasks,
		timer:    opts.Timer,
		pad:      opts.Pad,
		metrics:  opts.Metrics,
		location: opts.Location,
		now:      opts.Now,
		router:   chi.NewRouter(),
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)

	if s.tasks != nil {
		s.router.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleAllTasks)
			r.Post("/", s.handleAddTask)
			r.Delete("/", s.handleClearTasks)
			r.Get("/today", s.handleTodaysTasks)
			r.Get("/today/completed", s.handleTodaysCompleted)
			r.Post("/carryover", s.handleCarryOver)
			r.Post("/archive", s.handleArchive)
			r.Get("/history", s.handleHistory)
			r.Patch("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
			r.Post("/{id}/complete", s.handleCompleteTask)
			r.Post("/{id}/uncomplete", s.handleUncompleteTask)
		})
	}

	if s.timer != nil {
		s.router.Get("/timer", s.handleTimerStatus)
		s.router.Post("/timer/start", s.handleTimerStart)
		s.router.Post("/timer/stop", s.handleTimerStop)
		s.router.Post("/timer/reset", s.handleTimerReset)
		s.router.Get("/sessions", s.handleSessions)
		s.router.Get("/sessions/stats", s.handleSessionStats)
	}

	if s.pad != nil {
		s.router.Get("/scratchpad", s.handleGetScratchpad)
		s.router.Put("/scratchpad", s.handlePutScratchpad)
	}

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server.
func (s *Server) Start() error {
	slog.Info("api: listening", "addr", s.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Response represents a standard API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Error writes an error response.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	if code >= http.StatusInternalServerError {
		slog.Error("api: request failed", "method", r.Method, "path", r.URL.Path, "error", message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Error: message})
}

// Success writes a success response.
func (s *Server) Success(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// fail maps service errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidPriority), errors.Is(err, app.ErrInvalidDate):
		s.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		s.Error(w, r, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.Error(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
