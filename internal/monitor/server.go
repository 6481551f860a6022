// Package monitor exposes an optional, read-only view of a running
// search: a small HTTP server serving the current progress snapshot as
// JSON, and an optional NATS publisher for the same events. Neither
// component ever influences the search itself; both only read from a
// *cads.ProgressTracker.
package monitor

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/twilightcoders/cads/internal/cads"
)

// Server serves /health and /progress over HTTP while a search runs.
type Server struct {
	tracker *cads.ProgressTracker
	addr    string
	srv     *http.Server
}

// NewServer builds a monitor server bound to addr (host:port), reading
// progress from tracker.
func NewServer(tracker *cads.ProgressTracker, addr string) *Server {
	return &Server{tracker: tracker, addr: addr}
}

// Router builds the chi router: standard logging/recovery/timeout
// middleware plus the two read-only routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/progress", s.handleProgress)
	return r
}

// Start launches the HTTP server in the background and returns
// immediately; call Shutdown to stop it.
func (s *Server) Start() {
	s.srv = &http.Server{Addr: s.addr, Handler: s.Router()}
	go func() {
		log.Printf("monitor: serving progress snapshot at http://%s/progress", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("monitor: server error: %v", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Printf("monitor: encoding progress snapshot: %v", err)
	}
}
