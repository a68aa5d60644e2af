// Package server provides the HTTP surface for the photo wall: gallery and
// telemetry APIs plus the websocket scene stream for the render client.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ikeee/Photos-Wall-3D/internal/app"
	"github.com/ikeee/Photos-Wall-3D/internal/gallery"
	"github.com/ikeee/Photos-Wall-3D/internal/server/api"
	"github.com/ikeee/Photos-Wall-3D/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the photo wall host.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		s.mux.Handle("/api/items", api.NewItemsHandler(func() []gallery.Item {
			return s.config.App.Collection().Items()
		}))
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.Handle("/ws/scene", NewSceneHandler(s.config.App))
	}

	if s.config.Store != nil {
		s.mux.Handle("/api/events", api.NewEventsHandler(s.config.Store))
	}

	// Serve the render client if a static directory is configured
	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).Seconds(),
	})
}

// handleState returns the read-only feedback snapshot: the latest pose
// signal (or null) and the focused item id (or empty).
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"signal":    s.config.App.Signal(),
		"focusedId": s.config.App.Focus().FocusedID(),
		"tracking":  s.config.App.IsEnabled(),
	})
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
