// Package server exposes the merged concrete profiles to the browser viewer:
// profile JSON over plain HTTP GET, asset files from the profiles directory,
// and a websocket channel that tells the viewer to reload when the watcher
// sees a change.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/vk/xrprofiles/internal/profile"
)

// Server serves one snapshot of concrete profiles. Snapshots are swapped
// atomically by SetProfiles; requests in flight keep reading the snapshot
// they started with.
type Server struct {
	logger *slog.Logger
	hub    *hub
	mux    *http.ServeMux

	mu       sync.RWMutex
	profiles map[string]*profile.Profile
}

// New creates a Server serving asset files from assetsDir.
func New(logger *slog.Logger, assetsDir string) *Server {
	s := &Server{
		logger:   logger,
		hub:      newHub(logger),
		profiles: make(map[string]*profile.Profile),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /profiles", s.handleList)
	mux.HandleFunc("GET /profiles/{id}", s.handleProfile)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
	mux.HandleFunc("GET /livereload", s.hub.handle)
	s.mux = mux
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// SetProfiles swaps in a new snapshot of concrete profiles.
func (s *Server) SetProfiles(profiles map[string]*profile.Profile) {
	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()
}

// Broadcast notifies every connected viewer. The watcher calls this after a
// successful rebuild.
func (s *Server) Broadcast(event string) {
	s.hub.broadcast(event)
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🌐 Profile server starting", "address", fmt.Sprintf("http://localhost%s/profiles", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("profile server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.closeAll()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snapshot := s.profiles
	s.mu.RUnlock()

	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	writeJSON(w, s.logger, map[string]any{"profiles": sorted(ids)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.RLock()
	p, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, fmt.Sprintf("unknown profile %q", id), http.StatusNotFound)
		return
	}
	writeJSON(w, s.logger, p)
}

func sorted(ids []string) []string {
	sort.Strings(ids)
	return ids
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response.", "error", err)
	}
}
