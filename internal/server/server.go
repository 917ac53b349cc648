// Package server exposes the gallery over HTTP: health and readiness
// probes, Prometheus metrics, the catalog, and on-demand rendering.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
)

// Gallery is the slice of the renderer the HTTP layer needs.
type Gallery interface {
	CheckReadiness(ctx context.Context) error
	List() []gallery.Entry
	Lookup(name string) (gallery.Entry, bool)
	Render(ctx context.Context, name string) (string, error)
}

// Server exposes health, readiness, metrics, and render HTTP endpoints.
type Server struct {
	httpServer    *http.Server
	gallery       Gallery
	logger        *slog.Logger
	renderTimeout time.Duration
}

// entryInfo is the JSON shape of one catalog listing.
type entryInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /entries, and /render/{entry} routes.
func NewServer(addr string, g Gallery, renderTimeout time.Duration, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		gallery:       g,
		logger:        logger,
		renderTimeout: renderTimeout,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /entries", s.handleEntries)
	mux.HandleFunc("GET /render/{entry}", s.handleRender)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.gallery.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleEntries(w http.ResponseWriter, _ *http.Request) {
	list := s.gallery.List()
	out := make([]entryInfo, len(list))
	for i, e := range list {
		out[i] = entryInfo{Name: e.Name, Title: e.Title, Summary: e.Summary}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("entry")
	if _, ok := s.gallery.Lookup(name); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown gallery entry " + name,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	path, err := s.gallery.Render(ctx, name)
	if err != nil {
		s.logger.Error("render request failed", "entry", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort status response
}
