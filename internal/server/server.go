// Package server is the HTTP boundary: routing, middleware and the chat
// stream orchestration.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/config"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/loop"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/metrics"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/resolve"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/tools"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/upstream"
)

// maxBodyBytes limits the size of incoming request bodies.
const maxBodyBytes = 1 * 1024 * 1024 // 1 MB

// Server is the main HTTP server.
type Server struct {
	Config     *config.ServerConfig
	Catalog    *catalog.Catalog
	Runner     *loop.Runner
	resolver   *resolve.Resolver
	limiters   *limiterPool
	httpServer *http.Server
}

// New creates a server with all routes registered. The catalog is loaded
// once here and treated as read-only for the process lifetime.
func New(cfg *config.ServerConfig) (*Server, error) {
	var cat *catalog.Catalog
	var err error
	if cfg.DatasetPath != "" {
		cat, err = catalog.LoadFile(cfg.DatasetPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	client := upstream.NewClient(cfg.APIKey, cfg.Model, cfg.ResponsesURL, cfg.Verbose)
	executor := tools.NewExecutor(cat)

	s := &Server{
		Config:   cfg,
		Catalog:  cat,
		Runner:   loop.NewRunner(client, executor),
		resolver: resolve.New(cat),
		limiters: newLimiterPool(cfg.RateRPS, cfg.RateBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHealth)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("OPTIONS /", s.handleOptions)

	handler := corsMiddleware(cfg.CORSOrigin,
		accessTokenMiddleware(cfg,
			rateLimitMiddleware(s.limiters,
				requestLogMiddleware(cfg, mux))))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Handler exposes the fully wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
