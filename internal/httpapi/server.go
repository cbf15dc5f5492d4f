// Package httpapi serves the evaluation engine over a stateless JSON API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/greenlie/internal/cache"
	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/model"
)

// Server exposes the engine operations
type Server struct {
	engine   *engine.Engine
	cache    cache.Cache
	cacheTTL time.Duration
	limiter  *Limiter
	logger   *slog.Logger
	router   *chi.Mux
}

// NewServer builds the router. A zero RequestsPerSecond disables rate limiting,
// and ClientRates only apply while it is enabled.
func NewServer(eng *engine.Engine, cfg model.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	s := &Server{
		engine:   eng,
		cache:    cache.NewMemoryCache(ttl, 2*ttl),
		cacheTTL: ttl,
		logger:   logger,
		router:   chi.NewRouter(),
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = NewLimiter(cfg.RequestsPerSecond, cfg.Burst)
		s.limiter.ApplyClientRates(cfg.ClientRates)
	}

	s.setupRoutes(cfg.TrustProxy)
	return s
}

// setupRoutes mounts the middleware and handlers. The client address is only
// taken from forwarding headers when trustProxy is set.
func (s *Server) setupRoutes(trustProxy bool) {
	s.router.Use(middleware.RequestID)
	if trustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}

		r.Get("/statements", s.handleListStatements)
		r.Get("/statements/{id}", s.handleGetStatement)
		r.Post("/statements/{id}/evaluate", s.handleEvaluateStatement)
		r.Post("/statements/{id}/feedback", s.handleFeedback)

		r.Post("/evaluate/selections", s.handleEvaluateSelections)
		r.Post("/evaluate/dynamic", s.handleEvaluateDynamic)

		r.Get("/target-groups", s.handleTargetGroups)
		r.Get("/target-groups/{group}", s.handleTargetGroup)

		r.Post("/suggestions", s.handleSuggestions)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
