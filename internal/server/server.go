// Package server implements the transferflow HTTP API.
//
// The API wraps the flow engine for hosted use: clients POST a raw transfer
// network and receive the transformed category graph. Transform results are
// cached by content hash, optionally archived to a result store, and
// instrumented through the Prometheus-backed observability hooks.
//
// # Endpoints
//
//   - POST /api/v1/transform: transform a network (query: level, flow, metric, pretty, refresh)
//   - POST /api/v1/results: transform and archive, returns the record ID
//   - GET /api/v1/results/{id}: fetch an archived result
//   - GET /healthz: liveness probe
//   - GET /metrics: Prometheus metrics (when metrics are wired)
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/transferflow/transferflow/internal/metrics"
	"github.com/transferflow/transferflow/pkg/cache"
	"github.com/transferflow/transferflow/pkg/store"
)

// DefaultCacheTTL is how long cached transform results stay valid. Results
// are content-addressed, so the TTL only bounds cache growth, not staleness.
const DefaultCacheTTL = 24 * time.Hour

// DefaultShutdownTimeout bounds graceful shutdown on context cancellation.
const DefaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Cache stores transform results by content hash. Nil disables caching.
	Cache cache.Cache

	// Store archives transform results. Nil disables the archive endpoints.
	Store store.Store

	// Metrics exposes /metrics and instruments requests. Optional.
	Metrics *metrics.Hooks

	// Logger receives request and lifecycle logs.
	// Defaults to a discard logger.
	Logger *log.Logger

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration
}

// Server serves the transferflow HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New creates a Server with all routes registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	s := &Server{opts: opts}
	s.router = s.routes()
	return s
}

// Router returns the HTTP handler, usable directly in tests via httptest.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.opts.Logger))
	if s.opts.Metrics != nil {
		r.Use(observeRequests(s.opts.Metrics))
	}

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transform", s.handleTransform)
		if s.opts.Store != nil {
			r.Post("/results", s.handleArchive)
			r.Get("/results/{id}", s.handleResult)
		}
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully within DefaultShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("serving API", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
