// Package api serves the curriculum pipeline over HTTP.
//
// Routes:
//
//	POST   /v1/bounds           precedence bounds of an instance
//	POST   /v1/solve            solve (and optionally render) an instance
//	GET    /v1/schedules        stored schedules, newest first
//	GET    /v1/schedules/{id}   one stored schedule
//	DELETE /v1/schedules/{id}   remove a stored schedule
//	GET    /healthz             liveness
//
// Request bodies are JSON. The bounds and solve endpoints also accept a bare
// TOML instance with Content-Type application/toml, taking their options
// from the query string. Errors are returned as an [ErrorBody].
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/curricula/pkg/observability"
	"github.com/matzehuels/curricula/pkg/schedule"
	"github.com/matzehuels/curricula/pkg/store"
)

// Defaults for Config.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultMaxTimeout   = time.Minute
)

// Config configures a Server.
type Config struct {
	Runner *schedule.Runner
	Store  store.Store // nil disables the schedule endpoints
	Logger *log.Logger

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64

	// MaxTimeout caps the search timeout a client may request.
	MaxTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner       *schedule.Runner
	store        store.Store
	logger       *log.Logger
	maxBodyBytes int64
	maxTimeout   time.Duration
	router       chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = schedule.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxTimeout <= 0 {
		cfg.MaxTimeout = DefaultMaxTimeout
	}
	s := &Server{
		runner:       cfg.Runner,
		store:        cfg.Store,
		logger:       cfg.Logger,
		maxBodyBytes: cfg.MaxBodyBytes,
		maxTimeout:   cfg.MaxTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s.handle(r, http.MethodGet, "/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		s.handle(r, http.MethodPost, "/bounds", s.handleBounds)
		s.handle(r, http.MethodPost, "/solve", s.handleSolve)
		s.handle(r, http.MethodGet, "/schedules", s.handleListSchedules)
		s.handle(r, http.MethodGet, "/schedules/{id}", s.handleGetSchedule)
		s.handle(r, http.MethodDelete, "/schedules/{id}", s.handleDeleteSchedule)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: ErrorDetail{
			Code:      "METHOD_NOT_ALLOWED",
			Message:   r.Method + " not allowed",
			RequestID: middleware.GetReqID(r.Context()),
		}})
	})
	return r
}

// handle registers h and wraps it with request logging and HTTP hooks. The
// hooks see the route pattern, not the raw path.
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := pattern
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(req.Context(), method, route)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		h(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(req.Context(), method, route, status, duration)
		s.logger.Debug("request",
			"method", method,
			"route", route,
			"status", status,
			"duration", duration,
			"request_id", middleware.GetReqID(req.Context()))
	}))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.maxTimeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
