// Package server exposes load order resolution over HTTP.
//
// # Endpoints
//
//	GET  /healthz                      liveness probe
//	POST /v1/resolve                   resolve an inline mod set and order
//	GET  /v1/profiles                  list stored profiles
//	GET  /v1/profiles/{name}           fetch a profile
//	PUT  /v1/profiles/{name}           create or replace a profile
//	POST /v1/profiles/{name}/resolve   resolve the server's mods against a profile and save it
//
// Every response carries an X-Request-ID header. Errors are returned as
// {"error": {"code": "...", "message": "..."}}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/modorder/pkg/pipeline"
)

const (
	maxBodyBytes    = 10 << 20
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// ModsDir is the installed mods directory used by profile resolution.
	ModsDir string
	Logger  *log.Logger
}

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	modsDir string
	logger  *log.Logger
	router  chi.Router
}

// New creates a server. Profile endpoints answer 501 when the runner has no
// profile store.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		modsDir: opts.ModsDir,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", s.handleResolve)
		r.Get("/profiles", s.handleListProfiles)
		r.Route("/profiles/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Put("/", s.handlePutProfile)
			r.Post("/resolve", s.handleResolveProfile)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
