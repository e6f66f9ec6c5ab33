// Package server exposes the moderation core over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/moderalabs/modera/internal/moderation"
	"github.com/moderalabs/modera/internal/storage"
)

// requestTimeout bounds one moderation request end to end. It is longer than
// a single outbound call deadline because one evaluation can chain several.
const requestTimeout = 2 * time.Minute

// Server serves the moderation API.
type Server struct {
	Router *chi.Mux
	Port   int

	moderator *moderation.Service
	store     storage.DecisionStore
	logger    *slog.Logger
	http      *http.Server
}

// New builds the HTTP server around the moderation service and decision log.
func New(port int, moderator *moderation.Service, store storage.DecisionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(requestTimeout))
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "modera")
	})

	s := &Server{
		Router:    r,
		Port:      port,
		moderator: moderator,
		store:     store,
		logger:    logger,
	}

	r.Post("/v1/moderate", s.handleModerate)
	r.Get("/v1/decisions/{id}", s.handleGetDecision)
	r.Get("/v1/decisions", s.handleListDecisions)
	r.Get("/healthz", s.handleHealth)

	return s
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.Router,
	}
	s.logger.Info("starting server", slog.Int("port", s.Port))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
