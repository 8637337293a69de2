// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/artist"
	"github.com/harmonia-catalog/harmonia/internal/entity/creditrole"
	"github.com/harmonia-catalog/harmonia/internal/entity/event"
	"github.com/harmonia-catalog/harmonia/internal/entity/label"
	"github.com/harmonia-catalog/harmonia/internal/entity/release"
	"github.com/harmonia-catalog/harmonia/internal/entity/song"
	"github.com/harmonia-catalog/harmonia/internal/entity/songlyrics"
	"github.com/harmonia-catalog/harmonia/internal/entity/tag"
	"github.com/harmonia-catalog/harmonia/internal/image"
	"github.com/harmonia-catalog/harmonia/internal/loader"
	"github.com/harmonia-catalog/harmonia/internal/platform/config"
	"github.com/harmonia-catalog/harmonia/internal/platform/constants"
	"github.com/harmonia-catalog/harmonia/internal/platform/middleware"
	"github.com/harmonia-catalog/harmonia/internal/users/account"
	"github.com/harmonia-catalog/harmonia/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// A new domain adds a field here and mounts its routes in [NewServer].
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, session refresh).
	Auth *auth.Handler

	// Account handles user profile management and preferences.
	Account *account.Handler

	// Image handles upload, moderation queue actions, and reference
	// decrement for the content-addressed blob pipeline.
	Image *image.Handler

	// Search exposes cross-entity trigram typeahead over the live tables.
	Search *loader.SearchHandler

	// One correction.Handler per catalog entity kind — each exposes
	// propose-create/propose-update/approve/reject for its own payload type.
	Artist     *correction.Handler[artist.Payload]
	Release    *correction.Handler[release.Payload]
	Label      *correction.Handler[label.Payload]
	Event      *correction.Handler[event.Payload]
	Song       *correction.Handler[song.Payload]
	SongLyrics *correction.Handler[songlyrics.Payload]
	Tag        *correction.Handler[tag.Payload]
	CreditRole *correction.Handler[creditrole.Payload]
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	rte := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	rte.Use(middleware.RequestID())
	rte.Use(middleware.StructuredLogger(log))
	rte.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	rte.Use(middleware.RateLimit(ctx))
	rte.Use(middleware.PanicRecovery(log))
	rte.Use(middleware.Authenticate(verifier))
	rte.Use(middleware.CORS(cfg))
	rte.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	rte.Get("/health", h.Liveness)
	rte.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	rte.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/", h.Account.Routes()) // Mounting at root for /me and /users/{id}
		api.Mount("/images", h.Image.Routes())
		api.Mount("/search", h.Search.Routes())

		api.Mount("/artists", h.Artist.Routes())
		api.Mount("/releases", h.Release.Routes())
		api.Mount("/labels", h.Label.Routes())
		api.Mount("/events", h.Event.Routes())
		api.Mount("/songs", h.Song.Routes())
		api.Mount("/song-lyrics", h.SongLyrics.Routes())
		api.Mount("/tags", h.Tag.Routes())
		api.Mount("/credit-roles", h.CreditRole.Routes())
	})

	return &Server{
		router: rte,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           rte,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
