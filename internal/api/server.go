// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

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

	"github.com/harukimai/cosona/internal/core/cosplayer"
	"github.com/harukimai/cosona/internal/core/event"
	"github.com/harukimai/cosona/internal/core/gallery"
	"github.com/harukimai/cosona/internal/core/message"
	"github.com/harukimai/cosona/internal/core/page"
	"github.com/harukimai/cosona/internal/core/post"
	"github.com/harukimai/cosona/internal/platform/config"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/middleware"
	"github.com/harukimai/cosona/internal/users/account"
	"github.com/harukimai/cosona/internal/users/auth"
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
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, refresh).
	Auth *auth.Handler

	// Account handles private profile management and public profile discovery.
	Account *account.Handler

	// Cosplayer handles the cosplayer directory.
	Cosplayer *cosplayer.Handler

	// Gallery handles the photo gallery.
	Gallery *gallery.Handler

	// Event handles the convention and competition calendar.
	Event *event.Handler

	// Post handles the blog.
	Post *post.Handler

	// Page handles the curated static pages.
	Page *page.Handler

	// Message handles the contact inbox (admin) and the public contact form.
	Message *message.Handler

	// Site handles cross-domain endpoints: likes, placeholder, revalidate.
	Site *SiteHandler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.RequestCache())

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/cosplayers", h.Cosplayer.Routes())
		api.Mount("/gallery", h.Gallery.Routes())
		api.Mount("/events", h.Event.Routes())
		api.Mount("/posts", h.Post.Routes())
		api.Mount("/pages", h.Page.Routes())
		api.Mount("/messages", h.Message.Routes())
		api.Mount("/", h.Account.Routes())

		// Cross-domain site endpoints
		api.Post("/contact", h.Message.SubmitContact)
		api.Post("/likes", h.Site.likeGalleryItem)
		api.Get("/placeholder", h.Site.placeholder)
		api.Post("/revalidate", h.Site.revalidate)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
