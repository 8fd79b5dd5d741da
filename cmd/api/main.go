// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

// Command api is the entry point for the Cosona HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to object storage (optional).
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harukimai/cosona/internal/api"
	"github.com/harukimai/cosona/internal/core/cosplayer"
	"github.com/harukimai/cosona/internal/core/event"
	"github.com/harukimai/cosona/internal/core/gallery"
	"github.com/harukimai/cosona/internal/core/message"
	"github.com/harukimai/cosona/internal/core/page"
	"github.com/harukimai/cosona/internal/core/post"
	"github.com/harukimai/cosona/internal/platform/config"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/migration"
	pgstore "github.com/harukimai/cosona/internal/platform/postgres"
	redisstore "github.com/harukimai/cosona/internal/platform/redis"
	"github.com/harukimai/cosona/internal/platform/sec"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/users/account"
	"github.com/harukimai/cosona/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "cosona"))
	slog.SetDefault(log)

	log.Info("[Cosona] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "cosona"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	// A nil client is valid: the resolver then serves placeholder URLs.
	store, err := storage.NewClient(startupCtx, cfg, log)
	must(log, err, "connect to object storage")
	resolver := storage.NewResolver(store)

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	healthDeps := api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}
	if store != nil {
		healthDeps.CheckStorage = func() error {
			return store.Ping(context.Background())
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	accountRepository := account.NewPostgresRepository(pool)
	accountService := account.NewService(accountRepository, resolver, log)
	accountHandler := account.NewHandler(accountService)

	cosplayerRepository := cosplayer.NewPostgresRepository(pool)
	cosplayerService := cosplayer.NewService(cosplayerRepository, resolver, log)
	cosplayerHandler := cosplayer.NewHandler(cosplayerService)

	galleryRepository := gallery.NewPostgresRepository(pool)
	galleryService := gallery.NewService(galleryRepository, resolver, log)
	galleryHandler := gallery.NewHandler(galleryService)

	eventRepository := event.NewPostgresRepository(pool)
	eventService := event.NewService(eventRepository, resolver, log)
	eventHandler := event.NewHandler(eventService)

	postRepository := post.NewPostgresRepository(pool)
	postService := post.NewService(postRepository, resolver, log)
	postHandler := post.NewHandler(postService)

	pageRepository := page.NewPostgresRepository(pool)
	pageService := page.NewService(pageRepository, log)
	pageHandler := page.NewHandler(pageService)

	messageRepository := message.NewPostgresRepository(pool)
	messageService := message.NewService(messageRepository, log)
	messageHandler := message.NewHandler(messageService)

	siteHandler := api.NewSiteHandler(galleryService, rdb, cfg.RevalidateSecret, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Cosplayer: cosplayerHandler,
		Gallery:   galleryHandler,
		Event:     eventHandler,
		Post:      postHandler,
		Page:      pageHandler,
		Message:   messageHandler,
		Site:      siteHandler,
	}

	// Application-lifetime context for background middleware routines.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
