// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Api is the entry point for the Harmonia catalog API server.

The server provides a versioned correction engine for a collaborative
music-metadata catalog: proposing, reviewing, and approving changes to
artists, releases, labels, events, songs, song lyrics, tags, and credit
roles, plus the content-addressed image upload pipeline backing their
cover art and photos.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT     Port to listen on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/api"
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
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/migration"
	pgstore "github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	redisstore "github.com/harmonia-catalog/harmonia/internal/platform/redis"
	"github.com/harmonia-catalog/harmonia/internal/platform/redisqueue"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
	"github.com/harmonia-catalog/harmonia/internal/users/account"
	"github.com/harmonia-catalog/harmonia/internal/users/auth"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "harmonia"))
	slog.SetDefault(log)

	log.Info("[Harmonia] service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "harmonia"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 6. Platform Services
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}

	txm := pgstore.NewTxManager(pool)
	roles := sec.NewClaimsRoleChecker()

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 8. Identity (auth + account)
	userRepo := auth.NewUserRepository(pool)
	sessionRepo := auth.NewSessionRepository(pool)
	resetRepo := auth.NewResetTokenRepository(rdb)
	verifyRepo := auth.NewVerificationTokenRepository(rdb)
	authSvc := auth.NewService(userRepo, sessionRepo, resetRepo, verifyRepo, jwtSvc)
	authHdl := auth.NewHandler(authSvc)

	accountSvc := account.NewService(
		account.NewAccountRepository(pool),
		account.NewPreferencesRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)
	accountHdl := account.NewHandler(accountSvc)

	// # 9. Image pipeline
	if cfg.ImageStorageBackend != "fs" {
		log.Warn("unsupported image storage backend requested, falling back to local filesystem",
			slog.String("requested", cfg.ImageStorageBackend))
	}
	imageStorage, err := image.NewFsStorage(cfg.ImageStorageRoot)
	if err != nil {
		return fmt.Errorf("initialize image storage: %w", err)
	}
	removalQueue := redisqueue.NewRemovalQueue(rdb)
	imageSvc := image.NewService(image.NewPostgresStore(), imageStorage, image.NewStdParser(), roles, txm, removalQueue, log)
	imageHdl := image.NewHandler(imageSvc)

	// # 10. Correction engines (one per catalog entity kind)
	artistEngine := correction.NewEngine[artist.Payload](artist.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	releaseEngine := correction.NewEngine[release.Payload](release.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	labelEngine := correction.NewEngine[label.Payload](label.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	eventEngine := correction.NewEngine[event.Payload](event.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	songEngine := correction.NewEngine[song.Payload](song.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	songLyricsEngine := correction.NewEngine[songlyrics.Payload](songlyrics.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	tagEngine := correction.NewEngine[tag.Payload](tag.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)
	creditRoleEngine := correction.NewEngine[creditrole.Payload](creditrole.NewMaterializer(), correction.NewPostgresStore(), roles, txm, log)

	// # 10b. Cross-entity typeahead search
	searchHdl := loader.NewSearchHandler(txm, map[string]loader.SearchableKind{
		"artist":      {Table: schema.Artist.Table, IDColumn: schema.Artist.ID, Column: schema.Artist.Name},
		"release":     {Table: schema.Release.Table, IDColumn: schema.Release.ID, Column: schema.Release.Title},
		"label":       {Table: schema.Label.Table, IDColumn: schema.Label.ID, Column: schema.Label.Name},
		"event":       {Table: schema.Event.Table, IDColumn: schema.Event.ID, Column: schema.Event.Name},
		"song":        {Table: schema.Song.Table, IDColumn: schema.Song.ID, Column: schema.Song.Title},
		"tag":         {Table: schema.Tag.Table, IDColumn: schema.Tag.ID, Column: schema.Tag.Name},
		"credit_role": {Table: schema.CreditRole.Table, IDColumn: schema.CreditRole.ID, Column: schema.CreditRole.Name},
	})

	// # 11. API Assembly
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHdl,
		Account:    accountHdl,
		Image:      imageHdl,
		Search:     searchHdl,
		Artist:     correction.NewHandler(artistEngine),
		Release:    correction.NewHandler(releaseEngine),
		Label:      correction.NewHandler(labelEngine),
		Event:      correction.NewHandler(eventEngine),
		Song:       correction.NewHandler(songEngine),
		SongLyrics: correction.NewHandler(songLyricsEngine),
		Tag:        correction.NewHandler(tagEngine),
		CreditRole: correction.NewHandler(creditRoleEngine),
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// # 12. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("harmonia_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
