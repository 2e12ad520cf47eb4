package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/mathsprint/internal/api"
	"github.com/vytor/mathsprint/internal/catalog"
	"github.com/vytor/mathsprint/internal/config"
	"github.com/vytor/mathsprint/internal/db"
	"github.com/vytor/mathsprint/internal/jobs"
	"github.com/vytor/mathsprint/internal/leaderboard"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/repository/sqlite"
	"github.com/vytor/mathsprint/internal/services"
	"github.com/vytor/mathsprint/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MathSprint Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("catalog_path=%q", cfg.CatalogPath)
	log.Debug("session_ttl=%s", cfg.SessionTTL)
	log.Debug("max_sessions=%d", cfg.MaxSessions)
	log.Debug("tick_interval=%s", cfg.TickInterval)
	log.Debug("archive_worker_count=%d", cfg.ArchiveWorkerCount)
	log.Debug("archive_queue_size=%d", cfg.ArchiveQueueSize)

	games, err := catalog.Load(cfg.CatalogPath, log)
	if err != nil {
		log.Error("failed to load game catalog: %v", err)
		os.Exit(1)
	}
	log.Info("game catalog loaded: %v", games.IDs())

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	kvRepo := sqlite.NewKeyValueRepository(database.DB)
	runRepo := sqlite.NewRunRepository(database.DB)
	scores := leaderboard.New(kvRepo)

	archivePool := worker.NewPool(cfg.ArchiveWorkerCount, cfg.ArchiveQueueSize, log)

	// Initialize services
	sessionService := services.NewSessionService(games, scores, jobs.NewWorkerQueue(archivePool, runRepo), services.SessionConfig{
		MaxSessions:  cfg.MaxSessions,
		TTL:          cfg.SessionTTL,
		TickInterval: cfg.TickInterval,
	}, log)
	resultsService := services.NewResultsService(games, scores, runRepo)
	solverService := services.NewSolverService()

	srv := &api.Server{
		Sessions: sessionService,
		Results:  resultsService,
		Solver:   solverService,
		DB:       database,
		Logger:   log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	archivePool.Start(ctx)
	go sessionService.RunJanitor(ctx, max(cfg.SessionTTL/4, time.Second))

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing sessions")
	sessionService.Close()

	// Drain queued run archives before the database closes
	log.Debug("stopping archive pool")
	archivePool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("MathSprint Server Stopped")
	log.Info("===========================================")
}
