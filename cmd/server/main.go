/*
main.go - HTTP server entry point

PURPOSE:
  Initializes and starts the Jobstack Tycoon API server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, jobstack.yaml, .env, JOBSTACK_* env)
  2. Build the zap logger
  3. Open the game store (memory or SQLite)
  4. Register generation profiles, including an optional profile file
  5. Start the idle game reaper
  6. Configure HTTP router and serve

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file (default: search for jobstack.yaml)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the reaper
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close the store

EXAMPLES:
  # Defaults: SQLite in memory, marketplace profile, port 8080
  ./server

  # File-backed games with the classic ranges
  JOBSTACK_STORE_DSN=./data/jobstack.db JOBSTACK_GAME_PROFILE=classic ./server

  # Reproducible deals
  JOBSTACK_GAME_SEED=42 ./server

SEE ALSO:
  - config/config.go: Settings and defaults
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/jobstack/api"
	"github.com/warp/jobstack/config"
	"github.com/warp/jobstack/factory"
	"github.com/warp/jobstack/logger"
	"github.com/warp/jobstack/store/sqlite"
	"github.com/warp/jobstack/tycoon"
	"github.com/warp/jobstack/tycoon/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize store
	games, closeStore, err := openStore(cfg.Store)
	if err != nil {
		log.Fatal("failed to initialize store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	// Profiles
	profiles := factory.NewProfileFactory()
	if cfg.Game.ProfileFile != "" {
		p, err := profiles.LoadFile(cfg.Game.ProfileFile)
		if err != nil {
			log.Fatal("failed to load profile file", zap.String("path", cfg.Game.ProfileFile), zap.Error(err))
		}
		log.Info("profile registered", zap.String("profile", p.Name), zap.String("path", cfg.Game.ProfileFile))
	}
	if _, err := profiles.Lookup(cfg.Game.Profile); err != nil {
		log.Fatal("default profile not registered", zap.Strings("available", profiles.Names()), zap.Error(err))
	}

	handler := api.NewHandler(games, profiles, cfg.Game.Profile, tycoon.NewSource(cfg.Game.Seed), log)

	// Reaper
	reaper := api.NewReaper(games, log)
	reaper.Enabled = cfg.Reaper.Enabled
	reaper.Interval = cfg.Reaper.Interval
	reaper.IdleTTL = cfg.Reaper.IdleTTL
	reaper.Start()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("profile", cfg.Game.Profile),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

func openStore(cfg config.StoreConfig) (tycoon.GameStore, func(), error) {
	switch cfg.Driver {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
