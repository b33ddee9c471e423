package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pzsluna26/Dashboard/internal/config"
	"github.com/pzsluna26/Dashboard/internal/dataset"
	"github.com/pzsluna26/Dashboard/internal/logging"
	"github.com/pzsluna26/Dashboard/internal/server"
	"github.com/pzsluna26/Dashboard/internal/version"
	"github.com/pzsluna26/Dashboard/internal/websocket"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDataset(cfg *config.Config, clock clockwork.Clock) *dataset.Store {
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		slog.Error("Failed to load dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded", "path", cfg.DataPath, "categories", len(ds))
	return dataset.NewStore(ds, clock)
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub, cancelRefresher context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		cancelRefresher()
		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)
	version.PublishMetric()

	store := setupDataset(cfg, clock)
	hub := websocket.NewHub(cfg.MaxWebSocketConnections)

	refreshCtx, cancelRefresher := context.WithCancel(context.Background())
	if cfg.ReloadInterval > 0 {
		onReload := func() { hub.BroadcastRefresh(store.Version(), store.LoadedAt()) }
		refresher := dataset.NewRefresher(cfg.DataPath, store, cfg.ReloadInterval, clock, onReload)
		go refresher.Run(refreshCtx)
		slog.Info("Dataset refresher started", "interval", cfg.ReloadInterval)
	}

	srv := server.NewServer(cfg, store, hub)

	done := runGracefulShutdown(srv, hub, cancelRefresher)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
