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

	"github.com/aimarketsim/backend/internal/adapter/rest"
	"github.com/aimarketsim/backend/internal/config"
	"github.com/aimarketsim/backend/internal/logging"
	"github.com/aimarketsim/backend/internal/usecase/simulation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("AIMSIM_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	logger.Info("starting simulation server",
		slog.Int("port", cfg.Server.Port),
		slog.String("network", cfg.Network.Name))

	engine := simulation.NewEngine(simulation.Config{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Enabled {
		if err := engine.Seed(ctx); err != nil {
			return fmt.Errorf("seeding launch companies: %w", err)
		}
		logger.Info("launch companies seeded")
	}

	hub := rest.NewHub(engine.SubscribeLog(), logger)
	go hub.Run(ctx)

	server := rest.NewServer(engine, hub, logger, cfg.Server.APIToken, cfg.Server.CORSOrigin)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
