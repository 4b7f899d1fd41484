package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chargefit/reconcile-backend/internal/api"
	"github.com/chargefit/reconcile-backend/internal/application/reconcile"
	"github.com/chargefit/reconcile-backend/internal/cli"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/config"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/logging"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.ParseServeFlags()
	cfg := config.LoadOrEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	service := reconcile.NewService(store, logger, cfg.Fitter.Workers)

	apiCfg := api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if flags.Port > 0 {
		apiCfg.Port = flags.Port
	}

	server := api.NewServer(apiCfg, store, service, logger)

	// Handle graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Blocks until shutdown
	if err := server.Start(); err != nil {
		return err
	}
	<-done

	logger.Info("server stopped")
	return nil
}
