package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chargefit/reconcile-backend/internal/application/reconcile"
	"github.com/chargefit/reconcile-backend/internal/cli"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/config"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/logging"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/storage"
	"github.com/chargefit/reconcile-backend/internal/ingest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.ParseReconcileFlags()
	if flags.File == "" {
		return fmt.Errorf("missing -file: a CSV of rows (target,candidate1,...) is required")
	}

	cfg := config.LoadOrEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "reconcile")

	workers := cfg.Fitter.Workers
	if flags.Workers > 0 {
		workers = flags.Workers
	}

	rows, lineErrs, err := ingest.ReadFile(flags.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", flags.File, err)
	}

	cli.PrintHeader(flags.File, flags.DryRun)
	cli.PrintLineErrors(lineErrs)

	if len(rows) == 0 {
		return fmt.Errorf("no valid rows in %s", flags.File)
	}

	var store *storage.Storage
	if !flags.DryRun {
		store, err = storage.NewStorage(cfg.Storage.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	var repo storage.Repository
	if store != nil {
		repo = store
	}
	service := reconcile.NewService(repo, logger, workers)

	batchRun, results, err := service.Reconcile(context.Background(), rows, reconcile.Options{
		Source: flags.File,
		DryRun: flags.DryRun,
	})
	if err != nil {
		return err
	}

	cli.PrintResults(results)
	cli.PrintRunSummary(batchRun, repo)
	return nil
}
