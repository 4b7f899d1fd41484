// Package reconcile ties the row fitter to ingestion and persistence.
//
// The service runs a batch of reconciliation rows through the fitter,
// records the outcome as a run in storage, and reports a summary. Rows are
// fitted in parallel when the service is configured with more than one
// worker; results always come back in input order.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chargefit/reconcile-backend/internal/domain/fitter"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/storage"
)

// Service runs reconciliation batches and records them.
type Service struct {
	repo    storage.Repository
	logger  *slog.Logger
	workers int
}

// Options configures a single reconciliation batch.
type Options struct {
	// Source labels where the rows came from ("api", "cli", a file name).
	Source string

	// DryRun skips persisting the run.
	DryRun bool
}

// NewService creates a reconciliation service. repo may be nil, in which
// case runs are never persisted.
func NewService(repo storage.Repository, logger *slog.Logger, workers int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		workers: workers,
	}
}

// Reconcile fits every row and records the batch as a run. The returned run
// carries the stored per-row results; the raw fitter results are returned
// alongside for callers that want them directly.
func (s *Service) Reconcile(ctx context.Context, rows []fitter.Row, opts Options) (*storage.ReconcileRun, []fitter.Result, error) {
	startedAt := time.Now().UTC()

	results, err := fitter.FitBatchParallel(ctx, rows, s.workers)
	if err != nil {
		return nil, nil, fmt.Errorf("batch fit failed: %w", err)
	}

	run := &storage.ReconcileRun{
		ID:         uuid.NewString(),
		Source:     opts.Source,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		RowCount:   len(results),
		Results:    make([]storage.RowResult, len(results)),
	}

	for i, res := range results {
		if res.ExactFit() {
			run.ExactFits++
		}
		run.Results[i] = storage.RowResult{
			RunID:      run.ID,
			RowIndex:   i,
			Target:     res.Row.Target,
			Candidates: res.Row.Candidates,
			Selected:   res.Selected,
			Sum:        res.Sum,
			Gap:        res.Gap(),
			ExactFit:   res.ExactFit(),
		}
	}

	s.logger.Info("reconciled batch",
		"run_id", run.ID,
		"source", opts.Source,
		"rows", run.RowCount,
		"exact_fits", run.ExactFits,
		"duration_ms", run.FinishedAt.Sub(run.StartedAt).Milliseconds(),
	)

	if opts.DryRun || s.repo == nil {
		return run, results, nil
	}

	if err := s.repo.SaveRun(run); err != nil {
		return nil, nil, fmt.Errorf("failed to save run: %w", err)
	}

	return run, results, nil
}
