package fitter

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FitBatch fits each row independently and returns the results in input
// order. The first row that violates the input contract aborts the batch
// with an error naming its index.
func FitBatch(rows []Row) ([]Result, error) {
	results := make([]Result, len(rows))
	for i, row := range rows {
		res, err := FitRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		results[i] = res
	}
	return results, nil
}

// FitBatchParallel fits rows across at most workers goroutines. Rows share
// no state, so the only coordination is collecting results back into input
// order. With workers <= 1 it degrades to the sequential FitBatch.
func FitBatchParallel(ctx context.Context, rows []Row, workers int) ([]Result, error) {
	if workers <= 1 || len(rows) < 2 {
		return FitBatch(rows)
	}

	results := make([]Result, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := FitRow(row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
