package fitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFitBatch(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		rows := []Row{
			{Target: 10, Candidates: []float64{1, 2, 3, 4, 5, 6}},
			{Target: 5, Candidates: []float64{10, 15, 20}},
			{Target: 15, Candidates: []float64{5, 10, 3, 7}},
		}

		results, err := FitBatch(rows)
		require.NoError(t, err)
		require.Len(t, results, len(rows))

		for i, res := range results {
			assert.Equal(t, rows[i], res.Row)
		}
		assert.Equal(t, 10.0, results[0].Sum)
		assert.Equal(t, 0.0, results[1].Sum)
		assert.Equal(t, 15.0, results[2].Sum)
	})

	t.Run("empty batch", func(t *testing.T) {
		results, err := FitBatch(nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("bad row aborts with its index", func(t *testing.T) {
		rows := []Row{
			{Target: 10, Candidates: []float64{1, 2}},
			{Target: -1, Candidates: []float64{1}},
		}

		_, err := FitBatch(rows)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "row 1")
	})
}

func TestFitBatchParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	rows := make([]Row, 50)
	for i := range rows {
		rows[i] = Row{
			Target:     float64(i%17 + 1),
			Candidates: []float64{1, 2, 3, 4, 5, 6, 7, 8},
		}
	}

	t.Run("matches the sequential result", func(t *testing.T) {
		sequential, err := FitBatch(rows)
		require.NoError(t, err)

		parallel, err := FitBatchParallel(context.Background(), rows, 4)
		require.NoError(t, err)

		assert.Equal(t, sequential, parallel)
	})

	t.Run("single worker falls back to sequential", func(t *testing.T) {
		results, err := FitBatchParallel(context.Background(), rows, 1)
		require.NoError(t, err)
		assert.Len(t, results, len(rows))
	})

	t.Run("bad row fails the batch", func(t *testing.T) {
		bad := append([]Row{}, rows...)
		bad[7] = Row{Target: 10, Candidates: []float64{-1}}

		_, err := FitBatchParallel(context.Background(), bad, 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
