package storage

import "time"

// ReconcileRun records one batch reconciliation: when it ran, where the rows
// came from, and the per-row outcomes.
type ReconcileRun struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"` // "api", "cli", or a file name
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	RowCount   int         `json:"row_count"`
	ExactFits  int         `json:"exact_fits"`
	Results    []RowResult `json:"results,omitempty"`
}

// RowResult is the stored outcome of fitting one row.
type RowResult struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	RowIndex   int       `json:"row_index"`
	Target     float64   `json:"target"`
	Candidates []float64 `json:"candidates"`
	Selected   []float64 `json:"selected"`
	Sum        float64   `json:"sum"`
	Gap        float64   `json:"gap"`
	ExactFit   bool      `json:"exact_fit"`
}

// Stats holds aggregate statistics across all stored runs.
type Stats struct {
	TotalRuns  int     `json:"total_runs"`
	TotalRows  int     `json:"total_rows"`
	ExactFits  int     `json:"exact_fits"`
	AverageGap float64 `json:"average_gap"`
}
