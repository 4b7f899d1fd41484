package dto

import "time"

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with the current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// FitResponse is returned by POST /api/fit.
type FitResponse struct {
	RunID     string         `json:"run_id"`
	RowCount  int            `json:"row_count"`
	ExactFits int            `json:"exact_fits"`
	Results   []FitRowResult `json:"results"`
}

// FitRowResult is the outcome for one submitted row.
type FitRowResult struct {
	RowIndex int       `json:"row_index"`
	Target   float64   `json:"target"`
	Selected []float64 `json:"selected"`
	Sum      float64   `json:"sum"`
	Gap      float64   `json:"gap"`
	ExactFit bool      `json:"exact_fit"`
}

// RunSummary describes a stored run without its row results.
type RunSummary struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	RowCount   int       `json:"row_count"`
	ExactFits  int       `json:"exact_fits"`
}

// RunListResponse is returned by GET /api/runs.
type RunListResponse struct {
	Runs []RunSummary `json:"runs"`
}
