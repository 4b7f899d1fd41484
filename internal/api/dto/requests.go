package dto

// FitRequest is the body of POST /api/fit.
type FitRequest struct {
	Rows   []FitRowRequest `json:"rows" binding:"required"`
	Source string          `json:"source"`
	DryRun bool            `json:"dry_run"`
}

// FitRowRequest is one reconciliation row: a target amount and the candidate
// charges that may compose it.
type FitRowRequest struct {
	Target     float64   `json:"target"`
	Candidates []float64 `json:"candidates"`
}
