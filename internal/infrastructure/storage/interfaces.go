package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	// SaveRun persists a run together with its row results
	SaveRun(run *ReconcileRun) error

	// GetRun retrieves a run and its results by id
	GetRun(id string) (*ReconcileRun, error)

	// ListRuns returns the most recent runs, newest first, without results
	ListRuns(limit int) ([]*ReconcileRun, error)

	// GetStats returns aggregate statistics across all runs
	GetStats() (*Stats, error)

	Close() error
}
