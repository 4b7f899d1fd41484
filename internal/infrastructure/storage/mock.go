package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	runs map[string]*ReconcileRun

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *ReconcileRun

	// Error injection for testing error paths
	SaveRunErr  error
	GetRunErr   error
	ListRunsErr error
	GetStatsErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs: make(map[string]*ReconcileRun),
	}
}

// SaveRun stores the run in memory
func (m *MockRepository) SaveRun(run *ReconcileRun) error {
	m.SaveRunCalled = true
	m.LastSavedRun = run
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	m.runs[run.ID] = run
	return nil
}

// GetRun returns the stored run, or nil if absent
func (m *MockRepository) GetRun(id string) (*ReconcileRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	return m.runs[id], nil
}

// ListRuns returns stored runs newest first
func (m *MockRepository) ListRuns(limit int) ([]*ReconcileRun, error) {
	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = 50
	}

	runs := make([]*ReconcileRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetStats aggregates over the stored runs
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}

	stats := &Stats{TotalRuns: len(m.runs)}
	var gapSum float64
	var resultCount int
	for _, run := range m.runs {
		stats.TotalRows += run.RowCount
		for _, res := range run.Results {
			if res.ExactFit {
				stats.ExactFits++
			}
			gapSum += res.Gap
			resultCount++
		}
	}
	if resultCount > 0 {
		stats.AverageGap = gapSum / float64(resultCount)
	}
	return stats, nil
}

// Close is a no-op for the mock
func (m *MockRepository) Close() error {
	return nil
}
