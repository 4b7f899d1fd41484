// Package storage provides SQLite-backed persistence for reconciliation runs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for reconciliation runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its row results in one transaction
func (s *Storage) SaveRun(run *ReconcileRun) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
	INSERT OR REPLACE INTO reconcile_runs
	(id, source, started_at, finished_at, row_count, exact_fits)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Source,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		run.RowCount,
		run.ExactFits,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	// Replace any previous results for this run id
	if _, err := tx.Exec(`DELETE FROM row_results WHERE run_id = ?`, run.ID); err != nil {
		return err
	}

	for _, res := range run.Results {
		candidatesJSON, _ := json.Marshal(res.Candidates)
		selectedJSON, _ := json.Marshal(res.Selected)

		_, err := tx.Exec(`
		INSERT INTO row_results
		(run_id, row_index, target, candidates_json, selected_json, sum, gap, exact_fit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			res.RowIndex,
			res.Target,
			string(candidatesJSON),
			string(selectedJSON),
			res.Sum,
			res.Gap,
			res.ExactFit,
		)
		if err != nil {
			return fmt.Errorf("failed to save result %d: %w", res.RowIndex, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run and its results by id
func (s *Storage) GetRun(id string) (*ReconcileRun, error) {
	run := &ReconcileRun{}
	var startedAt, finishedAt string

	err := s.db.QueryRow(`
	SELECT id, source, started_at, finished_at, row_count, exact_fits
	FROM reconcile_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Source, &startedAt, &finishedAt, &run.RowCount, &run.ExactFits)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)

	rows, err := s.db.Query(`
	SELECT id, run_id, row_index, target, candidates_json, selected_json, sum, gap, exact_fit
	FROM row_results WHERE run_id = ? ORDER BY row_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var res RowResult
		var candidatesJSON, selectedJSON string
		if err := rows.Scan(&res.ID, &res.RunID, &res.RowIndex, &res.Target,
			&candidatesJSON, &selectedJSON, &res.Sum, &res.Gap, &res.ExactFit); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(candidatesJSON), &res.Candidates)
		_ = json.Unmarshal([]byte(selectedJSON), &res.Selected)
		run.Results = append(run.Results, res)
	}
	return run, rows.Err()
}

// ListRuns returns the most recent runs, newest first, without row results
func (s *Storage) ListRuns(limit int) ([]*ReconcileRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT id, source, started_at, finished_at, row_count, exact_fits
	FROM reconcile_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []*ReconcileRun
	for rows.Next() {
		run := &ReconcileRun{}
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.Source, &startedAt, &finishedAt,
			&run.RowCount, &run.ExactFits); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetStats returns aggregate statistics across all runs
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(row_count), 0) FROM reconcile_runs`).
		Scan(&stats.TotalRuns, &stats.TotalRows)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow(`
	SELECT COALESCE(SUM(exact_fit), 0), COALESCE(AVG(gap), 0) FROM row_results
	`).Scan(&stats.ExactFits, &stats.AverageGap)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
