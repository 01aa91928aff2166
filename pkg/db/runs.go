package db

import (
	"fmt"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
)

// Run is a recorded lifecycle run.
type Run struct {
	RunID     int64
	CreatedAt time.Time
	Space     string
	ReadOnly  bool
	Fresh     models.PhaseTally
	Stale     models.PhaseTally
	Rotten    models.PhaseTally
	Errors    int
	Duration  time.Duration
}

// TotalPages is the number of pages classified in this run.
func (r *Run) TotalPages() int {
	return r.Fresh.Total + r.Stale.Total + r.Rotten.Total
}

// RecordRun persists the outcome of a run and returns its row ID.
func (db *DB) RecordRun(stats *models.RunStats) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (
			space, read_only,
			fresh_total, fresh_changed, fresh_suppressed,
			stale_total, stale_changed, stale_suppressed,
			rotten_total, rotten_changed, rotten_suppressed,
			errors, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.Space, stats.ReadOnly,
		stats.Fresh.Total, stats.Fresh.Changed, stats.Fresh.Suppressed,
		stats.Stale.Total, stats.Stale.Changed, stats.Stale.Suppressed,
		stats.Rotten.Total, stats.Rotten.Changed, stats.Rotten.Suppressed,
		stats.Errors, stats.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

const runColumns = `
	run_id, created_at, space, read_only,
	fresh_total, fresh_changed, fresh_suppressed,
	stale_total, stale_changed, stale_suppressed,
	rotten_total, rotten_changed, rotten_suppressed,
	errors, duration_ms`

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(
		"SELECT"+runColumns+" FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRunByID returns a single recorded run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	row := db.QueryRow("SELECT"+runColumns+" FROM runs WHERE run_id = ?", runID)

	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}

	return &run, nil
}

// LatestRunID returns the ID of the most recent run.
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY created_at DESC, run_id DESC LIMIT 1").Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var durationMS int64
	err := row.Scan(
		&run.RunID, &run.CreatedAt, &run.Space, &run.ReadOnly,
		&run.Fresh.Total, &run.Fresh.Changed, &run.Fresh.Suppressed,
		&run.Stale.Total, &run.Stale.Changed, &run.Stale.Suppressed,
		&run.Rotten.Total, &run.Rotten.Changed, &run.Rotten.Suppressed,
		&run.Errors, &durationMS,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}
