// Package rundb persists evaluation runs to SQLite so vendors can be
// compared across time. Persistence is opt-in; the pipeline works entirely
// from files when no database path is given.
package rundb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tak-akashi/test-ocr-models/evaluate"
)

// Run is one persisted evaluation run with its summary statistics.
type Run struct {
	RunID           string  `json:"run_id"`
	Vendor          string  `json:"vendor"`
	GroundTruthPath string  `json:"ground_truth_path"`
	TotalSamples    int     `json:"total_samples"`
	ExactMatches    int     `json:"exact_matches"`
	Accuracy        float64 `json:"accuracy"`
	AvgCER          float64 `json:"avg_cer"`
	AvgEditDistance float64 `json:"avg_edit_distance"`
	CreatedAt       int64   `json:"created_at"`
}

// StoredResult is one persisted per-document result.
type StoredResult struct {
	RunID        string  `json:"run_id"`
	DocumentID   string  `json:"filename"`
	ExactMatch   bool    `json:"exact_match"`
	EditDistance int     `json:"edit_distance"`
	CER          float64 `json:"cer"`
	Predicted    string  `json:"predicted"`
	GroundTruth  string  `json:"ground_truth"`
}

// Store provides persistence for evaluation runs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id            TEXT PRIMARY KEY,
	vendor            TEXT NOT NULL,
	ground_truth_path TEXT NOT NULL,
	total_samples     INTEGER NOT NULL,
	exact_matches     INTEGER NOT NULL,
	accuracy          REAL NOT NULL,
	avg_cer           REAL NOT NULL,
	avg_edit_distance REAL NOT NULL,
	created_at        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id        TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	filename      TEXT NOT NULL,
	exact_match   INTEGER NOT NULL,
	edit_distance INTEGER NOT NULL,
	cer           REAL NOT NULL,
	predicted     TEXT NOT NULL,
	ground_truth  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_vendor ON runs(vendor, created_at);
`

// Open opens (creating if needed) the run database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RecordRun persists one evaluation run and its per-document results in a
// single transaction, returning the generated run id.
func (s *Store) RecordRun(vendor, gtPath string, results []evaluate.Result, summary evaluate.Summary) (string, error) {
	runID := uuid.New().String()
	createdAt := time.Now().UnixNano()

	err := retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO runs (
				run_id, vendor, ground_truth_path, total_samples, exact_matches,
				accuracy, avg_cer, avg_edit_distance, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, vendor, gtPath, summary.TotalSamples, summary.ExactMatches,
			summary.Accuracy, summary.AvgCER, summary.AvgEditDistance, createdAt,
		)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO results (run_id, filename, exact_match, edit_distance, cer, predicted, ground_truth)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range results {
			if _, err := stmt.Exec(runID, r.DocumentID, r.ExactMatch, r.EditDistance, r.CER, r.Predicted, r.GroundTruth); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return "", fmt.Errorf("record run for %s: %w", vendor, err)
	}
	return runID, nil
}

// ListRuns returns runs ordered most recent first. An empty vendor matches
// all vendors.
func (s *Store) ListRuns(vendor string) ([]Run, error) {
	query := `
		SELECT run_id, vendor, ground_truth_path, total_samples, exact_matches,
		       accuracy, avg_cer, avg_edit_distance, created_at
		FROM runs`
	args := []any{}
	if vendor != "" {
		query += ` WHERE vendor = ?`
		args = append(args, vendor)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Vendor, &r.GroundTruthPath, &r.TotalSamples, &r.ExactMatches,
			&r.Accuracy, &r.AvgCER, &r.AvgEditDistance, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the per-document results of one run, ordered by
// document id.
func (s *Store) RunResults(runID string) ([]StoredResult, error) {
	rows, err := s.db.Query(`
		SELECT run_id, filename, exact_match, edit_distance, cer, predicted, ground_truth
		FROM results
		WHERE run_id = ?
		ORDER BY filename`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		if err := rows.Scan(&r.RunID, &r.DocumentID, &r.ExactMatch, &r.EditDistance, &r.CER, &r.Predicted, &r.GroundTruth); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// retryOnBusy retries a write a few times when SQLite reports the database
// locked, which can happen when a listing tool holds the file open.
func retryOnBusy(fn func() error) error {
	const attempts = 5
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(time.Duration(i+1) * 50 * time.Millisecond)
	}
	return err
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
