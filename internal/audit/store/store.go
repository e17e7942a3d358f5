// Package store persists audit runs and findings to SQLite so
// successive audits can be compared.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver for database/sql
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite for cross-platform compatibility

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	pages       INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	warnings    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_findings (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id   TEXT NOT NULL REFERENCES audit_runs(id) ON DELETE CASCADE,
	file     TEXT NOT NULL,
	rule     TEXT NOT NULL,
	severity TEXT NOT NULL,
	message  TEXT NOT NULL,
	excerpt  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON audit_findings(run_id);
`

// Store wraps the audit database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveReport records a run and its findings in one transaction.
func (s *Store) SaveReport(ctx context.Context, report *audit.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_runs (id, started_at, duration_ms, pages, errors, warnings) VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.StartedAt.UTC(),
		report.Duration.Milliseconds(),
		report.Pages,
		report.Count(audit.SeverityError),
		report.Count(audit.SeverityWarning),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, f := range report.Findings {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO audit_findings (run_id, file, rule, severity, message, excerpt) VALUES (?, ?, ?, ?, ?, ?)`,
			report.ID, f.File, f.Rule, f.Severity, f.Message, f.Excerpt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	return tx.Commit()
}

// Run is one persisted audit run summary.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Pages     int
	Errors    int
	Warnings  int
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, pages, errors, warnings FROM audit_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.StartedAt, &ms, &r.Pages, &r.Errors, &r.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Findings returns the findings of one run.
func (s *Store) Findings(ctx context.Context, runID string) ([]audit.Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, rule, severity, message, excerpt FROM audit_findings WHERE run_id = ? ORDER BY file, rule`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []audit.Finding
	for rows.Next() {
		var f audit.Finding
		if err := rows.Scan(&f.File, &f.Rule, &f.Severity, &f.Message, &f.Excerpt); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}
