// Package runs persists processing runs and their per-report outcomes.
package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qed-tools/fabric-atlas/pkg/models/store"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb"
)

// Store records completed runs and serves run history for the CLI summary
// and the status server.
type Store interface {
	RecordRun(ctx context.Context, run store.Run, entries []store.ReportEntry) error
	GetRuns(ctx context.Context, limit int) ([]store.Run, error)
	GetRunReports(ctx context.Context, runID string) ([]store.ReportEntry, error)
	GetFlaggedReports(ctx context.Context, since time.Time) ([]store.ReportEntry, error)
}

type runStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &runStore{db: db}, nil
}

const insertRunQuery = `
		INSERT INTO runs (
			id, started_at, files_found, flagged, drafts, reviewed, archived, skipped
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const insertEntryQuery = `
		INSERT INTO report_entries (
			run_id, source_file, buyer, supplier, consignment, style, color,
			rolls, inspection_date, result, reasons, flagged, disposition, archive_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// RecordRun writes the run row and its report entries in one transaction.
// If the context already carries a transaction it is reused and left open
// for the caller to commit.
func (s *runStore) RecordRun(ctx context.Context, run store.Run, entries []store.ReportEntry) error {
	tx := duckdb.GetTransaction(ctx)
	owned := tx == nil
	if owned {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
	}

	_, err := tx.ExecContext(ctx, insertRunQuery,
		run.ID, run.StartedAt, run.FilesFound, run.Flagged,
		run.Drafts, run.Reviewed, run.Archived, run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, entry := range entries {
		reasons, err := json.Marshal(entry.Reasons)
		if err != nil {
			return fmt.Errorf("marshal reasons: %w", err)
		}
		_, err = tx.ExecContext(ctx, insertEntryQuery,
			run.ID, entry.SourceFile, entry.Buyer, entry.Supplier,
			entry.Consignment, entry.Style, entry.Color, entry.Rolls,
			entry.InspectionDate, entry.Result, string(reasons),
			entry.Flagged, entry.Disposition, entry.ArchivePath,
		)
		if err != nil {
			return fmt.Errorf("insert report entry: %w", err)
		}
	}

	if owned {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
	}
	return nil
}

const selectRunsQuery = `
		SELECT id, started_at, files_found, flagged, drafts, reviewed, archived, skipped
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`

func (s *runStore) GetRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, selectRunsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var r store.Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FilesFound, &r.Flagged,
			&r.Drafts, &r.Reviewed, &r.Archived, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

const selectEntriesQuery = `
		SELECT run_id, source_file, buyer, supplier, consignment, style, color,
			rolls, inspection_date, result, reasons, flagged, disposition, archive_path
		FROM report_entries
		WHERE run_id = ?`

func (s *runStore) GetRunReports(ctx context.Context, runID string) ([]store.ReportEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntriesQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("query report entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

const selectFlaggedQuery = `
		SELECT run_id, source_file, buyer, supplier, consignment, style, color,
			rolls, inspection_date, result, reasons, flagged, disposition, archive_path
		FROM report_entries
		WHERE flagged AND inspection_date >= ?`

func (s *runStore) GetFlaggedReports(ctx context.Context, since time.Time) ([]store.ReportEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectFlaggedQuery, since)
	if err != nil {
		return nil, fmt.Errorf("query flagged reports: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]store.ReportEntry, error) {
	var entries []store.ReportEntry
	for rows.Next() {
		var e store.ReportEntry
		var reasons string
		if err := rows.Scan(&e.RunID, &e.SourceFile, &e.Buyer, &e.Supplier,
			&e.Consignment, &e.Style, &e.Color, &e.Rolls, &e.InspectionDate,
			&e.Result, &reasons, &e.Flagged, &e.Disposition, &e.ArchivePath); err != nil {
			return nil, fmt.Errorf("scan report entry: %w", err)
		}
		if reasons != "" {
			if err := json.Unmarshal([]byte(reasons), &e.Reasons); err != nil {
				return nil, fmt.Errorf("unmarshal reasons: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
