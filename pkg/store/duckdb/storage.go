// Package duckdb owns the run ledger database: schema bootstrap and
// transaction plumbing shared by the stores beneath it.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RunsSchema = `
	CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		files_found INTEGER NOT NULL,
		flagged INTEGER NOT NULL,
		drafts INTEGER NOT NULL,
		reviewed INTEGER NOT NULL,
		archived INTEGER NOT NULL,
		skipped INTEGER NOT NULL
	);
`

const ReportEntriesSchema = `
	CREATE TABLE IF NOT EXISTS report_entries (
		run_id VARCHAR NOT NULL,
		source_file VARCHAR NOT NULL,
		buyer VARCHAR,
		supplier VARCHAR,
		consignment VARCHAR,
		style VARCHAR,
		color VARCHAR,
		rolls INTEGER,
		inspection_date TIMESTAMP,
		result VARCHAR,
		reasons JSON,
		flagged BOOLEAN NOT NULL,
		disposition VARCHAR NOT NULL,
		archive_path VARCHAR
	);
`

var bootQueries = []string{
	RunsSchema,
	ReportEntriesSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the ledger database and ensures the schema exists.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=2", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}
