package store

import "time"

// Run is one row in the runs table.
type Run struct {
	ID         string
	StartedAt  time.Time
	FilesFound int
	Flagged    int
	Drafts     int
	Reviewed   int
	Archived   int
	Skipped    int
}

// ReportEntry is one row in the report_entries table: a single processed
// report with its verdict and final disposition.
type ReportEntry struct {
	RunID          string
	SourceFile     string
	Buyer          string
	Supplier       string
	Consignment    string
	Style          string
	Color          string
	Rolls          int
	InspectionDate time.Time
	Result         string
	Reasons        []string
	Flagged        bool
	Disposition    string
	ArchivePath    string
}
