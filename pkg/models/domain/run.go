package domain

import "time"

// ReportOutcome is the full per-report result of a run: the record, its
// verdict, whether it was flagged for dispatch, and where the file ended up.
type ReportOutcome struct {
	Record      ReportRecord
	Verdict     Verdict
	Flagged     bool
	Disposition Disposition
	ArchivePath string
}

// RunSummary aggregates the counts of one processing run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FilesFound int
	Flagged    int
	Drafts     int
	Reviewed   int
	Archived   int
	Skipped    int
}
