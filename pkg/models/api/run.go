package api

import "time"

type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FilesFound int       `json:"files_found"`
	Flagged    int       `json:"flagged"`
	Drafts     int       `json:"drafts"`
	Reviewed   int       `json:"reviewed"`
	Archived   int       `json:"archived"`
	Skipped    int       `json:"skipped"`
}

type ReportEntry struct {
	RunID          string    `json:"run_id"`
	SourceFile     string    `json:"source_file"`
	Buyer          string    `json:"buyer"`
	Supplier       string    `json:"supplier"`
	Consignment    string    `json:"consignment"`
	Style          string    `json:"style"`
	Color          string    `json:"color"`
	Rolls          int       `json:"rolls"`
	InspectionDate time.Time `json:"inspection_date"`
	Result         string    `json:"result"`
	Reasons        []string  `json:"reasons"`
	Flagged        bool      `json:"flagged"`
	Disposition    string    `json:"disposition"`
	ArchivePath    string    `json:"archive_path,omitempty"`
}
