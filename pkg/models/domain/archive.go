package domain

import "path/filepath"

// ArchivePath is the canonical destination for a processed report file.
type ArchivePath struct {
	Dir      string
	Filename string
}

// Full returns the complete destination path.
func (p ArchivePath) Full() string {
	return filepath.Join(p.Dir, p.Filename)
}

// Disposition records what happened to a report file during a run.
type Disposition string

const (
	// DispositionArchived means the file was moved to its archive path.
	DispositionArchived Disposition = "archived"
	// DispositionReview means the file was routed to the manual-review folder.
	DispositionReview Disposition = "review"
	// DispositionSkipped means the report could not be evaluated and the
	// file was left in place.
	DispositionSkipped Disposition = "skipped"
)
