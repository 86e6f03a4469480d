// Package archive derives canonical destinations for processed report
// files and performs the filesystem moves.
package archive

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
)

// IncompleteMetadataError reports that a record is missing the metadata
// needed to derive an unambiguous archive path. Such records must not be
// archived; they are routed to manual review instead.
type IncompleteMetadataError struct {
	Field string
}

func (e *IncompleteMetadataError) Error() string {
	return fmt.Sprintf("cannot derive archive path: %s is empty after sanitization", e.Field)
}

const illegalChars = `/\:*?"<>|`

// Sanitize replaces filesystem-illegal characters with underscores and
// collapses runs of underscores. The result is stable under repeated
// application.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	sb.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		if strings.ContainsRune(illegalChars, r) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatDate renders a date in the canonical folder format. The fixed
// layout guarantees lexical sort order of archived folders.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// BuildPath computes the destination for one report:
// baseDir/<buyer>/<consignment>_<date>/<identifier><ext>. Buyer and
// consignment must survive sanitization non-empty, otherwise the record is
// not safe to archive.
func BuildPath(record domain.ReportRecord, baseDir string) (domain.ArchivePath, error) {
	buyer := Sanitize(record.Buyer)
	if buyer == "" {
		return domain.ArchivePath{}, &IncompleteMetadataError{Field: "buyer"}
	}
	consignment := Sanitize(record.Consignment)
	if consignment == "" {
		return domain.ArchivePath{}, &IncompleteMetadataError{Field: "consignment"}
	}

	ext := record.FileExt
	if ext == "" {
		ext = ".xlsx"
	}

	folder := fmt.Sprintf("%s_%s", consignment, FormatDate(record.InspectionDate))
	return domain.ArchivePath{
		Dir:      filepath.Join(baseDir, buyer, folder),
		Filename: Sanitize(record.Identifier()) + ext,
	}, nil
}
