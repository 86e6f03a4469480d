package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	started, _ := time.Parse("2006-01-02 15:04:05", "2025-04-10 09:30:00")
	summary := domain.RunSummary{
		RunID:      "run-42",
		StartedAt:  started,
		FilesFound: 7,
		Flagged:    3,
		Drafts:     2,
		Reviewed:   1,
		Archived:   6,
		Skipped:    1,
	}

	err := reporter.Handle(summary)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Run run-42")
	assert.Contains(t, out, "Started: 2025-04-10 09:30:00")
	assert.Contains(t, out, "| Reports found            | 7            |")
	assert.Contains(t, out, "| Flagged                  | 3            |")
	assert.Contains(t, out, "| Drafts written           | 2            |")
	assert.Contains(t, out, "| Skipped                  | 1            |")
}

func TestNewReporter_NilWriterDefaultsToStdout(t *testing.T) {
	reporter := NewReporter(nil)
	require.NotNil(t, reporter)
	assert.NotNil(t, reporter.writer)
}
