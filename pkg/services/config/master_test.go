package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterYAML = `
paths:
  pending: /qc/pending
  archive: /qc/archive
  review: /qc/review
  outbox: /qc/outbox
  ledger: /qc/ledger.db
cell_map:
  sheet_name: Summary
  buyer: B2
  supplier: B3
  consignment: B4
  date: B5
  result: B9
  metrics:
    avg_point: C2
rules:
  - name: avg_point
    field: avg_point
    comparator: greater_than
    threshold: 10
    reason: Average point above threshold
  - name: width
    field: order_width
    comparator: tolerance_band
    threshold: 60
    tolerance: 0.5
    reason: Width outside tolerance
email:
  recipients_file: /qc/recipients.ini
  default_primary: qc-lead@example.com
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, "master.yaml", masterYAML))

	require.NoError(t, err)
	assert.Equal(t, "/qc/pending", cfg.Paths.Pending)
	assert.Equal(t, "/qc/ledger.db", cfg.Paths.Ledger)
	assert.Equal(t, "Summary", cfg.CellMap.SheetName)
	assert.Equal(t, "C2", cfg.CellMap.Metrics["avg_point"])
	assert.Equal(t, "qc-lead@example.com", cfg.Email.DefaultPrimary)

	rules := cfg.RuleSet()
	require.Len(t, rules, 2)
	assert.Equal(t, domain.ComparatorGreaterThan, rules[0].Comparator)
	assert.Equal(t, 10.0, rules[0].Threshold)
	assert.Equal(t, domain.ComparatorToleranceBand, rules[1].Comparator)
	assert.Equal(t, 0.5, rules[1].Tolerance)
	assert.Equal(t, "Width outside tolerance", rules[1].Reason)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("missing pending path", func(t *testing.T) {
		_, err := Load(writeConfig(t, "master.yaml", "paths:\n  archive: /a\ncell_map:\n  sheet_name: S\n"))
		assert.ErrorContains(t, err, "paths.pending")
	})

	t.Run("unknown comparator", func(t *testing.T) {
		content := `
paths:
  pending: /p
  archive: /a
cell_map:
  sheet_name: S
rules:
  - name: bad
    field: x
    comparator: roughly
`
		_, err := Load(writeConfig(t, "master.yaml", content))
		assert.ErrorContains(t, err, "unknown comparator")
	})

	t.Run("rule without field", func(t *testing.T) {
		content := `
paths:
  pending: /p
  archive: /a
cell_map:
  sheet_name: S
rules:
  - name: bad
    comparator: equals
`
		_, err := Load(writeConfig(t, "master.yaml", content))
		assert.ErrorContains(t, err, "field is required")
	})
}
