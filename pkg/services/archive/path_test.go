package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean string untouched", "Acme", "Acme"},
		{"illegal characters replaced", `A/B:C`, "A_B_C"},
		{"all illegal characters", `a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"repeated separators collapsed", "A//B", "A_B"},
		{"existing underscore runs collapsed", "A__B", "A_B"},
		{"surrounding whitespace trimmed", "  Acme  ", "Acme"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{`A/B:C`, "already_clean", "x**y", `  CON: 12/3  `}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitizing %q twice", in)
	}
}

func TestBuildPath(t *testing.T) {
	record := domain.ReportRecord{
		Buyer:          "Acme",
		Consignment:    "CON-42",
		Style:          "ST-100",
		Color:          "Navy",
		FabricCode:     "FC9",
		Rolls:          12,
		FileExt:        ".xlsm",
		InspectionDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	}

	t.Run("canonical layout", func(t *testing.T) {
		p, err := BuildPath(record, "/archive")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/archive", "Acme", "CON-42_2026-03-07"), p.Dir)
		assert.Equal(t, "ST-100, COLOR-Navy, Roll-12, FC9.xlsm", p.Filename)
		assert.Equal(t, filepath.Join(p.Dir, p.Filename), p.Full())
	})

	t.Run("buyer segment is sanitized", func(t *testing.T) {
		r := record
		r.Buyer = "A/B:C"

		p, err := BuildPath(r, "/archive")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/archive", "A_B_C", "CON-42_2026-03-07"), p.Dir)
	})

	t.Run("date format sorts lexically", func(t *testing.T) {
		earlier := record
		earlier.InspectionDate = time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

		p1, err := BuildPath(earlier, "/archive")
		require.NoError(t, err)
		p2, err := BuildPath(record, "/archive")
		require.NoError(t, err)

		assert.Less(t, p1.Dir, p2.Dir)
	})

	t.Run("empty consignment is rejected", func(t *testing.T) {
		r := record
		r.Consignment = ""

		_, err := BuildPath(r, "/archive")

		var incomplete *IncompleteMetadataError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, "consignment", incomplete.Field)
	})

	t.Run("buyer of only illegal characters is rejected", func(t *testing.T) {
		r := record
		r.Buyer = "  "

		_, err := BuildPath(r, "/archive")

		var incomplete *IncompleteMetadataError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, "buyer", incomplete.Field)
	})

	t.Run("missing extension defaults to xlsx", func(t *testing.T) {
		r := record
		r.FileExt = ""

		p, err := BuildPath(r, "/archive")

		require.NoError(t, err)
		assert.Equal(t, ".xlsx", filepath.Ext(p.Filename))
	})
}
