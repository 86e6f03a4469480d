package dispatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	recipients map[string]domain.Recipients
}

func (d *fakeDirectory) Lookup(buyer string) (domain.Recipients, error) {
	r, ok := d.recipients[buyer]
	if !ok {
		return domain.Recipients{}, fmt.Errorf("no recipients configured for buyer %q", buyer)
	}
	return r, nil
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{recipients: map[string]domain.Recipients{
		"Acme": {Primary: "merch@acme.example", Secondary: "qc@acme.example"},
	}}
}

func report(style, color, result, consignment string, rolls int, reasons ...string) domain.FlaggedReport {
	return domain.FlaggedReport{
		Record: domain.ReportRecord{
			SourcePath:  "/pending/" + color + ".xlsx",
			Buyer:       "Acme",
			Supplier:    "Sup1",
			Consignment: consignment,
			Style:       style,
			Color:       color,
			Rolls:       rolls,
			Result:      result,
		},
		Verdict: domain.Verdict{NeedsAttention: len(reasons) > 0, Reasons: reasons},
	}
}

func TestDraftBuilder_Build(t *testing.T) {
	builder := NewDraftBuilder(testDirectory())

	t.Run("group with failed report goes to primary", func(t *testing.T) {
		groups := Group([]domain.FlaggedReport{
			report("ST-1", "Navy", "FAIL", "41", 10),
			report("ST-1", "Red", "PASS", "42", 8, "High defect points"),
		})

		drafts, err := builder.Build(groups)

		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "merch@acme.example", drafts[0].To)
	})

	t.Run("rules-only group goes to secondary", func(t *testing.T) {
		groups := Group([]domain.FlaggedReport{
			report("ST-1", "Red", "PASS", "42", 8, "High defect points"),
		})

		drafts, err := builder.Build(groups)

		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "qc@acme.example", drafts[0].To)
	})

	t.Run("subject lists sorted distinct consignments", func(t *testing.T) {
		groups := Group([]domain.FlaggedReport{
			report("ST-1", "Navy", "FAIL", "42", 10),
			report("ST-2", "Red", "FAIL", "41", 8),
			report("ST-3", "Teal", "FAIL", "42", 6),
		})

		drafts, err := builder.Build(groups)

		require.NoError(t, err)
		assert.Equal(t, "Acme # 41, 42 Rolls consignment Fabric Inspection Status", drafts[0].Subject)
	})

	t.Run("body groups reports by style and shows reasons", func(t *testing.T) {
		groups := Group([]domain.FlaggedReport{
			report("ST-1", "Navy", "FAIL", "42", 10),
			report("ST-2", "Red", "PASS", "42", 8, "High defect points", "Critical shading"),
			report("ST-1", "Teal", "FAIL", "42", 6),
		})

		drafts, err := builder.Build(groups)

		require.NoError(t, err)
		body := drafts[0].BodyHTML
		assert.Contains(t, body, "<b>Buyer:</b> Acme")
		assert.Contains(t, body, "<b>Supplier:</b> Sup1")
		assert.Contains(t, body, "<b>Style:</b> ST-1")
		assert.Contains(t, body, "<b>Style:</b> ST-2")
		assert.Contains(t, body, "<b>Navy</b> (10 Rolls)")
		assert.Contains(t, body, "Due to: High defect points; Critical shading")
		assert.Contains(t, body, "fail-text")
		// ST-1 appears before ST-2: first-seen style order.
		first := strings.Index(body, "<b>Style:</b> ST-1")
		second := strings.Index(body, "<b>Style:</b> ST-2")
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, second, 0)
		assert.Less(t, first, second)
	})

	t.Run("comment wins over rule reasons", func(t *testing.T) {
		r := report("ST-1", "Red", "PASS", "42", 8, "High defect points")
		r.Record.Comment = "shade band attached"

		drafts, err := builder.Build(Group([]domain.FlaggedReport{r}))

		require.NoError(t, err)
		assert.Contains(t, drafts[0].BodyHTML, "Due to: shade band attached")
		assert.NotContains(t, drafts[0].BodyHTML, "High defect points")
	})

	t.Run("attachments follow report order", func(t *testing.T) {
		groups := Group([]domain.FlaggedReport{
			report("ST-1", "Navy", "FAIL", "42", 10),
			report("ST-2", "Red", "FAIL", "42", 8),
		})

		drafts, err := builder.Build(groups)

		require.NoError(t, err)
		assert.Equal(t, []string{"/pending/Navy.xlsx", "/pending/Red.xlsx"}, drafts[0].Attachments)
	})

	t.Run("unknown buyer surfaces directory error", func(t *testing.T) {
		r := report("ST-1", "Navy", "FAIL", "42", 10)
		r.Record.Buyer = "Initech"

		_, err := builder.Build(Group([]domain.FlaggedReport{r}))

		assert.ErrorContains(t, err, "Initech")
	})
}
