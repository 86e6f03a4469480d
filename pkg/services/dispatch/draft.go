package dispatch

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
)

// Directory resolves the contacts for a buyer.
type Directory interface {
	Lookup(buyer string) (domain.Recipients, error)
}

// DraftBuilder turns grouped reports into email draft payloads.
type DraftBuilder struct {
	directory Directory
}

func NewDraftBuilder(directory Directory) *DraftBuilder {
	return &DraftBuilder{directory: directory}
}

// Build produces one draft per group, in group order. A group containing a
// failed report goes to the buyer's primary contact; a group flagged by
// rules only goes to the secondary contact.
func (b *DraftBuilder) Build(groups *Groups) ([]domain.Draft, error) {
	drafts := make([]domain.Draft, 0, groups.Len())

	for _, key := range groups.Keys() {
		reports := groups.Reports(key)

		recipients, err := b.directory.Lookup(key.Buyer)
		if err != nil {
			return nil, fmt.Errorf("resolve recipients for buyer %q: %w", key.Buyer, err)
		}

		to := recipients.Secondary
		if hasFailedReport(reports) {
			to = recipients.Primary
		}

		body, err := renderBody(key, reports)
		if err != nil {
			return nil, fmt.Errorf("render draft body for %s/%s: %w", key.Buyer, key.Supplier, err)
		}

		attachments := make([]string, 0, len(reports))
		for _, r := range reports {
			attachments = append(attachments, r.Record.SourcePath)
		}

		drafts = append(drafts, domain.Draft{
			Key:         key,
			To:          to,
			Subject:     subject(key.Buyer, reports),
			BodyHTML:    body,
			Attachments: attachments,
		})
	}

	return drafts, nil
}

func hasFailedReport(reports []domain.FlaggedReport) bool {
	for _, r := range reports {
		if r.Record.Failed() {
			return true
		}
	}
	return false
}

// subject lists the distinct consignments of the group in sorted order.
func subject(buyer string, reports []domain.FlaggedReport) string {
	seen := map[string]struct{}{}
	var consignments []string
	for _, r := range reports {
		c := r.Record.Consignment
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		consignments = append(consignments, c)
	}
	sort.Strings(consignments)
	return fmt.Sprintf("%s # %s Rolls consignment Fabric Inspection Status", buyer, strings.Join(consignments, ", "))
}

const bodyTemplate = `<html><head><style>
  body { font-family: Calibri, sans-serif; font-size: 11pt; }
  .fail-text { color: red; font-weight: bold; }
  .pass-text { color: green; }
  .report { margin-bottom: 8px; }
</style></head><body>
<p>Dear Concern,</p>
<p>Please find the attached Fabric Inspection Report(s). The summary is mentioned below:</p>
<p style="margin: 0;"><b>Buyer:</b> {{.Buyer}}</p>
<p style="margin: 10px 0;"><b>Supplier:</b> {{.Supplier}}</p><hr>
{{range .Styles}}
<p style="margin-top: 15px; margin-bottom: 5px;"><b>Style:</b> {{.Style}}</p>
<div style="margin-top: 5px; padding-left: 25px;">
{{range .Reports}}  <div class="report">&#10147; <b>{{.Color}}</b> ({{.Rolls}} Rolls): <span class="{{if .Failed}}fail-text{{else}}pass-text{{end}}">{{.Result}}</span>{{if .Detail}} Due to: {{.Detail}}{{end}}</div>
{{end}}</div>
{{end}}
<br><p>Thanks.</p><p>Best Regards,<br>QED Department</p></body></html>`

type bodyData struct {
	Buyer    string
	Supplier string
	Styles   []styleSection
}

type styleSection struct {
	Style   string
	Reports []reportLine
}

type reportLine struct {
	Color  string
	Rolls  int
	Result string
	Failed bool
	Detail string
}

// renderBody groups the batch by style, first-seen order, one line per
// report. The detail shown is the inspector's comment when present,
// otherwise the triggered rule reasons.
func renderBody(key domain.GroupKey, reports []domain.FlaggedReport) (string, error) {
	data := bodyData{Buyer: key.Buyer, Supplier: key.Supplier}
	index := map[string]int{}

	for _, r := range reports {
		style := r.Record.Style
		if style == "" {
			style = "N/A"
		}
		i, ok := index[style]
		if !ok {
			i = len(data.Styles)
			index[style] = i
			data.Styles = append(data.Styles, styleSection{Style: style})
		}

		detail := r.Record.Comment
		if detail == "" {
			detail = strings.Join(r.Verdict.Reasons, "; ")
		}

		data.Styles[i].Reports = append(data.Styles[i].Reports, reportLine{
			Color:  r.Record.Color,
			Rolls:  r.Record.Rolls,
			Result: strings.ToUpper(r.Record.Result),
			Failed: r.Record.Failed(),
			Detail: detail,
		})
	}

	t, err := template.New("body").Parse(bodyTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
