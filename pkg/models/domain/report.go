package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
)

// ReportRecord holds the fields extracted from a single fabric inspection
// report. Values are already typed by the extraction step; the record is
// read-only for the rest of the pipeline.
type ReportRecord struct {
	SourcePath string
	FileExt    string // original file suffix, e.g. ".xlsx"

	Buyer       string
	Supplier    string
	Consignment string
	Style       string
	Color       string
	FabricCode  string
	Comment     string
	Rolls       int

	InspectionDate time.Time
	Result         string

	// Metrics are the numeric measurements rules are evaluated against,
	// keyed by field name (e.g. "avg_point", "order_width").
	Metrics map[string]float64
}

// Metric returns the named numeric field and whether it is present.
func (r ReportRecord) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Failed reports whether the inspection result marks the report as failed
// or rejected, case-insensitively.
func (r ReportRecord) Failed() bool {
	result := strings.ToLower(r.Result)
	return strings.Contains(result, "fail") || strings.Contains(result, "rejected")
}

// Identifier is the display name used for the archived file, composed from
// style, color, roll count and fabric code.
func (r ReportRecord) Identifier() string {
	return fmt.Sprintf("%s, COLOR-%s, Roll-%d, %s", r.Style, r.Color, r.Rolls, r.FabricCode)
}

// ConsignmentNumber extracts the numeric part of the consignment reference
// for sorting. A consignment with no digits sorts as zero.
func (r ReportRecord) ConsignmentNumber() int {
	n := 0
	for _, c := range r.Consignment {
		if unicode.IsDigit(c) {
			n = n*10 + int(c-'0')
		}
	}
	return n
}

// SortRecords orders records by buyer, numeric consignment, result and roll
// count so that ledger rows, grouping order and draft content are stable
// from run to run. The sort is stable with respect to the input order.
func SortRecords(records []ReportRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Buyer != b.Buyer {
			return a.Buyer < b.Buyer
		}
		if an, bn := a.ConsignmentNumber(), b.ConsignmentNumber(); an != bn {
			return an < bn
		}
		if a.Result != b.Result {
			return a.Result < b.Result
		}
		return a.Rolls < b.Rolls
	})
}
