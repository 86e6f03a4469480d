package domain

// Verdict is the outcome of evaluating one report against the rule set.
// Reasons appear in rule configuration order; a report with no triggered
// rules has NeedsAttention false and an empty reason list.
type Verdict struct {
	NeedsAttention bool
	Reasons        []string
}

// FlaggedReport pairs a report with the verdict that flagged it.
type FlaggedReport struct {
	Record  ReportRecord
	Verdict Verdict
}
