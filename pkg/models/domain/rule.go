package domain

// Comparator selects how a rule threshold is applied to a record field.
type Comparator string

const (
	ComparatorEquals        Comparator = "equals"
	ComparatorGreaterThan   Comparator = "greater_than"
	ComparatorLessThan      Comparator = "less_than"
	ComparatorToleranceBand Comparator = "tolerance_band"
)

// Rule is a single named predicate over a report metric. Threshold is the
// reference value; Tolerance is only used by ComparatorToleranceBand, which
// triggers when the metric deviates from the threshold by more than the
// tolerance.
type Rule struct {
	Name       string
	Field      string
	Comparator Comparator
	Threshold  float64
	Tolerance  float64
	Reason     string
}

// RuleSet is the ordered collection of rules applied to every report.
// Order matters: triggered reasons accumulate in rule order.
type RuleSet []Rule
