// Package rules evaluates extracted inspection reports against the
// configured rule set and produces a verdict with the triggered reasons.
package rules

import (
	"fmt"
	"math"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
)

// MissingFieldError reports that a rule references a metric the record does
// not carry. Evaluation of that record cannot proceed; the caller is
// expected to log a warning and skip the record.
type MissingFieldError struct {
	Field string
	Rule  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("rule %q references missing field %q", e.Rule, e.Field)
}

// Evaluate applies every rule in the set to the record, in order. Rules are
// never short-circuited: a record accumulates one reason per triggered rule
// so the resulting email lists every problem, not just the first. The
// returned verdict is deterministic for a given record and rule set.
func Evaluate(record domain.ReportRecord, ruleset domain.RuleSet) (domain.Verdict, error) {
	verdict := domain.Verdict{Reasons: []string{}}

	for _, rule := range ruleset {
		value, ok := record.Metric(rule.Field)
		if !ok {
			return domain.Verdict{}, &MissingFieldError{Field: rule.Field, Rule: rule.Name}
		}

		triggered, err := apply(rule, value)
		if err != nil {
			return domain.Verdict{}, err
		}
		if triggered {
			verdict.NeedsAttention = true
			verdict.Reasons = append(verdict.Reasons, rule.Reason)
		}
	}

	return verdict, nil
}

func apply(rule domain.Rule, value float64) (bool, error) {
	switch rule.Comparator {
	case domain.ComparatorEquals:
		return value == rule.Threshold, nil
	case domain.ComparatorGreaterThan:
		return value > rule.Threshold, nil
	case domain.ComparatorLessThan:
		return value < rule.Threshold, nil
	case domain.ComparatorToleranceBand:
		return math.Abs(value-rule.Threshold) > rule.Tolerance, nil
	default:
		return false, fmt.Errorf("rule %q: unknown comparator %q", rule.Name, rule.Comparator)
	}
}
