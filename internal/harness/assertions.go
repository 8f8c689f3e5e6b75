package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/eqsolve/internal/store"
)

// AssertionContext provides what assertions need beyond the result.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Rules    []string // Applied rules of the case, if any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Rules != nil {
		fmt.Fprintf(&buf, "\nApplied rules: [%s]\n", strings.Join(e.Rules, ", "))
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i+1, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	if a.Type == AssertHistoryCount {
		return assertHistoryCount(actx, a)
	}

	if a.Case < 1 || a.Case > len(result.Cases) {
		return fmt.Errorf("case %d out of range (have %d)", a.Case, len(result.Cases))
	}
	rules := result.Cases[a.Case-1].Rules()

	switch a.Type {
	case AssertTraceContains:
		return assertTraceContains(rules, a)
	case AssertTraceOrder:
		return assertTraceOrder(rules, a)
	case AssertTraceCount:
		return assertTraceCount(rules, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertTraceContains checks that the rule was applied at least once.
func assertTraceContains(rules []string, a Assertion) error {
	for _, r := range rules {
		if r == a.Rule {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("rule %s in case %d", a.Rule, a.Case),
		Actual:   "not applied",
		Rules:    rules,
	}
}

// assertTraceOrder checks that a.Rules is a subsequence of the applied
// rules. Intervening rules are allowed.
func assertTraceOrder(rules []string, a Assertion) error {
	next := 0
	for _, r := range rules {
		if next < len(a.Rules) && r == a.Rules[next] {
			next++
		}
	}
	if next == len(a.Rules) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("rules in order: %v", a.Rules),
		Actual:   fmt.Sprintf("no match for %s after %v", a.Rules[next], a.Rules[:next]),
		Rules:    rules,
	}
}

// assertTraceCount checks the number of steps, or of steps of one rule.
func assertTraceCount(rules []string, a Assertion) error {
	count := 0
	for _, r := range rules {
		if a.Rule == "" || r == a.Rule {
			count++
		}
	}
	if count == *a.Count {
		return nil
	}

	what := "steps"
	if a.Rule != "" {
		what = a.Rule + " steps"
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d %s in case %d", *a.Count, what, a.Case),
		Actual:   fmt.Sprintf("%d %s", count, what),
		Rules:    rules,
	}
}

// assertHistoryCount checks how many evaluations were recorded, optionally
// only those that failed with a.Error.
func assertHistoryCount(actx *AssertionContext, a Assertion) error {
	if actx == nil || actx.Store == nil {
		return fmt.Errorf("history_count assertion requires a store")
	}
	records, err := actx.Store.ListRecords(actx.Ctx, 0)
	if err != nil {
		return fmt.Errorf("history_count: %w", err)
	}

	count := 0
	for _, r := range records {
		if a.Error == "" || r.ErrorCode == a.Error {
			count++
		}
	}
	if count == *a.Count {
		return nil
	}

	what := "records"
	if a.Error != "" {
		what = a.Error + " records"
	}
	return &AssertionError{
		Type:     AssertHistoryCount,
		Expected: fmt.Sprintf("%d %s", *a.Count, what),
		Actual:   fmt.Sprintf("%d %s", count, what),
	}
}
