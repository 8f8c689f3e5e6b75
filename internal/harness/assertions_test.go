package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestAssertTraceContains(t *testing.T) {
	rules := []string{"swap", "migrate"}

	assert.NoError(t, assertTraceContains(rules, Assertion{Rule: "migrate", Case: 1}))

	err := assertTraceContains(rules, Assertion{Rule: "negate", Case: 1})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "Applied rules: [swap, migrate]")
}

func TestAssertTraceOrder(t *testing.T) {
	rules := []string{"swap", "migrate", "negate", "unwrap", "migrate"}

	tests := []struct {
		name  string
		order []string
		ok    bool
	}{
		{"full", rules, true},
		{"gaps allowed", []string{"swap", "unwrap"}, true},
		{"repeated rule", []string{"migrate", "migrate"}, true},
		{"reversed", []string{"negate", "swap"}, false},
		{"too many repeats", []string{"migrate", "migrate", "migrate"}, false},
		{"missing", []string{"swap", "spin"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTraceOrder(rules, Assertion{Rules: tt.order})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAssertTraceCount(t *testing.T) {
	rules := []string{"migrate", "negate", "migrate"}

	assert.NoError(t, assertTraceCount(rules, Assertion{Count: intPtr(3)}))
	assert.NoError(t, assertTraceCount(rules, Assertion{Rule: "migrate", Count: intPtr(2)}))
	assert.NoError(t, assertTraceCount(nil, Assertion{Count: intPtr(0)}))

	err := assertTraceCount(rules, Assertion{Rule: "negate", Count: intPtr(2), Case: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 2 negate steps in case 1")
	assert.Contains(t, err.Error(), "Actual: 1 negate steps")
}

func TestEvaluateAssertions_HistoryCount(t *testing.T) {
	s := loadTestScenario(t, "errors")
	s.Assertions = []Assertion{
		{Type: AssertHistoryCount, Count: intPtr(5)},
		{Type: AssertHistoryCount, Error: "FORMAT_ERROR", Count: intPtr(1)},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "assertion 1")
	assert.Contains(t, result.Errors[0], "Actual: 6 records")
}

func TestEvaluateAssertions_CaseOutOfRange(t *testing.T) {
	msgs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertTraceContains, Case: 1, Rule: "swap"}}, nil)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "out of range")
}

func TestEvaluateAssertions_HistoryWithoutStore(t *testing.T) {
	msgs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertHistoryCount, Count: intPtr(0)}}, nil)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "requires a store")
}
