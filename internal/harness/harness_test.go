package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_Scenarios(t *testing.T) {
	for _, name := range []string{"additive", "rearrange", "errors"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(loadTestScenario(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_RecordsHaveSequentialIDs(t *testing.T) {
	result, err := Run(loadTestScenario(t, "additive"))
	require.NoError(t, err)

	require.Len(t, result.Cases, 3)
	for i, c := range result.Cases {
		assert.Equal(t, i+1, c.Index)
		assert.Equal(t, int64(i+1), c.Record.Seq)
	}
	assert.Equal(t, "case-0001", result.Cases[0].Record.ID)
	assert.Equal(t, "case-0003", result.Cases[2].Record.ID)
}

func TestRun_ExpectMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "wrong expectations",
		Cases: []Case{
			{Input: "x - 5 = 3", Expect: Expect{Value: "9"}},
			{Input: "x = 2", Expect: Expect{Error: "FORMAT_ERROR"}},
			{Input: "2*", Expect: Expect{Value: "1"}},
			{Input: "x = 1", Expect: Expect{Value: "1.00"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "expected value 9, got 8")
	assert.Contains(t, result.Errors[1], "expected error FORMAT_ERROR, got value 2")
	assert.Contains(t, result.Errors[2], "expected value 1, got error FORMAT_ERROR")
	assert.True(t, result.Cases[3].Pass, "values compare numerically")
}

func TestRun_ScenarioStepLimit(t *testing.T) {
	limit := 1
	s := &Scenario{
		Name:        "limit",
		Description: "limit",
		MaxSteps:    &limit,
		Cases: []Case{
			{Input: "-3-x = -4", Expect: Expect{Error: "STEP_LIMIT_EXCEEDED"}},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	s.NoLimit = true
	s.Cases[0].Expect = Expect{Value: "1"}
	result, err = Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Isolation(t *testing.T) {
	s := loadTestScenario(t, "additive")

	for i := 0; i < 2; i++ {
		result, err := Run(s)
		require.NoError(t, err)
		assert.True(t, result.Pass, "run %d: history must start empty: %v", i, result.Errors)
	}
}

func TestRunWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := RunWithLogger(loadTestScenario(t, "additive"), logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "case completed")
	assert.Contains(t, buf.String(), "record_id=case-0001")
}
