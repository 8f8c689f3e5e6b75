package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/eqsolve/internal/record"
)

// Snapshot is the canonical JSON form of a scenario run compared against
// golden files. Record IDs and sequence numbers are left out.
func Snapshot(name string, result *Result) ([]byte, error) {
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		cases[i] = c.Record.CanonicalMap()
	}
	return record.MarshalCanonical(map[string]any{
		"scenario_name": name,
		"cases":         cases,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}
