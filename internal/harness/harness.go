package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/eqsolve/internal/equation"
	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/solver"
	"github.com/roach88/eqsolve/internal/store"
	"github.com/roach88/eqsolve/internal/testutil"
)

// Harness is the scenario execution engine.
type Harness struct {
	store  *store.Store
	opts   []equation.Option
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. Record
// IDs are sequential ("case-0001", ...) so results are reproducible.
//
// Execution flow:
// 1. Create fresh in-memory history store
// 2. Evaluate every case and record it
// 3. Compare each outcome with its expect clause
// 4. Evaluate assertions against traces and history
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with a caller-supplied logger for case progress.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequentialIDGenerator("case")),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		opts:   scenarioOptions(scenario),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()
	if err := h.executeCases(ctx, scenario.Cases, result); err != nil {
		return nil, fmt.Errorf("failed to execute cases: %w", err)
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

func scenarioOptions(s *Scenario) []equation.Option {
	var solverOpts []solver.Option
	if s.MaxSteps != nil {
		solverOpts = append(solverOpts, solver.WithMaxSteps(*s.MaxSteps))
	}
	if s.NoLimit {
		solverOpts = append(solverOpts, solver.WithoutStepLimit())
	}
	return []equation.Option{
		equation.WithSolverOptions(solverOpts...),
		equation.WithPrecision(s.Precision),
	}
}

// executeCases evaluates each case, records it and checks its expectation.
// Evaluation failures are outcomes, not harness errors; only store
// failures abort the run.
func (h *Harness) executeCases(ctx context.Context, cases []Case, result *Result) error {
	for i, c := range cases {
		out, evalErr := equation.Solve(c.Input, h.opts...)
		rec := record.FromOutcome("", c.Input, out, evalErr)

		if err := h.store.WriteRecord(ctx, rec); err != nil {
			return fmt.Errorf("case %d: %w", i+1, err)
		}

		cr := CaseResult{Index: i + 1, Record: rec, Pass: true}
		if msg := checkExpect(c, rec); msg != "" {
			cr.Pass = false
			result.AddError(fmt.Sprintf("case %d (%q): %s", i+1, c.Input, msg))
		}
		result.Cases = append(result.Cases, cr)

		h.logger.Info("case completed",
			"case", i+1,
			"input", c.Input,
			"record_id", rec.ID,
			"value", rec.Value,
			"error_code", rec.ErrorCode,
			"pass", cr.Pass,
		)
	}
	return nil
}

// checkExpect returns a failure description, or "" if rec matches.
func checkExpect(c Case, rec *record.Record) string {
	if c.Expect.Error != "" {
		if rec.ErrorCode != c.Expect.Error {
			return fmt.Sprintf("expected error %s, got %s", c.Expect.Error, describe(rec))
		}
		return ""
	}

	if !rec.OK() {
		return fmt.Sprintf("expected value %s, got %s", c.Expect.Value, describe(rec))
	}
	want, _, err := apd.NewFromString(c.Expect.Value)
	if err != nil {
		return fmt.Sprintf("invalid expected value %q: %v", c.Expect.Value, err)
	}
	got, _, err := apd.NewFromString(rec.Value)
	if err != nil {
		return fmt.Sprintf("invalid value %q: %v", rec.Value, err)
	}
	if want.Cmp(got) != 0 {
		return fmt.Sprintf("expected value %s, got %s", c.Expect.Value, rec.Value)
	}
	return ""
}

func describe(rec *record.Record) string {
	if rec.OK() {
		return "value " + rec.Value
	}
	return "error " + rec.ErrorMessage
}
