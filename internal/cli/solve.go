package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/eqsolve/internal/ast"
	"github.com/roach88/eqsolve/internal/solver"
)

// SolveResult is the JSON payload of the solve command.
type SolveResult struct {
	ID     string        `json:"id,omitempty"`
	Input  string        `json:"input"`
	Parsed string        `json:"parsed"`
	Steps  []solver.Step `json:"steps"`
	Solved string        `json:"solved"`
	Value  string        `json:"value"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <equation>",
		Short: "Show every rearrangement step and the value",
		Long: `Solve an equation and print the rearrangement trace: the parsed
equation, each applied rule with the equation it produced, and the value.

Example:
  eqsolve solve "3 = 1 - (x - 2)"

  3 = 1 - (x - 2)
    1. swap     1 - (x - 2) = 3
    2. migrate  -(x - 2) = 3 - 1
    ...
  x = 0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	addEvalFlags(cmd, opts)
	return cmd
}

func runSolve(opts *EvalOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	out, rec, err := opts.evaluate(cmd, input)
	if err != nil {
		if IsExitError(err) {
			return err
		}
		return formatter.EvalFailure(err)
	}

	value := out.Value.Text('f')
	steps := out.Steps
	if steps == nil {
		steps = []solver.Step{}
	}
	unknown := ast.FindUnknown(out.Solved).String()
	return formatter.Success(formatTrace(out.Parsed.String(), steps, unknown, value), SolveResult{
		ID:     rec.ID,
		Input:  input,
		Parsed: out.Parsed.String(),
		Steps:  steps,
		Solved: out.Solved.String(),
		Value:  value,
	})
}

// formatTrace renders the text form of a solve.
func formatTrace(parsed string, steps []solver.Step, unknown, value string) string {
	var b strings.Builder
	b.WriteString(parsed)
	b.WriteByte('\n')
	for _, s := range steps {
		fmt.Fprintf(&b, "  %d. %-8s %s\n", s.Index, s.Rule, s.Equation)
	}
	fmt.Fprintf(&b, "%s = %s", unknown, value)
	return b.String()
}
