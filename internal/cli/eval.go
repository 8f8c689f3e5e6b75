package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/eqsolve/internal/config"
	"github.com/roach88/eqsolve/internal/equation"
	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/store"
)

// EvalOptions holds flags shared by the eval and solve commands.
type EvalOptions struct {
	*RootOptions
	MaxSteps  int
	NoLimit   bool
	Precision uint32
	Database  string
}

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	ID    string `json:"id,omitempty"` // history record ID, when recorded
	Input string `json:"input"`
	Value string `json:"value"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <equation>",
		Short: "Evaluate an equation and print the unknown's value",
		Long: `Parse, rearrange and evaluate a linear equation in one unknown.

Input without '=' is treated as the right side of "x = ...", so plain
arithmetic works too.

Exit codes:
  0 - Value printed
  1 - Evaluation failed (malformed input, unsolvable, division by zero, ...)
  2 - Command error (bad flags, config, database)

Examples:
  eqsolve eval "x - 5 = 3"
  eqsolve eval "6*(4-2)"
  eqsolve eval --precision 10 "x = 1/3"
  eqsolve eval --db history.db "16 + x = 12"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	addEvalFlags(cmd, opts)
	return cmd
}

func addEvalFlags(cmd *cobra.Command, opts *EvalOptions) {
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "maximum rearrangement steps (default from config, 100)")
	cmd.Flags().BoolVar(&opts.NoLimit, "no-limit", false, "disable the rearrangement step limit")
	cmd.Flags().Uint32Var(&opts.Precision, "precision", 0, "significant digits kept by division (default from config, 34)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the evaluation into this SQLite history database")
}

// effectiveConfig layers changed flags over the loaded configuration.
func (o *EvalOptions) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *o.settings()
	flags := cmd.Flags()
	if flags.Changed("max-steps") {
		if o.MaxSteps < 0 {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("--max-steps must be >= 0, got %d", o.MaxSteps))
		}
		cfg.MaxSteps = o.MaxSteps
	}
	if flags.Changed("no-limit") {
		cfg.NoLimit = o.NoLimit
	}
	if flags.Changed("precision") {
		cfg.Precision = o.Precision
	}
	if flags.Changed("db") {
		cfg.HistoryDB = o.Database
	}
	return &cfg, nil
}

// evaluate solves input and, when a history database is configured,
// records the outcome. The returned error is the evaluation error;
// infrastructure failures are returned as ExitErrors.
func (o *EvalOptions) evaluate(cmd *cobra.Command, input string) (*equation.Outcome, *record.Record, error) {
	cfg, err := o.effectiveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := append(cfg.EquationOptions(), equation.WithLogger(o.logger()))
	out, evalErr := equation.Solve(input, opts...)
	rec := record.FromOutcome("", input, out, evalErr)

	if cfg.HistoryDB != "" {
		if err := o.recordHistory(cmd.Context(), cfg.HistoryDB, rec); err != nil {
			return nil, nil, err
		}
	}
	return out, rec, evalErr
}

func (o *EvalOptions) recordHistory(ctx context.Context, path string, rec *record.Record) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path, store.WithLogger(o.logger()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	if err := st.WriteRecord(ctx, rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to record evaluation", err)
	}
	return nil
}

func runEval(opts *EvalOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	out, rec, err := opts.evaluate(cmd, input)
	if err != nil {
		if IsExitError(err) {
			return err
		}
		return formatter.EvalFailure(err)
	}

	value := out.Value.Text('f')
	return formatter.Success(value, EvalResult{
		ID:    rec.ID,
		Input: input,
		Value: value,
	})
}
