package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/eqsolve/internal/equation"
	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Input    string // optional - evaluations of one equation only
	Verify   bool
}

// HistoryEntry is one listed evaluation.
type HistoryEntry struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Input     string `json:"input"`
	Value     string `json:"value,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Steps     int    `json:"steps"`

	// Drift describes how re-evaluation differs from the stored outcome.
	// Only set with --verify.
	Drift string `json:"drift,omitempty"`
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Entries  []HistoryEntry `json:"entries"`
	Total    int            `json:"total"`
	Verified bool           `json:"verified,omitempty"`
	Drifted  int            `json:"drifted,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluations",
		Long: `List evaluations recorded with "eval --db" or "solve --db", newest first.

With --verify every listed evaluation is solved again with the current
configuration and compared with the stored value or error code.

Exit codes:
  0 - History listed (and verified, with --verify)
  1 - Re-evaluation differs from the stored outcome
  2 - Command error (database not found, etc.)

Examples:
  eqsolve history --db history.db
  eqsolve history --db history.db --limit 5
  eqsolve history --db history.db --input "x - 5 = 3"
  eqsolve history --db history.db --verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (default from config)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of evaluations to list (0 for all)")
	cmd.Flags().StringVar(&opts.Input, "input", "", "list evaluations of this equation only")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "re-evaluate and report drift")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	path := opts.Database
	if path == "" {
		path = opts.settings().HistoryDB
	}
	if path == "" {
		return NewExitError(ExitCommandError, "no history database: use --db or set history_db in the configuration")
	}

	st, err := store.Open(path, store.WithLogger(opts.logger()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	records, err := loadHistory(ctx, st, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	result := HistoryResult{
		Entries:  make([]HistoryEntry, 0, len(records)),
		Total:    len(records),
		Verified: opts.Verify,
	}
	for _, r := range records {
		entry := HistoryEntry{
			ID:        r.ID,
			Seq:       r.Seq,
			Input:     r.Input,
			Value:     r.Value,
			ErrorCode: r.ErrorCode,
			Steps:     len(r.Steps),
		}
		if opts.Verify {
			entry.Drift = verifyRecord(opts.settings().EquationOptions(), r)
			if entry.Drift != "" {
				result.Drifted++
				formatter.VerboseLog("drift in %s: %s", r.ID, entry.Drift)
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	if result.Drifted > 0 {
		if err := formatter.Error(ErrCodeDrift, fmt.Sprintf("%d evaluation(s) differ from history", result.Drifted), result); err != nil {
			return err
		}
		if formatter.Format != "json" {
			fmt.Fprint(formatter.Writer, formatHistory(result))
		}
		exitErr := NewExitError(ExitFailure, fmt.Sprintf("%d evaluation(s) differ from history", result.Drifted))
		exitErr.Reported = true
		return exitErr
	}

	return formatter.Success(strings.TrimSuffix(formatHistory(result), "\n"), result)
}

func loadHistory(ctx context.Context, st *store.Store, opts *HistoryOptions) ([]*record.Record, error) {
	if opts.Input == "" {
		return st.ListRecords(ctx, opts.Limit)
	}
	records, err := st.FindByInput(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	// FindByInput is oldest first; list newest first like ListRecords
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	return records, nil
}

// verifyRecord re-evaluates a stored record and describes any difference.
func verifyRecord(eqOpts []equation.Option, stored *record.Record) string {
	out, err := equation.Solve(stored.Input, eqOpts...)
	now := record.FromOutcome(stored.ID, stored.Input, out, err)

	switch {
	case stored.ErrorCode != now.ErrorCode:
		return fmt.Sprintf("outcome %s, stored %s", outcomeString(now), outcomeString(stored))
	case stored.Value != now.Value:
		return fmt.Sprintf("value %s, stored %s", now.Value, stored.Value)
	case len(stored.Steps) != len(now.Steps):
		return fmt.Sprintf("%d steps, stored %d", len(now.Steps), len(stored.Steps))
	}
	return ""
}

func outcomeString(r *record.Record) string {
	if r.OK() {
		return "value " + r.Value
	}
	return "error " + r.ErrorCode
}

func formatHistory(result HistoryResult) string {
	if len(result.Entries) == 0 {
		return "No evaluations recorded.\n"
	}

	var b strings.Builder
	for _, e := range result.Entries {
		outcome := e.Value
		if e.ErrorCode != "" {
			outcome = "error " + e.ErrorCode
		}
		fmt.Fprintf(&b, "%s  %s  =>  %s", e.ID, e.Input, outcome)
		if e.Drift != "" {
			fmt.Fprintf(&b, "  (drift: %s)", e.Drift)
		}
		b.WriteByte('\n')
	}
	if result.Verified && result.Drifted == 0 {
		fmt.Fprintf(&b, "✓ %d evaluation(s) verified\n", result.Total)
	}
	return b.String()
}
