package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/solver"
	"github.com/roach88/eqsolve/internal/testutil"
)

// createTestStore opens a fresh store in a temp dir with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(testutil.NewSequentialIDGenerator("rec")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a successful record with one migrate step.
func createTestRecord(input, value string) *record.Record {
	return &record.Record{
		Input:  input,
		Solved: "x = " + value,
		Value:  value,
		Steps: []solver.Step{
			{Index: 1, Rule: solver.RuleMigrate, Equation: "x = " + value},
		},
	}
}
