package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/solver"
	"github.com/roach88/eqsolve/internal/store"
	"github.com/roach88/eqsolve/internal/testutil"
)

// seedHistory writes records with sequential IDs and returns the db path.
func seedHistory(t *testing.T, records ...*record.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(path, store.WithIDGenerator(testutil.NewSequentialIDGenerator("rec")))
	require.NoError(t, err)
	defer st.Close()

	for _, r := range records {
		require.NoError(t, st.WriteRecord(context.Background(), r))
	}
	return path
}

func migrateRecord(input, value string) *record.Record {
	return &record.Record{
		Input: input,
		Value: value,
		Steps: []solver.Step{{Index: 1, Rule: solver.RuleMigrate, Equation: "x = 3 + 5"}},
	}
}

func TestHistory_Text(t *testing.T) {
	db := seedHistory(t,
		migrateRecord("x - 5 = 3", "8"),
		&record.Record{Input: "x + y = 1", ErrorCode: "MULTIPLE_UNKNOWNS", ErrorMessage: "two"},
	)

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t,
		"rec-0002  x + y = 1  =>  error MULTIPLE_UNKNOWNS\n"+
			"rec-0001  x - 5 = 3  =>  8\n",
		out)
}

func TestHistory_Limit(t *testing.T) {
	db := seedHistory(t,
		migrateRecord("x - 5 = 3", "8"),
		migrateRecord("x - 6 = 3", "9"),
		migrateRecord("x - 7 = 3", "10"),
	)

	out, err := execute(t, "--format", "json", "history", "--db", db, "--limit", "2")
	require.NoError(t, err)

	var resp struct {
		Data HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Entries, 2)
	assert.Equal(t, "rec-0003", resp.Data.Entries[0].ID)
	assert.Equal(t, int64(3), resp.Data.Entries[0].Seq)
	assert.Equal(t, 1, resp.Data.Entries[0].Steps)
}

func TestHistory_Input(t *testing.T) {
	db := seedHistory(t,
		migrateRecord("x - 5 = 3", "8"),
		migrateRecord("x - 6 = 3", "9"),
		migrateRecord("x-5=3", "8"),
	)

	out, err := execute(t, "history", "--db", db, "--input", "x - 5 = 3")
	require.NoError(t, err)
	assert.Equal(t,
		"rec-0003  x-5=3  =>  8\n"+
			"rec-0001  x - 5 = 3  =>  8\n",
		out)
}

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, "history", "--db", filepath.Join(t.TempDir(), "new.db"))
	require.NoError(t, err)
	assert.Equal(t, "No evaluations recorded.\n", out)
}

func TestHistory_NoDatabase(t *testing.T) {
	_, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no history database")
}

func TestHistory_Verify(t *testing.T) {
	db := seedHistory(t, migrateRecord("x - 5 = 3", "8"))

	out, err := execute(t, "history", "--db", db, "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 1 evaluation(s) verified")
}

func TestHistory_VerifyDrift(t *testing.T) {
	db := seedHistory(t,
		migrateRecord("x - 5 = 3", "9"),
		&record.Record{Input: "x = 1", ErrorCode: "UNSOLVABLE"},
	)

	out, err := execute(t, "--format", "json", "history", "--db", db, "--verify")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string        `json:"code"`
			Details HistoryResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeDrift, resp.Error.Code)
	assert.Equal(t, 2, resp.Error.Details.Drifted)
	assert.Equal(t, "outcome value 1, stored error UNSOLVABLE", resp.Error.Details.Entries[0].Drift)
	assert.Equal(t, "value 8, stored 9", resp.Error.Details.Entries[1].Drift)
}
