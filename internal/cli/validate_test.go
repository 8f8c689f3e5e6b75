package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "eqsolve.cue")
	scen := filepath.Join(dir, "passing.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("max_steps: 10\n"), 0644))
	require.NoError(t, os.WriteFile(scen, []byte(passingScenario), 0644))

	out, err := execute(t, "validate", cfg, scen)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+cfg+" (config)")
	assert.Contains(t, out, "✓ "+scen+" (scenario)")
}

func TestValidate_Invalid(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(cfg, []byte("format: \"text\"\nmax_steps: 0\n"), 0644))
	other := filepath.Join(dir, "notes.txt")

	out, err := execute(t, "--format", "json", "validate", cfg, other)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"code":"INVALID_FILE"`)
	assert.Contains(t, out, `"line":2`)
	assert.Contains(t, out, `unsupported file extension \".txt\"`)
}

func TestValidate_MissingArgs(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
