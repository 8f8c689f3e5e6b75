// Package config loads eqsolve configuration from CUE files.
//
// A configuration file is unified with the embedded #Config schema, so
// unknown fields, out-of-range values and wrong types are rejected with the
// file position of the offending value.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/eqsolve/internal/ast"
	"github.com/roach88/eqsolve/internal/equation"
	"github.com/roach88/eqsolve/internal/solver"
)

//go:embed schema.cue
var schemaCUE string

// DefaultFile is the configuration file Discover looks for.
const DefaultFile = "eqsolve.cue"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds evaluation and CLI settings.
type Config struct {
	MaxSteps  int    `json:"max_steps"`
	NoLimit   bool   `json:"no_limit"`
	Precision uint32 `json:"precision"`
	Format    string `json:"format"`
	HistoryDB string `json:"history_db"`
}

// Default returns the configuration used when no file is present.
// It matches the schema defaults.
func Default() *Config {
	return &Config{
		MaxSteps:  solver.DefaultMaxSteps,
		Precision: ast.DefaultPrecision,
		Format:    FormatText,
	}
}

// Error is a configuration error with the CUE position of its cause.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("reading config: %v", err)}
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and decodes it.
// filename is used only for error positions.
func Parse(src []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling embedded schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return nil, formatCUEError(err, filename)
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, filename)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, formatCUEError(err, filename)
	}
	return &cfg, nil
}

// Discover loads path when set. Otherwise it loads DefaultFile from dir if
// present, and falls back to Default.
func Discover(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	candidate := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, &Error{Message: fmt.Sprintf("checking %s: %v", candidate, err)}
	}
	return Load(candidate)
}

// SolverOptions returns the solver options this configuration implies.
func (c *Config) SolverOptions() []solver.Option {
	if c.NoLimit {
		return []solver.Option{solver.WithoutStepLimit()}
	}
	return []solver.Option{solver.WithMaxSteps(c.MaxSteps)}
}

// EquationOptions returns the evaluation options this configuration implies.
func (c *Config) EquationOptions() []equation.Option {
	return []equation.Option{
		equation.WithSolverOptions(c.SolverOptions()...),
		equation.WithPrecision(c.Precision),
	}
}

// formatCUEError extracts position info from CUE errors. Errors located in
// filename are preferred over those pointing into the embedded schema.
func formatCUEError(err error, filename string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	for _, e := range errs {
		for _, pos := range cueerrors.Positions(e) {
			if pos.Filename() == filename {
				return &Error{Message: e.Error(), Pos: pos}
			}
		}
	}

	first := &Error{Message: errs[0].Error()}
	if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
		first.Pos = positions[0]
	}
	return first
}
