// Package equation is the single entry point for evaluating equation text.
//
// Evaluate runs the full pipeline:
//
//	text → parser.Parse → solver.Solve → ast.Evaluator → decimal
//
// Every stage fails fast; the first error is returned unchanged (its
// ast.ErrorCode is preserved through wrapping) and no partial result is
// produced.
package equation

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/eqsolve/internal/ast"
	"github.com/roach88/eqsolve/internal/parser"
	"github.com/roach88/eqsolve/internal/solver"
)

// Outcome is the full record of one evaluation.
type Outcome struct {
	Input  string        // Raw input text
	Parsed *ast.Equation // Tree as parsed
	Solved *ast.Equation // Tree after rearrangement
	Steps  []solver.Step // Applied rewrites
	Value  *apd.Decimal  // Value of the unknown
}

type config struct {
	solverOpts []solver.Option
	precision  uint32
	logger     *slog.Logger
}

// Option configures an evaluation.
type Option func(*config)

// WithSolverOptions passes options to the solver (e.g. solver.WithMaxSteps).
func WithSolverOptions(opts ...solver.Option) Option {
	return func(c *config) {
		c.solverOpts = append(c.solverOpts, opts...)
	}
}

// WithPrecision sets the number of significant digits kept by division.
// 0 selects ast.DefaultPrecision.
func WithPrecision(precision uint32) Option {
	return func(c *config) {
		c.precision = precision
	}
}

// WithLogger sets the logger for the solver's debug step trace.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Evaluate parses, solves and evaluates text, returning the unknown's value.
// Plain arithmetic ("6*(4-2)") is evaluated as the right side of "x = ...".
func Evaluate(text string, opts ...Option) (*apd.Decimal, error) {
	out, err := Solve(text, opts...)
	if err != nil {
		return nil, err
	}
	return out.Value, nil
}

// Solve is Evaluate that also returns the intermediate trees and steps.
func Solve(text string, opts ...Option) (*Outcome, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	solverOpts := cfg.solverOpts
	if cfg.logger != nil {
		solverOpts = append([]solver.Option{solver.WithLogger(cfg.logger)}, solverOpts...)
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	res, err := solver.New(solverOpts...).Solve(parsed)
	if err != nil {
		return nil, fmt.Errorf("solve %q: %w", parsed.String(), err)
	}

	value, err := ast.NewEvaluator(cfg.precision).EvaluateEquation(res.Equation)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", res.Equation.String(), err)
	}

	return &Outcome{
		Input:  text,
		Parsed: parsed,
		Solved: res.Equation,
		Steps:  res.Steps,
		Value:  value,
	}, nil
}
