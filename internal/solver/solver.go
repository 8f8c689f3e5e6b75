package solver

import (
	"fmt"
	"log/slog"

	"github.com/roach88/eqsolve/internal/ast"
)

// DefaultMaxSteps is the default maximum number of rewrite steps per solve.
const DefaultMaxSteps = 100

// Step records one applied rewrite.
type Step struct {
	Index    int    `json:"index"`    // 1-based position in the solve
	Rule     string `json:"rule"`     // Name of the applied rule
	Equation string `json:"equation"` // Equation after the rewrite
}

// Result is the outcome of a successful solve.
type Result struct {
	// Equation is the rearranged equation; its left side is the bare unknown.
	Equation *ast.Equation

	// Steps lists every applied rewrite in order. Empty if the input was
	// already isolated.
	Steps []Step
}

// Solver rearranges equations until the unknown is isolated.
//
// A Solver holds only configuration and is safe for concurrent use; each
// Solve call works on its own private trees.
type Solver struct {
	maxSteps  int
	unlimited bool
	rules     []Rule
	logger    *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxSteps sets the step limit.
//
// Default: 100 steps (DefaultMaxSteps).
// Use WithMaxSteps(1) in tests to force STEP_LIMIT_EXCEEDED.
func WithMaxSteps(maxSteps int) Option {
	return func(s *Solver) {
		s.maxSteps = maxSteps
		s.unlimited = false
	}
}

// WithoutStepLimit disables the step limit.
func WithoutStepLimit() Option {
	return func(s *Solver) {
		s.unlimited = true
	}
}

// WithLogger sets the logger used for debug-level step traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithRules replaces the rewrite rules.
func WithRules(rules ...Rule) Option {
	return func(s *Solver) {
		s.rules = rules
	}
}

// New creates a Solver with the default rules and step limit.
func New(opts ...Option) *Solver {
	s := &Solver{
		maxSteps: DefaultMaxSteps,
		rules:    DefaultRules(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSteps returns the configured limit, and false if the solver is unlimited.
func (s *Solver) MaxSteps() (int, bool) {
	return s.maxSteps, !s.unlimited
}

func (s *Solver) newLimiter() *StepLimiter {
	if s.unlimited {
		return NewUnlimitedStepLimiter()
	}
	return NewStepLimiter(s.maxSteps)
}

// Solve rewrites eq until its left side is the bare unknown.
//
// The input equation is not modified. Returns:
//   - MULTIPLE_UNKNOWNS if the tree holds more than one unknown
//   - UNSOLVABLE if there is no unknown or no rule can make progress
//   - *StepLimitError if the fixed point is not reached within the limit
func (s *Solver) Solve(eq *ast.Equation) (*Result, error) {
	if err := ast.ValidateUnknowns(eq); err != nil {
		return nil, err
	}
	if ast.CountEquationUnknowns(eq) == 0 {
		return nil, ast.NewUnsolvableError(eq, "equation has no unknown to solve for")
	}

	limiter := s.newLimiter()
	result := &Result{Equation: eq, Steps: []Step{}}

	for !ast.IsIsolated(result.Equation) {
		next, rule, ok := s.rewrite(result.Equation)
		if !ok {
			return nil, unsolvable(result.Equation)
		}
		if err := limiter.Check(); err != nil {
			se := err.(*StepLimitError)
			se.Equation = result.Equation.String()
			s.logger.Debug("step limit exceeded",
				"steps", se.Steps,
				"limit", se.Limit,
				"equation", se.Equation)
			return nil, se
		}

		step := Step{
			Index:    limiter.Current(),
			Rule:     rule,
			Equation: next.String(),
		}
		s.logger.Debug("rearrangement step",
			"index", step.Index,
			"rule", step.Rule,
			"equation", step.Equation)

		result.Steps = append(result.Steps, step)
		result.Equation = next
	}

	return result, nil
}

// Step applies a single rewrite. It returns the rewritten equation, the rule
// name and true, or (eq, "", false) if eq is already isolated or no rule
// applies. At the fixed point Step is a no-op.
func (s *Solver) Step(eq *ast.Equation) (*ast.Equation, string, bool) {
	if ast.IsIsolated(eq) {
		return eq, "", false
	}
	next, rule, ok := s.rewrite(eq)
	if !ok {
		return eq, "", false
	}
	return next, rule, true
}

// rewrite applies the first rule that matches.
func (s *Solver) rewrite(eq *ast.Equation) (*ast.Equation, string, bool) {
	for _, r := range s.rules {
		if next, ok := r.Rewrite(eq); ok {
			return next, r.Name, true
		}
	}
	return nil, "", false
}

// unsolvable explains why no rule applies to eq.
func unsolvable(eq *ast.Equation) error {
	left := eq.Left
	if len(left.Terms) == 1 && len(left.Terms[0].Term.Factors) > 1 {
		return ast.NewUnsolvableError(eq, fmt.Sprintf(
			"unknown is part of the product or quotient %q; multiplicative isolation is not supported",
			left.Terms[0].Term.String()))
	}
	return ast.NewUnsolvableError(eq, "no rearrangement rule can isolate the unknown")
}
