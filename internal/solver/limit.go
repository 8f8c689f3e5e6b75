package solver

import (
	"errors"
	"fmt"

	"github.com/roach88/eqsolve/internal/ast"
)

// StepLimiter counts rewrite steps and enforces a maximum.
//
// Each Solve call gets its own StepLimiter. The limit is checked before every
// rewrite is committed.
type StepLimiter struct {
	maxSteps  int  // Maximum allowed steps
	unlimited bool // No maximum
	current   int  // Current step count
}

// NewStepLimiter creates a limiter allowing maxSteps rewrites.
// Negative values are treated as 0 (only already-isolated equations pass).
func NewStepLimiter(maxSteps int) *StepLimiter {
	if maxSteps < 0 {
		maxSteps = 0
	}
	return &StepLimiter{maxSteps: maxSteps}
}

// NewUnlimitedStepLimiter creates a limiter that only counts.
func NewUnlimitedStepLimiter() *StepLimiter {
	return &StepLimiter{unlimited: true}
}

// Check increments the step counter and validates against the limit.
//
// Returns *StepLimitError if the limit is exceeded.
func (l *StepLimiter) Check() error {
	l.current++
	if !l.unlimited && l.current > l.maxSteps {
		return &StepLimitError{
			Steps: l.current,
			Limit: l.maxSteps,
		}
	}
	return nil
}

// Current returns the current step count.
func (l *StepLimiter) Current() int {
	return l.current
}

// MaxSteps returns the limit, and false if the limiter is unlimited.
func (l *StepLimiter) MaxSteps() (int, bool) {
	return l.maxSteps, !l.unlimited
}

// StepLimitError is returned when rearrangement does not reach the fixed
// point within the step limit.
type StepLimitError struct {
	Steps    int    // Steps attempted, including the rejected one
	Limit    int    // Maximum allowed steps
	Equation string // Equation as it stood when the limit was hit
}

// Error implements the error interface.
func (e *StepLimitError) Error() string {
	msg := fmt.Sprintf("%s: rearrangement exceeded step limit: %d steps > %d limit",
		ast.ErrCodeStepLimitExceeded, e.Steps, e.Limit)
	if e.Equation != "" {
		msg += fmt.Sprintf(" (at %q)", e.Equation)
	}
	return msg
}

// ErrorCode classifies the error for ast.CodeOf.
func (e *StepLimitError) ErrorCode() ast.ErrorCode {
	return ast.ErrCodeStepLimitExceeded
}

// IsStepLimitError returns true if the error is a *StepLimitError.
// Uses errors.As to handle wrapped errors.
func IsStepLimitError(err error) bool {
	var se *StepLimitError
	return errors.As(err, &se)
}
