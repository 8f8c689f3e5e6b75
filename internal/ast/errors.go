package ast

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes equation errors.
type ErrorCode string

const (
	// ErrCodeFormat indicates malformed input syntax.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"

	// ErrCodeMultipleUnknowns indicates more than one unknown in the tree.
	ErrCodeMultipleUnknowns ErrorCode = "MULTIPLE_UNKNOWNS"

	// ErrCodeUnsolvable indicates no supported rewrite isolates the unknown.
	ErrCodeUnsolvable ErrorCode = "UNSOLVABLE"

	// ErrCodeStepLimitExceeded indicates rearrangement did not converge.
	ErrCodeStepLimitExceeded ErrorCode = "STEP_LIMIT_EXCEEDED"

	// ErrCodeUnboundUnknown indicates evaluation reached an unknown.
	ErrCodeUnboundUnknown ErrorCode = "UNBOUND_UNKNOWN"

	// ErrCodeDivisionByZero indicates a divisor evaluated to zero.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"
)

// NoPos marks an error that is not tied to an input offset.
const NoPos = -1

// Error is the error type returned by parsing, solving and evaluation.
//
// All errors are terminal: callers never receive a partial tree or value
// alongside an Error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Pos is the 0-based offset into the normalized input, or NoPos.
	Pos int

	// Details contains additional context (e.g. the offending equation).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos != NoPos {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Code, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the error category. Other packages' error types
// implement the same method so CodeOf can classify them.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// coded is implemented by every error type that carries an ErrorCode.
type coded interface {
	ErrorCode() ErrorCode
}

// CodeOf returns the ErrorCode of err, or "" if err carries none.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// IsFormatError reports whether err is a FORMAT_ERROR.
func IsFormatError(err error) bool { return CodeOf(err) == ErrCodeFormat }

// IsMultipleUnknowns reports whether err is a MULTIPLE_UNKNOWNS error.
func IsMultipleUnknowns(err error) bool { return CodeOf(err) == ErrCodeMultipleUnknowns }

// IsUnsolvable reports whether err is an UNSOLVABLE error.
func IsUnsolvable(err error) bool { return CodeOf(err) == ErrCodeUnsolvable }

// IsStepLimitExceeded reports whether err is a STEP_LIMIT_EXCEEDED error.
func IsStepLimitExceeded(err error) bool { return CodeOf(err) == ErrCodeStepLimitExceeded }

// IsUnboundUnknown reports whether err is an UNBOUND_UNKNOWN error.
func IsUnboundUnknown(err error) bool { return CodeOf(err) == ErrCodeUnboundUnknown }

// IsDivisionByZero reports whether err is a DIVISION_BY_ZERO error.
func IsDivisionByZero(err error) bool { return CodeOf(err) == ErrCodeDivisionByZero }

// NewFormatError creates a FORMAT_ERROR at the given input offset.
func NewFormatError(pos int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeFormat,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// NewMultipleUnknownsError creates a MULTIPLE_UNKNOWNS error.
func NewMultipleUnknownsError(count int) *Error {
	return &Error{
		Code:    ErrCodeMultipleUnknowns,
		Message: fmt.Sprintf("equation contains %d unknowns, at most one is allowed", count),
		Pos:     NoPos,
		Details: map[string]string{"count": fmt.Sprintf("%d", count)},
	}
}

// NewUnsolvableError creates an UNSOLVABLE error for the given equation.
func NewUnsolvableError(eq *Equation, reason string) *Error {
	e := &Error{
		Code:    ErrCodeUnsolvable,
		Message: reason,
		Pos:     NoPos,
	}
	if eq != nil {
		e.Details = map[string]string{"equation": eq.String()}
	}
	return e
}

// NewUnboundUnknownError creates an UNBOUND_UNKNOWN error.
func NewUnboundUnknownError(message string) *Error {
	return &Error{
		Code:    ErrCodeUnboundUnknown,
		Message: message,
		Pos:     NoPos,
	}
}

// NewDivisionByZeroError creates a DIVISION_BY_ZERO error for the divisor.
func NewDivisionByZeroError(divisor Item) *Error {
	return &Error{
		Code:    ErrCodeDivisionByZero,
		Message: fmt.Sprintf("division by zero: %s evaluates to 0", divisor.String()),
		Pos:     NoPos,
	}
}
