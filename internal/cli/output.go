package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/eqsolve/internal/ast"
	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/solver"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Evaluation failure, failed scenarios, history drift
	ExitCommandError = 2 // Command error (bad flags, config, database)
)

// Error codes for failures that are not evaluation errors.
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeTestFailed = "TEST_FAILED"
	ErrCodeDrift      = "HISTORY_DRIFT"
	ErrCodeInvalid    = "INVALID_FILE"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is true when the command already wrote the error to its
	// output, so the caller must not print it again.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from cobra itself (unknown flags,
// wrong argument count) and map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// IsReported reports whether err was already written by the command.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "FORMAT_ERROR", "TEST_FAILED", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result. text is printed as-is in text mode;
// data is the JSON payload.
func (f *OutputFormatter) Success(text string, data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// EvalFailure writes an evaluation error and returns the reported
// ExitError for it.
func (f *OutputFormatter) EvalFailure(err error) error {
	code := string(ast.CodeOf(err))
	if code == "" {
		code = ErrCodeInternal
	}
	// The code is reported separately, so drop it from the message
	message := strings.TrimPrefix(record.RootMessage(err), code+": ")
	if werr := f.Error(code, message, errorDetails(err)); werr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", werr)
	}
	exitErr := WrapExitError(ExitFailure, "evaluation failed", err)
	exitErr.Reported = true
	return exitErr
}

// errorDetails extracts structured context from evaluation errors.
func errorDetails(err error) map[string]any {
	details := map[string]any{}

	var ae *ast.Error
	if errors.As(err, &ae) {
		if ae.Pos != ast.NoPos {
			details["offset"] = ae.Pos
		}
		for k, v := range ae.Details {
			details[k] = v
		}
	}

	var se *solver.StepLimitError
	if errors.As(err, &se) {
		details["steps"] = se.Steps
		details["limit"] = se.Limit
		if se.Equation != "" {
			details["equation"] = se.Equation
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// IsExitError reports whether err carries an explicit exit code.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
