// Package record defines the persisted form of an evaluation.
//
// Records are written to the history store and compared in golden files, so
// their serialization must be deterministic. MarshalCanonical produces
// canonical JSON (sorted keys, NFC strings, no HTML escaping, no floats)
// and InputKey derives a content-addressed key from the input text.
package record

import (
	"errors"

	"github.com/roach88/eqsolve/internal/ast"
	"github.com/roach88/eqsolve/internal/equation"
	"github.com/roach88/eqsolve/internal/solver"
)

// Record is one evaluation, successful or not.
type Record struct {
	ID           string        `json:"id"`
	Input        string        `json:"input"`
	Solved       string        `json:"solved,omitempty"`
	Value        string        `json:"value,omitempty"`
	ErrorCode    string        `json:"error_code,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Steps        []solver.Step `json:"steps"`
	Seq          int64         `json:"seq"`
}

// OK reports whether the evaluation produced a value.
func (r *Record) OK() bool {
	return r.ErrorCode == ""
}

// FromOutcome builds a record from the result of equation.Solve.
// Exactly one of out and err must be non-nil.
func FromOutcome(id, input string, out *equation.Outcome, err error) *Record {
	r := &Record{ID: id, Input: input, Steps: []solver.Step{}}
	if err != nil {
		r.ErrorCode = string(ast.CodeOf(err))
		if r.ErrorCode == "" {
			r.ErrorCode = "INTERNAL"
		}
		r.ErrorMessage = RootMessage(err)
		return r
	}
	r.Solved = out.Solved.String()
	r.Value = out.Value.Text('f')
	r.Steps = append(r.Steps, out.Steps...)
	return r
}

// RootMessage returns the message of the innermost coded error, without the
// wrapping context added by the pipeline.
func RootMessage(err error) string {
	var ae *ast.Error
	if errors.As(err, &ae) {
		return ae.Error()
	}
	var se *solver.StepLimitError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// CanonicalMap converts the record to the generic form accepted by
// MarshalCanonical. The ID and Seq are store-assigned and left out so two
// evaluations of the same input compare equal.
func (r *Record) CanonicalMap() map[string]any {
	steps := make([]any, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = map[string]any{
			"index":    s.Index,
			"rule":     s.Rule,
			"equation": s.Equation,
		}
	}
	m := map[string]any{
		"input": r.Input,
		"steps": steps,
	}
	if r.Solved != "" {
		m["solved"] = r.Solved
	}
	if r.Value != "" {
		m["value"] = r.Value
	}
	if r.ErrorCode != "" {
		m["error_code"] = r.ErrorCode
		m["error_message"] = r.ErrorMessage
	}
	return m
}
