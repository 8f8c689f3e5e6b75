package harness

import "github.com/roach88/eqsolve/internal/record"

// CaseResult is the outcome of one scenario case.
type CaseResult struct {
	// Index is the 1-based case position.
	Index int `json:"index"`

	// Record is the evaluation as written to the history store.
	Record *record.Record `json:"record"`

	// Pass is true if the outcome matched the case's expect clause.
	Pass bool `json:"pass"`
}

// Rules returns the names of the rules applied in order.
func (c CaseResult) Rules() []string {
	rules := make([]string, len(c.Record.Steps))
	for i, s := range c.Record.Steps {
		rules[i] = s.Rule
	}
	return rules
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every case matched and every
	// assertion held.
	Pass bool `json:"pass"`

	// Cases holds per-case outcomes in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
