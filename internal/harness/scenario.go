package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/roach88/eqsolve/internal/ast"
)

// Scenario defines a batch of equations and the outcomes they must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxSteps overrides the solver step limit. Nil uses the default.
	MaxSteps *int `yaml:"max_steps,omitempty"`

	// NoLimit disables the step limit.
	NoLimit bool `yaml:"no_limit,omitempty"`

	// Precision overrides the division precision. Zero uses the default.
	Precision uint32 `yaml:"precision,omitempty"`

	// Cases are evaluated in order.
	Cases []Case `yaml:"cases"`

	// Assertions validate traces and history after all cases ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one equation and its expected outcome.
type Case struct {
	Input  string `yaml:"input"`
	Expect Expect `yaml:"expect"`
}

// Expect holds exactly one of Value or Error.
type Expect struct {
	// Value is the expected decimal value of the unknown. Compared
	// numerically, so "8" and "8.0" are equal.
	Value string `yaml:"value,omitempty"`

	// Error is the expected error code (e.g. "FORMAT_ERROR").
	Error string `yaml:"error,omitempty"`
}

// Assertion validates a case's trace or the final history.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": case's trace applies Rule at least once
	// - "trace_order": case's trace applies Rules in this relative order
	// - "trace_count": case's trace has Count steps (of Rule, if set)
	// - "history_count": history holds Count records (with Error code, if set)
	Type string `yaml:"type"`

	// Case is the 1-based case index (trace assertions).
	Case int `yaml:"case,omitempty"`

	// Rule is a rule name (trace_contains, trace_count).
	Rule string `yaml:"rule,omitempty"`

	// Rules is the expected rule order (trace_order).
	Rules []string `yaml:"rules,omitempty"`

	// Count is the expected number of occurrences (trace_count, history_count).
	Count *int `yaml:"count,omitempty"`

	// Error filters history_count by error code.
	Error string `yaml:"error,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertHistoryCount  = "history_count"
)

var knownCodes = []string{
	string(ast.ErrCodeFormat),
	string(ast.ErrCodeMultipleUnknowns),
	string(ast.ErrCodeUnsolvable),
	string(ast.ErrCodeStepLimitExceeded),
	string(ast.ErrCodeUnboundUnknown),
	string(ast.ErrCodeDivisionByZero),
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "case:" vs "cases:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	if s.MaxSteps != nil && *s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be >= 0, got %d", *s.MaxSteps)
	}

	for i, c := range s.Cases {
		hasValue, hasError := c.Expect.Value != "", c.Expect.Error != ""
		switch {
		case hasValue && hasError:
			return fmt.Errorf("cases[%d]: expect must have either value or error, not both", i)
		case !hasValue && !hasError:
			return fmt.Errorf("cases[%d]: expect requires value or error", i)
		case hasValue:
			if _, _, err := apd.NewFromString(c.Expect.Value); err != nil {
				return fmt.Errorf("cases[%d]: expect.value %q is not a decimal", i, c.Expect.Value)
			}
		case hasError:
			if !slices.Contains(knownCodes, c.Expect.Error) {
				return fmt.Errorf("cases[%d]: unknown error code %q", i, c.Expect.Error)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, len(s.Cases)); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion, numCases int) error {
	switch a.Type {
	case AssertTraceContains, AssertTraceOrder, AssertTraceCount:
		if a.Case < 1 || a.Case > numCases {
			return fmt.Errorf("%s: case must be between 1 and %d, got %d", a.Type, numCases, a.Case)
		}
	case AssertHistoryCount:
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Rule == "" {
			return fmt.Errorf("trace_contains requires rule")
		}
	case AssertTraceOrder:
		if len(a.Rules) == 0 {
			return fmt.Errorf("trace_order requires rules")
		}
	case AssertTraceCount, AssertHistoryCount:
		if a.Count == nil {
			return fmt.Errorf("%s requires count", a.Type)
		}
	}
	return nil
}
