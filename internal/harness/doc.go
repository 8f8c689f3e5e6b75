// Package harness runs YAML scenario files against the equation pipeline.
//
// A scenario lists equation inputs with their expected value or error code,
// plus optional assertions over the rearrangement trace and the evaluation
// history. Each scenario runs against a fresh in-memory history store with
// sequential record IDs, so results and golden snapshots are reproducible.
//
// Example scenario:
//
//	name: additive
//	description: Single migrate step for one additive term
//	cases:
//	  - input: "x - 5 = 3"
//	    expect: { value: "8" }
//	  - input: "2*"
//	    expect: { error: FORMAT_ERROR }
//	assertions:
//	  - type: trace_contains
//	    case: 1
//	    rule: migrate
//
// Golden snapshots live in testdata/golden/<name>.golden and are compared
// with RunWithGolden. Regenerate them with:
//
//	go test ./internal/harness -update
package harness
