// Package ast defines the equation tree and its evaluator.
//
// An equation is a two-sided tree:
//
//	Equation
//	├── Left  *Expression
//	└── Right *Expression
//
// An Expression is a signed sum of Terms, a Term is a product/quotient chain
// of Items, and an Item is one of *Number, *Unknown or a parenthesized
// *Expression. Item and Node are sealed interfaces: only the types in this
// package implement them, so type switches over them are exhaustive.
//
// OWNERSHIP:
// Every node exclusively owns its children. Nothing is shared between two
// parents and there are no cycles. Rewrites that need a modified tree work on
// a Clone.
//
// NUMBERS:
// Numbers are exact decimals (github.com/cockroachdb/apd/v3). Addition,
// subtraction and multiplication of literals stay exact; division is rounded
// to the evaluator's precision (34 digits by default), which keeps whole
// number results exact.
//
// INVARIANT:
// A well-formed equation contains at most one *Unknown anywhere in the tree.
// The parser and solver reject trees with more (MULTIPLE_UNKNOWNS).
package ast
