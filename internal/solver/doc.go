// Package solver isolates the unknown of a linear equation.
//
// The solver repeatedly applies one rewrite rule at a time until the left
// side of the equation is exactly the unknown (the fixed point). Rules are
// tried in order and the first one that applies wins:
//
//  1. swap    - the unknown is on the right: exchange the sides.
//  2. negate  - the left side is "-<term>": drop the sign and multiply the
//     whole right side by -1.
//  3. migrate - the left side has several terms: move the first term that
//     does not contain the unknown to the right side with its sign flipped.
//  4. unwrap  - the left side is a single parenthesized group: replace it by
//     its contents.
//
// Each rule is a pure function from equation to equation. The solver never
// mutates its input; every step produces a new tree.
//
// After every single rewrite the fixed-point predicate is checked again,
// since later rules depend on the updated tree shape.
//
// UNSUPPORTED:
// Multiplicative isolation is not implemented. An unknown that ends up
// inside a product or quotient ("2 = 84 / x", "2 * x = 6") is reported as
// UNSOLVABLE instead of being guessed at.
//
// TERMINATION:
// A step limit (DefaultMaxSteps unless configured) bounds the loop.
// Exceeding it returns a *StepLimitError; a partially rearranged tree is
// never returned.
package solver
