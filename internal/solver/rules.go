package solver

import (
	"github.com/roach88/eqsolve/internal/ast"
)

// RewriteFunc is one rearrangement rule. It returns a rewritten copy of the
// equation and true, or (nil, false) if the rule does not apply. The input
// is never modified.
type RewriteFunc func(eq *ast.Equation) (*ast.Equation, bool)

// Rule names a RewriteFunc for step traces.
type Rule struct {
	Name    string
	Rewrite RewriteFunc
}

// Rule names.
const (
	RuleSwap    = "swap"
	RuleNegate  = "negate"
	RuleMigrate = "migrate"
	RuleUnwrap  = "unwrap"
)

// DefaultRules returns the rules in the order they are tried.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleSwap, Rewrite: Swap},
		{Name: RuleNegate, Rewrite: Negate},
		{Name: RuleMigrate, Rewrite: Migrate},
		{Name: RuleUnwrap, Rewrite: Unwrap},
	}
}

// Swap exchanges the sides when the unknown occurs on the right.
func Swap(eq *ast.Equation) (*ast.Equation, bool) {
	if !ast.ContainsUnknown(eq.Right) {
		return nil, false
	}
	return &ast.Equation{
		Left:  eq.Right.Clone(),
		Right: eq.Left.Clone(),
	}, true
}

// Negate rewrites "-t = r" as "t = -1 * (r)".
// Applies when the left side is a single explicitly negated term, i.e. two
// flattened slots.
func Negate(eq *ast.Equation) (*ast.Equation, bool) {
	if eq.Left.Slots() != 2 {
		return nil, false
	}
	out := eq.Clone()
	out.Left.Terms[0].Sign = ast.Plus
	out.Right = ast.NewExpression(ast.NewTerm(ast.NewInt(-1), out.Right))
	return out, true
}

// Migrate moves the first left-side term that does not contain the unknown
// to the end of the right side, flipping its sign.
//
// If the moved term was first, the following term keeps its own sign and
// becomes the new leading term: "-3 - x" loses "-3" and becomes "-x".
func Migrate(eq *ast.Equation) (*ast.Equation, bool) {
	if len(eq.Left.Terms) < 2 {
		return nil, false
	}
	idx := -1
	for i, st := range eq.Left.Terms {
		if !ast.ContainsUnknown(st.Term) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	out := eq.Clone()
	moved := out.Left.Terms[idx]
	out.Left.Terms = append(out.Left.Terms[:idx], out.Left.Terms[idx+1:]...)
	out.Right.Terms = append(out.Right.Terms, ast.SignedTerm{
		Sign: moved.Sign.Flip(),
		Term: moved.Term,
	})
	return out, true
}

// Unwrap replaces a left side that is a single parenthesized group with the
// group's contents: "(x + 1) = 3" becomes "x + 1 = 3".
func Unwrap(eq *ast.Equation) (*ast.Equation, bool) {
	left := eq.Left
	if len(left.Terms) != 1 || left.Terms[0].Sign != ast.Plus {
		return nil, false
	}
	factors := left.Terms[0].Term.Factors
	if len(factors) != 1 {
		return nil, false
	}
	inner, ok := factors[0].Item.(*ast.Expression)
	if !ok {
		return nil, false
	}
	return &ast.Equation{
		Left:  inner.Clone(),
		Right: eq.Right.Clone(),
	}, true
}
