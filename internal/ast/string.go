package ast

import "strings"

// String renders the number in plain (non-exponent) decimal notation.
func (n *Number) String() string {
	return n.Value.Text('f')
}

func (u *Unknown) String() string {
	return string(u.Name)
}

// String renders factors separated by " * " and " / ".
func (t *Term) String() string {
	var b strings.Builder
	for i, f := range t.Factors {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(f.Op.String())
			b.WriteString(" ")
		}
		b.WriteString(f.Item.String())
	}
	return b.String()
}

// String renders the expression as a parenthesized group, the form it takes
// when it appears as an Item. Use Sum for the unparenthesized side of an
// equation.
func (e *Expression) String() string {
	return "(" + e.Sum() + ")"
}

// Sum renders the expression without surrounding parentheses.
func (e *Expression) Sum() string {
	var b strings.Builder
	for i, st := range e.Terms {
		switch {
		case i == 0 && st.Sign == Minus:
			b.WriteString("-")
		case i > 0:
			b.WriteString(" ")
			b.WriteString(st.Sign.String())
			b.WriteString(" ")
		}
		b.WriteString(st.Term.String())
	}
	return b.String()
}

func (eq *Equation) String() string {
	return eq.Left.Sum() + " = " + eq.Right.Sum()
}
