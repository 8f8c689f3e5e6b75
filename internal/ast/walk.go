package ast

// ContainsUnknown reports whether an *Unknown occurs anywhere below n.
// This is a recursive walk bounded by the depth of the parsed input.
func ContainsUnknown(n Node) bool {
	return CountUnknowns(n) > 0
}

// CountUnknowns returns the number of *Unknown instances below n.
func CountUnknowns(n Node) int {
	switch v := n.(type) {
	case *Number:
		return 0
	case *Unknown:
		return 1
	case *Term:
		count := 0
		for _, f := range v.Factors {
			count += CountUnknowns(f.Item)
		}
		return count
	case *Expression:
		count := 0
		for _, st := range v.Terms {
			count += CountUnknowns(st.Term)
		}
		return count
	default:
		panic("ast: unknown node type")
	}
}

// CountEquationUnknowns returns the number of *Unknown instances on both sides.
func CountEquationUnknowns(eq *Equation) int {
	return CountUnknowns(eq.Left) + CountUnknowns(eq.Right)
}

// FindUnknown returns the first unknown in the equation, searching the left
// side before the right, or nil if there is none.
func FindUnknown(eq *Equation) *Unknown {
	if u := findUnknown(eq.Left); u != nil {
		return u
	}
	return findUnknown(eq.Right)
}

func findUnknown(n Node) *Unknown {
	switch v := n.(type) {
	case *Number:
		return nil
	case *Unknown:
		return v
	case *Term:
		for _, f := range v.Factors {
			if u := findUnknown(f.Item); u != nil {
				return u
			}
		}
		return nil
	case *Expression:
		for _, st := range v.Terms {
			if u := findUnknown(st.Term); u != nil {
				return u
			}
		}
		return nil
	default:
		panic("ast: unknown node type")
	}
}

// ValidateUnknowns returns a MULTIPLE_UNKNOWNS error when the equation holds
// more than one unknown instance.
func ValidateUnknowns(eq *Equation) error {
	if count := CountEquationUnknowns(eq); count > 1 {
		return NewMultipleUnknownsError(count)
	}
	return nil
}

// IsIsolated reports whether the left side is exactly one term holding
// exactly one item, and that item is the unknown. This is the solver's
// fixed point.
func IsIsolated(eq *Equation) bool {
	left := eq.Left
	if len(left.Terms) != 1 || left.Terms[0].Sign != Plus {
		return false
	}
	factors := left.Terms[0].Term.Factors
	if len(factors) != 1 {
		return false
	}
	_, ok := factors[0].Item.(*Unknown)
	return ok
}

// Substitute returns a copy of the equation with every unknown replaced by
// the number value.
func Substitute(eq *Equation, value *Number) *Equation {
	return &Equation{
		Left:  substituteExpression(eq.Left, value),
		Right: substituteExpression(eq.Right, value),
	}
}

func substituteExpression(e *Expression, value *Number) *Expression {
	c := &Expression{Terms: make([]SignedTerm, len(e.Terms))}
	for i, st := range e.Terms {
		t := &Term{Factors: make([]Factor, len(st.Term.Factors))}
		for j, f := range st.Term.Factors {
			t.Factors[j] = Factor{Op: f.Op, Item: substituteItem(f.Item, value)}
		}
		c.Terms[i] = SignedTerm{Sign: st.Sign, Term: t}
	}
	return c
}

func substituteItem(it Item, value *Number) Item {
	switch v := it.(type) {
	case *Number:
		return NewNumber(&v.Value)
	case *Unknown:
		return NewNumber(&value.Value)
	case *Expression:
		return substituteExpression(v, value)
	default:
		panic("ast: unknown item type")
	}
}
