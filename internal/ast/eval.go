package ast

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant decimal digits kept by
// division (decimal128).
const DefaultPrecision = 34

// Evaluator walks a tree to a decimal value. It never mutates the tree.
type Evaluator struct {
	ctx *apd.Context
}

// NewEvaluator creates an evaluator rounding to precision significant digits.
// A precision of 0 selects DefaultPrecision.
func NewEvaluator(precision uint32) *Evaluator {
	if precision == 0 {
		precision = DefaultPrecision
	}
	return &Evaluator{ctx: apd.BaseContext.WithPrecision(precision)}
}

// Precision returns the evaluator's rounding precision.
func (ev *Evaluator) Precision() uint32 {
	return ev.ctx.Precision
}

// Evaluate computes the value of n.
//
// Returns UNBOUND_UNKNOWN if an *Unknown is reached and DIVISION_BY_ZERO if
// a divisor evaluates to exactly zero.
func (ev *Evaluator) Evaluate(n Node) (*apd.Decimal, error) {
	switch v := n.(type) {
	case *Number:
		return new(apd.Decimal).Set(&v.Value), nil
	case *Unknown:
		return nil, NewUnboundUnknownError(fmt.Sprintf("cannot evaluate unknown %q", v.String()))
	case *Term:
		return ev.evaluateTerm(v)
	case *Expression:
		return ev.evaluateExpression(v)
	default:
		panic("ast: unknown node type")
	}
}

// EvaluateEquation evaluates the right side of an equation whose left side
// is the isolated unknown.
func (ev *Evaluator) EvaluateEquation(eq *Equation) (*apd.Decimal, error) {
	if !IsIsolated(eq) {
		return nil, NewUnboundUnknownError(
			fmt.Sprintf("left side %q is not an isolated unknown", eq.Left.Sum()))
	}
	return ev.Evaluate(eq.Right)
}

func (ev *Evaluator) evaluateExpression(e *Expression) (*apd.Decimal, error) {
	sum := new(apd.Decimal)
	for _, st := range e.Terms {
		v, err := ev.evaluateTerm(st.Term)
		if err != nil {
			return nil, err
		}
		next := new(apd.Decimal)
		if st.Sign == Minus {
			_, err = ev.ctx.Sub(next, sum, v)
		} else {
			_, err = ev.ctx.Add(next, sum, v)
		}
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", e.String(), err)
		}
		sum = next
	}
	return sum, nil
}

func (ev *Evaluator) evaluateTerm(t *Term) (*apd.Decimal, error) {
	product := apd.New(1, 0)
	for i, f := range t.Factors {
		v, err := ev.Evaluate(f.Item)
		if err != nil {
			return nil, err
		}
		next := new(apd.Decimal)
		if i > 0 && f.Op == Div {
			if v.IsZero() {
				return nil, NewDivisionByZeroError(f.Item)
			}
			_, err = ev.ctx.Quo(next, product, v)
		} else {
			_, err = ev.ctx.Mul(next, product, v)
		}
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", t.String(), err)
		}
		product = next
	}
	return product, nil
}
