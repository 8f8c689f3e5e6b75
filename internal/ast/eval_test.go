package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqsolve/internal/testutil"
)

func TestEvaluate_Number(t *testing.T) {
	ev := NewEvaluator(0)
	got, err := ev.Evaluate(num("1.25"))
	require.NoError(t, err)
	assert.Equal(t, "1.25", got.String())
}

func TestEvaluate_LeftToRight(t *testing.T) {
	ev := NewEvaluator(0)

	// 8 / 4 * 2 is (8 / 4) * 2
	term := &Term{Factors: []Factor{
		{Op: Mul, Item: num("8")},
		{Op: Div, Item: num("4")},
		{Op: Mul, Item: num("2")},
	}}
	got, err := ev.Evaluate(term)
	require.NoError(t, err)
	assert.True(t, testutil.DecEqual(testutil.Dec("4"), got), "got %s", got)

	// 7 - 10 + 1
	expr := &Expression{Terms: []SignedTerm{
		{Sign: Plus, Term: NewTerm(num("7"))},
		{Sign: Minus, Term: NewTerm(num("10"))},
		{Sign: Plus, Term: NewTerm(num("1"))},
	}}
	got, err = ev.Evaluate(expr)
	require.NoError(t, err)
	assert.True(t, testutil.DecEqual(testutil.Dec("-2"), got), "got %s", got)
}

func TestEvaluate_LeadingMinusTerm(t *testing.T) {
	ev := NewEvaluator(0)
	expr := &Expression{Terms: []SignedTerm{{Sign: Minus, Term: NewTerm(num("6"), num("9"))}}}
	got, err := ev.Evaluate(expr)
	require.NoError(t, err)
	assert.True(t, testutil.DecEqual(testutil.Dec("-54"), got), "got %s", got)
}

func TestEvaluate_DivisionPrecision(t *testing.T) {
	ev := NewEvaluator(5)
	term := &Term{Factors: []Factor{{Op: Mul, Item: num("1")}, {Op: Div, Item: num("3")}}}
	got, err := ev.Evaluate(term)
	require.NoError(t, err)
	assert.Equal(t, "0.33333", got.String())
	assert.Equal(t, uint32(5), ev.Precision())
	assert.Equal(t, uint32(DefaultPrecision), NewEvaluator(0).Precision())
}

func TestEvaluate_WholeNumberDivisionIsExact(t *testing.T) {
	ev := NewEvaluator(0)
	term := &Term{Factors: []Factor{{Op: Mul, Item: num("84")}, {Op: Div, Item: num("42")}}}
	got, err := ev.Evaluate(term)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(testutil.Dec("2")))
}

func TestEvaluate_Unknown(t *testing.T) {
	ev := NewEvaluator(0)
	_, err := ev.Evaluate(NewExpression(NewTerm(num("2"), &Unknown{Name: 'x'})))
	require.Error(t, err)
	assert.True(t, IsUnboundUnknown(err))
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	ev := NewEvaluator(0)
	zero := &Expression{Terms: []SignedTerm{
		{Sign: Plus, Term: NewTerm(num("2"))},
		{Sign: Minus, Term: NewTerm(num("2"))},
	}}
	term := &Term{Factors: []Factor{{Op: Mul, Item: num("5")}, {Op: Div, Item: zero}}}

	_, err := ev.Evaluate(term)
	require.Error(t, err)
	assert.True(t, IsDivisionByZero(err))
	assert.Contains(t, err.Error(), "(2 - 2)")
}

func TestEvaluateEquation(t *testing.T) {
	ev := NewEvaluator(0)
	eq := &Equation{
		Left:  NewExpression(NewTerm(&Unknown{Name: 'x'})),
		Right: NewExpression(NewTerm(num("14"), num("3"))),
	}
	got, err := ev.EvaluateEquation(eq)
	require.NoError(t, err)
	assert.Equal(t, "42", got.String())

	_, err = ev.EvaluateEquation(sampleEquation())
	require.Error(t, err)
	assert.True(t, IsUnboundUnknown(err))
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	ev := NewEvaluator(0)
	eq := &Equation{
		Left:  NewExpression(NewTerm(&Unknown{Name: 'x'})),
		Right: NewExpression(NewTerm(num("6")), NewTerm(num("4"))),
	}
	before := eq.String()
	_, err := ev.EvaluateEquation(eq)
	require.NoError(t, err)
	assert.Equal(t, before, eq.String())
}
