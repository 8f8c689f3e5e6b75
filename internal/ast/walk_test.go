package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountUnknowns(t *testing.T) {
	x := &Unknown{Name: 'x'}
	nested := NewExpression(NewTerm(num("2"), NewExpression(NewTerm(&Unknown{Name: 'y'}))))

	assert.Equal(t, 0, CountUnknowns(num("1")))
	assert.Equal(t, 1, CountUnknowns(x))
	assert.Equal(t, 1, CountUnknowns(nested))
	assert.Equal(t, 2, CountUnknowns(NewExpression(NewTerm(x), NewTerm(nested))))
	assert.True(t, ContainsUnknown(nested))
	assert.False(t, ContainsUnknown(NewTerm(num("1"), num("2"))))
}

func TestFindUnknown(t *testing.T) {
	eq := &Equation{
		Left:  NewExpression(NewTerm(num("18"))),
		Right: NewExpression(NewTerm(&Unknown{Name: 'q'})),
	}
	u := FindUnknown(eq)
	require.NotNil(t, u)
	assert.Equal(t, byte('q'), u.Name)

	eq.Right = NewExpression(NewTerm(num("1")))
	assert.Nil(t, FindUnknown(eq))
}

func TestValidateUnknowns(t *testing.T) {
	assert.NoError(t, ValidateUnknowns(sampleEquation()))

	eq := &Equation{
		Left:  NewExpression(NewTerm(&Unknown{Name: 'x'}), NewTerm(&Unknown{Name: 'y'})),
		Right: NewExpression(NewTerm(num("1"))),
	}
	err := ValidateUnknowns(eq)
	require.Error(t, err)
	assert.True(t, IsMultipleUnknowns(err))
}

func TestIsIsolated(t *testing.T) {
	x := func() *Term { return NewTerm(&Unknown{Name: 'x'}) }
	right := func() *Expression { return NewExpression(NewTerm(num("1"))) }

	tests := []struct {
		name string
		left *Expression
		want bool
	}{
		{"bare unknown", NewExpression(x()), true},
		{"negated unknown", &Expression{Terms: []SignedTerm{{Sign: Minus, Term: x()}}}, false},
		{"two terms", NewExpression(x(), NewTerm(num("1"))), false},
		{"product", NewExpression(NewTerm(num("2"), &Unknown{Name: 'x'})), false},
		{"number", NewExpression(NewTerm(num("2"))), false},
		{"parenthesized unknown", NewExpression(NewTerm(NewExpression(x()))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIsolated(&Equation{Left: tt.left, Right: right()}))
		})
	}
}

func TestSubstitute(t *testing.T) {
	eq := sampleEquation()
	sub := Substitute(eq, num("8"))

	assert.Equal(t, "8 - 5 = 3", sub.String())
	assert.Equal(t, "x - 5 = 3", eq.String(), "substitution must not mutate the input")
	assert.Equal(t, 0, CountEquationUnknowns(sub))
}
