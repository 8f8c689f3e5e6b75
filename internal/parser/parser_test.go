package parser

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqsolve/internal/ast"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single value", "15", "x = 15"},
		{"decimal", "1.25", "x = 1.25"},
		{"addition", "2+3", "x = 2 + 3"},
		{"subtraction with spaces", "7-      10", "x = 7 - 10"},
		{"negative literal", "-8    /4", "x = -8 / 4"},
		{"explicit plus literal", "2*+3", "x = 2 * 3"},
		{"minus minus", "7--3", "x = 7 - -3"},
		{"brackets", "6*(4-2)", "x = 6 * (4 - 2)"},
		{"nested brackets", "(8/(   6  + (-2)))", "x = (8 / (6 + (-2)))"},
		{"assignment", "   x=14*3", "x = 14 * 3"},
		{"unknown in denominator", "2=84/   x", "2 = 84 / x"},
		{"unknown on right", "18/9=x", "18 / 9 = x"},
		{"leading negative number", "-3-x = -4", "-3 - x = -4"},
		{"uppercase unknown", "Q + 1 = 2", "Q + 1 = 2"},
		{"tabs and newlines", "x\t=\n1\r\n+ 2", "x = 1 + 2"},
		{"full-width characters", "１＋２", "x = 1 + 2"},
		{"whitespace between digits", "1 2", "x = 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eq.String())
		})
	}
}

func TestParse_TreeShape(t *testing.T) {
	eq, err := Parse("16 + x = 12")
	require.NoError(t, err)

	require.Len(t, eq.Left.Terms, 2)
	assert.Equal(t, ast.Plus, eq.Left.Terms[0].Sign)
	assert.Equal(t, ast.Plus, eq.Left.Terms[1].Sign)
	require.Len(t, eq.Left.Terms[1].Term.Factors, 1)
	u, ok := eq.Left.Terms[1].Term.Factors[0].Item.(*ast.Unknown)
	require.True(t, ok)
	assert.Equal(t, byte('x'), u.Name)

	require.Len(t, eq.Right.Terms, 1)
	n, ok := eq.Right.Terms[0].Term.Factors[0].Item.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, "12", n.String())
}

func TestParse_NegativeLiteralIsItem(t *testing.T) {
	// In item position the sign belongs to the literal, not to the expression.
	eq, err := Parse("-3-x=-4")
	require.NoError(t, err)

	require.Len(t, eq.Left.Terms, 2)
	assert.Equal(t, ast.Plus, eq.Left.Terms[0].Sign)
	n := eq.Left.Terms[0].Term.Factors[0].Item.(*ast.Number)
	assert.Equal(t, "-3", n.String())
	assert.Equal(t, ast.Minus, eq.Left.Terms[1].Sign)
}

func TestParse_DivisionOperators(t *testing.T) {
	eq, err := Parse("8/4*2")
	require.NoError(t, err)

	factors := eq.Right.Terms[0].Term.Factors
	require.Len(t, factors, 3)
	assert.Equal(t, ast.Div, factors[1].Op)
	assert.Equal(t, ast.Mul, factors[2].Op)
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pos     int
		message string
	}{
		{"dangling operator", "2*", 2, "unexpected end of input"},
		{"empty", "", 0, "unexpected end of input"},
		{"whitespace only", "   ", 0, "unexpected end of input"},
		{"lone minus", "-", 0, `expected number, got "-"`},
		{"minus before unknown", "-x=4", 0, `expected number, got "-"`},
		{"lone point", ".", 0, `unexpected character "."`},
		{"leading point", ".5", 0, `unexpected character "."`},
		{"trailing point", "5.", 0, `expected digits after decimal point in "5."`},
		{"unclosed paren", "(1+2", 4, "expected closing parenthesis for '(' at offset 0"},
		{"unopened paren", "2)", 1, `unexpected character ")"`},
		{"second equals", "1=2=3", 3, `unexpected character "="`},
		{"two letters", "xy=1", 1, `expected '*' or '/', got "y"`},
		{"bad operator", "2 # 3", 1, `expected '*' or '/', got "#"`},
		{"non-ascii letter", "2*é", 2, `unexpected character "é"`},
		{"empty group", "()", 1, `unexpected character ")"`},
		{"missing right side", "x=", 2, "unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, ast.IsFormatError(err), "want FORMAT_ERROR, got %v", err)

			var perr *ast.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Contains(t, perr.Message, tt.message)
		})
	}
}

func TestParse_MultipleUnknowns(t *testing.T) {
	inputs := []string{
		"x+y=1",
		"x = x + 1",
		"y + 2", // implicit x on the left
		"x",     // x = x
		"2*(a+b)=3",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, ast.IsMultipleUnknowns(err), "want MULTIPLE_UNKNOWNS, got %v", err)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "x=1+2", Normalize(" x = 1 +\t2\n"))
	assert.Equal(t, "12", Normalize("１２"))
}

// TestParse_WhitespaceInvariance inserts random whitespace between every
// character of valid inputs and checks the tree is unchanged.
func TestParse_WhitespaceInvariance(t *testing.T) {
	inputs := []string{
		"2+3", "7-10", "6*9", "-8/4", "6*(4-2)", "(8/(6+(-2)))",
		"x=14*3", "18/9=x", "x-5=3", "16+x=12", "-3-x=-4", "1.5*2.25",
	}
	spaces := []string{" ", "\t", "\n", "  ", " ", " "}
	rng := rand.New(rand.NewSource(42))

	for _, input := range inputs {
		want, err := Parse(input)
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			var b strings.Builder
			for _, r := range input {
				if rng.Intn(2) == 0 {
					b.WriteString(spaces[rng.Intn(len(spaces))])
				}
				b.WriteRune(r)
			}
			b.WriteString(spaces[rng.Intn(len(spaces))])

			got, err := Parse(b.String())
			require.NoError(t, err, "input %q", b.String())
			assert.Equal(t, want.String(), got.String(), "input %q", b.String())
		}
	}
}
