package ast

import (
	"github.com/cockroachdb/apd/v3"
)

// Node is a sealed interface over the evaluable tree nodes.
// Only *Number, *Unknown, *Term and *Expression implement it.
type Node interface {
	node() // Sealed
	String() string
}

// Item is a sealed interface over the operands of a Term.
// Only *Number, *Unknown and *Expression (a parenthesized group) implement it.
type Item interface {
	Node
	item() // Sealed
}

// Sign is the additive sign carried by a term inside an Expression.
type Sign int

const (
	Plus Sign = iota
	Minus
)

// Flip returns the opposite sign.
func (s Sign) Flip() Sign {
	if s == Minus {
		return Plus
	}
	return Minus
}

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Op is the multiplicative operator that precedes a factor inside a Term.
type Op int

const (
	Mul Op = iota
	Div
)

func (o Op) String() string {
	if o == Div {
		return "/"
	}
	return "*"
}

// Number is an exact decimal literal.
type Number struct {
	Value apd.Decimal
}

func (*Number) node() {}
func (*Number) item() {}

// NewNumber creates a Number holding a copy of d.
func NewNumber(d *apd.Decimal) *Number {
	n := &Number{}
	n.Value.Set(d)
	return n
}

// NewInt creates a Number from an int64.
func NewInt(v int64) *Number {
	n := &Number{}
	n.Value.SetInt64(v)
	return n
}

// Unknown is the single free variable of an equation.
// It never holds a value; evaluating it is an error.
type Unknown struct {
	Name byte
}

func (*Unknown) node() {}
func (*Unknown) item() {}

// Factor is one operand of a Term together with its leading operator.
// The operator of the first factor is ignored (implicit multiply).
type Factor struct {
	Op   Op
	Item Item
}

// Term is a left-to-right chain of multiplications and divisions.
type Term struct {
	Factors []Factor
}

func (*Term) node() {}

// NewTerm builds a Term whose factors are all multiplied.
func NewTerm(items ...Item) *Term {
	t := &Term{Factors: make([]Factor, len(items))}
	for i, it := range items {
		t.Factors[i] = Factor{Op: Mul, Item: it}
	}
	return t
}

// SignedTerm is a Term inside an Expression with its additive sign.
// The first term of an Expression is Plus unless it was explicitly negated.
type SignedTerm struct {
	Sign Sign
	Term *Term
}

// Expression is a left-to-right signed sum of terms.
// As an Item it represents a parenthesized group.
type Expression struct {
	Terms []SignedTerm
}

func (*Expression) node() {}
func (*Expression) item() {}

// NewExpression builds an Expression whose terms are all added.
func NewExpression(terms ...*Term) *Expression {
	e := &Expression{Terms: make([]SignedTerm, len(terms))}
	for i, t := range terms {
		e.Terms[i] = SignedTerm{Sign: Plus, Term: t}
	}
	return e
}

// Slots returns the length of the expression written as a flat alternating
// sign/term list: 2n-1 with an implicit leading sign, 2n with an explicit
// leading minus.
func (e *Expression) Slots() int {
	if len(e.Terms) == 0 {
		return 0
	}
	n := 2*len(e.Terms) - 1
	if e.Terms[0].Sign == Minus {
		n++
	}
	return n
}

// Equation is left = right. Either side may be rewritten while solving.
type Equation struct {
	Left  *Expression
	Right *Expression
}

// Clone returns a deep copy of the equation.
func (eq *Equation) Clone() *Equation {
	return &Equation{
		Left:  eq.Left.Clone(),
		Right: eq.Right.Clone(),
	}
}

// Clone returns a deep copy of the expression.
func (e *Expression) Clone() *Expression {
	c := &Expression{Terms: make([]SignedTerm, len(e.Terms))}
	for i, st := range e.Terms {
		c.Terms[i] = SignedTerm{Sign: st.Sign, Term: st.Term.Clone()}
	}
	return c
}

// Clone returns a deep copy of the term.
func (t *Term) Clone() *Term {
	c := &Term{Factors: make([]Factor, len(t.Factors))}
	for i, f := range t.Factors {
		c.Factors[i] = Factor{Op: f.Op, Item: cloneItem(f.Item)}
	}
	return c
}

func cloneItem(it Item) Item {
	switch v := it.(type) {
	case *Number:
		return NewNumber(&v.Value)
	case *Unknown:
		return &Unknown{Name: v.Name}
	case *Expression:
		return v.Clone()
	default:
		panic("ast: unknown item type")
	}
}
