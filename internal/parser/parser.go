// Package parser turns equation text into an ast.Equation.
//
// The grammar is parsed by recursive descent with one character of
// lookahead over the normalized input:
//
//	equation   := expression [ '=' expression ]
//	expression := term ( ('+' | '-') term )*
//	term       := item ( ('*' | '/') item )*
//	item       := number | unknown | '(' expression ')'
//	number     := ['+'|'-'] digit+ ['.' digit+]
//	unknown    := single ASCII letter
//
// Input without '=' is treated as the right side of "x = <expression>".
//
// Before scanning, the input is NFKC-normalized and every Unicode whitespace
// character is removed, so whitespace is never significant. Error offsets
// refer to this normalized string.
//
// Known limitation: an unknown is always a single letter. "xy" is not a
// two-letter identifier; it fails at 'y' as an unexpected character.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/eqsolve/internal/ast"
)

// ImplicitUnknown is the unknown placed on the left side when the input has
// no '='.
const ImplicitUnknown = 'x'

// eof is returned by peek at end of input.
const eof = 0

// Parse parses text into an equation.
//
// Returns FORMAT_ERROR on malformed input and MULTIPLE_UNKNOWNS when the
// resulting tree holds more than one unknown.
func Parse(text string) (*ast.Equation, error) {
	p := &parser{input: Normalize(text)}

	eq, err := p.parseEquation()
	if err != nil {
		return nil, err
	}
	if err := ast.ValidateUnknowns(eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Normalize applies NFKC normalization and strips all whitespace.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, norm.NFKC.String(text))
}

type parser struct {
	input string
	pos   int
}

// peek returns the current byte, or eof at end of input.
func (p *parser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return eof
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *parser) next() {
	p.pos++
}

func (p *parser) parseEquation() (*ast.Equation, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch {
	case p.atEnd():
		return &ast.Equation{
			Left:  ast.NewExpression(ast.NewTerm(&ast.Unknown{Name: ImplicitUnknown})),
			Right: first,
		}, nil
	case p.peek() == '=':
		p.next()
	default:
		// parseExpression only stops at '=', ')' or end of input.
		return nil, p.unexpected()
	}

	second, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.unexpected()
	}
	return &ast.Equation{Left: first, Right: second}, nil
}

func (p *parser) parseExpression() (*ast.Expression, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	expr := &ast.Expression{Terms: []ast.SignedTerm{{Sign: ast.Plus, Term: term}}}

	for {
		var sign ast.Sign
		switch p.peek() {
		case eof, '=', ')':
			return expr, nil
		case '+':
			sign = ast.Plus
		case '-':
			sign = ast.Minus
		default:
			return nil, ast.NewFormatError(p.pos,
				"terms may only be separated by '+' or '-', got %q", p.current())
		}
		p.next()

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Terms = append(expr.Terms, ast.SignedTerm{Sign: sign, Term: term})
	}
}

func (p *parser) parseTerm() (*ast.Term, error) {
	item, err := p.parseItem()
	if err != nil {
		return nil, err
	}
	term := &ast.Term{Factors: []ast.Factor{{Op: ast.Mul, Item: item}}}

	for {
		var op ast.Op
		switch p.peek() {
		case eof, '+', '-', '=', ')':
			return term, nil
		case '*':
			op = ast.Mul
		case '/':
			op = ast.Div
		default:
			return nil, ast.NewFormatError(p.pos, "expected '*' or '/', got %q", p.current())
		}
		p.next()

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		term.Factors = append(term.Factors, ast.Factor{Op: op, Item: item})
	}
}

func (p *parser) parseItem() (ast.Item, error) {
	c := p.peek()
	switch {
	case isDigit(c) || c == '+' || c == '-':
		return p.parseNumber()
	case isLetter(c):
		p.next()
		return &ast.Unknown{Name: c}, nil
	case c == '(':
		return p.parseGroup()
	case c == eof:
		return nil, ast.NewFormatError(p.pos, "unexpected end of input, expected a number, unknown or '('")
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseGroup() (ast.Item, error) {
	open := p.pos
	p.next() // consume '('

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, ast.NewFormatError(p.pos, "expected closing parenthesis for '(' at offset %d", open)
	}
	p.next()
	return expr, nil
}

// parseNumber scans an optionally signed decimal literal. At least one digit
// is required before the point, and at least one after it if present.
func (p *parser) parseNumber() (ast.Item, error) {
	start := p.pos
	negative := false
	if c := p.peek(); c == '+' || c == '-' {
		negative = c == '-'
		p.next()
	}

	digitsStart := p.pos
	for isDigit(p.peek()) {
		p.next()
	}
	if p.pos == digitsStart {
		return nil, ast.NewFormatError(start, "expected number, got %q", p.input[start:p.pos])
	}

	if p.peek() == '.' {
		p.next()
		fracStart := p.pos
		for isDigit(p.peek()) {
			p.next()
		}
		if p.pos == fracStart {
			return nil, ast.NewFormatError(start, "expected digits after decimal point in %q", p.input[start:p.pos])
		}
	}

	n := &ast.Number{}
	if _, _, err := n.Value.SetString(p.input[digitsStart:p.pos]); err != nil {
		return nil, ast.NewFormatError(start, "invalid number %q: %v", p.input[start:p.pos], err)
	}
	if negative {
		n.Value.Neg(&n.Value)
	}
	return n, nil
}

// current returns the full (possibly multi-byte) character at the cursor.
func (p *parser) current() string {
	_, size := utf8.DecodeRuneInString(p.input[p.pos:])
	return p.input[p.pos : p.pos+size]
}

func (p *parser) unexpected() error {
	return ast.NewFormatError(p.pos, "unexpected character %q", p.current())
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
