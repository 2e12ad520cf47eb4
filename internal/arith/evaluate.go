package arith

import (
	"sort"
	"strings"

	"github.com/vytor/mathsprint/internal/errors"
)

const overflowMessage = "Expression is too large to evaluate exactly."

// Evaluation is the exact value of an expression and the literals it
// consumed, in the order the parser met them.
type Evaluation struct {
	Value Fraction
	Used  []int64
}

type parser struct {
	tokens []Token
	pos    int
	used   []int64
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekOperator(ops ...byte) (byte, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != TokenOperator {
		return 0, false
	}
	for _, op := range ops {
		if tok.Op == op {
			return op, true
		}
	}
	return 0, false
}

// expression := term (('+' | '-') term)*
func (p *parser) expression() (Fraction, error) {
	value, err := p.term()
	if err != nil {
		return Fraction{}, err
	}
	for {
		op, ok := p.peekOperator('+', '-')
		if !ok {
			return value, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return Fraction{}, err
		}
		var next Fraction
		if op == '+' {
			next, ok = value.Add(right)
		} else {
			next, ok = value.Sub(right)
		}
		if !ok {
			return Fraction{}, errors.NewInvalidFormatError(overflowMessage)
		}
		value = next
	}
}

// term := factor (('*' | '/') factor)*
func (p *parser) term() (Fraction, error) {
	value, err := p.factor()
	if err != nil {
		return Fraction{}, err
	}
	for {
		op, ok := p.peekOperator('*', '/')
		if !ok {
			return value, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return Fraction{}, err
		}
		if op == '/' && right.IsZero() {
			return Fraction{}, errors.NewDivisionByZeroError()
		}
		var next Fraction
		if op == '*' {
			next, ok = value.Mul(right)
		} else {
			next, ok = value.Div(right)
		}
		if !ok {
			return Fraction{}, errors.NewInvalidFormatError(overflowMessage)
		}
		value = next
	}
}

// factor := number | '-' factor | '(' expression ')'
func (p *parser) factor() (Fraction, error) {
	tok, ok := p.peek()
	if !ok {
		return Fraction{}, errors.NewInvalidFormatError("")
	}
	switch {
	case tok.Kind == TokenNumber:
		p.pos++
		p.used = append(p.used, tok.Value)
		return Int(tok.Value), nil
	case tok.Kind == TokenOperator && tok.Op == '-':
		p.pos++
		v, err := p.factor()
		if err != nil {
			return Fraction{}, err
		}
		return v.Neg(), nil
	case tok.Kind == TokenLParen:
		p.pos++
		v, err := p.expression()
		if err != nil {
			return Fraction{}, err
		}
		if next, ok := p.peek(); !ok || next.Kind != TokenRParen {
			return Fraction{}, errors.NewInvalidFormatError("")
		}
		p.pos++
		return v, nil
	default:
		return Fraction{}, errors.NewInvalidFormatError("")
	}
}

// Evaluate tokenizes, validates and evaluates expr with exact arithmetic.
func Evaluate(expr string) (Evaluation, error) {
	tokens, err := Tokenize(strings.TrimSpace(expr))
	if err != nil {
		return Evaluation{}, err
	}
	if err := ValidateTokens(tokens); err != nil {
		return Evaluation{}, err
	}

	p := &parser{tokens: tokens}
	value, err := p.expression()
	if err != nil {
		return Evaluation{}, err
	}
	if p.pos != len(tokens) {
		return Evaluation{}, errors.NewInvalidFormatError("")
	}
	return Evaluation{Value: value, Used: p.used}, nil
}

// EvaluateUsing evaluates expr and then requires that the consumed literals
// are exactly the multiset required.
func EvaluateUsing(expr string, required []int) (Evaluation, error) {
	ev, err := Evaluate(expr)
	if err != nil {
		return Evaluation{}, err
	}
	if err := CheckOperands(ev.Used, required); err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// CheckOperands compares used and required as multisets.
func CheckOperands(used []int64, required []int) error {
	if len(used) != len(required) {
		return errors.NewOperandMismatchError(required)
	}
	a := make([]int64, len(used))
	copy(a, used)
	b := make([]int64, len(required))
	for i, n := range required {
		b[i] = int64(n)
	}
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] {
			return errors.NewOperandMismatchError(required)
		}
	}
	return nil
}
