package arith

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/vytor/mathsprint/internal/errors"
)

// TokenKind classifies a token.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenLParen
	TokenRParen
)

// Token is one lexical unit of an expression.
type Token struct {
	Kind  TokenKind
	Value int64 // TokenNumber only
	Op    byte  // TokenOperator only: one of + - * /
	Pos   int   // byte offset in the input
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

// Tokenize splits input into numbers, operators and parentheses. Whitespace
// is skipped; any other character is a PARSE_ERROR.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			end := i + 1
			for end < len(input) && input[end] >= '0' && input[end] <= '9' {
				end++
			}
			v, err := strconv.ParseInt(input[i:end], 10, 64)
			if err != nil {
				return nil, errors.NewInvalidFormatError("Number is too large: " + input[i:end])
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Value: v, Pos: i})
			i = end
		case isOperator(c):
			tokens = append(tokens, Token{Kind: TokenOperator, Op: c, Pos: i})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Pos: i})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Pos: i})
			i++
		default:
			r, size := utf8.DecodeRuneInString(input[i:])
			if unicode.IsSpace(r) {
				i += size
				continue
			}
			return nil, errors.NewParseError(r)
		}
	}
	return tokens, nil
}

// ValidateTokens checks the token flow before parsing: operands and
// operators alternate, parentheses balance, nothing dangles at either end.
// A '-' is accepted wherever an operand is expected, including at the start
// and right after '(', and reads as unary minus, so "-3+27" is well formed.
// Any other operator in that position is malformed.
func ValidateTokens(tokens []Token) error {
	if len(tokens) == 0 {
		return errors.NewInvalidFormatError("Enter an expression before submitting.")
	}

	open := 0
	// expectOperand is true at the start, after '(' and after an operator.
	expectOperand := true
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			if !expectOperand {
				return errors.NewInvalidFormatError("")
			}
			expectOperand = false
		case TokenLParen:
			if !expectOperand {
				return errors.NewInvalidFormatError("")
			}
			open++
		case TokenRParen:
			if expectOperand {
				return errors.NewInvalidFormatError("")
			}
			open--
			if open < 0 {
				return errors.NewInvalidFormatError("")
			}
		case TokenOperator:
			if expectOperand && tok.Op != '-' {
				return errors.NewInvalidFormatError("")
			}
			expectOperand = true
		}
	}
	if open != 0 || expectOperand {
		return errors.NewInvalidFormatError("")
	}
	return nil
}
