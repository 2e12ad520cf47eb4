package games

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/rng"
)

// ArithmeticType is the operation family of a speed arithmetic question.
type ArithmeticType string

const (
	ArithmeticAdd  ArithmeticType = "add"
	ArithmeticSub  ArithmeticType = "sub"
	ArithmeticMul1 ArithmeticType = "mul1" // single digit times single digit
	ArithmeticMul2 ArithmeticType = "mul2" // two digits times one digit

	maxArithmeticDifficulty = 6
	multiplySymbol          = "×"
)

var arithmeticTypes = []ArithmeticType{ArithmeticAdd, ArithmeticSub, ArithmeticMul1, ArithmeticMul2}

// ArithmeticQuestion is a two-operand question with an integer answer.
type ArithmeticQuestion struct {
	Text   string         `json:"text"`
	Answer int            `json:"-"`
	Type   ArithmeticType `json:"type"`
}

func (q ArithmeticQuestion) Prompt() string {
	return q.Text
}

type speedArithmetic struct{}

func clampArithmeticLevel(level int) int {
	return min(maxArithmeticDifficulty, max(1, level))
}

// GenerateArithmetic builds a question of type t at level. An empty t picks
// a type from src.
func GenerateArithmetic(src rng.Source, t ArithmeticType, level int) ArithmeticQuestion {
	if t == "" {
		t = arithmeticTypes[rng.Int(src, 0, len(arithmeticTypes)-1)]
	}
	boost := clampArithmeticLevel(level) - 1

	switch t {
	case ArithmeticAdd:
		lo, hi := 10+boost*8, 99+boost*25
		a, b := rng.Int(src, lo, hi), rng.Int(src, lo, hi)
		return ArithmeticQuestion{Text: fmt.Sprintf("%d + %d", a, b), Answer: a + b, Type: t}
	case ArithmeticSub:
		lo, hi := 10+boost*8, 99+boost*25
		a, b := rng.Int(src, lo, hi), rng.Int(src, lo, hi)
		if b > a {
			a, b = b, a
		}
		return ArithmeticQuestion{Text: fmt.Sprintf("%d - %d", a, b), Answer: a - b, Type: t}
	case ArithmeticMul1:
		lo, hi := 2+min(boost, 4), 9+min(boost*2, 8)
		a, b := rng.Int(src, lo, hi), rng.Int(src, lo, hi)
		return ArithmeticQuestion{Text: fmt.Sprintf("%d %s %d", a, multiplySymbol, b), Answer: a * b, Type: t}
	case ArithmeticMul2:
		a := rng.Int(src, 10+boost*12, 99+boost*22)
		b := rng.Int(src, 2+min(boost, 3), 9+min(boost, 5))
		return ArithmeticQuestion{Text: fmt.Sprintf("%d %s %d", a, multiplySymbol, b), Answer: a * b, Type: t}
	default:
		return ArithmeticQuestion{Text: "1 + 1", Answer: 2, Type: ArithmeticAdd}
	}
}

// ParseWholeNumber accepts integral numeric input such as "42", " -7 " or
// "12.0".
func ParseWholeNumber(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func (g *speedArithmetic) Generate(ctx GenerateContext) models.Question {
	return GenerateArithmetic(ctx.Rng, "", ctx.DifficultyLevel)
}

func (g *speedArithmetic) Evaluate(q models.Question, answer string) models.AnswerOutcome {
	n, ok := ParseWholeNumber(answer)
	if !ok {
		return invalid("Please enter a whole number.")
	}
	aq, _ := q.(ArithmeticQuestion)
	return resolved(n == aq.Answer, strconv.Itoa(n))
}

func (g *speedArithmetic) QuestionLabel(q models.Question) string {
	return q.Prompt()
}

func (g *speedArithmetic) CorrectAnswerLabel(q models.Question) string {
	if aq, ok := q.(ArithmeticQuestion); ok {
		return strconv.Itoa(aq.Answer)
	}
	return ""
}
