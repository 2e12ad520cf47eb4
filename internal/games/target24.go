package games

import (
	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
)

const target24Attempts = 500

var target24Fallback = []int{8, 8, 3, 3}

// Target24Question asks for an expression over four numbers that makes 24.
type Target24Question struct {
	Numbers []int `json:"numbers"`
}

func (q Target24Question) Prompt() string {
	return joinInts(q.Numbers, "   ")
}

type target24 struct {
	log *logger.Logger
}

func target24Range(level int) (int, int) {
	switch {
	case level <= 2:
		return 1, 9
	case level <= 4:
		return 1, 13
	default:
		return 1, 20
	}
}

func (g *target24) Generate(ctx GenerateContext) models.Question {
	lo, hi := target24Range(ctx.DifficultyLevel)
	p := arith.GeneratePuzzle(ctx.Rng, arith.PuzzleOptions{
		Size:        4,
		Target:      arith.Target,
		Min:         lo,
		Max:         hi,
		MaxAttempts: target24Attempts,
		Shuffle:     true,
		Fallback:    target24Fallback,
	})
	reportDegraded(g.log, p, ctx.DifficultyLevel)
	return Target24Question{Numbers: p.Numbers}
}

func (g *target24) Evaluate(q models.Question, answer string) models.AnswerOutcome {
	tq, ok := q.(Target24Question)
	if !ok {
		return invalid("Invalid expression.")
	}
	return evaluateExpression(answer, tq.Numbers)
}

func (g *target24) QuestionLabel(q models.Question) string {
	if tq, ok := q.(Target24Question); ok {
		return joinInts(tq.Numbers, ", ")
	}
	return "Question"
}

func (g *target24) CorrectAnswerLabel(models.Question) string {
	return "A valid expression that evaluates to 24"
}
