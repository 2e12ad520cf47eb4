package games

import (
	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
)

const twentyFourAttempts = 250

var (
	twentyFourFallback         = []int{3, 3, 8, 8}
	twentyFourFallbackSolution = "(8/(3-(8/3)))"
)

// TwentyFourQuestion carries one reference solution alongside the numbers.
type TwentyFourQuestion struct {
	Numbers  []int  `json:"numbers"`
	Text     string `json:"text"`
	Solution string `json:"-"`
}

func (q TwentyFourQuestion) Prompt() string {
	return q.Text
}

type twentyFour struct {
	log *logger.Logger
}

func twentyFourRange(level int) (int, int) {
	switch {
	case level <= 1:
		return 1, 6
	case level == 2:
		return 1, 8
	case level == 3:
		return 1, 10
	default:
		return 1, 13
	}
}

// Generate never repeats the previous question's numbers, in any order.
func (g *twentyFour) Generate(ctx GenerateContext) models.Question {
	lo, hi := twentyFourRange(ctx.DifficultyLevel)
	opts := arith.PuzzleOptions{
		Size:             4,
		Target:           arith.Target,
		Min:              lo,
		Max:              hi,
		MaxAttempts:      twentyFourAttempts,
		Fallback:         twentyFourFallback,
		FallbackSolution: twentyFourFallbackSolution,
	}
	if prev, ok := ctx.Previous.(TwentyFourQuestion); ok {
		opts.Avoid = prev.Numbers
	}

	p := arith.GeneratePuzzle(ctx.Rng, opts)
	reportDegraded(g.log, p, ctx.DifficultyLevel)
	return TwentyFourQuestion{
		Numbers:  p.Numbers,
		Text:     joinInts(p.Numbers, " • "),
		Solution: p.Solution,
	}
}

func (g *twentyFour) Evaluate(q models.Question, answer string) models.AnswerOutcome {
	tq, ok := q.(TwentyFourQuestion)
	if !ok {
		return invalid("Invalid expression.")
	}
	return evaluateExpression(answer, tq.Numbers)
}

func (g *twentyFour) QuestionLabel(q models.Question) string {
	return q.Prompt()
}

func (g *twentyFour) CorrectAnswerLabel(q models.Question) string {
	if tq, ok := q.(TwentyFourQuestion); ok {
		return tq.Solution
	}
	return ""
}
