package games_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/games"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/rng"
)

type constantSource float64

func (c constantSource) Float64() float64 { return float64(c) }

func newGenerator(t *testing.T, kind games.Kind) games.Generator {
	t.Helper()
	g, err := games.NewGenerator(kind, logger.Discard())
	require.NoError(t, err)
	return g
}

func TestNewGenerator_UnknownKind(t *testing.T) {
	_, err := games.NewGenerator("chess", logger.Discard())
	assert.Error(t, err)
	assert.False(t, games.KnownKind("chess"))
	assert.True(t, games.KnownKind(games.KindTwentyFour))
}

func TestTarget24_GeneratesSolvablePuzzlesWithinRange(t *testing.T) {
	g := newGenerator(t, games.KindTarget24)

	tests := []struct {
		level int
		max   int
	}{
		{1, 9}, {2, 9}, {3, 13}, {4, 13}, {5, 20}, {9, 20},
	}
	for _, tt := range tests {
		src := rng.New(uint32(1000 + tt.level))
		for i := 0; i < 10; i++ {
			q := g.Generate(games.GenerateContext{Rng: src, DifficultyLevel: tt.level})
			tq, ok := q.(games.Target24Question)
			require.True(t, ok)
			require.Len(t, tq.Numbers, 4)
			for _, n := range tq.Numbers {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, tt.max)
			}
			assert.True(t, arith.CanReach(tq.Numbers, arith.Target), "%v", tq.Numbers)
		}
	}
}

func TestTarget24_Evaluate(t *testing.T) {
	g := newGenerator(t, games.KindTarget24)
	q := games.Target24Question{Numbers: []int{8, 8, 3, 3}}

	out := g.Evaluate(q, "  8/(3-(8/3)) ")
	assert.Equal(t, models.OutcomeCorrect, out.Kind)
	assert.Equal(t, "8/(3-(8/3))", out.NormalizedAnswer)

	out = g.Evaluate(q, "8+8+3+3")
	assert.Equal(t, models.OutcomeWrong, out.Kind)

	out = g.Evaluate(q, "8+8+8")
	assert.Equal(t, models.OutcomeInvalid, out.Kind)
	assert.Equal(t, "Use each number exactly once: 8, 8, 3, 3.", out.Message)

	out = g.Evaluate(q, "8^2")
	assert.Equal(t, models.OutcomeInvalid, out.Kind)
	assert.Equal(t, "Unsupported character: ^", out.Message)

	out = g.Evaluate(q, "")
	assert.Equal(t, models.OutcomeInvalid, out.Kind)
	assert.Equal(t, "Enter an expression before submitting.", out.Message)

	out = g.Evaluate(q, "8/(3-3)+8+3")
	assert.Equal(t, models.OutcomeInvalid, out.Kind)
	assert.Equal(t, "Division by zero is not allowed.", out.Message)
}

func TestTarget24_Labels(t *testing.T) {
	g := newGenerator(t, games.KindTarget24)
	q := games.Target24Question{Numbers: []int{8, 8, 3, 3}}

	assert.Equal(t, "8   8   3   3", q.Prompt())
	assert.Equal(t, "8, 8, 3, 3", g.QuestionLabel(q))
	assert.Equal(t, "A valid expression that evaluates to 24", g.CorrectAnswerLabel(q))
}

func TestTarget24_DegradedGenerationIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	g, err := games.NewGenerator(games.KindTarget24, log)
	require.NoError(t, err)

	// A constant zero stream only ever draws [1,1,1,1].
	q := g.Generate(games.GenerateContext{Rng: constantSource(0), DifficultyLevel: 1})

	assert.Equal(t, games.Target24Question{Numbers: []int{8, 8, 3, 3}}, q)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "code=UNSOLVABLE_PUZZLE")
	assert.Contains(t, buf.String(), "500 attempts")
}

func TestTwentyFour_ReferenceSolutionIsValid(t *testing.T) {
	g := newGenerator(t, games.KindTwentyFour)
	src := rng.New(99)

	var prev models.Question
	for level := 1; level <= 6; level++ {
		q := g.Generate(games.GenerateContext{Rng: src, DifficultyLevel: level, Previous: prev})
		tq, ok := q.(games.TwentyFourQuestion)
		require.True(t, ok)

		out := g.Evaluate(tq, tq.Solution)
		assert.Equal(t, models.OutcomeCorrect, out.Kind, "%v %s", tq.Numbers, tq.Solution)
		assert.Equal(t, tq.Solution, g.CorrectAnswerLabel(tq))
		assert.Equal(t, tq.Text, g.QuestionLabel(tq))
		prev = q
	}
}

func TestTwentyFour_NeverRepeatsPreviousNumbers(t *testing.T) {
	g := newGenerator(t, games.KindTwentyFour)
	src := rng.New(5)

	prev := g.Generate(games.GenerateContext{Rng: src, DifficultyLevel: 1})
	for i := 0; i < 30; i++ {
		next := g.Generate(games.GenerateContext{Rng: src, DifficultyLevel: 1, Previous: prev})
		assert.NotEqual(t,
			arith.Signature(prev.(games.TwentyFourQuestion).Numbers),
			arith.Signature(next.(games.TwentyFourQuestion).Numbers))
		prev = next
	}
}

func TestTwentyFour_FallbackCarriesSolution(t *testing.T) {
	g := newGenerator(t, games.KindTwentyFour)

	q := g.Generate(games.GenerateContext{Rng: constantSource(0), DifficultyLevel: 1}).(games.TwentyFourQuestion)

	assert.Equal(t, []int{3, 3, 8, 8}, q.Numbers)
	assert.Equal(t, "3 • 3 • 8 • 8", q.Text)
	assert.Equal(t, "(8/(3-(8/3)))", q.Solution)
	assert.Equal(t, models.OutcomeCorrect, g.Evaluate(q, q.Solution).Kind)
}

func TestGenerateArithmetic_Ranges(t *testing.T) {
	src := rng.New(2024)
	for level := 1; level <= 8; level++ {
		boost := min(level, 6) - 1
		for i := 0; i < 25; i++ {
			add := games.GenerateArithmetic(src, games.ArithmeticAdd, level)
			assert.Equal(t, games.ArithmeticAdd, add.Type)

			sub := games.GenerateArithmetic(src, games.ArithmeticSub, level)
			assert.GreaterOrEqual(t, sub.Answer, 0)

			mul1 := games.GenerateArithmetic(src, games.ArithmeticMul1, level)
			assert.GreaterOrEqual(t, mul1.Answer, (2+min(boost, 4))*(2+min(boost, 4)))
			assert.LessOrEqual(t, mul1.Answer, (9+min(boost*2, 8))*(9+min(boost*2, 8)))
			assert.Contains(t, mul1.Text, "×")

			mul2 := games.GenerateArithmetic(src, games.ArithmeticMul2, level)
			assert.LessOrEqual(t, mul2.Answer, (99+boost*22)*(9+min(boost, 5)))
		}
	}
}

func TestGenerateArithmetic_Deterministic(t *testing.T) {
	a := games.GenerateArithmetic(rng.New(1), "", 3)
	b := games.GenerateArithmetic(rng.New(1), "", 3)
	assert.Equal(t, a, b)
}

func TestParseWholeNumber(t *testing.T) {
	valid := map[string]int{"42": 42, " -7 ": -7, "12.0": 12, "+5": 5, "1e2": 100}
	for in, want := range valid {
		got, ok := games.ParseWholeNumber(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "   ", "3.5", "abc", "Inf", "NaN", "1e20"} {
		_, ok := games.ParseWholeNumber(in)
		assert.False(t, ok, in)
	}
}

func TestSpeedArithmetic_Evaluate(t *testing.T) {
	g := newGenerator(t, games.KindSpeedArithmetic)
	q := games.ArithmeticQuestion{Text: "12 × 4", Answer: 48, Type: games.ArithmeticMul2}

	assert.Equal(t, models.AnswerOutcome{Kind: models.OutcomeCorrect, NormalizedAnswer: "48"}, g.Evaluate(q, " 48 "))
	assert.Equal(t, models.AnswerOutcome{Kind: models.OutcomeWrong, NormalizedAnswer: "47"}, g.Evaluate(q, "47"))
	assert.Equal(t, models.AnswerOutcome{Kind: models.OutcomeInvalid, Message: "Please enter a whole number."}, g.Evaluate(q, "forty"))

	assert.Equal(t, "12 × 4", g.QuestionLabel(q))
	assert.Equal(t, "48", g.CorrectAnswerLabel(q))
}
