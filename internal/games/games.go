// Package games defines the playable games. Each game supplies a question
// generator and an answer evaluator; the run engine is shared.
package games

import (
	"fmt"
	"strings"

	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/rng"
)

// Kind selects a generator implementation.
type Kind string

const (
	KindTarget24        Kind = "target-24"
	KindTwentyFour      Kind = "twenty-four"
	KindSpeedArithmetic Kind = "speed-arithmetic"
)

// GenerateContext is the input to Generate. Previous is nil for the first
// question of a run and must not be modified.
type GenerateContext struct {
	Rng             rng.Source
	DifficultyLevel int
	Previous        models.Question
}

// Generator produces and checks questions for one game.
type Generator interface {
	Generate(ctx GenerateContext) models.Question
	Evaluate(q models.Question, answer string) models.AnswerOutcome
	QuestionLabel(q models.Question) string
	CorrectAnswerLabel(q models.Question) string
}

// Definition is a catalog entry bound to its generator.
type Definition struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Subtitle          string    `json:"subtitle,omitempty"`
	InitialDifficulty int       `json:"initial_difficulty"`
	Kind              Kind      `json:"kind"`
	Scoring           string    `json:"scoring,omitempty"`
	Generator         Generator `json:"-"`
}

// NewGenerator returns the generator for kind. log receives generation
// warnings.
func NewGenerator(kind Kind, log *logger.Logger) (Generator, error) {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithPrefix("games").WithField("kind", string(kind))

	switch kind {
	case KindTarget24:
		return &target24{log: log}, nil
	case KindTwentyFour:
		return &twentyFour{log: log}, nil
	case KindSpeedArithmetic:
		return &speedArithmetic{}, nil
	default:
		return nil, fmt.Errorf("unknown game kind %q", kind)
	}
}

// KnownKind reports whether NewGenerator accepts kind.
func KnownKind(kind Kind) bool {
	switch kind {
	case KindTarget24, KindTwentyFour, KindSpeedArithmetic:
		return true
	}
	return false
}

func joinInts(numbers []int, sep string) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, sep)
}

func invalid(message string) models.AnswerOutcome {
	return models.AnswerOutcome{Kind: models.OutcomeInvalid, Message: message}
}

func resolved(correct bool, normalized string) models.AnswerOutcome {
	kind := models.OutcomeWrong
	if correct {
		kind = models.OutcomeCorrect
	}
	return models.AnswerOutcome{Kind: kind, NormalizedAnswer: normalized}
}
