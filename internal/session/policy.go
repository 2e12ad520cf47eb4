package session

import (
	"fmt"

	"github.com/vytor/mathsprint/internal/models"
)

// ScorePolicy returns the score change for one resolved answer.
type ScorePolicy func(ctx models.ScoreContext) int

// DefaultScorePolicy awards one point per correct answer.
func DefaultScorePolicy(ctx models.ScoreContext) int {
	if ctx.IsCorrect {
		return 1
	}
	return 0
}

// DifficultyScorePolicy awards the current difficulty level for a correct
// answer.
func DifficultyScorePolicy(ctx models.ScoreContext) int {
	if ctx.IsCorrect {
		return max(1, ctx.DifficultyLevel)
	}
	return 0
}

// PolicyByName resolves a catalog scoring name. Empty means default.
func PolicyByName(name string) (ScorePolicy, error) {
	switch name {
	case "", "default":
		return DefaultScorePolicy, nil
	case "difficulty":
		return DifficultyScorePolicy, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}
