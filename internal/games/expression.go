package games

import (
	"strings"

	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
)

// evaluateExpression scores an expression answer against the required
// numbers. Malformed input is invalid; a well-formed expression is correct
// only when it reaches the target exactly.
func evaluateExpression(answer string, numbers []int) models.AnswerOutcome {
	normalized := strings.TrimSpace(answer)
	ev, err := arith.EvaluateUsing(normalized, numbers)
	if err != nil {
		if appErr, ok := errors.As(err); ok {
			return invalid(appErr.Message)
		}
		return invalid("Invalid expression.")
	}
	return resolved(ev.Value.EqualsInt(arith.Target), normalized)
}

func reportDegraded(log *logger.Logger, p arith.Puzzle, level int) {
	if !p.Degraded {
		return
	}
	err := errors.NewUnsolvablePuzzleError(p.Attempts)
	log.WithFields(map[string]any{
		"code":     err.Code,
		"level":    level,
		"fallback": joinInts(p.Numbers, ","),
	}).Warn("puzzle generation degraded: %s", err.Message)
}
