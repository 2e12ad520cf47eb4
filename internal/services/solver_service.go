package services

import (
	"context"
	"fmt"

	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/logger"
)

// MaxSolveValue is the largest number a solve request may contain.
const MaxSolveValue = 1_000_000

// SolveResult is the answer to a solve request. Solution is empty when the
// numbers cannot reach the target.
type SolveResult struct {
	Numbers  []int  `json:"numbers"`
	Target   int64  `json:"target"`
	Solvable bool   `json:"solvable"`
	Solution string `json:"solution,omitempty"`
}

// SolverService answers "can these numbers make the target" questions
type SolverService interface {
	Solve(ctx context.Context, numbers []int, target int64) (*SolveResult, error)
}

type solverService struct{}

// NewSolverService creates a new SolverService
func NewSolverService() SolverService {
	return &solverService{}
}

func (s *solverService) Solve(ctx context.Context, numbers []int, target int64) (*SolveResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("solving: numbers=%v, target=%d", numbers, target)

	if len(numbers) == 0 || len(numbers) > arith.MaxSearchPool {
		return nil, errors.NewValidationError("numbers", fmt.Sprintf("must contain 1 to %d values", arith.MaxSearchPool))
	}
	for _, n := range numbers {
		if n < 0 || n > MaxSolveValue {
			return nil, errors.NewValidationError("numbers", fmt.Sprintf("values must be between 0 and %d", MaxSolveValue))
		}
	}

	solution, ok := arith.Solve(numbers, target)
	return &SolveResult{
		Numbers:  append([]int(nil), numbers...),
		Target:   target,
		Solvable: ok,
		Solution: solution,
	}, nil
}
