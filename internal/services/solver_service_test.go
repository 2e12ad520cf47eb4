package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/services"
)

func TestSolverService(t *testing.T) {
	svc := services.NewSolverService()
	ctx := context.Background()

	res, err := svc.Solve(ctx, []int{8, 8, 3, 3}, 24)
	require.NoError(t, err)
	assert.True(t, res.Solvable)
	value, err := arith.Evaluate(res.Solution)
	require.NoError(t, err)
	assert.True(t, value.Value.EqualsInt(24))

	res, err = svc.Solve(ctx, []int{1, 1, 1, 1}, 24)
	require.NoError(t, err)
	assert.False(t, res.Solvable)
	assert.Empty(t, res.Solution)

	res, err = svc.Solve(ctx, []int{6, 4}, 10)
	require.NoError(t, err)
	assert.True(t, res.Solvable)

	for _, numbers := range [][]int{nil, {1, 2, 3, 4, 5}, {-1, 2}, {services.MaxSolveValue + 1, 2}} {
		_, err := svc.Solve(ctx, numbers, 24)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), "%v", numbers)
	}
}

func TestSolverService_LargeValuesStayExact(t *testing.T) {
	svc := services.NewSolverService()
	ctx := context.Background()

	res, err := svc.Solve(ctx, []int{1000, 1000, 1000}, 1_000_000_000)
	require.NoError(t, err)
	require.True(t, res.Solvable)
	value, err := arith.Evaluate(res.Solution)
	require.NoError(t, err)
	assert.True(t, value.Value.EqualsInt(1_000_000_000))
}
