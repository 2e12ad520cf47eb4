package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/catalog"
	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/leaderboard"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository/memory"
	"github.com/vytor/mathsprint/internal/services"
	"github.com/vytor/mathsprint/internal/testutil/mocks"
)

func newResults(t *testing.T) (services.ResultsService, *leaderboard.Store, *mocks.MockRunRepository) {
	t.Helper()
	cat, err := catalog.Default(logger.Discard())
	require.NoError(t, err)
	store := leaderboard.New(memory.NewKeyValueRepository())
	runs := new(mocks.MockRunRepository)
	return services.NewResultsService(cat, store, runs), store, runs
}

func TestResultsService_Bests(t *testing.T) {
	svc, store, _ := newResults(t)
	ctx := context.Background()
	_, err := store.SaveBestScore(ctx, "speed-arithmetic", models.ModeSprint, 12)
	require.NoError(t, err)

	bests, err := svc.Bests(ctx, "speed-arithmetic")
	require.NoError(t, err)
	assert.Equal(t, []models.BestScore{
		{GameID: "speed-arithmetic", Mode: models.ModeSprint, Score: 12},
		{GameID: "speed-arithmetic", Mode: models.ModeSurvival, Score: 0},
	}, bests)

	aliased, err := svc.Bests(ctx, "number-sense-sprint")
	require.NoError(t, err)
	assert.Equal(t, bests, aliased)

	_, err = svc.Bests(ctx, "chess")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestResultsService_ListRuns(t *testing.T) {
	svc, _, runs := newResults(t)
	ctx := context.Background()
	filter := models.RunFilter{GameID: "target-24", Mode: models.ModeSprint, EndReason: models.EndReasonTime, Limit: 10}
	records := []models.RunRecord{{ID: 2, GameID: "target-24", Score: 9}, {ID: 1, GameID: "target-24", Score: 4}}
	runs.On("List", mock.Anything, filter).Return(records, nil).Once()
	runs.On("Count", mock.Anything, filter).Return(7, nil).Once()

	got, total, err := svc.ListRuns(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, 7, total)
	runs.AssertExpectations(t)
}

func TestResultsService_ListRunsValidates(t *testing.T) {
	svc, _, runs := newResults(t)
	ctx := context.Background()

	for name, filter := range map[string]models.RunFilter{
		"mode":   {Mode: "zen"},
		"reason": {EndReason: "boredom"},
		"limit":  {Limit: 501},
		"offset": {Offset: -1},
	} {
		_, _, err := svc.ListRuns(ctx, filter)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), name)
	}
	runs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestResultsService_ListRunsRepositoryError(t *testing.T) {
	svc, _, runs := newResults(t)
	runs.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("locked"))

	_, _, err := svc.ListRuns(context.Background(), models.RunFilter{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}
