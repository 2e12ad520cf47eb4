package services

import (
	"context"

	"github.com/vytor/mathsprint/internal/errors"
	"github.com/vytor/mathsprint/internal/leaderboard"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository"
)

const maxRunPageSize = 500

// ResultsService exposes personal bests and the run archive
type ResultsService interface {
	Bests(ctx context.Context, gameID string) ([]models.BestScore, error)
	ListRuns(ctx context.Context, filter models.RunFilter) ([]models.RunRecord, int, error)
}

type resultsService struct {
	catalog GameCatalog
	scores  ScoreStore
	runs    repository.RunRepository
}

// NewResultsService creates a new ResultsService
func NewResultsService(catalog GameCatalog, scores ScoreStore, runs repository.RunRepository) ResultsService {
	return &resultsService{catalog: catalog, scores: scores, runs: runs}
}

func (s *resultsService) Bests(ctx context.Context, gameID string) ([]models.BestScore, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting best scores: game_id=%s", gameID)

	if _, ok := s.catalog.Get(gameID); !ok {
		if _, ok := s.catalog.Get(leaderboard.CanonicalGameID(gameID)); !ok {
			return nil, errors.NewNotFoundError("game", gameID)
		}
	}

	bests, err := s.scores.Bests(ctx, gameID)
	if err != nil {
		log.Error("failed to read best scores: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return bests, nil
}

func (s *resultsService) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.RunRecord, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing runs: game_id=%s, mode=%s, reason=%s, limit=%d, offset=%d",
		filter.GameID, filter.Mode, filter.EndReason, filter.Limit, filter.Offset)

	if filter.Mode != "" && !filter.Mode.Valid() {
		return nil, 0, errors.NewValidationError("mode", "must be 'sprint' or 'survival'")
	}
	switch filter.EndReason {
	case models.EndReasonNone, models.EndReasonTime, models.EndReasonWrong, models.EndReasonManual:
	default:
		return nil, 0, errors.NewValidationError("reason", "must be 'time', 'wrong' or 'manual'")
	}
	if filter.Limit < 0 || filter.Limit > maxRunPageSize {
		return nil, 0, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("offset", "must not be negative")
	}

	runs, err := s.runs.List(ctx, filter)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	total, err := s.runs.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count runs: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return runs, total, nil
}
