package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository"
)

const (
	defaultRunLimit = 50
	maxRunLimit     = 500
)

var runColumns = []string{
	"id", "game_id", "mode", "sprint_minutes", "score", "total_answered", "total_correct",
	"wrong_answers", "difficulty_level", "end_reason", "seed", "created_at",
}

type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository implementation
func NewRunRepository(db *sql.DB) repository.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Insert(ctx context.Context, run models.RunRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("inserting run: game=%s, mode=%s, score=%d, reason=%s", run.GameID, run.Mode, run.Score, run.EndReason)

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := sqlBuilder.Insert("runs").
		Columns(runColumns[1:]...).
		Values(run.GameID, string(run.Mode), int(run.SprintMinutes), run.Score, run.TotalAnswered, run.TotalCorrect,
			run.WrongAnswers, run.DifficultyLevel, string(run.EndReason), int64(run.Seed), createdAt).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert run: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to read run id: %v", err)
		return 0, err
	}
	log.Debug("run inserted: id=%d", id)
	return id, nil
}

func applyRunFilter(query squirrel.SelectBuilder, filter models.RunFilter) squirrel.SelectBuilder {
	if filter.GameID != "" {
		query = query.Where(squirrel.Eq{"game_id": filter.GameID})
	}
	if filter.Mode != "" {
		query = query.Where(squirrel.Eq{"mode": string(filter.Mode)})
	}
	if filter.EndReason != "" {
		query = query.Where(squirrel.Eq{"end_reason": string(filter.EndReason)})
	}
	return query
}

func (r *runRepository) List(ctx context.Context, filter models.RunFilter) ([]models.RunRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing runs with filter: game=%s, mode=%s, reason=%s, limit=%d, offset=%d",
		filter.GameID, filter.Mode, filter.EndReason, filter.Limit, filter.Offset)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}
	offset := max(filter.Offset, 0)

	query := applyRunFilter(sqlBuilder.Select(runColumns...).From("runs"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	runs := []models.RunRecord{}
	for rows.Next() {
		var (
			rec  models.RunRecord
			seed int64
		)
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Mode, &rec.SprintMinutes, &rec.Score, &rec.TotalAnswered,
			&rec.TotalCorrect, &rec.WrongAnswers, &rec.DifficultyLevel, &rec.EndReason, &seed, &rec.CreatedAt); err != nil {
			log.Error("failed to scan run row: %v", err)
			return nil, err
		}
		rec.Seed = uint32(seed)
		runs = append(runs, rec)
	}
	log.Debug("found %d runs", len(runs))
	return runs, rows.Err()
}

func (r *runRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("counting runs with filter: game=%s, mode=%s, reason=%s", filter.GameID, filter.Mode, filter.EndReason)

	sqlStr, args, err := applyRunFilter(sqlBuilder.Select("COUNT(*)").From("runs"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count runs: %v", err)
		return 0, err
	}
	return count, nil
}
