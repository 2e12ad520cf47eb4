package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/repository"
)

type kvRepository struct {
	db *sql.DB
}

// NewKeyValueRepository creates a KeyValueRepository over the kv_store table
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting key: %s", key)

	query, args, err := sqlBuilder.Select("value").From("kv_store").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("setting key: %s (%d bytes)", key, len(value))

	query, args, err := sqlBuilder.Insert("kv_store").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to set key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	query, args, err := sqlBuilder.Delete("kv_store").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}
