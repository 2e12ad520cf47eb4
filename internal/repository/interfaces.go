package repository

import (
	"context"

	"github.com/vytor/mathsprint/internal/models"
)

// KeyValueRepository is a flat string store. Get reports ok=false for a
// missing key rather than an error.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RunRepository archives finished runs
type RunRepository interface {
	Insert(ctx context.Context, run models.RunRecord) (int64, error)
	List(ctx context.Context, filter models.RunFilter) ([]models.RunRecord, error)
	Count(ctx context.Context, filter models.RunFilter) (int, error)
}
