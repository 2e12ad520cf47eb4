package jobs

import (
	"context"

	"github.com/vytor/mathsprint/internal/models"
)

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueArchive(ctx context.Context, run models.RunRecord) error
}
