package jobs

import (
	"context"

	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository"
	"github.com/vytor/mathsprint/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool. When the pool is nil,
// full or stopped the job runs on the caller's goroutine instead.
type WorkerQueue struct {
	archivePool *worker.Pool
	runs        repository.RunRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(archivePool *worker.Pool, runs repository.RunRepository) JobQueue {
	return &WorkerQueue{archivePool: archivePool, runs: runs}
}

func (q *WorkerQueue) EnqueueArchive(ctx context.Context, run models.RunRecord) error {
	job := &worker.ArchiveRunJob{Runs: q.runs, Record: run}
	if q.archivePool != nil && q.archivePool.Submit(job) {
		return nil
	}
	return job.Run(ctx)
}
