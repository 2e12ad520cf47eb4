package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/mathsprint/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs jobs on a fixed set of goroutines. Jobs still queued when Stop
// is called are drained before Stop returns.
type Pool struct {
	mu      sync.Mutex
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	queue   int
	started bool
	stopped bool
	log     *logger.Logger
}

func NewPool(workers, queueSize int, log *logger.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if log == nil {
		log = logger.Default()
	}
	log = log.WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		queue:   queueSize,
		log:     log,
	}
}

// Start launches the workers. ctx is handed to every job; cancelling it does
// not stop the workers, Stop does.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for job := range p.jobs {
				jobLog := workerLog.WithField("job", job.Name())
				jobLog.Debug("starting job")
				start := time.Now()

				jobCtx := logger.NewContext(ctx, jobLog)
				if err := job.Run(jobCtx); err != nil {
					jobLog.Error("job failed after %v: %v", time.Since(start), err)
				} else {
					jobLog.Debug("job completed in %v", time.Since(start))
				}
			}
			workerLog.Debug("worker shutting down (queue closed)")
		}(i + 1)
	}
}

// Stop closes the queue and waits for the workers to finish what is queued.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

// Submit queues job without blocking. It reports false when the queue is
// full or the pool is stopped.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		p.log.Warn("pool stopped, rejecting job: %s", job.Name())
		return false
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return true
	default:
		p.log.Warn("queue full (%d), rejecting job: %s", p.queue, job.Name())
		return false
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
