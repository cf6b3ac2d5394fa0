package utils

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// RecordWorkerPool fans record indices out to a bounded set of workers.
// Each worker gets a stable worker ID so callers can keep per-worker
// partial state and merge it once the pool drains.
type RecordWorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewRecordWorkerPool creates a pool with at least one worker.
func NewRecordWorkerPool(workers int, logger *slog.Logger) *RecordWorkerPool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordWorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// Workers returns the number of workers in the pool.
func (p *RecordWorkerPool) Workers() int {
	return p.workers
}

// Process dispatches job indices [0, jobCount) across the workers and
// blocks until the workers stop. handle is called with (workerID, jobIndex).
// When the context is cancelled before every job has been handled, Process
// returns an error carrying the outstanding count; it never returns nil
// with jobs unhandled.
func (p *RecordWorkerPool) Process(ctx context.Context, jobCount int, handle func(workerID, jobIndex int)) error {
	if jobCount <= 0 {
		return nil
	}

	jobs := make(chan int, jobCount)
	var completed atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				// Cancellation wins over queued work.
				select {
				case <-ctx.Done():
					return
				default:
				}
				select {
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					handle(workerID, idx)
					completed.Add(1)
				case <-ctx.Done():
					return
				}
			}
		}(w)
	}

queue:
	for i := 0; i < jobCount; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break queue
		}
	}
	close(jobs)

	wg.Wait()

	if done := int(completed.Load()); done < jobCount {
		p.logger.Warn("worker pool cancelled with jobs outstanding",
			"completed", done, "total", jobCount)
		return fmt.Errorf("cancelled with %d of %d jobs unprocessed: %w", jobCount-done, jobCount, ctx.Err())
	}
	return nil
}
