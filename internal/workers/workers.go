package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of background workers on their own goroutines.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers groups the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and returns immediately.
// The workers stop when ctx is cancelled; use Wait to block until all of
// them have returned.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
