package ingest

import (
	"context"
	"sync"
)

// Job is a unit of work submitted to the WorkerPool.
type Job func(ctx context.Context)

// WorkerPool runs jobs using a fixed number of goroutines. The orchestrator
// uses it to bound the fan-out across feed sources; each job writes only its
// own private result slot, so nothing in the pool needs shared mutable state.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	closeMu sync.Mutex
	closed  bool
}

// NewWorkerPool creates a pool with the given number of workers and job
// queue capacity.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
	}
}

// Start begins the worker goroutines. Workers drain the queue until it is
// closed or ctx is done.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					job(ctx)
				}
			}
		}()
	}
}

// Submit enqueues a job. Returns ErrPoolClosed after Close.
func (p *WorkerPool) Submit(job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.jobs <- job
	return nil
}

// Close stops accepting new jobs and waits for in-flight jobs to finish.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}

// ErrPoolClosed is returned if a Submit is attempted after Close.
var ErrPoolClosed = &PoolError{"worker pool closed"}

// PoolError provides a simple typed error for pool operations.
type PoolError struct{ msg string }

func (e *PoolError) Error() string { return e.msg }
