// Package parallel provides the worker pool and row-band scheduling used to
// run pipeline requests and per-pixel kernels concurrently.
//
// Two consumers share the same WorkerPool type:
//
//   - request scheduling: one pipeline run per pool job, with context-aware
//     waiting so a caller can abandon a request without cooperation from the
//     computation itself;
//   - band scheduling: a kernel splits its output rows into contiguous bands
//     and the pool executes the bands in parallel (see Executor).
//
// A pool must never be used for both at once: a request job that waits on
// bands queued to its own pool can starve when every worker is waiting.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines with per-worker job queues.
//
// Workers primarily pull from their own queue but steal from other queues
// when theirs is empty, which balances load when jobs have uneven cost
// (large images next to thumbnails).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered job channel per worker.
	queues []chan func()

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool

	// next is the round-robin cursor used by Do.
	next atomic.Uint64
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	slogger().Debug("parallel: worker pool started", "workers", workers, "queue", queueSize)
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			run(job)
		default:
			if stolen := p.steal(id); stolen != nil {
				run(stolen)
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				run(job)
			}
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

// drain executes all remaining jobs in a queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// enqueue places job on worker id's queue. It reports false if the pool
// closed before the job could be queued.
func (p *WorkerPool) enqueue(id int, job func()) bool {
	select {
	case p.queues[id] <- job:
		return true
	case <-p.done:
		return false
	}
}

// ExecuteAll distributes jobs across workers and waits for all of them.
// Jobs that could not be queued because the pool closed are skipped.
// If the pool is closed, this is a no-op.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.IsRunning() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, fn := range jobs {
		job := fn
		wrapped := func() {
			defer pending.Done()
			job()
		}
		if !p.enqueue(i%p.workers, wrapped) {
			pending.Done()
		}
	}

	pending.Wait()
}

// Do runs fn on the pool and waits for it to finish or for ctx to be done.
//
// When ctx ends first, Do returns ctx.Err() immediately; fn keeps running on
// its worker and whatever it produces is discarded by the caller. Do returns
// ErrPoolClosed if the pool is not accepting work.
func (p *WorkerPool) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.IsRunning() {
		return ErrPoolClosed
	}

	finished := make(chan struct{})
	job := func() {
		defer close(finished)
		fn()
	}

	id := int(p.next.Add(1) % uint64(p.workers))
	select {
	case p.queues[id] <- job:
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		slogger().Debug("parallel: job abandoned", "err", ctx.Err())
		return ctx.Err()
	}
}

// Close stops accepting work, waits for queued jobs to finish and stops all
// workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
	slogger().Debug("parallel: worker pool stopped", "workers", p.workers)
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
