package dispatch

import (
	"context"
	"sync"
)

// Dispatcher executes units of parallel work under a chosen Strategy. The
// zero worker count resolves to OptimalWorkerCount(); an injected WorkerPool
// is reused across calls instead of spawning fresh goroutines per dispatch.
type Dispatcher struct {
	numWorkers int
	pool       *WorkerPool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWorkers sets the number of workers per dispatch.
func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.numWorkers = n
	}
}

// WithPool injects a persistent worker pool. The pool is shared, not owned:
// the dispatcher never closes it. If no explicit worker count is configured,
// the pool's size is used.
func WithPool(pool *WorkerPool) DispatcherOption {
	return func(d *Dispatcher) {
		d.pool = pool
	}
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(optFns ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	for _, fn := range optFns {
		if fn != nil {
			fn(d)
		}
	}
	return d
}

// Workers returns the effective worker count.
func (d *Dispatcher) Workers() int {
	if d.numWorkers > 0 {
		return d.numWorkers
	}
	if d.pool != nil {
		return d.pool.NumWorkers()
	}
	return OptimalWorkerCount()
}

// spawn runs body on the pool when one is injected, falling back to a fresh
// goroutine. The submit never blocks: queue-strategy workers can sit in Pop
// until the leader finishes producing, and a leader stuck waiting for pool
// capacity would never get there. wg is released when body returns.
func (d *Dispatcher) spawn(wg *sync.WaitGroup, body func()) {
	wg.Add(1)
	run := func() {
		defer wg.Done()
		body()
	}
	if d.pool != nil && d.pool.TrySubmit(run) {
		return
	}
	go run()
}

// Reduce runs the task list to completion under the given strategy.
//
// init creates a worker-private accumulator, process folds one task into it,
// and merge combines a finished accumulator into the shared result. merge is
// serialized by one lock and called exactly once per worker, so contention
// is bounded by the worker count, not the task count.
//
// Reduce blocks until every task has been processed and every worker has
// merged; there is no cancellation of in-flight work. Merge order across
// workers is unspecified.
func Reduce[T, A any](ctx context.Context, d *Dispatcher, strategy Strategy, tasks []T, init func() A, process func(A, T) A, merge func(A)) error {
	if !strategy.valid() {
		return &ErrUnknownStrategy{Tag: strategy}
	}
	if len(tasks) == 0 {
		return nil
	}

	if strategy == Serial {
		acc := init()
		for _, task := range tasks {
			acc = process(acc, task)
		}
		merge(acc)
		return nil
	}

	numWorkers := d.Workers()

	var (
		mergeMu sync.Mutex
		wg      sync.WaitGroup
	)

	// One lock acquisition per worker, after its last task.
	finish := func(acc A) {
		mergeMu.Lock()
		merge(acc)
		mergeMu.Unlock()
	}

	switch strategy {
	case ForkJoin:
		per := (len(tasks) + numWorkers - 1) / numWorkers
		for start := 0; start < len(tasks); start += per {
			end := min(start+per, len(tasks))
			part := tasks[start:end]
			d.spawn(&wg, func() {
				acc := init()
				for _, task := range part {
					acc = process(acc, task)
				}
				finish(acc)
			})
		}

	case SharedQueue:
		q := NewQueue[T]()
		// Workers are up before the leader produces a single task.
		for i := 0; i < numWorkers; i++ {
			d.spawn(&wg, func() {
				acc := init()
				for {
					task, ok := q.Pop()
					if !ok {
						break
					}
					acc = process(acc, task)
				}
				finish(acc)
			})
		}
		for _, task := range tasks {
			q.Push(task)
		}
		q.MarkFinished()

	case PartitionedQueue:
		pq := NewPartitioned[T](numWorkers)
		for i := 0; i < numWorkers; i++ {
			own := pq.Owner(i)
			d.spawn(&wg, func() {
				acc := init()
				for {
					task, ok := own.Pop()
					if !ok {
						break
					}
					acc = process(acc, task)
				}
				finish(acc)
			})
		}
		for _, task := range tasks {
			pq.Push(task)
		}
		pq.MarkFinished()
	}

	wg.Wait()
	return nil
}
