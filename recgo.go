package recgo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/recgo/dispatch"
	"github.com/hupe1980/recgo/loader"
	"github.com/hupe1980/recgo/resource"
	"github.com/hupe1980/recgo/store"
)

// Recgo is an in-memory record store with parallel load and query dispatch.
// It is generic over the record type; the schema decides how rows become
// records and the registered indices decide what can be probed directly.
//
// A Recgo instance is safe for concurrent queries. Loads replace the store
// wholesale and must not run concurrently with queries.
type Recgo[R any] struct {
	schema     Schema[R]
	dispatcher *dispatch.Dispatcher
	pool       *dispatch.WorkerPool
	ownsPool   bool
	store      *store.Store[R]
	loader     *loader.Loader[R]
	logger     *Logger
	metrics    MetricsCollector
	closed     atomic.Bool
}

// New creates a Recgo instance for the given schema.
func New[R any](schema Schema[R], optFns ...Option[R]) (*Recgo[R], error) {
	if schema.Parse == nil {
		return nil, ErrNilParse
	}

	o := applyOptions(optFns)

	pool := o.pool
	ownsPool := false
	if pool == nil {
		pool = dispatch.NewWorkerPool(o.numWorkers)
		ownsPool = true
	}

	dispatcherOpts := []dispatch.DispatcherOption{dispatch.WithPool(pool)}
	if o.numWorkers > 0 {
		dispatcherOpts = append(dispatcherOpts, dispatch.WithWorkers(o.numWorkers))
	}
	d := dispatch.NewDispatcher(dispatcherOpts...)

	var rc *resource.Controller
	if o.resourceConfig != nil {
		rc = resource.NewController(*o.resourceConfig)
	}

	s := store.New[R]()
	for _, def := range o.indexes {
		s.DefineIndex(def.name, def.extract)
	}

	// Every log line from this instance carries the worker count.
	logger := o.logger.WithWorkers(d.Workers())

	return &Recgo[R]{
		schema:     schema,
		dispatcher: d,
		pool:       pool,
		ownsPool:   ownsPool,
		store:      s,
		loader: loader.New(schema, d,
			loader.WithResourceController(rc),
			loader.WithLogger(logger.Logger),
		),
		logger:  logger,
		metrics: o.metricsCollector,
	}, nil
}

// Load resolves path, parses every matching file under the given strategy,
// and replaces the store contents with the result. Every secondary index is
// rebuilt before Load returns. It returns the number of records loaded.
//
// A fresh Load discards all previously loaded records.
func (rg *Recgo[R]) Load(ctx context.Context, path string, strategy dispatch.Strategy) (int, error) {
	if rg.closed.Load() {
		return 0, ErrClosed
	}

	start := time.Now()

	records, files, err := rg.loader.Load(ctx, path, strategy)
	if err == nil {
		rg.store.Replace(records)
		err = rg.store.Rebuild(ctx, rg.dispatcher, strategy)
	}

	rg.metrics.RecordLoad(files, len(records), time.Since(start), err)
	rg.logger.LogLoad(ctx, path, strategy, files, len(records), err)

	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Len returns the number of loaded records.
func (rg *Recgo[R]) Len() int {
	return rg.store.Len()
}

// Records returns a copy of the loaded record sequence. Order is an
// artifact of the load strategy, not meaningful.
func (rg *Recgo[R]) Records() []R {
	view := rg.store.View()
	out := make([]R, len(view))
	copy(out, view)
	return out
}

// Workers returns the effective worker count used per dispatch.
func (rg *Recgo[R]) Workers() int {
	return rg.dispatcher.Workers()
}

// Lookup probes a secondary index directly and returns all records whose
// key equals key, in unspecified order.
func (rg *Recgo[R]) Lookup(index, key string) ([]R, error) {
	if rg.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	results, ok := rg.store.Lookup(index, key)
	var err error
	if !ok {
		err = &ErrUnknownIndex{Name: index}
	}

	rg.metrics.RecordLookup(len(results), time.Since(start), err)
	rg.logger.LogLookup(context.Background(), index, key, len(results), err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Scan returns every record matching pred, dispatched over the full record
// range under the given strategy. Result order is unspecified but the
// result set is identical across strategies.
func (rg *Recgo[R]) Scan(ctx context.Context, strategy dispatch.Strategy, pred func(R) bool) ([]R, error) {
	if rg.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	records := rg.store.View()
	chunks := dispatch.Chunks(len(records), rg.dispatcher.Workers())

	var results []R
	err := dispatch.Reduce(ctx, rg.dispatcher, strategy, chunks,
		func() []R { return nil },
		func(acc []R, c dispatch.Chunk) []R {
			for i := c.Start; i < c.End; i++ {
				if pred(records[i]) {
					acc = append(acc, records[i])
				}
			}
			return acc
		},
		func(acc []R) {
			results = append(results, acc...)
		},
	)

	rg.metrics.RecordScan(len(results), time.Since(start), err)
	rg.logger.LogScan(ctx, strategy, len(records), len(results), err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Mean computes the arithmetic mean of value over the records matching
// pred, as a parallel sum+count reduction. A nil pred matches every record;
// zero matching records yield 0.
func (rg *Recgo[R]) Mean(ctx context.Context, strategy dispatch.Strategy, value func(R) float64, pred func(R) bool) (float64, error) {
	if rg.closed.Load() {
		return 0, ErrClosed
	}

	start := time.Now()

	type sumCount struct {
		sum   float64
		count int
	}

	records := rg.store.View()
	chunks := dispatch.Chunks(len(records), rg.dispatcher.Workers())

	var total sumCount
	err := dispatch.Reduce(ctx, rg.dispatcher, strategy, chunks,
		func() sumCount { return sumCount{} },
		func(acc sumCount, c dispatch.Chunk) sumCount {
			for i := c.Start; i < c.End; i++ {
				if pred == nil || pred(records[i]) {
					acc.sum += value(records[i])
					acc.count++
				}
			}
			return acc
		},
		func(acc sumCount) {
			total.sum += acc.sum
			total.count += acc.count
		},
	)

	rg.metrics.RecordAggregate(time.Since(start), err)
	rg.logger.LogAggregate(ctx, "mean", strategy, err)

	if err != nil {
		return 0, err
	}
	if total.count == 0 {
		return 0, nil
	}
	return total.sum / float64(total.count), nil
}

// CountBy counts records grouped by key, merged key-wise across workers.
// The result is identical for every strategy and worker count.
func (rg *Recgo[R]) CountBy(ctx context.Context, strategy dispatch.Strategy, key func(R) string) (map[string]int, error) {
	if rg.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	records := rg.store.View()
	chunks := dispatch.Chunks(len(records), rg.dispatcher.Workers())

	counts := make(map[string]int)
	err := dispatch.Reduce(ctx, rg.dispatcher, strategy, chunks,
		func() map[string]int { return make(map[string]int) },
		func(acc map[string]int, c dispatch.Chunk) map[string]int {
			for i := c.Start; i < c.End; i++ {
				acc[key(records[i])]++
			}
			return acc
		},
		func(acc map[string]int) {
			for k, n := range acc {
				counts[k] += n
			}
		},
	)

	rg.metrics.RecordAggregate(time.Since(start), err)
	rg.logger.LogAggregate(ctx, "count-by", strategy, err)

	if err != nil {
		return nil, err
	}
	return counts, nil
}
