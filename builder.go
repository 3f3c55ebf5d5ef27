// Package recgo fluent builder. The builder is immutable - each method
// returns a new builder with the updated configuration, so partially
// configured builders can be shared and forked safely.
package recgo

import (
	"log/slog"
	"slices"

	"github.com/hupe1980/recgo/dispatch"
	"github.com/hupe1980/recgo/resource"
)

// NewBuilder creates an immutable fluent builder for a Recgo instance over
// the given schema.
//
// Example:
//
//	db, err := recgo.NewBuilder(airquality.Schema()).
//	    Index("pollutant", func(r airquality.Reading) string { return r.Pollutant }).
//	    Workers(8).
//	    LogLevel(slog.LevelInfo).
//	    Build()
func NewBuilder[R any](schema Schema[R]) Builder[R] {
	return Builder[R]{schema: schema}
}

// Builder is an immutable fluent builder for creating Recgo instances.
// Each method returns a new builder with the updated configuration.
type Builder[R any] struct {
	schema         Schema[R]
	indexes        []indexDef[R]
	numWorkers     int
	pool           *dispatch.WorkerPool
	resourceConfig *resource.Config
	metrics        MetricsCollector
	logger         *Logger
}

// Index registers a secondary index keyed by extract.
func (b Builder[R]) Index(name string, extract func(R) string) Builder[R] {
	b.indexes = append(slices.Clone(b.indexes), indexDef[R]{name: name, extract: extract})
	return b
}

// Workers sets the worker count for loads, scans, and rebuilds.
// Default: dispatch.OptimalWorkerCount().
func (b Builder[R]) Workers(n int) Builder[R] {
	b.numWorkers = n
	return b
}

// Pool injects a shared persistent worker pool; the caller keeps ownership.
func (b Builder[R]) Pool(pool *dispatch.WorkerPool) Builder[R] {
	b.pool = pool
	return b
}

// Resources throttles loading with the given resource limits.
func (b Builder[R]) Resources(cfg resource.Config) Builder[R] {
	b.resourceConfig = &cfg
	return b
}

// Metrics sets the metrics collector.
func (b Builder[R]) Metrics(mc MetricsCollector) Builder[R] {
	b.metrics = mc
	return b
}

// Logger sets the structured logger.
func (b Builder[R]) Logger(logger *Logger) Builder[R] {
	b.logger = logger
	return b
}

// LogLevel sets a stderr text logger with the given level.
func (b Builder[R]) LogLevel(level slog.Level) Builder[R] {
	b.logger = NewTextLogger(level)
	return b
}

// Build creates the Recgo instance.
func (b Builder[R]) Build() (*Recgo[R], error) {
	opts := make([]Option[R], 0, len(b.indexes)+5)
	for _, def := range b.indexes {
		opts = append(opts, WithIndex[R](def.name, def.extract))
	}
	if b.numWorkers > 0 {
		opts = append(opts, WithWorkers[R](b.numWorkers))
	}
	if b.pool != nil {
		opts = append(opts, WithWorkerPool[R](b.pool))
	}
	if b.resourceConfig != nil {
		opts = append(opts, WithResourceConfig[R](*b.resourceConfig))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector[R](b.metrics))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger[R](b.logger))
	}
	return New(b.schema, opts...)
}
