package recgo

import (
	"log/slog"

	"github.com/hupe1980/recgo/dispatch"
	"github.com/hupe1980/recgo/resource"
)

type indexDef[R any] struct {
	name    string
	extract func(R) string
}

type options[R any] struct {
	indexes          []indexDef[R]
	numWorkers       int
	pool             *dispatch.WorkerPool
	resourceConfig   *resource.Config
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Recgo constructor behavior.
type Option[R any] func(*options[R])

// WithIndex registers a secondary index keyed by extract. Indices are
// rebuilt wholesale after every load; probes run through Lookup.
func WithIndex[R any](name string, extract func(R) string) Option[R] {
	return func(o *options[R]) {
		o.indexes = append(o.indexes, indexDef[R]{name: name, extract: extract})
	}
}

// WithWorkers sets the worker count used by loads, scans, and index
// rebuilds. Defaults to dispatch.OptimalWorkerCount().
func WithWorkers[R any](n int) Option[R] {
	return func(o *options[R]) {
		o.numWorkers = n
	}
}

// WithWorkerPool injects a persistent worker pool shared across instances.
// The caller keeps ownership; Close does not shut a shared pool down.
// Without this option each instance creates and owns its own pool.
func WithWorkerPool[R any](pool *dispatch.WorkerPool) Option[R] {
	return func(o *options[R]) {
		o.pool = pool
	}
}

// WithResourceConfig throttles loading: concurrently open input files and
// read throughput.
func WithResourceConfig[R any](cfg resource.Config) Option[R] {
	return func(o *options[R]) {
		o.resourceConfig = &cfg
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector[R any](mc MetricsCollector) Option[R] {
	return func(o *options[R]) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger[R any](logger *Logger) Option[R] {
	return func(o *options[R]) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel[R any](level slog.Level) Option[R] {
	return func(o *options[R]) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions[R any](optFns []Option[R]) options[R] {
	o := options[R]{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
