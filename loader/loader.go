package loader

import (
	"context"
	"log/slog"

	"github.com/hupe1980/recgo/dispatch"
	"github.com/hupe1980/recgo/resource"
)

// Loader runs parallel loading passes for one schema.
type Loader[R any] struct {
	schema Schema[R]
	d      *dispatch.Dispatcher
	rc     *resource.Controller
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*config)

type config struct {
	rc     *resource.Controller
	logger *slog.Logger
}

// WithResourceController throttles file opens and read throughput.
func WithResourceController(rc *resource.Controller) Option {
	return func(c *config) {
		c.rc = rc
	}
}

// WithLogger sets the structured logger for per-file skip events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a Loader that dispatches through d.
func New[R any](schema Schema[R], d *dispatch.Dispatcher, optFns ...Option) *Loader[R] {
	cfg := config{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Loader[R]{
		schema: schema,
		d:      d,
		rc:     cfg.rc,
		logger: cfg.logger,
	}
}

// Load resolves path and parses every resolved file under the given
// strategy, one task per file. It returns the merged records and the number
// of files that contributed; record order is unspecified.
//
// A file that cannot be read, or that yields no valid rows, is skipped with
// a warning. Only a root path that cannot be resolved is an error.
func (l *Loader[R]) Load(ctx context.Context, path string, strategy dispatch.Strategy) (records []R, filesLoaded int, err error) {
	files, err := Resolve(path, l.schema.extensions(), l.schema.Exclude)
	if err != nil {
		return nil, 0, err
	}

	l.logger.DebugContext(ctx, "resolved input files",
		"path", path,
		"files", len(files),
		"strategy", strategy.String(),
	)

	type fileResult struct {
		records []R
		files   int
	}

	err = dispatch.Reduce(ctx, l.d, strategy, files,
		func() fileResult { return fileResult{} },
		func(acc fileResult, file string) fileResult {
			parsed, perr := l.loadFile(ctx, file)
			if perr != nil {
				l.logger.WarnContext(ctx, "skipping unreadable file",
					"file", file,
					"error", perr,
				)
				return acc
			}
			if len(parsed) == 0 {
				l.logger.WarnContext(ctx, "skipping file with no valid rows",
					"file", file,
				)
				return acc
			}
			acc.records = append(acc.records, parsed...)
			acc.files++
			return acc
		},
		func(acc fileResult) {
			records = append(records, acc.records...)
			filesLoaded += acc.files
		},
	)
	if err != nil {
		return nil, 0, err
	}

	return records, filesLoaded, nil
}

// loadFile parses one file into records. All-or-nothing: a read error
// discards every row of the file.
func (l *Loader[R]) loadFile(ctx context.Context, path string) ([]R, error) {
	rows, err := readRows(ctx, path, l.schema.delimiter(), l.rc)
	if err != nil {
		return nil, err
	}

	records := make([]R, 0, len(rows))
	for _, row := range rows {
		if l.schema.skipRow(row) {
			continue
		}
		record, ok := l.schema.Parse(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
