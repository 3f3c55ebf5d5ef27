// Package resource provides global throttles shared by loading passes:
// a bound on concurrently open input files and a byte-rate limit on reads.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxOpenFiles bounds the number of input files open at once across all
	// loader workers. If 0, defaults to 64.
	MaxOpenFiles int64

	// IOLimitBytesPerSec is the maximum read throughput for input files.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared loading resources.
type Controller struct {
	cfg Config

	fileSem   *semaphore.Weighted
	ioLimiter *rate.Limiter

	bytesRead atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxOpenFiles <= 0 {
		cfg.MaxOpenFiles = 64
	}

	c := &Controller{
		cfg:     cfg,
		fileSem: semaphore.NewWeighted(cfg.MaxOpenFiles),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireFile reserves an open-file slot, blocking while all slots are busy.
// A nil controller never limits.
func (c *Controller) AcquireFile(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fileSem.Acquire(ctx, 1)
}

// ReleaseFile releases an open-file slot.
func (c *Controller) ReleaseFile() {
	if c == nil {
		return
	}
	c.fileSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes
// and accounts them.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil {
		return nil
	}
	c.bytesRead.Add(int64(bytes))
	if c.ioLimiter == nil {
		return nil
	}
	// WaitN rejects n > burst; larger reads are split.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// BytesRead returns the total bytes accounted so far.
func (c *Controller) BytesRead() int64 {
	if c == nil {
		return 0
	}
	return c.bytesRead.Load()
}
