package dispatch

import (
	"errors"
	"fmt"
)

// ErrPoolClosed is returned when work is submitted to a closed WorkerPool.
var ErrPoolClosed = errors.New("worker pool is closed")

// ErrUnknownStrategy indicates a strategy tag or name that is not one of the
// defined strategies.
type ErrUnknownStrategy struct {
	Name string
	Tag  Strategy
}

func (e *ErrUnknownStrategy) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown strategy: %q", e.Name)
	}
	return fmt.Sprintf("unknown strategy: %d", int(e.Tag))
}
