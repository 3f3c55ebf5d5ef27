package dispatch

import "fmt"

// Strategy selects how tasks are distributed across workers.
type Strategy int

const (
	// Serial runs every task on the calling goroutine. It is the baseline
	// the parallel strategies are validated against.
	Serial Strategy = iota

	// ForkJoin splits the task list into contiguous sub-slices, one per
	// worker, joined with a barrier before the merged result is observed.
	ForkJoin

	// SharedQueue uses a single queue that all workers pull from. Load
	// balances dynamically; the queue itself is the contention point.
	SharedQueue

	// PartitionedQueue gives every worker its own queue and routes task i
	// to queue i mod numWorkers at enqueue time. No queue contention, but
	// load can skew when tasks have unequal cost.
	PartitionedQueue
)

// Strategies lists the parallel strategies (Serial excluded).
var Strategies = []Strategy{ForkJoin, SharedQueue, PartitionedQueue}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Serial:
		return "serial"
	case ForkJoin:
		return "fork-join"
	case SharedQueue:
		return "shared-queue"
	case PartitionedQueue:
		return "partitioned-queue"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name (as produced by String) back into a
// Strategy tag.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "serial":
		return Serial, nil
	case "fork-join":
		return ForkJoin, nil
	case "shared-queue":
		return SharedQueue, nil
	case "partitioned-queue":
		return PartitionedQueue, nil
	default:
		return 0, &ErrUnknownStrategy{Name: name}
	}
}

func (s Strategy) valid() bool {
	return s >= Serial && s <= PartitionedQueue
}
