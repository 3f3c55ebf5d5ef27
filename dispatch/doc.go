// Package dispatch implements the task-distribution core shared by bulk
// loading and by scan/aggregation queries.
//
// A unit of parallel work is expressed as a task list plus three callbacks:
// an accumulator constructor, a per-task process function, and a merge
// function. Reduce executes the work under one of four strategies:
//
//   - Serial: every task on the calling goroutine (baseline).
//   - ForkJoin: the task list is split into contiguous sub-slices, one per
//     worker.
//   - SharedQueue: workers pull dynamically from a single shared queue.
//   - PartitionedQueue: tasks are routed round-robin to per-worker queues at
//     enqueue time and never rebalanced.
//
// Every strategy follows the same two-phase contract: each worker accumulates
// into a private buffer and acquires the shared merge lock exactly once
// before exiting. Results are therefore content-equivalent across strategies
// but never order-equivalent.
package dispatch
