package dispatch

// Partitioned is a set of per-worker queues sharing the Queue contract.
// The leader routes task i (0-indexed in push order) to queue i mod n at
// enqueue time; assignment is static and never rebalanced. Worker i pops
// only from Owner(i), so workers never contend on a queue.
//
// Push is leader-only and must not be called concurrently.
type Partitioned[T any] struct {
	queues []*Queue[T]
	seq    int
}

// NewPartitioned creates n independent queues. n must be at least 1.
func NewPartitioned[T any](n int) *Partitioned[T] {
	if n < 1 {
		n = 1
	}
	queues := make([]*Queue[T], n)
	for i := range queues {
		queues[i] = NewQueue[T]()
	}
	return &Partitioned[T]{queues: queues}
}

// Push routes the task to its owning queue by round robin.
func (p *Partitioned[T]) Push(task T) {
	p.queues[p.seq%len(p.queues)].Push(task)
	p.seq++
}

// Owner returns worker i's queue.
func (p *Partitioned[T]) Owner(i int) *Queue[T] {
	return p.queues[i]
}

// Size returns the number of queues in the set.
func (p *Partitioned[T]) Size() int {
	return len(p.queues)
}

// MarkFinished marks every queue finished. Workers must not be expected to
// exit before this has run across the whole set.
func (p *Partitioned[T]) MarkFinished() {
	for _, q := range p.queues {
		q.MarkFinished()
	}
}
