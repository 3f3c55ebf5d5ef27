package dispatch

import "sync"

// Queue is an unbounded FIFO task queue with a single producer (the leader)
// and any number of consumers. Pop blocks until a task is available or the
// queue has been marked finished and drained. Each task is delivered to
// exactly one consumer.
type Queue[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	tasks    []T
	head     int
	finished bool
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues a task and wakes one waiting consumer. Push must not be
// called after MarkFinished.
func (q *Queue[T]) Push(task T) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop removes and returns the oldest task. It blocks until a task is
// available; once the queue is finished and empty it returns ok=false.
func (q *Queue[T]) Pop() (task T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.tasks) && !q.finished {
		q.cond.Wait()
	}

	if q.head == len(q.tasks) {
		var zero T
		return zero, false
	}

	task = q.tasks[q.head]
	var zero T
	q.tasks[q.head] = zero // release the reference
	q.head++
	return task, true
}

// MarkFinished signals that no more tasks will be pushed and wakes all
// blocked consumers so they can drain and exit. It is called exactly once,
// by the leader, after the last Push.
func (q *Queue[T]) MarkFinished() {
	q.mu.Lock()
	q.finished = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len returns the number of tasks currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks) - q.head
}
