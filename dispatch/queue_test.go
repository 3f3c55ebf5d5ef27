package dispatch

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("FIFO", func(t *testing.T) {
		q := NewQueue[int]()
		q.Push(1)
		q.Push(2)
		q.Push(3)
		require.Equal(t, 3, q.Len())

		for want := 1; want <= 3; want++ {
			got, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	})

	t.Run("PopAfterFinishedOnEmpty", func(t *testing.T) {
		q := NewQueue[string]()
		q.MarkFinished()

		for i := 0; i < 3; i++ {
			_, ok := q.Pop()
			assert.False(t, ok)
		}
	})

	t.Run("DrainsBeforeNotOK", func(t *testing.T) {
		q := NewQueue[int]()
		q.Push(7)
		q.MarkFinished()

		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, 7, got)

		_, ok = q.Pop()
		assert.False(t, ok)
	})

	t.Run("BlockedConsumerWokenByPush", func(t *testing.T) {
		q := NewQueue[int]()
		done := make(chan int)

		go func() {
			v, ok := q.Pop()
			require.True(t, ok)
			done <- v
		}()

		q.Push(42)
		assert.Equal(t, 42, <-done)
	})

	t.Run("ExactlyOnceDelivery", func(t *testing.T) {
		const (
			numTasks     = 1000
			numConsumers = 8
		)

		q := NewQueue[int]()

		var (
			mu       sync.Mutex
			received []int
			wg       sync.WaitGroup
		)

		wg.Add(numConsumers)
		for i := 0; i < numConsumers; i++ {
			go func() {
				defer wg.Done()
				var local []int
				for {
					v, ok := q.Pop()
					if !ok {
						break
					}
					local = append(local, v)
				}
				mu.Lock()
				received = append(received, local...)
				mu.Unlock()
			}()
		}

		for i := 0; i < numTasks; i++ {
			q.Push(i)
		}
		q.MarkFinished()
		wg.Wait()

		require.Len(t, received, numTasks)
		sort.Ints(received)
		for i, v := range received {
			require.Equal(t, i, v, "task %d delivered zero or multiple times", i)
		}
	})
}

func TestPartitioned(t *testing.T) {
	t.Run("RoundRobinRouting", func(t *testing.T) {
		const numWorkers = 3

		pq := NewPartitioned[int](numWorkers)
		require.Equal(t, numWorkers, pq.Size())

		const numTasks = 10
		for i := 0; i < numTasks; i++ {
			pq.Push(i)
		}
		pq.MarkFinished()

		// Task i must land on queue i mod numWorkers, in push order.
		for w := 0; w < numWorkers; w++ {
			for want := w; want < numTasks; want += numWorkers {
				got, ok := pq.Owner(w).Pop()
				require.True(t, ok)
				assert.Equal(t, want, got)
			}
			_, ok := pq.Owner(w).Pop()
			assert.False(t, ok)
		}
	})

	t.Run("FinishedFansOutToEveryQueue", func(t *testing.T) {
		pq := NewPartitioned[int](4)
		pq.MarkFinished()

		for w := 0; w < pq.Size(); w++ {
			_, ok := pq.Owner(w).Pop()
			assert.False(t, ok)
		}
	})

	t.Run("MinimumOneQueue", func(t *testing.T) {
		pq := NewPartitioned[int](0)
		assert.Equal(t, 1, pq.Size())
	})
}
