package queue

import (
	"errors"
	"time"
)

// ErrQueueEmpty is returned when a dequeue or peek finds nothing pending.
var ErrQueueEmpty = errors.New("queue is empty")

// FIFO is an unbounded first-in first-out queue.
// Items are stored by value, so callers never hold references into it.
type FIFO[T any] struct {
	items []T
	head  int

	stats Stats
	now   func() time.Time
}

// Stats tracks queue activity.
type Stats struct {
	TotalEnqueued int64
	TotalDequeued int64
	TotalCleared  int64
	CurrentSize   int
	PeakSize      int
	LastEnqueue   time.Time
	LastDequeue   time.Time
}

// New creates an empty queue.
func New[T any]() *FIFO[T] {
	return &FIFO[T]{now: time.Now}
}

// Enqueue appends item to the tail.
func (q *FIFO[T]) Enqueue(item T) {
	q.items = append(q.items, item)

	q.stats.TotalEnqueued++
	q.stats.LastEnqueue = q.now()
	q.stats.CurrentSize = q.Len()
	if q.stats.CurrentSize > q.stats.PeakSize {
		q.stats.PeakSize = q.stats.CurrentSize
	}
}

// Dequeue removes and returns the head item.
func (q *FIFO[T]) Dequeue() (T, error) {
	var zero T
	if q.Len() == 0 {
		return zero, ErrQueueEmpty
	}

	item := q.items[q.head]
	q.items[q.head] = zero // release for GC
	q.head++

	// Compact once the consumed prefix dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	q.stats.TotalDequeued++
	q.stats.LastDequeue = q.now()
	q.stats.CurrentSize = q.Len()

	return item, nil
}

// Peek returns the head item without removing it.
func (q *FIFO[T]) Peek() (T, error) {
	if q.Len() == 0 {
		var zero T
		return zero, ErrQueueEmpty
	}
	return q.items[q.head], nil
}

// Len returns the number of pending items.
func (q *FIFO[T]) Len() int {
	return len(q.items) - q.head
}

// Clear discards every pending item.
func (q *FIFO[T]) Clear() {
	q.stats.TotalCleared += int64(q.Len())
	q.items = nil
	q.head = 0
	q.stats.CurrentSize = 0
}

// Items returns a copy of the pending items in dequeue order.
func (q *FIFO[T]) Items() []T {
	out := make([]T, q.Len())
	copy(out, q.items[q.head:])
	return out
}

// Stats returns a snapshot of queue statistics.
func (q *FIFO[T]) Stats() Stats {
	return q.stats
}
