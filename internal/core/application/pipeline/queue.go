// Package pipeline runs the kitchen and delivery stages: blocking FIFO queues
// between the stages and fixed-size worker pools draining them.
package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Put after Close, and by Take once a closed queue is empty.
var ErrQueueClosed = errors.New("queue closed")

// Queue is a FIFO hand-off queue safe for any number of producers and consumers.
// Waiting is done on channels that are closed and replaced on every change, so
// blocked callers sleep instead of polling.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	closed   bool
	notEmpty chan struct{}
	notFull  chan struct{}
}

// NewQueue creates a queue holding at most capacity items; zero or less means unbounded.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{
		capacity: max(capacity, 0),
		notEmpty: make(chan struct{}),
		notFull:  make(chan struct{}),
	}
}

// Put appends v, blocking while a bounded queue is full.
func (q *Queue[T]) Put(ctx context.Context, v T) error {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return ErrQueueClosed
		}
		if q.capacity == 0 || len(q.items) < q.capacity {
			q.items = append(q.items, v)
			broadcast(&q.notEmpty)
			q.mu.Unlock()
			return nil
		}
		wait := q.notFull
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
	}
}

// Take removes the oldest item, blocking while the queue is empty. A closed
// queue still hands out its remaining items before failing with ErrQueueClosed.
func (q *Queue[T]) Take(ctx context.Context) (T, error) {
	var zero T
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = zero
			q.items = q.items[1:]
			broadcast(&q.notFull)
			q.mu.Unlock()
			return v, nil
		}
		if q.closed {
			q.mu.Unlock()
			return zero, ErrQueueClosed
		}
		wait := q.notEmpty
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-wait:
		}
	}
}

// Close stops accepting items and wakes every blocked caller. It is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	broadcast(&q.notEmpty)
	broadcast(&q.notFull)
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Closed reports whether Close was called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.closed
}

func broadcast(ch *chan struct{}) {
	close(*ch)
	*ch = make(chan struct{})
}
