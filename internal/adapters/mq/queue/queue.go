// Package queue buffers accepted actions until a delivery worker picks them up.
package queue

import (
	"context"
	"sync"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Queue provides non-blocking enqueue and blocking, cancellable dequeue.
type Queue interface {
	// Enqueue adds a without blocking. It returns ErrFull when the queue is at
	// capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, a action.Action) error

	// Dequeue waits for the next action. It reports false once the queue is
	// closed and drained, or when ctx is done.
	Dequeue(ctx context.Context) (action.Action, bool)

	// Len returns the number of pending actions.
	Len() int

	// Cap returns the queue capacity.
	Cap() int

	// Close stops accepting actions. Pending actions can still be dequeued.
	Close() error
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	items    chan action.Action
	capacity int

	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan action.Action, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0, q.capacity)
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, a action.Action) error { //nolint:gocritic // hugeParam: channel send copies anyway
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return err
	}

	select {
	case q.items <- a:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.items), q.capacity)
		return nil
	default:
		metrics.RecordQueueEnqueueError("full")
		metrics.RecordErrorByComponent("queue", "full")
		return ErrFull
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (action.Action, bool) {
	select {
	case <-ctx.Done():
		return action.Action{}, false
	case a, ok := <-q.items:
		if !ok {
			return action.Action{}, false
		}
		metrics.RecordQueueDequeue()
		metrics.UpdateQueueSize(len(q.items), q.capacity)
		return a, true
	}
}

// Len implements Queue.
func (q *InMemoryQueue) Len() int { return len(q.items) }

// Cap implements Queue.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close implements Queue. It is safe to call more than once.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}
