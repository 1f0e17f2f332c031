package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/skillswap/internal/domain/action"
)

func msg(id string) action.Action {
	return action.Action{ID: id, Kind: action.KindMessage, ActorID: "1", TargetID: "2", Message: "hi"}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := q.Cap(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	if err := q.Enqueue(ctx, msg("a1")); err != nil {
		t.Fatalf("unexpected enqueue error: %v", err)
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got, ok := q.Dequeue(ctx)
	if !ok || got.ID != "a1" {
		t.Errorf("expected a1, got %q (ok=%v)", got.ID, ok)
	}
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Backpressure(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for _, id := range []string{"a1", "a2"} {
		if err := q.Enqueue(ctx, msg(id)); err != nil {
			t.Fatalf("unexpected enqueue error: %v", err)
		}
	}
	if err := q.Enqueue(ctx, msg("a3")); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}

	// FIFO order is kept.
	for _, want := range []string{"a1", "a2"} {
		got, ok := q.Dequeue(ctx)
		if !ok || got.ID != want {
			t.Errorf("expected %s, got %q", want, got.ID)
		}
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	if err := q.Enqueue(ctx, msg("pending")); err != nil {
		t.Fatalf("unexpected enqueue error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if err := q.Enqueue(ctx, msg("late")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// Pending actions drain after close.
	if got, ok := q.Dequeue(ctx); !ok || got.ID != "pending" {
		t.Errorf("expected pending action, got %q (ok=%v)", got.ID, ok)
	}
	if _, ok := q.Dequeue(ctx); ok {
		t.Error("expected closed, drained queue to report false")
	}
}

func TestInMemoryQueue_DequeueHonoursContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, ok := q.Dequeue(ctx); ok {
		t.Error("expected dequeue on an empty queue to give up with the context")
	}

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	if err := q.Enqueue(cancelled, msg("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInMemoryQueue_Concurrent(t *testing.T) {
	const producers, perProducer = 4, 250
	q := NewInMemoryQueue(WithCapacity(producers * perProducer))
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(ctx, msg(fmt.Sprintf("%d-%d", p, i))); err != nil {
					t.Errorf("unexpected enqueue error: %v", err)
				}
			}
		}(p)
	}
	wg.Wait()

	if l := q.Len(); l != producers*perProducer {
		t.Errorf("expected %d pending, got %d", producers*perProducer, l)
	}
}
