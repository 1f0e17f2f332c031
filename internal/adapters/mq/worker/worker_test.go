package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/okian/skillswap/internal/adapters/mq/queue"
	"github.com/okian/skillswap/internal/adapters/mq/worker"
	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/delivery"
	"github.com/okian/skillswap/internal/domain/inbox"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingDeliverer struct {
	mu    sync.Mutex
	calls int
}

func (f *failingDeliverer) Deliver(context.Context, action.Action) (action.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return action.Notice{}, errors.New("transport down")
}

func (f *failingDeliverer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func msg(id, actor string) action.Action {
	return action.Action{ID: id, Kind: action.KindMessage, ActorID: actor, TargetID: "2", Message: "hi"}
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool draining a queue into an inbox", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		box := inbox.New(inbox.WithCapacity(16))
		sim := delivery.NewSimulator(delivery.WithLatencyRange(0, 2*time.Millisecond))
		pool := worker.NewPool(3, q, sim, box)
		pool.Start(ctx)

		convey.Convey("When actions are enqueued and the queue is closed", func() {
			for _, id := range []string{"a1", "a2", "a3", "a4"} {
				convey.So(q.Enqueue(ctx, msg(id, "1")), convey.ShouldBeNil)
			}
			convey.So(q.Close(), convey.ShouldBeNil)
			err := pool.Shutdown(ctx)

			convey.Convey("Then every action is delivered before shutdown returns", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pool.Size(), convey.ShouldEqual, 3)
				convey.So(pool.Delivered(), convey.ShouldEqual, 4)
				convey.So(len(box.Recent("1", 0, 0)), convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When shutdown runs with nothing queued", func() {
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then workers exit cleanly", func() {
				convey.So(pool.Shutdown(ctx), convey.ShouldBeNil)
				convey.So(pool.Delivered(), convey.ShouldEqual, 0)
			})
		})
	})

	convey.Convey("Given a pool whose deliveries block", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		box := inbox.New()
		slow := delivery.NewSimulator(delivery.WithLatencyRange(time.Hour, time.Hour))
		pool := worker.NewPool(1, q, slow, box)
		pool.Start(context.Background())
		convey.So(q.Enqueue(context.Background(), msg("stuck", "1")), convey.ShouldBeNil)
		convey.So(q.Close(), convey.ShouldBeNil)

		convey.Convey("When shutdown is bounded by a short deadline", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then in-flight work is cancelled and reported", func() {
				convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
				convey.So(box.Len(), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestWorkerFailures(t *testing.T) {
	convey.Convey("Given a worker whose deliverer fails", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		box := inbox.New()
		f := &failingDeliverer{}
		w := worker.New(q, f, box, worker.WithName("failing"))

		convey.So(q.Enqueue(ctx, msg("a1", "1")), convey.ShouldBeNil)
		convey.So(q.Enqueue(ctx, msg("a2", "1")), convey.ShouldBeNil)
		convey.So(q.Close(), convey.ShouldBeNil)
		w.Run(ctx)

		convey.Convey("Then it keeps going and nothing reaches the inbox", func() {
			convey.So(f.Calls(), convey.ShouldEqual, 2)
			convey.So(w.Delivered(), convey.ShouldEqual, 0)
			convey.So(box.Len(), convey.ShouldEqual, 0)
		})
	})
}
