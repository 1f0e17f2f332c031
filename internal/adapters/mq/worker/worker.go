// Package worker runs the delivery workers that drain the action queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Source is where workers read actions from.
type Source interface {
	Dequeue(ctx context.Context) (action.Action, bool)
}

// Deliverer turns an action into a notice.
type Deliverer interface {
	Deliver(ctx context.Context, a action.Action) (action.Notice, error)
}

// Sink receives delivered notices.
type Sink interface {
	Add(n action.Notice)
}

// Worker delivers actions one at a time.
type Worker struct {
	source    Source
	deliverer Deliverer
	sink      Sink
	name      string
	logger    logger.Logger
	delivered atomic.Int64
}

// New creates a worker.
func New(source Source, deliverer Deliverer, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		source:    source,
		deliverer: deliverer,
		sink:      sink,
		name:      "worker",
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes actions until the source is drained or ctx is done.
func (w *Worker) Run(ctx context.Context) {
	for {
		a, ok := w.source.Dequeue(ctx)
		if !ok {
			return
		}
		if err := w.process(ctx, a); err != nil {
			w.logger.Error(ctx, "delivery failed",
				logger.String("action_id", a.ID),
				logger.String("kind", string(a.Kind)),
				logger.Error(err),
			)
		}
	}
}

// Delivered returns how many actions this worker has delivered.
func (w *Worker) Delivered() int64 { return w.delivered.Load() }

func (w *Worker) process(ctx context.Context, a action.Action) error { //nolint:gocritic // hugeParam
	start := time.Now()
	n, err := w.deliverer.Deliver(ctx, a)
	metrics.RecordDeliveryLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordDeliveryError()
		metrics.RecordErrorByComponent("worker", "delivery_error")
		return fmt.Errorf("deliver action %s: %w", a.ID, err)
	}
	w.sink.Add(n)
	w.delivered.Add(1)
	w.logger.Debug(ctx, "action delivered",
		logger.String("action_id", a.ID),
		logger.String("notice_id", n.ID),
	)
	return nil
}

// Pool runs a fixed set of workers over one source.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	logger  logger.Logger
}

// NewPool creates a pool of size workers. A non-positive size uses the CPU count.
func NewPool(size int, source Source, deliverer Deliverer, sink Sink) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*Worker, size),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = New(source, deliverer, sink, WithName("worker-"+strconv.Itoa(i)))
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Delivered returns the total number of delivered actions.
func (p *Pool) Delivered() int64 {
	var total int64
	for _, w := range p.workers {
		total += w.Delivered()
	}
	return total
}

// Start launches every worker. Workers stop when ctx is done, when the source
// is closed and drained, or on Shutdown.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	metrics.UpdateWorkerActiveCount(len(p.workers))
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown waits for workers to drain the source. Close the source first so
// workers can finish; when ctx expires the remaining work is cancelled.
func (p *Pool) Shutdown(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timeout, stop := context.WithTimeout(ctx, poolShutdownTimeout)
	defer stop()

	var err error
	select {
	case <-done:
	case <-timeout.Done():
		p.cancel()
		<-done
		err = fmt.Errorf("worker pool shutdown: %w", timeout.Err())
		p.logger.Warn(ctx, "worker pool shutdown timed out")
	}
	p.cancel()
	metrics.UpdateWorkerActiveCount(0)
	return err
}
