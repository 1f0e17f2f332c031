// Package service implements the catalogue and action operations behind the
// HTTP API and the CLI.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/skillswap/internal/adapters/mq/queue"
	"github.com/okian/skillswap/internal/adapters/mq/worker"
	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/dedupe"
	"github.com/okian/skillswap/internal/domain/delivery"
	"github.com/okian/skillswap/internal/domain/inbox"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// SearchCache stores rendered search pages. Implementations must tolerate
// being unavailable by reporting misses.
type SearchCache interface {
	Key(parts ...string) string
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// Service serves catalogue reads and accepts simulated actions.
//
// Reads work as soon as the Service is constructed. Actions are accepted
// only between Start and Stop.
type Service struct {
	mu sync.RWMutex

	catalog   repository.Catalog
	cache     SearchCache
	validator *action.Validator

	deduper dedupe.Deduper
	queue   *queue.InMemoryQueue
	pool    *worker.Pool
	inbox   *inbox.Inbox

	workerCount int
	queueSize   int
	dedupeSize  int
	deliveryMin time.Duration
	deliveryMax time.Duration
	inboxSize   int
	noticeTTL   time.Duration
	maxPageSize int
	awayWindow  time.Duration
	now         func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service over catalog.
func New(catalog repository.Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:     catalog,
		validator:   action.NewValidator(),
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  100_000,
		deliveryMin: 50 * time.Millisecond,
		deliveryMax: 250 * time.Millisecond,
		inboxSize:   1_000,
		noticeTTL:   time.Hour,
		maxPageSize: 100,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.inbox = inbox.New(
		inbox.WithCapacity(s.inboxSize),
		inbox.WithTTL(s.noticeTTL),
		inbox.WithClock(s.now),
	)
	return s
}

// Start launches the action pipeline. Calling Start on a running Service is
// a no-op.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.catalog == nil {
		return ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	sim := delivery.NewSimulator(
		delivery.WithLatencyRange(s.deliveryMin, s.deliveryMax),
		delivery.WithDirectory(s.displayName),
		delivery.WithClock(s.now),
	)
	s.pool = worker.NewPool(s.workerCount, s.queue, sim, s.inbox)
	// Workers outlive the request context that may have started them.
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	counts := s.catalog.Count(ctx)
	s.logger.Info(ctx, "skillswap service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("users", counts.Users),
		logger.Int("skills", counts.Skills),
	)
	return nil
}

// Stop closes the action queue and waits for pending deliveries.
func (s *Service) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping skillswap service...")
	_ = s.queue.Close()
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "pending deliveries dropped", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "skillswap service stopped")
}

// Started reports whether the action pipeline is running.
func (s *Service) Started() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	if s == nil || s.catalog == nil {
		return map[string]interface{}{"started": false}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	counts := s.catalog.Count(ctx)
	inboxLen := s.inbox.Len()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"maxPageSize":   s.maxPageSize,
		"users":         counts.Users,
		"skills":        counts.Skills,
		"swaps":         counts.Swaps,
		"notifications": counts.Notifications,
		"conversations": counts.Conversations,
		"messages":      counts.Messages,
		"reviews":       counts.Reviews,
		"inboxNotices":  inboxLen,
	}
	metrics.UpdateInboxSize(inboxLen)

	if s.started {
		stats["queueLength"] = s.queue.Len()
		stats["dedupeEntries"] = s.deduper.Size()
		stats["delivered"] = s.pool.Delivered()
		metrics.UpdateQueueSize(s.queue.Len(), s.queue.Cap())
	}
	return stats
}

func (s *Service) displayName(userID string) (string, bool) {
	u, err := s.catalog.User(context.Background(), userID)
	if err != nil {
		return "", false
	}
	return u.Name, true
}
