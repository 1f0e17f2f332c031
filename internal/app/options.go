package service

import (
	"time"

	"github.com/okian/skillswap/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the action queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the remembered action IDs.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithDeliveryLatencyRange sets the simulated delivery delay.
func WithDeliveryLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.deliveryMin = minLatency
			s.deliveryMax = maxLatency
		}
	}
}

// WithInbox sets the notice inbox capacity and TTL.
func WithInbox(size int, ttl time.Duration) Option {
	return func(s *Service) {
		if size > 0 {
			s.inboxSize = size
		}
		if ttl >= 0 {
			s.noticeTTL = ttl
		}
	}
}

// WithMaxPageSize caps the page size of search results and notice pages.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithAwayWindow sets how long an offline user still shows as away.
func WithAwayWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.awayWindow = d
		}
	}
}

// WithSearchCache enables caching of search pages.
func WithSearchCache(c SearchCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithClock sets the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
