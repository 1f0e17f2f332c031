// Package inbox keeps recently delivered notices in a bounded ring.
package inbox

import (
	"sync"
	"time"

	"github.com/okian/skillswap/internal/domain/action"
)

const defaultCapacity = 1000

// Option configures an Inbox.
type Option func(*Inbox)

// WithCapacity bounds the number of notices kept across all users.
func WithCapacity(n int) Option {
	return func(in *Inbox) {
		if n > 0 {
			in.capacity = n
		}
	}
}

// WithTTL expires notices older than ttl. Zero keeps notices until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(in *Inbox) {
		if ttl >= 0 {
			in.ttl = ttl
		}
	}
}

// WithClock sets the clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(in *Inbox) {
		if now != nil {
			in.now = now
		}
	}
}

// Inbox is safe for concurrent use. When full, the oldest notice is
// overwritten.
type Inbox struct {
	mu       sync.RWMutex
	ring     []action.Notice
	next     int
	count    int
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// New creates an Inbox.
func New(opts ...Option) *Inbox {
	in := &Inbox{capacity: defaultCapacity, now: time.Now}
	for _, opt := range opts {
		opt(in)
	}
	in.ring = make([]action.Notice, in.capacity)
	return in
}

// Add stores n.
func (in *Inbox) Add(n action.Notice) { //nolint:gocritic // hugeParam
	in.mu.Lock()
	defer in.mu.Unlock()
	in.ring[in.next] = n
	in.next = (in.next + 1) % in.capacity
	if in.count < in.capacity {
		in.count++
	}
}

// Recent returns up to limit live notices for userID, newest first, after
// skipping the newest offset of them. A non-positive limit returns the rest.
func (in *Inbox) Recent(userID string, offset, limit int) []action.Notice {
	in.mu.RLock()
	defer in.mu.RUnlock()

	out := make([]action.Notice, 0)
	now := in.now()
	skipped := 0
	for i := 0; i < in.count; i++ {
		idx := (in.next - 1 - i + in.capacity) % in.capacity
		n := in.ring[idx]
		if n.UserID != userID || in.expired(n, now) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Len returns the number of live notices.
func (in *Inbox) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	now := in.now()
	live := 0
	for i := 0; i < in.count; i++ {
		if !in.expired(in.ring[i], now) {
			live++
		}
	}
	return live
}

func (in *Inbox) expired(n action.Notice, now time.Time) bool { //nolint:gocritic // hugeParam
	return in.ttl > 0 && now.Sub(n.CreatedAt) > in.ttl
}
