// Package delivery turns queued actions into notices after a simulated
// transport delay.
package delivery

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/skillswap/internal/domain/action"
)

const (
	defaultMinLatency = 50 * time.Millisecond
	defaultMaxLatency = 250 * time.Millisecond
	defaultRandomSeed = 42
)

// Directory resolves user IDs to display names. Unknown IDs fall back to the
// raw ID in notice text.
type Directory func(userID string) (string, bool)

// Option configures a Simulator.
type Option func(*Simulator)

// WithLatencyRange sets the simulated delay bounds. Equal bounds give a fixed
// delay; zero disables the delay.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Simulator) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithDirectory sets how user names are looked up.
func WithDirectory(dir Directory) Option {
	return func(s *Simulator) {
		if dir != nil {
			s.names = dir
		}
	}
}

// WithClock sets the clock used for notice timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

// Deliverer delivers a single action.
type Deliverer interface {
	// Deliver waits for the simulated transport and returns the notice for
	// the acting user, honoring ctx for cancellation.
	Deliver(ctx context.Context, a action.Action) (action.Notice, error)
}

// Simulator implements Deliverer without any real transport.
type Simulator struct {
	minLatency time.Duration
	maxLatency time.Duration
	names      Directory
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

var _ Deliverer = (*Simulator)(nil)

// NewSimulator creates a Simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		names:      func(string) (string, bool) { return "", false },
		now:        time.Now,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // simulated jitter only
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver implements Deliverer.
func (s *Simulator) Deliver(ctx context.Context, a action.Action) (action.Notice, error) { //nolint:gocritic // hugeParam
	if d := s.latency(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return action.Notice{}, fmt.Errorf("deliver %s: %w", a.ID, ctx.Err())
		case <-timer.C:
		}
	}

	title, text := s.compose(a)
	return action.Notice{
		ID:        uuid.NewString(),
		ActionID:  a.ID,
		UserID:    a.ActorID,
		Kind:      a.Kind,
		Title:     title,
		Text:      text,
		CreatedAt: s.now(),
	}, nil
}

func (s *Simulator) latency() time.Duration {
	span := s.maxLatency - s.minLatency
	if span <= 0 {
		return s.minLatency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minLatency + time.Duration(s.rng.Int63n(int64(span)))
}

func (s *Simulator) compose(a action.Action) (title, text string) { //nolint:gocritic // hugeParam
	target := a.TargetID
	if name, ok := s.names(a.TargetID); ok {
		target = name
	}
	switch a.Kind {
	case action.KindSwapRequest:
		return "Swap Request Sent", fmt.Sprintf("Your swap request was sent to %s", target)
	case action.KindSwapAccept:
		return "Swap Accepted", fmt.Sprintf("You accepted the swap with %s", target)
	case action.KindSwapDecline:
		return "Swap Declined", fmt.Sprintf("You declined the swap with %s", target)
	case action.KindMessage:
		return "Message Sent", fmt.Sprintf("Your message to %s was delivered", target)
	default:
		return "Action Delivered", fmt.Sprintf("Your %s to %s was delivered", a.Kind, target)
	}
}
