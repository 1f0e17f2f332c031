package loadgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/skillswap/pkg/logger"
)

const pollInterval = 50 * time.Millisecond

// Run executes a complete load run: health check, roster fetch, concurrent
// submission and notice verification. It returns ErrUndelivered, wrapped,
// when accepted actions are still missing once cfg.Wait has elapsed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := logger.Named("loadgen")
	stats := &Stats{StartTime: time.Now()}
	c := newClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("actions", cfg.NumActions),
		logger.Int("workers", cfg.Workers),
		logger.Float64("duplicates", cfg.Duplicates))

	if err := c.health(ctx); err != nil {
		return nil, err
	}
	users, err := c.roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	actions, err := generate(users, cfg.NumActions, cfg.Duplicates, rand.New(rand.NewPCG(seed, seed>>1)))
	if err != nil {
		return nil, err
	}
	stats.Generated = len(actions)

	accepted := submitAll(ctx, c, cfg, actions, stats)
	stats.Delivered = awaitNotices(ctx, c, cfg.Wait, accepted)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	stats.Log(ctx)

	if missing := stats.Missing(); missing > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrUndelivered, missing, stats.Accepted)
	}
	return stats, nil
}

// submitAll posts actions with a pool of workers and returns the accepted
// action IDs grouped by actor.
func submitAll(ctx context.Context, c *client, cfg *Config, actions []payload, stats *Stats) map[string]map[string]struct{} {
	var (
		submitted, ok, dup, busy, failed atomic.Int64

		mu       sync.Mutex
		accepted = make(map[string]map[string]struct{})
		wg       sync.WaitGroup
	)
	log := logger.Named("loadgen")
	work := make(chan payload, cfg.Workers*2)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range work {
				res, err := c.submit(ctx, p)
				submitted.Add(1)
				switch res {
				case outcomeAccepted:
					ok.Add(1)
					mu.Lock()
					if accepted[p.ActorID] == nil {
						accepted[p.ActorID] = make(map[string]struct{})
					}
					accepted[p.ActorID][p.ID] = struct{}{}
					mu.Unlock()
				case outcomeDuplicate:
					dup.Add(1)
				case outcomeBackpressure:
					busy.Add(1)
				default:
					failed.Add(1)
					if cfg.Verbose {
						log.Warn(ctx, "submit failed", logger.String("action_id", p.ID), logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for _, p := range actions {
			select {
			case <-ctx.Done():
				return
			case work <- p:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Accepted = 0
	for _, ids := range accepted {
		stats.Accepted += len(ids)
	}
	stats.Duplicate = int(dup.Load())
	stats.Backpressure = int(busy.Load())
	stats.Failed = int(failed.Load())
	log.Info(ctx, "submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("backpressure", stats.Backpressure),
		logger.Int("failed", stats.Failed))
	return accepted
}

// awaitNotices polls each actor's notices until every accepted ID has been
// seen or wait elapses, and returns how many were seen. Each poll reads all
// of an actor's pages.
func awaitNotices(ctx context.Context, c *client, wait time.Duration, accepted map[string]map[string]struct{}) int {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	pending := make(map[string]map[string]struct{}, len(accepted))
	for actor, ids := range accepted {
		rest := make(map[string]struct{}, len(ids))
		for id := range ids {
			rest[id] = struct{}{}
		}
		pending[actor] = rest
	}

	delivered := 0
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for len(pending) > 0 {
		for actor, rest := range pending {
			list, err := c.notices(ctx, actor)
			if err != nil {
				continue
			}
			for _, n := range list {
				if _, ok := rest[n.ActionID]; ok {
					delete(rest, n.ActionID)
					delivered++
				}
			}
			if len(rest) == 0 {
				delete(pending, actor)
			}
		}
		if len(pending) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return delivered
		case <-ticker.C:
		}
	}
	return delivered
}
