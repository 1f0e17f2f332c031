// Package cache stores rendered search pages in Redis.
//
// The cache is optional. A Redis that is unconfigured or unreachable turns
// every call into a no-op miss so search keeps working without it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

const (
	defaultTTL    = 30 * time.Second
	defaultPrefix = "skillswap:search:"
	pingTimeout   = 2 * time.Second
)

// Redis is a JSON cache over a go-redis client. The zero value and a nil
// *Redis are valid and bypass the cache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string

	warnedUnavailable atomic.Bool
}

// Option configures a Redis cache.
type Option func(*Redis)

// WithTTL sets the lifetime of cached entries.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces keys, e.g. per dataset.
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis connects to addr. An empty addr, or a server that does not answer
// a ping, yields a cache that bypasses every call.
func NewRedis(ctx context.Context, addr, password string, db int, opts ...Option) *Redis {
	r := &Redis{ttl: defaultTTL, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	if addr == "" {
		return r
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Get().Warn(ctx, "redis unavailable, bypassing search cache",
			logger.String("addr", addr), logger.Error(err))
		_ = client.Close()
		return r
	}
	logger.Get().Info(ctx, "search cache enabled", logger.String("addr", addr))
	r.client = client
	return r
}

// Enabled reports whether a live Redis backs the cache.
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// Key derives a cache key from the parts that identify a result page.
func (r *Redis) Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strconv.Itoa(len(p))))
		h.Write([]byte{':'})
		h.Write([]byte(p))
	}
	prefix := defaultPrefix
	if r != nil && r.prefix != "" {
		prefix = r.prefix
	}
	return prefix + hex.EncodeToString(h.Sum(nil))
}

// GetJSON decodes the value at key into out. It reports false on a miss or
// when the cache is bypassed.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss()
			return false, nil
		}
		metrics.RecordCacheError()
		r.warnUnavailableOnce(ctx, err)
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		metrics.RecordCacheError()
		return false, err
	}
	metrics.RecordCacheHit()
	return true, nil
}

// SetJSON stores value at key with the configured TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any) error {
	if !r.Enabled() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		metrics.RecordCacheError()
		r.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

// Close releases the client.
func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) warnUnavailableOnce(ctx context.Context, err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		logger.Get().Warn(ctx, "search cache degraded, falling back to direct search", logger.Error(err))
	}
}
