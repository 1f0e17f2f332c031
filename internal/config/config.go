// Package config defines service configuration and how it is loaded.
//
// Defaults come from New. Load layers an optional YAML file and SKILLSWAP_
// environment variables on top of them.
package config

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at a catalogue YAML file. Empty selects the embedded seed.
	DatasetPath string `koanf:"dataset_path"`

	// QueueSize bounds the in-memory action queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of delivery workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the set of remembered action IDs.
	DedupeSize int `koanf:"dedupe_size"`

	// DeliveryLatencyMinMS and DeliveryLatencyMaxMS bound the simulated
	// delivery delay of each action.
	DeliveryLatencyMinMS int `koanf:"delivery_latency_min_ms"`
	DeliveryLatencyMaxMS int `koanf:"delivery_latency_max_ms"`

	// InboxSize caps the number of notices kept in memory.
	InboxSize int `koanf:"inbox_size"`

	// NoticeTTLSeconds expires notices; zero keeps them until evicted.
	NoticeTTLSeconds int `koanf:"notice_ttl_seconds"`

	// MaxPageSize caps ?limit on list endpoints.
	MaxPageSize int `koanf:"max_page_size"`

	// AwayWindowSeconds is how long after last_seen a user shows as away.
	AwayWindowSeconds int `koanf:"away_window_seconds"`

	// RedisAddr enables the search result cache when set.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// CacheTTLSeconds is the lifetime of cached search pages.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           100_000,
		DeliveryLatencyMinMS: 50,
		DeliveryLatencyMaxMS: 250,
		InboxSize:            1_000,
		NoticeTTLSeconds:     3_600,
		MaxPageSize:          100,
		AwayWindowSeconds:    300,
		CacheTTLSeconds:      30,
	}
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DeliveryLatencyMinMS < 0:
		return fmt.Errorf("%w: delivery_latency_min_ms must not be negative", ErrInvalidConfig)
	case c.DeliveryLatencyMinMS > c.DeliveryLatencyMaxMS:
		return fmt.Errorf("%w: delivery_latency_min_ms %d exceeds delivery_latency_max_ms %d",
			ErrInvalidConfig, c.DeliveryLatencyMinMS, c.DeliveryLatencyMaxMS)
	case c.MaxPageSize <= 0:
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	return nil
}

// DeliveryLatency returns the simulated delivery bounds as durations.
func (c *Config) DeliveryLatency() (lo, hi time.Duration) {
	return time.Duration(c.DeliveryLatencyMinMS) * time.Millisecond,
		time.Duration(c.DeliveryLatencyMaxMS) * time.Millisecond
}

// NoticeTTL returns the notice lifetime.
func (c *Config) NoticeTTL() time.Duration {
	return time.Duration(c.NoticeTTLSeconds) * time.Second
}

// AwayWindow returns the presence away window.
func (c *Config) AwayWindow() time.Duration {
	return time.Duration(c.AwayWindowSeconds) * time.Second
}

// CacheTTL returns the search cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
