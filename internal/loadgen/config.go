// Package loadgen drives a running SkillSwap service with simulated actions
// and checks that each accepted action is delivered as a notice.
package loadgen

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/skillswap/pkg/logger"
)

// Defaults for Config.
const (
	DefaultBaseURL    = "http://localhost:9080"
	DefaultNumActions = 1000
	DefaultTimeout    = 10 * time.Second
	DefaultWait       = 30 * time.Second
	DefaultDuplicates = 0.1
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumActions int           // Number of actions to submit
	Duplicates float64       // Share of actions that resend an earlier ID
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Wait       time.Duration // How long to wait for notices
	Seed       uint64        // Generator seed; zero picks one from the clock
	Verbose    bool          // Log per-request failures
}

// DefaultConfig returns a Config with every field set.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		NumActions: DefaultNumActions,
		Duplicates: DefaultDuplicates,
		Workers:    runtime.NumCPU() * 2,
		Timeout:    DefaultTimeout,
		Wait:       DefaultWait,
	}
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is empty", ErrInvalidConfig)
	case c.NumActions <= 0:
		return fmt.Errorf("%w: actions must be positive", ErrInvalidConfig)
	case c.Duplicates < 0 || c.Duplicates >= 1:
		return fmt.Errorf("%w: duplicates must be in [0, 1)", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	return nil
}

// Stats holds run statistics.
type Stats struct {
	Generated    int
	Submitted    int
	Accepted     int
	Duplicate    int
	Backpressure int
	Failed       int
	Delivered    int // accepted action IDs seen as notices
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Missing is the number of accepted actions that never showed up as notices.
func (s *Stats) Missing() int {
	return s.Accepted - s.Delivered
}

// Log writes the final statistics.
func (s *Stats) Log(ctx context.Context) {
	var perSecond float64
	if s.Duration > 0 {
		perSecond = float64(s.Submitted) / s.Duration.Seconds()
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", s.Generated),
		logger.Int("submitted", s.Submitted),
		logger.Int("accepted", s.Accepted),
		logger.Int("duplicate", s.Duplicate),
		logger.Int("backpressure", s.Backpressure),
		logger.Int("failed", s.Failed),
		logger.Int("delivered", s.Delivered),
		logger.String("duration", s.Duration.String()),
		logger.Float64("actionsPerSecond", perSecond))
}
