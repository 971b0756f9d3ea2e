package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultLimit is the number of calls after which a pause is enforced.
	DefaultLimit = 5
	// DefaultPause is how long the caller is held once the limit is reached.
	DefaultPause = 60 * time.Second
)

// Threshold counts outbound calls and pauses once every Limit calls.
// The increment, the check, the pause and the reset happen under one lock,
// so a pause holds back every other caller of the same Threshold.
type Threshold struct {
	limit   int
	pause   time.Duration
	sleeper Sleeper
	logger  *zap.Logger

	mu    sync.Mutex
	count int
}

// NewThreshold returns a limiter pausing for pause after limit calls.
// A limit <= 0 disables gating. A nil sleeper uses TimerSleeper.
func NewThreshold(limit int, pause time.Duration, sleeper Sleeper, logger *zap.Logger) *Threshold {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Threshold{limit: limit, pause: pause, sleeper: sleeper, logger: logger}
}

// Limit returns the configured call threshold.
func (t *Threshold) Limit() int { return t.limit }

// Record counts one call. When the count reaches the limit it blocks for the
// pause and resets to zero. The reset happens even when ctx ends the pause
// early, in which case ctx.Err() is returned.
func (t *Threshold) Record(ctx context.Context) error {
	if t.limit <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count++
	if t.count < t.limit {
		return nil
	}
	t.logger.Info("call threshold reached, pausing",
		zap.Int("calls", t.count),
		zap.Duration("pause", t.pause))
	err := t.sleeper.Sleep(ctx, t.pause)
	t.count = 0
	return err
}

// Count returns the calls recorded since the last reset.
func (t *Threshold) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Reset zeroes the counter, waiting out any pause in progress.
func (t *Threshold) Reset() {
	t.mu.Lock()
	t.count = 0
	t.mu.Unlock()
}
