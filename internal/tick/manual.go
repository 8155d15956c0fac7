package tick

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// ManualClock is a virtual clock.
//
// Sleep advances the clock by d and returns at once, after yielding the
// processor so a loop driven by it cannot starve other goroutines.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
}

// NewManual creates a ManualClock starting at start.
func NewManual(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the virtual time.
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Sleep advances the virtual time by d.
func (m *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Advance(d)
	runtime.Gosched()
	return ctx.Err()
}

// Advance moves the clock forward by d. Negative values are ignored.
func (m *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.slept += d
	m.mu.Unlock()
}

// Slept returns the total virtual time spent in Sleep and Advance.
func (m *ManualClock) Slept() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept
}
