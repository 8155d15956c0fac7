// Package tick provides the time sources that drive the signal cycle.
//
// This package offers two implementations of the Clock interface:
//   - SystemClock: wall clock backed by time.Timer
//   - ManualClock: virtual clock for tests, Sleep returns immediately
//
// and Jitter, which draws cycle durations uniformly from [Min, Max).
//
// Every Sleep honours its context so a cancelled loop never outlives
// its owner by more than one sleep boundary.
package tick

import (
	"context"
	"time"
)

// Clock tells the time and sleeps.
//
// Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses for d or until ctx is done, whichever comes first.
	// Returns ctx.Err() if the sleep was cut short.
	Sleep(ctx context.Context, d time.Duration) error
}

// Default cycle bounds for a signal phase.
const (
	DefaultMinCycle = 4000 * time.Millisecond
	DefaultMaxCycle = 6000 * time.Millisecond
)

// DefaultSettle is the fixed pause between loop iterations.
const DefaultSettle = time.Millisecond
