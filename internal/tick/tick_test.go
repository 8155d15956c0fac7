package tick_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/randomizedcoder/traffic-signal/internal/tick"
)

func TestSystemClock_Sleep(t *testing.T) {
	c := tick.NewSystem()
	d := 20 * time.Millisecond

	start := c.Now()
	if err := c.Sleep(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("expected Sleep() >= %v, took %v", d, elapsed)
	}
}

func TestSystemClock_SleepCancelled(t *testing.T) {
	c := tick.NewSystem()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := c.Sleep(ctx, time.Hour)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Sleep() ignored cancellation, took %v", elapsed)
	}
}

func TestSystemClock_SleepAlreadyCancelled(t *testing.T) {
	c := tick.NewSystem()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Sleep(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected Canceled, got %v", err)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := tick.NewManual(start)

	if !c.Now().Equal(start) {
		t.Fatalf("expected Now() = %v, got %v", start, c.Now())
	}

	if err := c.Sleep(context.Background(), 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Advance(-time.Second) // ignored
	c.Advance(time.Second)

	if got := c.Now().Sub(start); got != 6*time.Second {
		t.Errorf("expected 6s elapsed, got %v", got)
	}
	if c.Slept() != 6*time.Second {
		t.Errorf("expected Slept() = 6s, got %v", c.Slept())
	}
}

func TestManualClock_SleepCancelled(t *testing.T) {
	c := tick.NewManual(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Sleep(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
	if c.Slept() != 0 {
		t.Errorf("cancelled Sleep() advanced the clock by %v", c.Slept())
	}
}

func TestJitter_Range(t *testing.T) {
	j := tick.NewJitter(tick.DefaultMinCycle, tick.DefaultMaxCycle, 1)

	for i := 0; i < 10000; i++ {
		d := j.Next()
		if d < tick.DefaultMinCycle || d >= tick.DefaultMaxCycle {
			t.Fatalf("Next() = %v outside [%v, %v)", d, tick.DefaultMinCycle, tick.DefaultMaxCycle)
		}
	}
}

func TestJitter_Deterministic(t *testing.T) {
	a := tick.NewJitter(time.Second, 2*time.Second, 42)
	b := tick.NewJitter(time.Second, 2*time.Second, 42)

	for i := 0; i < 100; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestJitter_Spread(t *testing.T) {
	j := tick.NewJitter(0, 100*time.Millisecond, 7)

	// Both halves of the range should be hit
	var low, high bool
	for i := 0; i < 1000 && !(low && high); i++ {
		if j.Next() < 50*time.Millisecond {
			low = true
		} else {
			high = true
		}
	}
	if !low || !high {
		t.Errorf("expected draws in both halves, low=%v high=%v", low, high)
	}
}

func TestJitter_DegenerateAndSwapped(t *testing.T) {
	fixed := tick.NewJitter(time.Second, time.Second, 0)
	if fixed.Next() != time.Second {
		t.Errorf("expected fixed 1s, got %v", fixed.Next())
	}

	swapped := tick.NewJitter(2*time.Second, time.Second, 0)
	if swapped.Min() != time.Second || swapped.Max() != 2*time.Second {
		t.Errorf("expected bounds [1s, 2s), got [%v, %v)", swapped.Min(), swapped.Max())
	}
}

// Test that both clocks satisfy the interface
func TestClockInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    tick.Clock
	}{
		{"System", tick.NewSystem()},
		{"Manual", tick.NewManual(time.Now())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.c.Sleep(context.Background(), time.Millisecond); err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
		})
	}
}
