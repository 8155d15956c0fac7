package combined_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/traffic-signal/internal/cancel"
	"github.com/randomizedcoder/traffic-signal/internal/queue"
	"github.com/randomizedcoder/traffic-signal/internal/signal"
	"github.com/randomizedcoder/traffic-signal/internal/tick"
)

// Sink variables
var sinkPhase signal.Phase
var sinkBool bool

// ============================================================================
// Loop step benchmarks (cancel check + jitter draw + publish + receive)
// ============================================================================

// BenchmarkCombined_LoopStep mirrors one cycle of the signal loop without
// the sleeps: poll the stop signal, draw a duration, publish, consume.
func BenchmarkCombined_LoopStep(b *testing.B) {
	stop := cancel.NewContext(context.Background())
	j := tick.NewJitter(tick.DefaultMinCycle, tick.DefaultMaxCycle, 1)
	q := queue.NewHandoff[signal.Phase]()
	b.ReportAllocs()
	b.ResetTimer()

	p := signal.Red
	var d time.Duration
	for i := 0; i < b.N; i++ {
		if stop.Done() {
			b.Fatal("unexpected cancel")
		}
		d += j.Next()
		p = p.Toggle()
		q.Send(p)
		p = q.Receive()
	}
	sinkPhase = p
	sinkBool = d > 0
}

// BenchmarkCombined_CurrentPhase_Parallel measures the unsynchronized-read
// replacement: an atomic load from many goroutines.
func BenchmarkCombined_CurrentPhase_Parallel(b *testing.B) {
	c := signal.New()
	b.ReportAllocs()
	b.ResetTimer()

	var greens atomic.Int64
	b.RunParallel(func(pb *testing.PB) {
		var n int64
		for pb.Next() {
			if c.CurrentPhase() == signal.Green {
				n++
			}
		}
		greens.Add(n)
	})
	sinkBool = greens.Load() > 0
}

// BenchmarkCombined_Controller_ManualClock lets the real loop run on a
// virtual clock and waits for b.N Greens via WaitForGreen.
func BenchmarkCombined_Controller_ManualClock(b *testing.B) {
	c := signal.New(
		signal.WithName("bench"),
		signal.WithClock(tick.NewManual(time.Time{})),
		signal.WithSeed(1),
	)
	if err := c.Start(context.Background()); err != nil {
		b.Fatal(err)
	}
	defer c.Stop()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.WaitForGreen()
	}
}
