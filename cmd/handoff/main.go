// Command handoff benchmarks the blocking LIFO Handoff against a buffered
// channel, with one producer and one blocked consumer.
//
// Usage:
//
//	go run ./cmd/handoff -n 10000000 -burst 64
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/randomizedcoder/traffic-signal/internal/queue"
	"github.com/randomizedcoder/traffic-signal/internal/signal"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	burst := flag.Int("burst", 64, "values sent before draining (channel buffer size)")
	flag.Parse()

	if *burst < 1 {
		*burst = 1
	}
	rounds := *iterations / *burst
	total := rounds * *burst

	fmt.Printf("Benchmarking phase hand-off (%d values, burst=%d)\n", total, *burst)
	fmt.Println("─────────────────────────────────────────────────")

	// Buffered channel, FIFO
	ch := make(chan signal.Phase, *burst)
	chDone := make(chan struct{})
	go func() {
		defer close(chDone)
		for i := 0; i < total; i++ {
			<-ch
		}
	}()
	start := time.Now()
	p := signal.Red
	for i := 0; i < total; i++ {
		p = p.Toggle()
		ch <- p
	}
	<-chDone
	chDur := time.Since(start)

	// Handoff, LIFO
	q := queue.NewHandoff[signal.Phase]()
	qDone := make(chan struct{})
	go func() {
		defer close(qDone)
		for i := 0; i < total; i++ {
			q.Receive()
		}
	}()
	start = time.Now()
	for r := 0; r < rounds; r++ {
		for j := 0; j < *burst; j++ {
			p = p.Toggle()
			q.Send(p)
		}
	}
	<-qDone
	qDur := time.Since(start)

	// Results
	chPerOp := float64(chDur.Nanoseconds()) / float64(total)
	qPerOp := float64(qDur.Nanoseconds()) / float64(total)

	fmt.Printf("\nResults (send + receive per value):\n")
	fmt.Printf("  Channel:  %v (%.2f ns/op)\n", chDur, chPerOp)
	fmt.Printf("  Handoff:  %v (%.2f ns/op)\n", qDur, qPerOp)

	if qPerOp < chPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (Handoff faster)\n", chPerOp/qPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (Channel faster)\n", qPerOp/chPerOp)
	}

	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  Channel:  %.2f M ops/sec\n", 1000/chPerOp)
	fmt.Printf("  Handoff:  %.2f M ops/sec\n", 1000/qPerOp)
}
