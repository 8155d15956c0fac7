// Package queue provides the blocking hand-off channel used to publish
// signal phases.
//
// The package offers one implementation of the Queue interface:
//   - Handoff: unbounded, mutex + sync.Cond protected, LIFO delivery
//
// # Delivery Order (IMPORTANT)
//
// Handoff is a stack, not a FIFO work queue. Receive always returns the
// most recently sent value still queued. Older values stay queued and come
// out in reverse-insertion order on later receives. This favours
// most-recent-state delivery and must not be "fixed" to FIFO.
//
// Correct usage:
//   - Any number of goroutines may call Send
//   - Any number of goroutines may call Receive
//   - Each sent value is delivered to exactly one receiver
package queue

import "context"

// Queue is a blocking hand-off between producers and consumers.
//
// Send never blocks. Receive blocks until a value is available.
type Queue[T any] interface {
	// Send makes v available to one receiver.
	Send(v T)

	// Receive removes and returns a value, blocking while empty.
	Receive() T
}

// ContextQueue is a Queue whose receivers can give up.
type ContextQueue[T any] interface {
	Queue[T]

	// ReceiveContext is Receive bounded by ctx.
	// Returns ctx.Err() if ctx is done before a value arrives.
	ReceiveContext(ctx context.Context) (T, error)
}
