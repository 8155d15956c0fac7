// Package cancel provides the stop signal for background loops.
//
// ContextCanceler wraps context.Context so a loop can both poll for
// cancellation at the top of each iteration and hand the context to
// blocking calls at every sleep boundary.
package cancel

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}
