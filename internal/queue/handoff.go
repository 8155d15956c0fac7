package queue

import (
	"context"
	"sync"
)

// Handoff is an unbounded, blocking LIFO queue.
//
// All mutations of the backing slice happen while holding mu. Receivers
// wait on cond, which is tied to mu, and re-check the non-empty predicate
// after every wake-up.
type Handoff[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// NewHandoff creates an empty Handoff.
func NewHandoff[T any]() *Handoff[T] {
	h := &Handoff[T]{}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Send appends v and wakes exactly one waiting receiver.
// It never blocks on capacity.
func (h *Handoff[T]) Send(v T) {
	h.mu.Lock()
	h.items = append(h.items, v)
	h.mu.Unlock()
	h.cond.Signal()
}

// Receive blocks until the queue is non-empty, then removes and returns
// the newest value.
func (h *Handoff[T]) Receive() T {
	h.mu.Lock()
	defer h.mu.Unlock()

	for len(h.items) == 0 {
		h.cond.Wait()
	}
	return h.popLocked()
}

// ReceiveContext is Receive bounded by ctx.
//
// On cancellation it returns the zero value and ctx.Err(). A value that
// is already queued is returned even if ctx is done.
func (h *Handoff[T]) ReceiveContext(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Fast path
	if len(h.items) > 0 {
		return h.popLocked(), nil
	}

	// A cancelled waiter must wake everyone: Signal could pick a
	// different goroutine, so the watcher broadcasts.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.cond.Broadcast()
			h.mu.Unlock()
		case <-done:
		}
	}()

	for len(h.items) == 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		h.cond.Wait()
	}
	v := h.popLocked()

	// Our wake-up may have consumed a Signal meant for a receiver that
	// is still waiting on a non-empty queue.
	if len(h.items) > 0 {
		h.cond.Signal()
	}
	return v, nil
}

// TryReceive removes and returns the newest value without blocking.
// Returns false if the queue is empty.
func (h *Handoff[T]) TryReceive() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.popLocked(), true
}

// Drain removes every queued value and returns them newest first.
func (h *Handoff[T]) Drain() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]T, 0, len(h.items))
	for len(h.items) > 0 {
		out = append(out, h.popLocked())
	}
	return out
}

// Len returns the current number of queued values.
func (h *Handoff[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// popLocked removes the last element. Caller holds mu and has checked
// that the slice is non-empty.
func (h *Handoff[T]) popLocked() T {
	last := len(h.items) - 1
	v := h.items[last]

	// Clear the slot so the queue drops its reference.
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	return v
}
