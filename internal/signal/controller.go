// Package signal implements a two-phase traffic signal.
//
// A Controller starts Red and, once started, toggles between Red and Green
// on a background goroutine after a random cycle duration. Every new phase
// is published on an owned queue.Handoff. Callers gate on green with:
//
//   - WaitForGreen / WaitForGreenContext: pull phases from the queue until
//     a Green arrives. Each published Green releases exactly one waiter.
//   - AwaitGreen: broadcast. One transition to Green releases every waiter.
//
// CurrentPhase is an atomic load and never blocks.
package signal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/traffic-signal/internal/cancel"
	"github.com/randomizedcoder/traffic-signal/internal/observability"
	"github.com/randomizedcoder/traffic-signal/internal/queue"
	"github.com/randomizedcoder/traffic-signal/internal/tick"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("signal: controller already started")

	// ErrNilContext is returned when a nil context is passed in.
	ErrNilContext = errors.New("signal: nil context")
)

// Controller owns the phase state and the cycling loop.
type Controller struct {
	name   string
	clock  tick.Clock
	jitter *tick.Jitter
	settle time.Duration
	yield  time.Duration
	logger zerolog.Logger
	hook   func(Transition)

	phase  atomic.Uint32
	cycles atomic.Uint64
	queue  *queue.Handoff[Phase]

	started atomic.Bool
	runMu   sync.Mutex
	stop    *cancel.ContextCanceler
	done    chan struct{}

	// Broadcast state for AwaitGreen. greens counts transitions to Green.
	mu     sync.Mutex
	cond   *sync.Cond
	green  bool
	greens uint64
}

// New creates a Red controller with an empty queue. The loop does not run
// until Start.
func New(opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	j := o.jitter
	if j == nil {
		seed := o.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		j = tick.NewJitter(o.minCycle, o.maxCycle, seed)
	}

	c := &Controller{
		name:   o.name,
		clock:  o.clock,
		jitter: j,
		settle: o.settle,
		yield:  o.yield,
		logger: o.logger.With().Str("light", o.name).Logger(),
		hook:   o.hook,
		queue:  queue.NewHandoff[Phase](),
	}
	c.cond = sync.NewCond(&c.mu)
	c.phase.Store(uint32(Red))
	return c
}

// Name returns the light label.
func (c *Controller) Name() string {
	return c.name
}

// CurrentPhase returns the latest phase without blocking.
func (c *Controller) CurrentPhase() Phase {
	return Phase(c.phase.Load())
}

// Cycles returns the number of completed transitions.
func (c *Controller) Cycles() uint64 {
	return c.cycles.Load()
}

// Pending returns the number of published phases not yet received.
func (c *Controller) Pending() int {
	return c.queue.Len()
}

// Start launches the cycling loop and returns immediately. The loop runs
// until ctx is done or Stop is called. A controller starts at most once.
func (c *Controller) Start(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	c.runMu.Lock()
	c.stop = cancel.NewContext(ctx)
	c.done = make(chan struct{})
	stop, done := c.stop, c.done
	c.runMu.Unlock()

	c.logger.Info().
		Dur("min_cycle", c.jitter.Min()).
		Dur("max_cycle", c.jitter.Max()).
		Msg("signal started")

	go c.run(stop, done)
	return nil
}

// Stop cancels the loop and waits for it to exit, then discards phases
// nobody received. Safe to call more than once, and before Start.
// Must not be called from a transition hook.
func (c *Controller) Stop() {
	c.runMu.Lock()
	stop, done := c.stop, c.done
	c.runMu.Unlock()

	if stop == nil {
		return
	}
	stop.Cancel()
	<-done

	if stale := c.queue.Drain(); len(stale) > 0 {
		c.logger.Debug().Int("discarded", len(stale)).Msg("dropped unreceived phases")
	}
	observability.RecordQueueDepth(c.name, 0)
}

// Done is closed when the loop has exited. It returns nil before Start.
func (c *Controller) Done() <-chan struct{} {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	return c.done
}

func (c *Controller) run(stop *cancel.ContextCanceler, done chan struct{}) {
	defer close(done)
	ctx := stop.Context()

	for !stop.Done() {
		start := c.clock.Now()
		if err := c.clock.Sleep(ctx, c.jitter.Next()); err != nil {
			break
		}

		c.toggle(start)

		if err := c.clock.Sleep(ctx, c.settle); err != nil {
			break
		}
	}

	c.logger.Info().Uint64("cycles", c.cycles.Load()).Msg("signal stopped")
}

// toggle flips the phase and publishes it. Only the loop goroutine calls it.
func (c *Controller) toggle(start time.Time) {
	from := c.CurrentPhase()
	to := from.Toggle()
	c.phase.Store(uint32(to))

	c.queue.Send(to)

	c.mu.Lock()
	c.green = to == Green
	if c.green {
		c.greens++
	}
	c.mu.Unlock()
	c.cond.Broadcast()

	now := c.clock.Now()
	tr := Transition{
		From:    from,
		To:      to,
		At:      now,
		Elapsed: now.Sub(start),
		Cycle:   c.cycles.Add(1),
	}

	c.logger.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Dur("elapsed", tr.Elapsed).
		Uint64("cycle", tr.Cycle).
		Msg("phase changed")
	observability.RecordTransition(c.name, to.String(), to == Green, c.queue.Len())

	if c.hook != nil {
		c.hook(tr)
	}
}
