package signal

import (
	"context"
	"time"

	"github.com/randomizedcoder/traffic-signal/internal/observability"
)

// WaitForGreen blocks until a Green is received from the controller's
// queue. Red values are discarded, with a short yield between receives.
//
// Waiters compete: each published Green releases exactly one of them.
// There is no way to give up; see WaitForGreenContext.
func (c *Controller) WaitForGreen() {
	start := c.clock.Now()
	for {
		p := c.queue.Receive()
		observability.RecordQueueDepth(c.name, c.queue.Len())
		if p == Green {
			c.greenLight(observability.WaitQueue, start)
			return
		}
		_ = c.clock.Sleep(context.Background(), c.yield)
	}
}

// WaitForGreenContext is WaitForGreen bounded by ctx.
// Returns ctx.Err() if ctx is done first.
func (c *Controller) WaitForGreenContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	start := c.clock.Now()
	for {
		p, err := c.queue.ReceiveContext(ctx)
		if err != nil {
			return err
		}
		observability.RecordQueueDepth(c.name, c.queue.Len())
		if p == Green {
			c.greenLight(observability.WaitQueue, start)
			return nil
		}
		if err := c.clock.Sleep(ctx, c.yield); err != nil {
			return err
		}
	}
}

// AwaitGreen blocks until the signal is Green. It returns at once if the
// signal already is; otherwise the next transition to Green releases every
// caller waiting here. AwaitGreen does not consume queued phases.
func (c *Controller) AwaitGreen(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	start := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := c.greens
	if c.green {
		return nil
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.cond.Broadcast()
			c.mu.Unlock()
		case <-done:
		}
	}()

	// greens moving on means a Green happened, even if it has since
	// turned Red again.
	for !c.green && c.greens == seen {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.cond.Wait()
	}

	c.greenLight(observability.WaitBroadcast, start)
	return nil
}

func (c *Controller) greenLight(mode string, start time.Time) {
	waited := c.clock.Now().Sub(start)
	c.logger.Debug().Str("mode", mode).Dur("waited", waited).Msg("green light")
	observability.RecordWait(c.name, mode, waited)
}
