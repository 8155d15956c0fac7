package signal

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/traffic-signal/internal/config"
	"github.com/randomizedcoder/traffic-signal/internal/tick"
)

// Transition describes one completed cycle.
type Transition struct {
	From    Phase
	To      Phase
	At      time.Time     // clock time of the toggle
	Elapsed time.Duration // time from cycle start to toggle
	Cycle   uint64        // 1-based
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	name     string
	clock    tick.Clock
	jitter   *tick.Jitter
	minCycle time.Duration
	maxCycle time.Duration
	seed     uint64
	settle   time.Duration
	yield    time.Duration
	logger   zerolog.Logger
	hook     func(Transition)
}

func defaultOptions() options {
	return options{
		name:     "light",
		clock:    tick.NewSystem(),
		minCycle: tick.DefaultMinCycle,
		maxCycle: tick.DefaultMaxCycle,
		settle:   tick.DefaultSettle,
		yield:    config.DefaultYield,
		logger:   zerolog.Nop(),
	}
}

// WithName sets the light label used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClock replaces the system clock.
func WithClock(c tick.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithCycle sets the bounds of the random cycle duration, [lo, hi).
func WithCycle(lo, hi time.Duration) Option {
	return func(o *options) {
		o.minCycle = lo
		o.maxCycle = hi
	}
}

// WithSeed seeds the cycle jitter. Zero picks a time-based seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithJitter supplies the cycle duration source directly.
// It overrides WithCycle and WithSeed.
func WithJitter(j *tick.Jitter) Option {
	return func(o *options) { o.jitter = j }
}

// WithSettle sets the pause after each publish.
func WithSettle(d time.Duration) Option {
	return func(o *options) { o.settle = d }
}

// WithYield sets the pause between unsuccessful receives in WaitForGreen.
func WithYield(d time.Duration) Option {
	return func(o *options) { o.yield = d }
}

// WithLogger sets the logger for lifecycle and transition events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTransitionHook registers fn to run on the loop goroutine after every
// toggle. fn must not call Stop.
func WithTransitionHook(fn func(Transition)) Option {
	return func(o *options) { o.hook = fn }
}

// FromConfig maps loaded settings onto options.
func FromConfig(cfg config.Config) []Option {
	return []Option{
		WithName(cfg.Name),
		WithCycle(cfg.MinCycle, cfg.MaxCycle),
		WithSeed(cfg.Seed),
		WithSettle(cfg.Settle),
		WithYield(cfg.Yield),
	}
}
