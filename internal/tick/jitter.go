package tick

import (
	"math/rand/v2"
	"time"
)

// Jitter draws durations uniformly from [Min, Max).
//
// Not safe for concurrent use: the signal loop owns its Jitter.
type Jitter struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

// NewJitter creates a Jitter seeded with seed.
// The same seed always yields the same sequence.
// If hi < lo the bounds are swapped.
func NewJitter(lo, hi time.Duration, seed uint64) *Jitter {
	return NewJitterRand(lo, hi, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewJitterRand creates a Jitter over an existing source.
func NewJitterRand(lo, hi time.Duration, rng *rand.Rand) *Jitter {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Jitter{min: lo, max: hi, rng: rng}
}

// Next returns the next duration.
// If Min == Max, Next always returns Min.
func (j *Jitter) Next() time.Duration {
	span := int64(j.max - j.min)
	if span <= 0 {
		return j.min
	}
	return j.min + time.Duration(j.rng.Int64N(span))
}

// Min returns the inclusive lower bound.
func (j *Jitter) Min() time.Duration {
	return j.min
}

// Max returns the exclusive upper bound.
func (j *Jitter) Max() time.Duration {
	return j.max
}
