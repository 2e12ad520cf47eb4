// Package rng provides the deterministic per-run random stream.
package rng

import (
	"math"
	"time"
)

// Source yields floats in [0, 1).
type Source interface {
	Float64() float64
}

// Stream is a mulberry32 generator. The same seed always yields the same
// sequence. A Stream is not safe for concurrent use.
type Stream struct {
	seed  uint32
	state uint32
	drawn int64
}

// New creates a stream from seed.
func New(seed uint32) *Stream {
	return &Stream{seed: seed, state: seed}
}

// SeedFromTime derives a run seed from a wall-clock instant.
func SeedFromTime(t time.Time) uint32 {
	return uint32(t.UnixMilli())
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint32 {
	return s.seed
}

// Drawn returns how many values have been produced.
func (s *Stream) Drawn() int64 {
	return s.drawn
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.drawn++
	s.state += 0x6d2b79f5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Int returns a uniformly distributed integer in [lo, hi].
func Int(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return int(math.Floor(src.Float64()*float64(hi-lo+1))) + lo
}

// Shuffle returns a shuffled copy of values (Fisher-Yates).
func Shuffle[T any](src Source, values []T) []T {
	out := make([]T, len(values))
	copy(out, values)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(src.Float64() * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
