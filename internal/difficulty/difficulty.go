// Package difficulty ramps the difficulty level as correct answers accumulate.
package difficulty

import "github.com/vytor/mathsprint/internal/rng"

const (
	minStep = 2
	maxStep = 3
)

// State is the current level and the cumulative-correct count at which the
// level next increments.
type State struct {
	Level         int `json:"level"`
	NextThreshold int `json:"next_threshold"`
}

// Clamp floors a requested level at 1.
func Clamp(level int) int {
	if level < 1 {
		return 1
	}
	return level
}

// Initial returns the starting state for a run. The first threshold is 2 or 3.
func Initial(src rng.Source, initialLevel int) State {
	return State{
		Level:         Clamp(initialLevel),
		NextThreshold: rng.Int(src, minStep, maxStep),
	}
}

// AdvanceOnCorrect applies every threshold crossed by totalCorrect. Each
// crossing raises the level by one and pushes the threshold out by 2 or 3,
// so a single call may level up more than once.
func AdvanceOnCorrect(s State, totalCorrect int, src rng.Source) State {
	level := s.Level
	next := s.NextThreshold
	for totalCorrect >= next {
		level++
		next += rng.Int(src, minStep, maxStep)
	}
	return State{Level: level, NextThreshold: next}
}
