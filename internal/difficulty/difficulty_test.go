package difficulty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/difficulty"
	"github.com/vytor/mathsprint/internal/rng"
)

func TestInitial(t *testing.T) {
	for seed := uint32(0); seed < 50; seed++ {
		s := difficulty.Initial(rng.New(seed), 1)
		assert.Equal(t, 1, s.Level)
		assert.Contains(t, []int{2, 3}, s.NextThreshold)
	}

	assert.Equal(t, 1, difficulty.Initial(rng.New(1), 0).Level)
	assert.Equal(t, 1, difficulty.Initial(rng.New(1), -4).Level)
	assert.Equal(t, 3, difficulty.Initial(rng.New(1), 3).Level)
}

func TestAdvanceOnCorrect_BelowThresholdIsNoop(t *testing.T) {
	s := difficulty.State{Level: 2, NextThreshold: 5}
	src := rng.New(1)

	next := difficulty.AdvanceOnCorrect(s, 4, src)

	assert.Equal(t, s, next)
	assert.Equal(t, int64(0), src.Drawn(), "no randomness consumed without a level-up")
}

func TestAdvanceOnCorrect_IncrementsAreTwoOrThree(t *testing.T) {
	src := rng.New(2024)
	s := difficulty.Initial(src, 1)

	for correct := 1; correct <= 300; correct++ {
		prev := s
		s = difficulty.AdvanceOnCorrect(s, correct, src)

		require.GreaterOrEqual(t, s.Level, prev.Level, "level never decreases")
		if s.Level > prev.Level {
			require.Equal(t, prev.Level+1, s.Level, "one correct answer crosses one threshold")
			step := s.NextThreshold - prev.NextThreshold
			require.Contains(t, []int{2, 3}, step)
		} else {
			require.Equal(t, prev.NextThreshold, s.NextThreshold)
		}
		require.Greater(t, s.NextThreshold, correct)
	}
}

func TestAdvanceOnCorrect_CrossesMultipleThresholds(t *testing.T) {
	s := difficulty.State{Level: 1, NextThreshold: 2}

	next := difficulty.AdvanceOnCorrect(s, 20, rng.New(5))

	// Steps are at most 3, so reaching past 20 from 2 needs at least 6 level-ups.
	assert.GreaterOrEqual(t, next.Level, 7)
	assert.Greater(t, next.NextThreshold, 20)
	assert.LessOrEqual(t, next.NextThreshold, 23)
}

func TestAdvanceOnCorrect_DeterministicForSeed(t *testing.T) {
	run := func() []int {
		src := rng.New(99)
		s := difficulty.Initial(src, 1)
		var levels []int
		for correct := 1; correct <= 40; correct++ {
			s = difficulty.AdvanceOnCorrect(s, correct, src)
			levels = append(levels, s.Level)
		}
		return levels
	}

	assert.Equal(t, run(), run())
}
