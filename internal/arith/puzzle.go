package arith

import (
	"sort"

	"github.com/vytor/mathsprint/internal/rng"
)

// Puzzle is a solvable number set. Solution is one expression reaching the
// target. Degraded marks a puzzle that came from the fallback after the
// attempt cap ran out.
type Puzzle struct {
	Numbers  []int
	Solution string
	Attempts int
	Degraded bool
}

// PuzzleOptions controls candidate drawing.
type PuzzleOptions struct {
	Size        int
	Target      int64
	Min, Max    int
	MaxAttempts int
	// Avoid rejects candidates with the same sorted numbers.
	Avoid []int
	// Shuffle reorders an accepted candidate with the stream.
	Shuffle bool
	// Fallback is returned when no candidate is accepted. It must be solvable.
	Fallback         []int
	FallbackSolution string
}

// Signature is the sorted form used to compare number sets.
func Signature(numbers []int) []int {
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)
	return out
}

func sameSignature(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := Signature(a), Signature(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// GeneratePuzzle draws candidates from src until one is solvable. The result
// is never unsolvable: after MaxAttempts it returns the fallback marked
// Degraded, and callers are expected to report that.
func GeneratePuzzle(src rng.Source, opts PuzzleOptions) Puzzle {
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		candidate := make([]int, opts.Size)
		for i := range candidate {
			candidate[i] = rng.Int(src, opts.Min, opts.Max)
		}
		if opts.Avoid != nil && sameSignature(candidate, opts.Avoid) {
			continue
		}
		solution, ok := Solve(candidate, opts.Target)
		if !ok {
			continue
		}
		if opts.Shuffle {
			candidate = rng.Shuffle(src, candidate)
		}
		return Puzzle{Numbers: candidate, Solution: solution, Attempts: attempt}
	}

	fallback := make([]int, len(opts.Fallback))
	copy(fallback, opts.Fallback)
	solution := opts.FallbackSolution
	if solution == "" {
		solution, _ = Solve(fallback, opts.Target)
	}
	return Puzzle{
		Numbers:  fallback,
		Solution: solution,
		Attempts: opts.MaxAttempts,
		Degraded: true,
	}
}
