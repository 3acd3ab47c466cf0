package mosaic

// Selector picks tiles for cells, tracking per-tile usage so that repeated
// picks are progressively penalized. Selection is order-dependent: each
// pick feeds back into the next one through the usage counters, so one
// Selector serves exactly one generation and cells must be fed to it in a
// fixed row-major order for reproducible output.
type Selector struct {
	lib     *Library
	penalty float64
	usage   []int
	picks   int
}

// NewSelector creates a selector with all usage counters at zero.
func NewSelector(lib *Library, penaltyFactor float64) *Selector {
	return &Selector{
		lib:     lib,
		penalty: penaltyFactor,
		usage:   make([]int, len(lib.Tiles)),
	}
}

// adaptiveK scales the candidate count to the library size: enough
// candidates for the penalty to avoid degenerate repetition on small
// libraries, bounded above to keep the per-cell query cheap.
func adaptiveK(n int) int {
	k := n / kDivisor
	if k < kMin {
		k = kMin
	}
	if k > kMax {
		k = kMax
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	return k
}

// Pick returns the library index of the best tile for a cell color and
// records the pick in the usage counters. The winner minimizes squared
// color distance plus usage*penalty, ties broken by lowest tile index.
func (s *Selector) Pick(cellColor [3]float64) int {
	k := adaptiveK(len(s.lib.Tiles))
	candidates := s.lib.Index.Nearest(cellColor, k)
	if len(candidates) == 0 {
		// The library is never empty, so an empty candidate list means the
		// index and the record list have diverged.
		panic("mosaic: color index returned no candidates for a non-empty library")
	}

	bestIdx := -1
	bestScore := 0.0
	for _, cand := range candidates {
		score := cand.Distance + float64(s.usage[cand.Index])*s.penalty*penaltyMultiplier
		if bestIdx < 0 || score < bestScore || (score == bestScore && cand.Index < bestIdx) {
			bestIdx = cand.Index
			bestScore = score
		}
	}

	s.usage[bestIdx]++
	s.picks++
	return bestIdx
}

// Picks returns how many cells this selector has processed.
func (s *Selector) Picks() int {
	return s.picks
}

// Usage returns a copy of the per-tile usage counters.
func (s *Selector) Usage() []int {
	out := make([]int, len(s.usage))
	copy(out, s.usage)
	return out
}
