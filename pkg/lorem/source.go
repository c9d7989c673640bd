package lorem

import (
	"math"
	"math/rand/v2"
)

// Source supplies every random decision the generators make.
// Tests substitute a deterministic Source; the algorithms never change.
type Source interface {
	// IntRange returns a uniform integer in [min, max].
	IntRange(min, max int) int
	// Coin returns a fair boolean.
	Coin() bool
	// Shuffle permutes n elements uniformly using swap.
	Shuffle(n int, swap func(i, j int))
}

// randSource adapts a math/rand/v2 generator. A nil rand uses the
// process-wide generator, which is safe for concurrent use.
type randSource struct {
	r *rand.Rand
}

// NewSource wraps r. A nil r draws from the process-wide generator.
func NewSource(r *rand.Rand) Source {
	return randSource{r: r}
}

// NewSeededSource returns a reproducible Source. It must not be shared
// between goroutines.
func NewSeededSource(seed uint64) Source {
	return randSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s randSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	// The span is computed unsigned so ranges wider than MaxInt still work.
	span := uint64(max) - uint64(min)
	var off uint64
	switch {
	case span == math.MaxUint64 && s.r == nil:
		off = rand.Uint64()
	case span == math.MaxUint64:
		off = s.r.Uint64()
	case s.r == nil:
		off = rand.Uint64N(span + 1)
	default:
		off = s.r.Uint64N(span + 1)
	}
	return int(uint64(min) + off)
}

func (s randSource) Coin() bool {
	if s.r == nil {
		return rand.IntN(2) == 1
	}
	return s.r.IntN(2) == 1
}

func (s randSource) Shuffle(n int, swap func(i, j int)) {
	if s.r == nil {
		rand.Shuffle(n, swap)
		return
	}
	s.r.Shuffle(n, swap)
}
