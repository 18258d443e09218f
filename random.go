package marketsim

import "math/rand/v2"

// Source provides the random draws of the price process.
//
// It is the only place where nondeterminism enters the engine.
type Source interface {
	// Uniform returns a value drawn uniformly from [lo, hi).
	Uniform(lo, hi float64) float64
}

type randSource struct{ r *rand.Rand }

// NewSource returns a pseudo random Source seeded with seed.
//
// The same seed always produces the same sequence of draws.
func NewSource(seed uint64) Source {
	return randSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s randSource) Uniform(lo, hi float64) float64 { return lo + (hi-lo)*s.r.Float64() }

// Sequence returns a Source that replays values in order, cycling when
// exhausted. The requested interval is ignored.
func Sequence(values ...float64) Source {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &sequence{values: values}
}

type sequence struct {
	values []float64
	next   int
}

func (s *sequence) Uniform(_, _ float64) float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
