package solver

import "math/rand"

// Rand is the single, driver-owned random source threaded through
// selection, crossover and mutation in a fixed call order so that identical
// seeds reproduce identical trajectories. It must never be shared with the
// worker pool (internal/solver's parallel evaluator touches no randomness at
// all — only the driver goroutine calls methods on Rand).
type Rand struct {
	r *rand.Rand
}

// NewRand seeds a new driver-owned random source.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform value in [0, n).
func (rr *Rand) Intn(n int) int {
	return rr.r.Intn(n)
}

// Float64 returns a uniform value in [0, 1).
func (rr *Rand) Float64() float64 {
	return rr.r.Float64()
}

// Bool returns a uniform coin flip, used by scattered crossover to decide
// which parent supplies a gene position.
func (rr *Rand) Bool() bool {
	return rr.r.Intn(2) == 0
}
