package breakout

// SimpleRNG is a deterministic pseudo-random number generator.
// It is a 64-bit LCG so its whole state fits in a snapshot.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed. Seed 0 is remapped to 1.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Sign returns +1 or -1 with equal probability.
func (r *SimpleRNG) Sign() float64 {
	if r.Float64() > 0.5 {
		return 1
	}
	return -1
}

// State returns the internal state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}
