package sand

// Rand is the source of uniform draws used by the particle rules. It is
// satisfied by *core.RNG and *rand.Rand from math/rand/v2; tests inject
// deterministic stubs.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

func chance(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}
