package sand

import "testing"

// fixedRand returns the same draws forever. IntN yields n clamped to [0, n).
type fixedRand struct {
	f float64
	n int
}

func (r *fixedRand) Float64() float64 { return r.f }

func (r *fixedRand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func smallConfig(size int) Config {
	cfg := DefaultConfig()
	cfg.ChunkSize = size
	return cfg
}

func newTestWorld(t *testing.T, cfg Config, r Rand) *World {
	t.Helper()
	w, err := NewWorld(cfg, WithRand(r))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustCreate(t *testing.T, w *World, x, y int, k Kind) *Particle {
	t.Helper()
	if err := w.CreateParticle(x, y, k); err != nil {
		t.Fatalf("CreateParticle(%d,%d,%v): %v", x, y, k, err)
	}
	return w.Particle(x, y)
}

func expectKind(t *testing.T, w *World, x, y int, want Kind) {
	t.Helper()
	if got := w.Particle(x, y).Kind(); got != want {
		t.Fatalf("expected %v at (%d,%d), got %v", want, x, y, got)
	}
}
