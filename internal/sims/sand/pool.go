package sand

// PoolStats counts pool traffic since creation.
type PoolStats struct {
	Allocated int
	Reused    int
	Released  int
}

// AirPool recycles empty particles. Every move or destruction leaves an empty
// cell behind, so reusing the placeholders avoids allocation churn.
//
// A pool is owned by a single chunk and is not safe for concurrent use.
type AirPool struct {
	free  []*Particle
	stats PoolStats
}

// NewAirPool returns an empty pool.
func NewAirPool() *AirPool { return &AirPool{} }

// Get returns an empty particle positioned at (x, y), reusing a released one
// when available.
func (ap *AirPool) Get(x, y int) *Particle {
	if n := len(ap.free); n > 0 {
		p := ap.free[n-1]
		ap.free[n-1] = nil
		ap.free = ap.free[:n-1]
		p.x, p.y = x, y
		p.speed = 0
		ap.stats.Reused++
		return p
	}
	ap.stats.Allocated++
	return &Particle{kind: KindEmpty, x: x, y: y, color: emptyColor}
}

// Release returns p to the pool. Non-empty particles are ignored.
func (ap *AirPool) Release(p *Particle) {
	if p == nil || p.kind != KindEmpty {
		return
	}
	ap.free = append(ap.free, p)
	ap.stats.Released++
}

// Len reports how many particles are waiting for reuse.
func (ap *AirPool) Len() int { return len(ap.free) }

// Stats returns the pool counters.
func (ap *AirPool) Stats() PoolStats { return ap.stats }
