package sand

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"falling-sand/internal/core"
)

// World is a sparse, lazily populated set of chunks. Chunks are created on
// first access and never evicted.
type World struct {
	cfg    Config
	params Params

	chunks map[ChunkCoord]*Chunk
	list   []*Chunk

	rng   Rand
	log   *zap.Logger
	ticks uint64
}

// Option customises a World.
type Option func(*World)

// WithLogger attaches a structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithRand overrides the random source. By default the world seeds a PCG
// generator from Config.Seed.
func WithRand(r Rand) Option {
	return func(w *World) {
		if r != nil {
			w.rng = r
		}
	}
}

// NewWorld builds an empty world. It fails when cfg does not validate.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:    cfg,
		params: cfg.Params,
		chunks: make(map[ChunkCoord]*Chunk),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = core.NewRNG(cfg.Seed)
	}
	return w, nil
}

// Config returns the configuration including any live parameter changes.
func (w *World) Config() Config {
	cfg := w.cfg
	cfg.Params = w.params
	return cfg
}

// ChunkSize returns the side length of every chunk.
func (w *World) ChunkSize() int { return w.cfg.ChunkSize }

// Ticks returns how many times Tick has run.
func (w *World) Ticks() uint64 { return w.ticks }

// Bounds returns the addressable region in global cell coordinates.
func (w *World) Bounds() image.Rectangle {
	s := w.cfg.ChunkSize
	return image.Rect(0, 0, w.cfg.ChunksX*s, w.cfg.ChunksY*s)
}

// InBounds reports whether particles may be created at (x, y).
func (w *World) InBounds(x, y int) bool {
	return image.Pt(x, y).In(w.Bounds())
}

// ChunkCoordOf returns the coordinates of the chunk owning global (x, y).
func (w *World) ChunkCoordOf(x, y int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, w.cfg.ChunkSize), Y: floorDiv(y, w.cfg.ChunkSize)}
}

// Chunk returns the chunk owning global (x, y), creating it filled with empty
// particles if it does not exist yet.
func (w *World) Chunk(x, y int) *Chunk {
	coord := w.ChunkCoordOf(x, y)
	if c, ok := w.chunks[coord]; ok {
		return c
	}
	c := newChunk(coord, w.cfg.ChunkSize, &w.params, w.rng)
	w.chunks[coord] = c
	w.list = append(w.list, c)
	w.log.Debug("chunk created", zap.Int("cx", coord.X), zap.Int("cy", coord.Y), zap.Int("size", w.cfg.ChunkSize))
	return c
}

// Lookup returns an existing chunk without creating it.
func (w *World) Lookup(coord ChunkCoord) (*Chunk, bool) {
	c, ok := w.chunks[coord]
	return c, ok
}

// Chunks lists the chunks in creation order.
func (w *World) Chunks() []*Chunk { return w.list }

func (w *World) local(c *Chunk, x, y int) (int, int) {
	ox, oy := c.Origin()
	return x - ox, y - oy
}

// Particle returns the particle at global (x, y).
func (w *World) Particle(x, y int) *Particle {
	c := w.Chunk(x, y)
	lx, ly := w.local(c, x, y)
	return c.Particle(lx, ly)
}

// CreateParticle overwrites the cell at global (x, y) with a new particle of
// kind k. Unknown kinds fail; coordinates outside the world are ignored.
func (w *World) CreateParticle(x, y int, k Kind) error {
	if !k.Valid() {
		return unknownKind(k)
	}
	if !w.InBounds(x, y) {
		return nil
	}
	c := w.Chunk(x, y)
	lx, ly := w.local(c, x, y)
	p, err := c.create(k, lx, ly)
	if err != nil {
		return err
	}
	c.set(lx, ly, p)
	return nil
}

// PlaceParticle is the brush entry point. Unlike CreateParticle it never
// paints over barrier cells (they belong to host geometry) and, unless
// BrushOverwrite is set, only fills empty cells. Erasing with KindEmpty
// clears any non-barrier cell. Hosts that need unconditional overwrite, for
// example scripted layouts, call CreateParticle instead.
func (w *World) PlaceParticle(x, y int, k Kind) error {
	if !k.Valid() {
		return unknownKind(k)
	}
	if !w.InBounds(x, y) {
		return nil
	}
	cur := w.Particle(x, y)
	switch {
	case cur.kind == KindBarrier && k != KindBarrier:
		return nil
	case cur.kind == k:
		return nil
	case !w.params.BrushOverwrite && k != KindEmpty && !cur.IsEmpty():
		return nil
	}
	return w.CreateParticle(x, y, k)
}

// QueryCell returns the kind and display colour at global (x, y). It reports
// false outside the world bounds and never creates chunks.
func (w *World) QueryCell(x, y int) (Kind, color.RGBA, bool) {
	if !w.InBounds(x, y) {
		return KindEmpty, emptyColor, false
	}
	c, ok := w.chunks[w.ChunkCoordOf(x, y)]
	if !ok {
		return KindEmpty, emptyColor, true
	}
	lx, ly := w.local(c, x, y)
	p := c.Particle(lx, ly)
	return p.kind, p.color, true
}

// Tick advances every chunk by one update. With SkipQuiescent set, chunks
// that did not change last tick and have no pending placements are skipped,
// except on every WakeInterval-th tick.
func (w *World) Tick() {
	w.ticks++
	wake := w.params.WakeInterval
	for _, c := range w.list {
		if w.params.SkipQuiescent && !c.Active() && (wake <= 0 || w.ticks%uint64(wake) != 0) {
			c.skip()
			continue
		}
		c.Step()
	}
}

// DirtyRegion returns the chunk-local dirty rectangle of a chunk, or false if
// the chunk does not exist or nothing changed.
func (w *World) DirtyRegion(coord ChunkCoord) (Rect, bool) {
	c, ok := w.chunks[coord]
	if !ok || c.dirty.Empty() {
		return Rect{}, false
	}
	return c.dirty, true
}

// DirtyRegions returns every non-empty dirty rectangle in global coordinates.
func (w *World) DirtyRegions() []image.Rectangle {
	var out []image.Rectangle
	for _, c := range w.list {
		if c.dirty.Empty() {
			continue
		}
		ox, oy := c.Origin()
		out = append(out, c.dirty.Bounds().Add(image.Pt(ox, oy)))
	}
	return out
}

// ClearKind turns every particle of kind k into empty space and returns how
// many cells were cleared.
func (w *World) ClearKind(k Kind) int {
	n := 0
	for _, c := range w.list {
		for i := range c.cells {
			if c.cells[i].p.kind != k {
				continue
			}
			lx, ly := i%c.size, i/c.size
			c.set(lx, ly, c.alloc(KindEmpty, lx, ly))
			n++
		}
	}
	if n > 0 {
		w.log.Info("cleared particles", zap.Stringer("kind", k), zap.Int("cells", n))
	}
	return n
}

// RebuildBarriers replaces all barrier particles with barriers at cells,
// which are global coordinates rasterised from host geometry.
func (w *World) RebuildBarriers(cells []image.Point) int {
	w.ClearKind(KindBarrier)
	n := 0
	for _, pt := range cells {
		if !w.InBounds(pt.X, pt.Y) {
			continue
		}
		if err := w.CreateParticle(pt.X, pt.Y, KindBarrier); err == nil {
			n++
		}
	}
	w.log.Debug("barriers rebuilt", zap.Int("cells", n))
	return n
}

// WorldStats summarises the world for telemetry.
type WorldStats struct {
	Ticks        uint64
	Chunks       int
	ActiveChunks int
	DirtyArea    int
	PoolFree     int
	Pool         PoolStats
	Counts       [kindCount]int
}

// Count returns the number of particles of kind k.
func (s WorldStats) Count(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return s.Counts[k]
}

// Stats scans every chunk. It is linear in the number of cells.
func (w *World) Stats() WorldStats {
	s := WorldStats{Ticks: w.ticks, Chunks: len(w.list)}
	for _, c := range w.list {
		if c.Active() {
			s.ActiveChunks++
		}
		s.DirtyArea += c.dirty.Area()
		s.PoolFree += c.pool.Len()
		ps := c.pool.Stats()
		s.Pool.Allocated += ps.Allocated
		s.Pool.Reused += ps.Reused
		s.Pool.Released += ps.Released
		for i := range c.cells {
			s.Counts[c.cells[i].p.kind]++
		}
	}
	return s
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
