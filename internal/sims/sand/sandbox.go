package sand

import (
	"image"

	"go.uber.org/zap"

	"falling-sand/internal/brush"
	"falling-sand/internal/core"
)

// Sandbox adapts a World to the host application: it owns the selected
// brush kind, turns pointer strokes and host geometry into placements and
// exposes the kind grid, colours and dirty regions to the renderer.
type Sandbox struct {
	cfg   Config
	opts  []Option
	log   *zap.Logger
	world *World

	size  core.Size
	kinds *core.ByteGrid
	stale []image.Rectangle

	selected Kind
	radius   int
}

// New builds a sandbox whose world is cfg.ChunksX by cfg.ChunksY chunks.
func New(cfg Config, opts ...Option) (*Sandbox, error) {
	w, err := NewWorld(cfg, opts...)
	if err != nil {
		return nil, err
	}
	size := core.Size{W: cfg.ChunksX * cfg.ChunkSize, H: cfg.ChunksY * cfg.ChunkSize}
	s := &Sandbox{
		cfg:      cfg,
		opts:     opts,
		log:      w.log,
		world:    w,
		size:     size,
		kinds:    core.NewByteGrid(size.W, size.H),
		selected: KindSand,
		radius:   3,
	}
	s.stale = []image.Rectangle{size.Rect()}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sandbox) Name() string { return "sand" }

// Size reports the grid dimensions.
func (s *Sandbox) Size() core.Size { return s.size }

// World exposes the underlying particle world.
func (s *Sandbox) World() *World { return s.world }

// Reset discards every particle and reseeds the world. A zero seed reuses
// the configured one. Live parameter changes survive the reset.
func (s *Sandbox) Reset(seed int64) {
	cfg := s.world.Config()
	if seed != 0 {
		cfg.Seed = seed
	}
	w, err := NewWorld(cfg, s.opts...)
	if err != nil {
		s.log.Error("reset failed", zap.Error(err))
		return
	}
	s.world = w
	s.kinds.Clear()
	s.stale = append(s.stale[:0], s.size.Rect())
	s.log.Info("sandbox reset", zap.Int64("seed", cfg.Seed))
}

// Step advances the world by one tick.
func (s *Sandbox) Step() {
	s.world.Tick()
	s.markStale(s.world.DirtyRegions()...)
}

// maxStale bounds the stale list when Cells is not polled; past it the whole
// grid is re-read.
const maxStale = 256

func (s *Sandbox) markStale(rs ...image.Rectangle) {
	if len(s.stale)+len(rs) > maxStale {
		s.stale = append(s.stale[:0], s.size.Rect())
		return
	}
	s.stale = append(s.stale, rs...)
}

// Stats summarizes the world after the last tick.
func (s *Sandbox) Stats() WorldStats { return s.world.Stats() }

// Cells returns the kind of every cell in row-major order.
func (s *Sandbox) Cells() []uint8 {
	s.sync()
	return s.kinds.Cells()
}

func (s *Sandbox) sync() {
	for _, r := range s.stale {
		r = r.Intersect(s.size.Rect())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				k, _, _ := s.world.QueryCell(x, y)
				s.kinds.Set(x, y, uint8(k))
			}
		}
	}
	s.stale = s.stale[:0]
}

// DirtyRegions returns the regions that changed during the last Step.
func (s *Sandbox) DirtyRegions() []image.Rectangle {
	return s.world.DirtyRegions()
}

// WriteRGBA writes the per-particle colours of r into buf.
func (s *Sandbox) WriteRGBA(buf []byte, r image.Rectangle) {
	r = r.Intersect(s.size.Rect())
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			_, col, _ := s.world.QueryCell(x, y)
			buf[i+0] = col.R
			buf[i+1] = col.G
			buf[i+2] = col.B
			buf[i+3] = col.A
			i += 4
		}
	}
}

// Selected returns the kind the brush places.
func (s *Sandbox) Selected() Kind { return s.selected }

// Select changes the brush kind. Unknown kinds fail.
func (s *Sandbox) Select(k Kind) error {
	if !k.Valid() {
		return unknownKind(k)
	}
	s.selected = k
	return nil
}

// BrushRadius returns the brush radius in cells.
func (s *Sandbox) BrushRadius() int { return s.radius }

// SetBrushRadius changes the brush radius, clamped to [0, 64].
func (s *Sandbox) SetBrushRadius(r int) {
	if r < 0 {
		r = 0
	}
	if r > 64 {
		r = 64
	}
	s.radius = r
}

// Paint places the selected kind in a disc around (x, y) and returns how
// many cells changed.
func (s *Sandbox) Paint(x, y int) int {
	return s.PaintKind(x, y, s.radius, s.selected)
}

// Erase clears a disc of the brush radius around (x, y). Barriers survive.
func (s *Sandbox) Erase(x, y int) int {
	return s.PaintKind(x, y, s.radius, KindEmpty)
}

// PaintKind places k in a disc of radius r around (x, y).
func (s *Sandbox) PaintKind(x, y, r int, k Kind) int {
	return s.place(brush.Disc(x, y, r), k)
}

// Spray places the selected kind on a random fraction density of the brush
// disc around (x, y).
func (s *Sandbox) Spray(x, y int, density float64) int {
	return s.place(brush.Sparse(brush.Disc(x, y, s.radius), density, s.world.rng), s.selected)
}

// PaintPoints places k at each of pts, for example a sparse ring stroke.
func (s *Sandbox) PaintPoints(pts []image.Point, k Kind) int {
	return s.place(pts, k)
}

func (s *Sandbox) place(pts []image.Point, k Kind) int {
	n := 0
	for _, pt := range pts {
		if !s.world.InBounds(pt.X, pt.Y) {
			continue
		}
		before := s.world.Particle(pt.X, pt.Y)
		if err := s.world.PlaceParticle(pt.X, pt.Y, k); err != nil {
			s.log.Warn("place failed", zap.Error(err))
			return n
		}
		if s.world.Particle(pt.X, pt.Y) != before {
			n++
			s.markStale(image.Rect(pt.X, pt.Y, pt.X+1, pt.Y+1))
		}
	}
	return n
}

// SetShapes replaces every barrier with the rasterised host geometry.
// cellSize is the number of page units per cell.
func (s *Sandbox) SetShapes(shapes []brush.Shape, cellSize float64) int {
	n := s.world.RebuildBarriers(brush.Rasterize(shapes, cellSize))
	s.stale = append(s.stale[:0], s.size.Rect())
	return n
}

// Walls replaces every barrier with a one-cell frame around the grid.
func (s *Sandbox) Walls() int {
	w, h := float64(s.size.W-1), float64(s.size.H-1)
	frame := brush.Shape{Vertices: []brush.Vec{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0}}}
	return s.SetShapes([]brush.Shape{frame}, 1)
}

// ClearBarriers removes every barrier and returns how many were removed.
func (s *Sandbox) ClearBarriers() int {
	n := s.world.ClearKind(KindBarrier)
	s.stale = append(s.stale[:0], s.size.Rect())
	return n
}

// ChunkSize returns the side length of a chunk in cells.
func (s *Sandbox) ChunkSize() int { return s.cfg.ChunkSize }
