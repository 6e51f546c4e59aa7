package sand

// ChunkCoord addresses a chunk: global cell coordinates divided by the chunk
// size, floored.
type ChunkCoord struct {
	X, Y int
}

// Cell is one grid slot: the occupying particle and whether it changed during
// the current update.
type Cell struct {
	p       *Particle
	changed bool
}

// Particle returns the occupant. It is never nil for a cell of a live chunk.
func (c Cell) Particle() *Particle { return c.p }

// Changed reports whether the cell was written during the last update.
func (c Cell) Changed() bool { return c.changed }

// Chunk is one square tile of the world. It owns its cells, its visitation
// order, its dirty rectangle and the pool of empty particles its rules draw
// from. Particles never leave the chunk they were created in.
type Chunk struct {
	coord ChunkCoord
	size  int

	cells []Cell
	order []int

	dirty   Rect
	pending Rect

	parity  bool
	updates int

	pool   *AirPool
	rng    Rand
	params *Params
}

func newChunk(coord ChunkCoord, size int, params *Params, rng Rand) *Chunk {
	c := &Chunk{
		coord:   coord,
		size:    size,
		cells:   make([]Cell, size*size),
		order:   make([]int, size*size),
		dirty:   FullRect(size),
		pending: EmptyRect(),
		pool:    NewAirPool(),
		rng:     rng,
		params:  params,
	}
	for i := range c.cells {
		c.cells[i].p = c.pool.Get(i%size, i/size)
	}
	c.shuffle()
	return c
}

// Coord returns the chunk coordinates.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// Size returns the side length in cells.
func (c *Chunk) Size() int { return c.size }

// Origin returns the global coordinates of the chunk's top-left cell.
func (c *Chunk) Origin() (int, int) { return c.coord.X * c.size, c.coord.Y * c.size }

// Pool exposes the chunk's empty-particle pool.
func (c *Chunk) Pool() *AirPool { return c.pool }

// Updates returns how many times Update has run.
func (c *Chunk) Updates() int { return c.updates }

// DirtyRect returns the cells changed by the last update, including
// placements made since the update before it.
func (c *Chunk) DirtyRect() Rect { return c.dirty }

// Active reports whether the chunk changed during the last update or has
// placements waiting for the next one.
func (c *Chunk) Active() bool { return !c.dirty.Empty() || !c.pending.Empty() }

// Particle returns the occupant of a chunk-local cell, or nil when (lx, ly)
// lies outside the chunk.
func (c *Chunk) Particle(lx, ly int) *Particle {
	if !c.inBounds(lx, ly) {
		return nil
	}
	return c.cells[c.index(lx, ly)].p
}

// Cell returns the chunk-local cell at (lx, ly).
func (c *Chunk) Cell(lx, ly int) (Cell, bool) {
	if !c.inBounds(lx, ly) {
		return Cell{}, false
	}
	return c.cells[c.index(lx, ly)], true
}

// Step runs Update with the parity opposite to the previous one.
func (c *Chunk) Step() { c.Update(!c.parity) }

// Update runs one tick over every cell in the shuffled order. Particles whose
// parity already equals parity were processed earlier in this tick (usually
// because they moved into a cell not yet visited) and are skipped.
func (c *Chunk) Update(parity bool) {
	if n := c.params.ReshuffleInterval; n > 0 && c.updates > 0 && c.updates%n == 0 {
		c.shuffle()
	}
	c.parity = parity
	c.dirty = c.pending
	c.pending = EmptyRect()
	for _, idx := range c.order {
		cell := &c.cells[idx]
		p := cell.p
		if p.tick == parity {
			continue
		}
		cell.changed = false
		c.updateParticle(p)
		if cell.changed {
			c.dirty.Grow(p.x, p.y)
		}
		p.tick = parity
	}
	c.updates++
}

// skip records a tick in which the chunk was not simulated.
func (c *Chunk) skip() {
	c.dirty = c.pending
	c.pending = EmptyRect()
}

// create builds a particle of kind k for a chunk-local cell.
func (c *Chunk) create(k Kind, lx, ly int) (*Particle, error) {
	if !k.Valid() {
		return nil, unknownKind(k)
	}
	return c.alloc(k, lx, ly), nil
}

// alloc builds a particle of a known-valid kind. Its parity matches the most
// recent update, so a particle created mid-update waits for the next tick and
// one created between updates runs in the next tick.
func (c *Chunk) alloc(k Kind, lx, ly int) *Particle {
	var p *Particle
	if k == KindEmpty {
		p = c.pool.Get(lx, ly)
	} else {
		p = &Particle{kind: k, x: lx, y: ly, color: colorFor(k, c.params.ColorJitter, c.rng.Float64())}
		if k == KindPlant {
			p.energy = c.params.PlantEnergy
		}
	}
	p.tick = c.parity
	return p
}

// set overwrites a chunk-local cell outside of an update.
func (c *Chunk) set(lx, ly int, p *Particle) {
	idx := c.index(lx, ly)
	c.discard(c.cells[idx].p)
	p.x, p.y = lx, ly
	c.cells[idx].p = p
	c.cells[idx].changed = true
	c.pending.Grow(lx, ly)
}

// shuffle rebuilds the visitation order: one random permutation per row,
// rows concatenated from the last to the first.
func (c *Chunk) shuffle() {
	s := c.size
	i := 0
	for y := s - 1; y >= 0; y-- {
		row := c.order[i : i+s]
		for x := range row {
			row[x] = y*s + x
		}
		for j := s - 1; j > 0; j-- {
			k := c.rng.IntN(j + 1)
			row[j], row[k] = row[k], row[j]
		}
		i += s
	}
}
