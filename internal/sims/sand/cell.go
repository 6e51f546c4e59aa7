package sand

// offset is a relative cell position; +y points down.
type offset struct {
	dx, dy int
}

var (
	orthogonal = [4]offset{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	fallOrder  = [3]offset{{0, 1}, {1, 1}, {-1, 1}}
)

func (c *Chunk) index(x, y int) int { return y*c.size + x }

func (c *Chunk) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.size && y < c.size
}

// neighbor resolves an offset from p to a cell index. Offsets leaving the
// chunk report false and behave as walls.
func (c *Chunk) neighbor(p *Particle, dx, dy int) (int, bool) {
	x, y := p.x+dx, p.y+dy
	if !c.inBounds(x, y) {
		return 0, false
	}
	return c.index(x, y), true
}

func (c *Chunk) kindAt(p *Particle, dx, dy int) (Kind, bool) {
	idx, ok := c.neighbor(p, dx, dy)
	if !ok {
		return 0, false
	}
	return c.cells[idx].p.kind, true
}

// isEmpty is true iff the neighbour exists and holds the empty variant.
func (c *Chunk) isEmpty(p *Particle, dx, dy int) bool {
	return c.is(p, dx, dy, KindEmpty)
}

func (c *Chunk) is(p *Particle, dx, dy int, k Kind) bool {
	got, ok := c.kindAt(p, dx, dy)
	return ok && got == k
}

// touch marks a cell changed during an update.
func (c *Chunk) touch(idx int) {
	c.cells[idx].changed = true
	c.dirty.Grow(idx%c.size, idx/c.size)
}

// discard drops a particle that lost its cell; empty ones go back to the pool.
func (c *Chunk) discard(p *Particle) {
	if p != nil && p.kind == KindEmpty {
		c.pool.Release(p)
	}
}

// swap exchanges p with the occupant of the neighbouring cell.
func (c *Chunk) swap(p *Particle, dx, dy int) bool {
	to, ok := c.neighbor(p, dx, dy)
	if !ok {
		return false
	}
	from := c.index(p.x, p.y)
	other := c.cells[to].p
	other.x, other.y = p.x, p.y
	p.x += dx
	p.y += dy
	c.cells[from].p = other
	c.cells[to].p = p
	c.touch(from)
	c.touch(to)
	return true
}

// replace moves p into the neighbouring cell, discarding its occupant, and
// leaves an empty particle behind.
func (c *Chunk) replace(p *Particle, dx, dy int) bool {
	to, ok := c.neighbor(p, dx, dy)
	if !ok {
		return false
	}
	from := c.index(p.x, p.y)
	c.discard(c.cells[to].p)
	ox, oy := p.x, p.y
	p.x += dx
	p.y += dy
	c.cells[to].p = p
	c.cells[from].p = c.alloc(KindEmpty, ox, oy)
	c.touch(from)
	c.touch(to)
	return true
}

// clear empties the neighbouring cell.
func (c *Chunk) clear(p *Particle, dx, dy int) bool {
	return c.spawn(p, dx, dy, KindEmpty) != nil
}

// spawn places a new particle of kind k in the neighbouring cell.
func (c *Chunk) spawn(p *Particle, dx, dy int, k Kind) *Particle {
	idx, ok := c.neighbor(p, dx, dy)
	if !ok {
		return nil
	}
	c.discard(c.cells[idx].p)
	np := c.alloc(k, p.x+dx, p.y+dy)
	c.cells[idx].p = np
	c.touch(idx)
	return np
}

// transmute replaces p in its own cell with a new particle of kind k.
func (c *Chunk) transmute(p *Particle, k Kind) *Particle {
	return c.spawn(p, 0, 0, k)
}
