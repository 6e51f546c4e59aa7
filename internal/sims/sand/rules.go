package sand

import "fmt"

func (c *Chunk) updateParticle(p *Particle) {
	switch p.kind {
	case KindEmpty, KindBarrier, KindStone:
	case KindSand:
		c.updateSand(p)
	case KindWater:
		c.updateWater(p)
	case KindSteam:
		c.updateSteam(p)
	case KindAcid:
		c.updateAcid(p)
	case KindPlant:
		c.updatePlant(p)
	default:
		panic(fmt.Sprintf("sand: no rule for %v", p.kind))
	}
}

// moveBudget accelerates p and returns how many single-cell moves it may
// attempt this tick: the whole part of its speed, one more with probability
// equal to the fraction, plus one.
func (c *Chunk) moveBudget(p *Particle) int {
	g := c.params.Gravity
	if g <= 0 {
		return 1
	}
	p.speed = min(p.speed+g, c.params.MaxSpeed)
	whole := int(p.speed)
	n := whole + 1
	if chance(c.rng, p.speed-float64(whole)) {
		n++
	}
	return n
}

// Straight falls keep the budget going; any other move spends the rest of it.
func (c *Chunk) updateSand(p *Particle) {
	budget := c.moveBudget(p)
	for i := 0; i < budget; i++ {
		switch {
		case c.isEmpty(p, 0, 1):
			c.swap(p, 0, 1)
			continue
		case c.isEmpty(p, 1, 1):
			c.swap(p, 1, 1)
		case c.isEmpty(p, -1, 1):
			c.swap(p, -1, 1)
		case c.is(p, 0, 1, KindWater) && chance(c.rng, c.params.SandSinkChance):
			c.swap(p, 0, 1)
		default:
			p.speed = 0
			return
		}
		p.speed *= c.params.SpeedDecay
		return
	}
}

func (c *Chunk) updateWater(p *Particle) {
	budget := c.moveBudget(p)
	for i := 0; i < budget; i++ {
		switch {
		case c.isEmpty(p, 0, 1):
			c.swap(p, 0, 1)
			continue
		case c.is(p, 0, 1, KindSteam):
			c.swap(p, 0, 1)
		case c.isEmpty(p, 1, 1):
			c.swap(p, 1, 1)
		case c.isEmpty(p, -1, 1):
			c.swap(p, -1, 1)
		case c.spread(p):
		default:
			p.speed = 0
			return
		}
		p.speed *= c.params.SpeedDecay
		return
	}
}

func (c *Chunk) updateSteam(p *Particle) {
	if chance(c.rng, c.params.SteamCondenseChance) {
		c.transmute(p, KindWater)
		return
	}
	if c.isEmpty(p, 0, -1) {
		c.swap(p, 0, -1)
		return
	}
	// Vapour drifts left first, unlike liquids.
	if c.isEmpty(p, -1, 0) {
		c.swap(p, -1, 0)
		return
	}
	if c.isEmpty(p, 1, 0) {
		c.swap(p, 1, 0)
	}
}

func (c *Chunk) updateAcid(p *Particle) {
	for _, d := range fallOrder {
		if c.isEmpty(p, d.dx, d.dy) {
			c.swap(p, d.dx, d.dy)
			return
		}
	}
	if c.is(p, 0, 1, KindWater) && chance(c.rng, c.params.AcidWaterChance) {
		if chance(c.rng, c.params.AcidReplaceChance) {
			c.replace(p, 0, 1)
		} else {
			c.swap(p, 0, 1)
		}
		return
	}
	if c.spread(p) {
		return
	}
	if chance(c.rng, c.params.AcidDissolveChance) {
		for _, d := range orthogonal {
			if k, ok := c.kindAt(p, d.dx, d.dy); ok && k.Dissolvable() {
				c.clear(p, d.dx, d.dy)
			}
		}
	}
}

func (c *Chunk) updatePlant(p *Particle) {
	if chance(c.rng, c.params.PlantGrowChance) {
		c.grow(p)
	}
	if chance(c.rng, c.params.PlantAbsorbChance) {
		c.absorb(p)
	}
}

// spread moves p one cell sideways into an empty neighbour, flipping a coin
// when both sides are free.
func (c *Chunk) spread(p *Particle) bool {
	left := c.isEmpty(p, -1, 0)
	right := c.isEmpty(p, 1, 0)
	switch {
	case left && right:
		if c.rng.Float64() < 0.5 {
			return c.swap(p, -1, 0)
		}
		return c.swap(p, 1, 0)
	case left:
		return c.swap(p, -1, 0)
	case right:
		return c.swap(p, 1, 0)
	}
	return false
}

func (c *Chunk) grow(p *Particle) bool {
	if p.energy <= 0 {
		return false
	}
	d, ok := c.growthDirection()
	if !ok || !c.isEmpty(p, d.dx, d.dy) {
		return false
	}
	crowd := c.crowding(p.x+d.dx, p.y+d.dy)
	if crowd > c.params.PlantCrowdMax {
		return false
	}
	if crowd > c.params.PlantCrowdSoft && chance(c.rng, c.params.PlantCrowdRefuseChance) {
		return false
	}
	p.energy--
	child := c.spawn(p, d.dx, d.dy, KindPlant)
	child.energy = p.energy
	return true
}

// growthDirection picks up, up-left, up-right, left or right by weight.
func (c *Chunk) growthDirection() (offset, bool) {
	up := max(c.params.PlantUpWeight, 0)
	diag := max(c.params.PlantDiagonalWeight, 0)
	side := max(c.params.PlantSideWeight, 0)
	choices := [5]struct {
		d      offset
		weight int
	}{
		{offset{0, -1}, up},
		{offset{-1, -1}, diag},
		{offset{1, -1}, diag},
		{offset{-1, 0}, side},
		{offset{1, 0}, side},
	}
	total := up + 2*diag + 2*side
	if total <= 0 {
		return offset{}, false
	}
	r := c.rng.IntN(total)
	for _, ch := range choices {
		if r < ch.weight {
			return ch.d, true
		}
		r -= ch.weight
	}
	return choices[0].d, true
}

// crowding counts the non-empty, non-water cells around (x, y).
func (c *Chunk) crowding(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !c.inBounds(nx, ny) {
				continue
			}
			k := c.cells[c.index(nx, ny)].p.kind
			if k != KindEmpty && k != KindWater {
				n++
			}
		}
	}
	return n
}

func (c *Chunk) absorb(p *Particle) int {
	n := 0
	for _, d := range orthogonal {
		if c.is(p, d.dx, d.dy, KindWater) {
			c.clear(p, d.dx, d.dy)
			p.energy++
			n++
		}
	}
	return n
}
