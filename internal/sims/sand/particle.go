package sand

import "image/color"

// Particle is the matter occupying exactly one cell. Particles are moved
// between cells by identity; x and y always match the cell holding them.
type Particle struct {
	kind  Kind
	x, y  int
	color color.RGBA

	// tick is the parity of the last chunk update that processed this
	// particle. A particle whose parity equals the running update is skipped.
	tick bool

	// energy is the remaining growth budget of plants.
	energy int
	// speed is the accumulated fall velocity of sand and water.
	speed float64
}

// Kind returns the particle variant.
func (p *Particle) Kind() Kind { return p.kind }

// Position returns the chunk-local coordinates of the particle.
func (p *Particle) Position() (int, int) { return p.x, p.y }

// Color returns the cached display colour.
func (p *Particle) Color() color.RGBA { return p.color }

// Energy returns the growth budget (plants only).
func (p *Particle) Energy() int { return p.energy }

// Speed returns the accumulated fall speed (sand and water only).
func (p *Particle) Speed() float64 { return p.speed }

// IsEmpty reports whether the particle is the vacuum placeholder.
func (p *Particle) IsEmpty() bool { return p.kind == KindEmpty }
