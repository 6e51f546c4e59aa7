package sand

import (
	"fmt"
	"image"
	"time"

	"falling-sand/internal/brush"
	"falling-sand/internal/core"
)

// Scenario is a scripted workload: an initial layout plus material fed into
// the world before every tick. Scenarios drive benchmarks and soak tests.
type Scenario struct {
	Name        string
	Description string

	setup func(p *placer, b image.Rectangle)
	feed  func(p *placer, b image.Rectangle, r *core.RNG)
}

var scenarios = []Scenario{
	{
		Name:        "columns",
		Description: "sand poured from fixed spouts onto stone ledges",
		setup: func(p *placer, b image.Rectangle) {
			p.fill(image.Rect(b.Min.X, b.Max.Y-2, b.Max.X, b.Max.Y), KindStone)
			third := b.Dx() / 3
			p.fill(image.Rect(b.Min.X+third/2, b.Min.Y+b.Dy()/2, b.Min.X+third, b.Min.Y+b.Dy()/2+1), KindStone)
			p.fill(image.Rect(b.Max.X-third, b.Min.Y+2*b.Dy()/3, b.Max.X-third/2, b.Min.Y+2*b.Dy()/3+1), KindStone)
		},
		feed: func(p *placer, b image.Rectangle, _ *core.RNG) {
			for i := 1; i <= 4; i++ {
				x := b.Min.X + i*b.Dx()/5
				p.place(x, b.Min.Y, KindSand)
			}
		},
	},
	{
		Name:        "rain",
		Description: "water drops at random columns over a basin, steam vents below",
		setup: func(p *placer, b image.Rectangle) {
			p.fill(image.Rect(b.Min.X, b.Max.Y-1, b.Max.X, b.Max.Y), KindBarrier)
			p.fill(image.Rect(b.Min.X, b.Min.Y+b.Dy()/2, b.Min.X+1, b.Max.Y), KindBarrier)
			p.fill(image.Rect(b.Max.X-1, b.Min.Y+b.Dy()/2, b.Max.X, b.Max.Y), KindBarrier)
			cx, cy := float64(b.Min.X+b.Dx()/2), float64(b.Min.Y+b.Dy()/3)
			for _, pt := range brush.Ring(cx, cy, float64(b.Dx())/8, 64, 1) {
				p.create(pt.X, pt.Y, KindStone)
			}
		},
		feed: func(p *placer, b image.Rectangle, r *core.RNG) {
			for i := 0; i < 2; i++ {
				p.place(b.Min.X+r.IntN(b.Dx()), b.Min.Y, KindWater)
			}
			if r.Float64() < 0.1 {
				p.place(b.Min.X+1+r.IntN(max(b.Dx()-2, 1)), b.Max.Y-2, KindSteam)
			}
		},
	},
	{
		Name:        "acid",
		Description: "acid dripping onto a stone block sitting in a pool",
		setup: func(p *placer, b image.Rectangle) {
			p.fill(image.Rect(b.Min.X+b.Dx()/4, b.Min.Y+b.Dy()/2, b.Max.X-b.Dx()/4, b.Max.Y), KindStone)
			p.fill(image.Rect(b.Min.X, b.Max.Y-b.Dy()/8, b.Min.X+b.Dx()/4, b.Max.Y), KindWater)
		},
		feed: func(p *placer, b image.Rectangle, r *core.RNG) {
			if r.Float64() < 0.5 {
				p.place(b.Min.X+b.Dx()/2+r.IntN(5)-2, b.Min.Y, KindAcid)
			}
		},
	},
	{
		Name:        "garden",
		Description: "plant seeds on sand watered by light rain",
		setup: func(p *placer, b image.Rectangle) {
			p.fill(image.Rect(b.Min.X, b.Max.Y-3, b.Max.X, b.Max.Y), KindSand)
			for x := b.Min.X + 4; x < b.Max.X-4; x += 8 {
				p.create(x, b.Max.Y-4, KindPlant)
			}
		},
		feed: func(p *placer, b image.Rectangle, r *core.RNG) {
			if r.Float64() < 0.5 {
				p.place(b.Min.X+r.IntN(b.Dx()), b.Min.Y, KindWater)
			}
		},
	},
}

// Scenarios lists the built-in scenarios.
func Scenarios() []Scenario { return scenarios }

// FindScenario looks a scenario up by name.
func FindScenario(name string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Observer receives the world state after each tick and the time the tick
// itself took.
type Observer func(stats WorldStats, tick time.Duration)

// Run builds a world from cfg, lays the scenario out and runs steps ticks.
// observe may be nil. A failed placement stops the run.
func (sc Scenario) Run(cfg Config, steps int, observe Observer, opts ...Option) (WorldStats, error) {
	w, err := sc.start(cfg, opts...)
	if err != nil {
		return WorldStats{}, err
	}
	feedRNG := core.NewRNG(cfg.Seed + 1)
	for i := 0; i < steps; i++ {
		elapsed, err := sc.advance(w, feedRNG)
		if err != nil {
			return w.Stats(), err
		}
		if observe != nil {
			observe(w.Stats(), elapsed)
		}
	}
	return w.Stats(), nil
}

// start builds the world and applies the initial layout.
func (sc Scenario) start(cfg Config, opts ...Option) (*World, error) {
	w, err := NewWorld(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if sc.setup != nil {
		p := &placer{w: w}
		sc.setup(p, w.Bounds())
		if p.err != nil {
			return nil, fmt.Errorf("scenario %s: setup: %w", sc.Name, p.err)
		}
	}
	return w, nil
}

// advance feeds the world and runs one tick, returning the tick duration.
func (sc Scenario) advance(w *World, r *core.RNG) (time.Duration, error) {
	if sc.feed != nil {
		p := &placer{w: w}
		sc.feed(p, w.Bounds(), r)
		if p.err != nil {
			return 0, fmt.Errorf("scenario %s: tick %d: %w", sc.Name, w.Ticks()+1, p.err)
		}
	}
	start := time.Now()
	w.Tick()
	return time.Since(start), nil
}

// placer forwards placements to a world and keeps the first error.
type placer struct {
	w   *World
	err error
}

func (p *placer) create(x, y int, k Kind) {
	if p.err == nil {
		p.err = p.w.CreateParticle(x, y, k)
	}
}

func (p *placer) place(x, y int, k Kind) {
	if p.err == nil {
		p.err = p.w.PlaceParticle(x, y, k)
	}
}

func (p *placer) fill(r image.Rectangle, k Kind) {
	r = r.Intersect(p.w.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.create(x, y, k)
		}
	}
}
