//go:build ebiten

package app

import (
	"image"
	"time"

	"go.uber.org/zap"

	"falling-sand/internal/brush"
	"falling-sand/internal/core"
	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/telemetry"
	"falling-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Sandbox is the simulation surface the host drives: a core.Sim that can
// also be painted on.
type Sandbox interface {
	core.Sim
	core.DirtyReporter
	core.MaterialPicker
	Paint(x, y int) int
	Erase(x, y int) int
	Spray(x, y int, density float64) int
	Walls() int
	ClearBarriers() int
	BrushRadius() int
	SetBrushRadius(r int)
	Stats() sand.WorldStats
}

const (
	// perfWindow is the number of ticks between perf log lines.
	perfWindow = 300
	// sprayDensity is the fraction of the brush disc filled while Shift is held.
	sprayDensity = 0.15
)

// Options configures the host window.
type Options struct {
	Scale      int
	TPS        int
	PanelWidth int
	Seed       int64
	Paused     bool
	Logger     *zap.Logger
}

// Game adapts a Sandbox to the ebiten.Game interface.
type Game struct {
	sim     Sandbox
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	perf    *telemetry.Collector
	log     *zap.Logger

	scale      int
	panelWidth int
	tps        int
	paused     bool
	tickOnce   bool
	seed       int64

	lastCursor image.Point
	stroking   bool
}

// New constructs a Game for the provided sandbox.
func New(sim Sandbox, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	size := sim.Size()
	return &Game{
		sim:        sim,
		painter:    render.NewGridPainter(size.W, size.H),
		hud:        ui.NewHUD(sim, opts.PanelWidth),
		overlay:    ui.NewOverlay(sim, opts.Scale),
		timer:      core.NewFixedStep(opts.TPS),
		perf:       telemetry.NewCollector(perfWindow),
		log:        opts.Logger,
		scale:      opts.Scale,
		panelWidth: max(opts.PanelWidth, 0),
		tps:        opts.TPS,
		paused:     opts.Paused,
		seed:       opts.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.painter.Invalidate()
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.setPaused(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
		g.log.Info("reseeded", zap.Int64("seed", g.seed))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.sim.Walls()
		g.painter.Invalidate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		n := g.sim.ClearBarriers()
		g.painter.Invalidate()
		g.log.Debug("barriers cleared", zap.Int("count", n))
	}
	g.handleMaterialKeys()
	g.handleSpeedKeys()

	g.hud.Update(g.sim.Size().W * g.scale)
	g.overlay.Update()
	g.handleBrush()

	if g.tickOnce {
		g.step()
		g.tickOnce = false
	}
	if !g.paused {
		for n := g.timer.Steps(); n > 0; n-- {
			g.step()
		}
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	if paused != g.paused {
		g.timer.Reset()
	}
	g.paused = paused
}

func (g *Game) step() {
	g.perf.StartTick()
	g.sim.Step()
	rec := g.perf.EndTick("interactive", g.sim.Stats())
	g.painter.Mark(g.sim.DirtyRegions()...)
	if rec.Tick%perfWindow == 0 {
		g.log.Debug("perf", g.perf.Summary().Field())
	}
}

var materialKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// handleMaterialKeys maps the digit keys to materials in palette order.
func (g *Game) handleMaterialKeys() {
	for i, key := range materialKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.sim.SelectMaterial(i)
		}
	}
	_, wy := ebiten.Wheel()
	switch {
	case wy > 0:
		g.sim.SetBrushRadius(g.sim.BrushRadius() + 1)
	case wy < 0:
		g.sim.SetBrushRadius(g.sim.BrushRadius() - 1)
	}
}

func (g *Game) handleSpeedKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.tps = min(g.tps*2, 960)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.tps = max(g.tps/2, 1)
	default:
		return
	}
	g.timer.SetTPS(g.tps)
	g.log.Debug("tick rate changed", zap.Int("tps", g.tps))
}

// handleBrush paints along the pointer path with the left button and
// erases with the right one. Holding Shift sprays instead of painting.
func (g *Game) handleBrush() {
	mx, my := ebiten.CursorPosition()
	cell := image.Pt(mx/g.scale, my/g.scale)
	onGrid := cell.In(g.sim.Size().Rect())
	if onGrid {
		g.overlay.SetCursor(cell.X, cell.Y, g.sim.BrushRadius())
	} else {
		g.overlay.SetCursor(0, 0, -1)
	}

	painting := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	erasing := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !onGrid || (!painting && !erasing) {
		g.stroking = false
		return
	}
	from := cell
	if g.stroking {
		from = g.lastCursor
	}
	stroke := brush.Shape{Vertices: []brush.Vec{
		{X: float64(from.X), Y: float64(from.Y)},
		{X: float64(cell.X), Y: float64(cell.Y)},
	}}
	spraying := ebiten.IsKeyPressed(ebiten.KeyShift)
	r := g.sim.BrushRadius()
	for _, pt := range stroke.Cells(1) {
		switch {
		case erasing:
			g.sim.Erase(pt.X, pt.Y)
		case spraying:
			g.sim.Spray(pt.X, pt.Y, sprayDensity)
		default:
			g.sim.Paint(pt.X, pt.Y)
		}
		g.painter.Mark(image.Rect(pt.X-r, pt.Y-r, pt.X+r+1, pt.Y+r+1))
	}
	g.lastCursor = cell
	g.stroking = true
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Upload(g.sim)
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panelWidth, s.H * g.scale
}
