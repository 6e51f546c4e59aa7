//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"falling-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type chunkSizer interface {
	ChunkSize() int
}

// Overlay draws optional debugging visuals on top of the simulation: the
// dirty rectangles of the last tick, chunk borders and the brush outline.
type Overlay struct {
	sim   core.Sim
	scale int

	showDirty  bool
	showChunks bool

	cursor       image.Point
	cursorRadius int
	cursorOn     bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: F1 dirty rectangles, F2 chunk borders.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.showDirty = !o.showDirty
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		o.showChunks = !o.showChunks
	}
}

// SetCursor positions the brush outline in cell coordinates. A negative
// radius hides it.
func (o *Overlay) SetCursor(x, y, radius int) {
	o.cursor = image.Pt(x, y)
	o.cursorRadius = radius
	o.cursorOn = radius >= 0
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showChunks {
		if cs, ok := o.sim.(chunkSizer); ok && cs.ChunkSize() > 0 {
			n := cs.ChunkSize()
			for y := 0; y < size.H; y += n {
				for x := 0; x < size.W; x += n {
					o.outline(screen, image.Rect(x, y, x+n, y+n), color.RGBA{R: 70, G: 70, B: 90, A: 160})
				}
			}
		}
	}
	if o.showDirty {
		if dr, ok := o.sim.(core.DirtyReporter); ok {
			for _, r := range dr.DirtyRegions() {
				o.outline(screen, r, color.RGBA{R: 255, G: 64, B: 64, A: 200})
			}
		}
	}
	if o.cursorOn && image.Pt(o.cursor.X, o.cursor.Y).In(size.Rect()) {
		r := o.cursorRadius
		o.outline(screen, image.Rect(o.cursor.X-r, o.cursor.Y-r, o.cursor.X+r+1, o.cursor.Y+r+1), color.RGBA{R: 230, G: 230, B: 240, A: 140})
	}
}

// outline draws a one-pixel border around the cell rectangle r.
func (o *Overlay) outline(screen *ebiten.Image, r image.Rectangle, col color.RGBA) {
	scale := float64(max(o.scale, 1))
	x0, y0 := float64(r.Min.X)*scale, float64(r.Min.Y)*scale
	w, h := float64(r.Dx())*scale, float64(r.Dy())*scale
	o.fill(screen, x0, y0, w, 1, col)
	o.fill(screen, x0, y0+h-1, w, 1, col)
	o.fill(screen, x0, y0, 1, h, col)
	o.fill(screen, x0+w-1, y0, 1, h, col)
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
