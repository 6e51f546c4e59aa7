//go:build ebiten

package render

import (
	"image"
	"image/color"

	"falling-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// GridPainter keeps an RGBA image of the simulation and re-uploads only the
// regions marked since the last upload.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	pending []image.Rectangle
}

// NewGridPainter allocates a painter for a grid of size w*h. The first
// upload covers the whole grid.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h}
	gp.img = ebiten.NewImage(w, h)
	gp.Invalidate()
	return gp
}

// Mark queues regions for the next upload.
func (gp *GridPainter) Mark(regions ...image.Rectangle) {
	gp.pending = append(gp.pending, regions...)
}

// Invalidate queues the whole grid.
func (gp *GridPainter) Invalidate() {
	gp.pending = append(gp.pending[:0], image.Rect(0, 0, gp.w, gp.h))
}

// Upload copies the queued regions from sim into the painter image. Sims
// implementing core.RGBAWriter supply their own colours; others are drawn
// through their palette.
func (gp *GridPainter) Upload(sim core.Sim) {
	if len(gp.pending) == 0 {
		return
	}
	bounds := image.Rect(0, 0, gp.w, gp.h)
	writer, _ := sim.(core.RGBAWriter)
	var cells []uint8
	var palette []color.RGBA
	if writer == nil {
		cells = sim.Cells()
		if len(cells) != gp.w*gp.h {
			return
		}
		if p, ok := sim.(paletteProvider); ok {
			palette = p.Palette()
		}
	}
	for _, r := range coalesce(gp.pending, bounds) {
		gp.buf = regionBuffer(gp.buf, r)
		if writer != nil {
			writer.WriteRGBA(gp.buf, r)
		} else {
			fillPaletteRegion(gp.buf, cells, gp.w, r, palette)
		}
		gp.img.SubImage(r).(*ebiten.Image).WritePixels(gp.buf)
	}
	gp.pending = gp.pending[:0]
}

// Draw scales the painter image onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
