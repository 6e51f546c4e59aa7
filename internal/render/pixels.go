package render

import (
	"image"
	"image/color"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillPaletteRegion writes the pixels of the cells inside r into buf, row
// by row. cells is a row-major grid of width w.
func fillPaletteRegion(buf []byte, cells []uint8, w int, r image.Rectangle, palette []color.RGBA) {
	dx := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := cells[y*w+r.Min.X : y*w+r.Max.X]
		off := (y - r.Min.Y) * dx * 4
		fillPaletteRGBA(buf[off:off+dx*4], row, palette)
	}
}

// regionBuffer returns buf resliced, or regrown, to hold the pixels of r.
func regionBuffer(buf []byte, r image.Rectangle) []byte {
	n := 4 * r.Dx() * r.Dy()
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}

// coalesce clips regions to bounds and drops empty ones. When the regions
// cover more than half of bounds a single full upload is returned instead.
func coalesce(regions []image.Rectangle, bounds image.Rectangle) []image.Rectangle {
	out := regions[:0:0]
	area := 0
	for _, r := range regions {
		r = r.Intersect(bounds)
		if r.Empty() {
			continue
		}
		out = append(out, r)
		area += r.Dx() * r.Dy()
	}
	if 2*area > bounds.Dx()*bounds.Dy() {
		return []image.Rectangle{bounds}
	}
	return out
}
