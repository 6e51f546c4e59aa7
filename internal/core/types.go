package core

import (
	"image"
	"image/color"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Rect returns the grid area as an image rectangle anchored at the origin.
func (s Size) Rect() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// Sim defines the minimal contract a simulation must implement to be driven
// by the host application.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// DirtyReporter is implemented by sims that know which regions changed during
// the most recent Step. Renderers use it to avoid re-uploading quiet areas.
type DirtyReporter interface {
	DirtyRegions() []image.Rectangle
}

// RGBAWriter is implemented by sims that own per-cell colours. WriteRGBA fills
// buf with row-major RGBA pixels for the cells inside r; buf must hold at
// least 4*r.Dx()*r.Dy() bytes.
type RGBAWriter interface {
	WriteRGBA(buf []byte, r image.Rectangle)
}

// Material is a brush material offered by the HUD palette.
type Material struct {
	Name  string
	Color color.RGBA
}

// MaterialPicker is implemented by sims with a selectable brush material.
type MaterialPicker interface {
	Materials() []Material
	SelectedMaterial() int
	SelectMaterial(i int) bool
}
