package sand

import (
	"image/color"

	"falling-sand/internal/core"
)

var sandPalette = buildSandPalette()

// Palette maps the kind values returned by Cells to their base colours.
func (s *Sandbox) Palette() []color.RGBA {
	return sandPalette
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, kindCount)
	for _, k := range Kinds() {
		palette[k] = BaseColor(k)
	}
	return palette
}

// Materials lists every kind as a brush material, indexed by kind value.
func (s *Sandbox) Materials() []core.Material {
	out := make([]core.Material, 0, kindCount)
	for _, k := range Kinds() {
		out = append(out, core.Material{Name: k.String(), Color: sandPalette[k]})
	}
	return out
}

// SelectedMaterial returns the selected kind as a material index.
func (s *Sandbox) SelectedMaterial() int { return int(s.selected) }

// SelectMaterial selects the kind with index i.
func (s *Sandbox) SelectMaterial(i int) bool {
	if i < 0 || i >= int(kindCount) {
		return false
	}
	return s.Select(Kind(i)) == nil
}
