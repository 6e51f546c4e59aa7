package sand

import (
	"image/color"
	"math"
)

// hsl is a colour seed in degrees/percent, matching the CSS hsl() notation
// the palette was tuned with.
type hsl struct {
	h, s, l float64
}

var emptyColor = color.RGBA{R: 12, G: 12, B: 16, A: 255}

var kindColors = [kindCount]hsl{
	KindEmpty:   {0, 0, 5},
	KindBarrier: {0, 0, 91},
	KindStone:   {220, 6, 42},
	KindSand:    {42, 62, 62},
	KindWater:   {212, 80, 52},
	KindSteam:   {210, 30, 84},
	KindAcid:    {95, 90, 50},
	KindPlant:   {122, 55, 38},
}

// colorFor derives a particle colour from the kind seed, shifting lightness
// by up to ±jitter percentage points using the supplied draw in [0, 1).
func colorFor(k Kind, jitter, draw float64) color.RGBA {
	if k == KindEmpty || !k.Valid() {
		return emptyColor
	}
	seed := kindColors[k]
	l := seed.l + jitter*(draw*2-1)
	return hslToRGBA(seed.h, seed.s, l)
}

// BaseColor returns the unjittered colour of k, used for palettes.
func BaseColor(k Kind) color.RGBA {
	return colorFor(k, 0, 0.5)
}

func hslToRGBA(h, s, l float64) color.RGBA {
	l = clamp(l, 0, 100) / 100
	s = clamp(s, 0, 100)
	a := s * math.Min(l, 1-l) / 100
	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(math.Round(255 * clamp(v, 0, 1)))
	}
	return color.RGBA{R: f(0), G: f(8), B: f(4), A: 255}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
