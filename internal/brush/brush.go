// Package brush turns pointer strokes and host geometry into the grid cells
// the simulation should fill.
package brush

import (
	"image"
	"math"
)

// Rand supplies uniform draws in [0, 1).
type Rand interface {
	Float64() float64
}

// Disc returns the cells within radius r of (cx, cy).
func Disc(cx, cy, r int) []image.Point {
	if r < 0 {
		return nil
	}
	out := make([]image.Point, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			out = append(out, image.Pt(cx+dx, cy+dy))
		}
	}
	return out
}

// Ring samples n points on a circle of the given radius around a page-space
// centre and snaps them to cells of cellSize.
func Ring(cx, cy, radius float64, n int, cellSize float64) []image.Point {
	if n <= 0 || cellSize <= 0 {
		return nil
	}
	var set pointSet
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		set.add(toCell(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle), cellSize))
	}
	return set.points
}

// Sparse keeps each point with probability keep.
func Sparse(points []image.Point, keep float64, rng Rand) []image.Point {
	if keep >= 1 || rng == nil {
		return points
	}
	out := points[:0:0]
	for _, pt := range points {
		if rng.Float64() < keep {
			out = append(out, pt)
		}
	}
	return out
}

// snap absorbs rounding error from interpolated coordinates that should land
// exactly on a cell edge.
const snap = 1e-9

func toCell(x, y, cellSize float64) image.Point {
	return image.Pt(int(math.Floor(x/cellSize+snap)), int(math.Floor(y/cellSize+snap)))
}

type pointSet struct {
	seen   map[image.Point]struct{}
	points []image.Point
}

func (s *pointSet) add(pt image.Point) {
	if s.seen == nil {
		s.seen = make(map[image.Point]struct{})
	}
	if _, ok := s.seen[pt]; ok {
		return
	}
	s.seen[pt] = struct{}{}
	s.points = append(s.points, pt)
}
