package brush

import (
	"image"
	"math"
	"sort"
)

// Vec is a point in page space.
type Vec struct {
	X, Y float64
}

// Shape is host geometry: vertices relative to (X, Y), rotated by Rotation
// radians around that origin. Closed shapes are filled, open ones stroked.
type Shape struct {
	X, Y     float64
	Rotation float64
	Vertices []Vec
	Closed   bool
}

// Transformed returns the vertices in page space.
func (s Shape) Transformed() []Vec {
	cos, sin := math.Cos(s.Rotation), math.Sin(s.Rotation)
	out := make([]Vec, len(s.Vertices))
	for i, v := range s.Vertices {
		out[i] = Vec{
			X: v.X*cos - v.Y*sin + s.X,
			Y: v.X*sin + v.Y*cos + s.Y,
		}
	}
	return out
}

// Cells rasterises the shape onto a grid of cellSize page units per cell.
func (s Shape) Cells(cellSize float64) []image.Point {
	var set pointSet
	s.rasterize(cellSize, &set)
	return set.points
}

// Rasterize rasterises every shape and returns the union of their cells.
func Rasterize(shapes []Shape, cellSize float64) []image.Point {
	var set pointSet
	for _, s := range shapes {
		s.rasterize(cellSize, &set)
	}
	return set.points
}

func (s Shape) rasterize(cellSize float64, set *pointSet) {
	if cellSize <= 0 || len(s.Vertices) == 0 {
		return
	}
	verts := s.Transformed()
	if s.Closed && len(verts) >= 3 {
		fill(verts, cellSize, set)
		return
	}
	stroke(verts, cellSize, set)
}

// fill scans one line per cell row and fills between pairs of edge crossings.
func fill(verts []Vec, cellSize float64, set *pointSet) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	var xs []float64
	for row := int(math.Floor(minY / cellSize)); row <= int(math.Floor(maxY/cellSize)); row++ {
		scan := float64(row) * cellSize
		xs = xs[:0]
		for i := range verts {
			a, b := verts[i], verts[(i+1)%len(verts)]
			if (a.Y < scan && b.Y >= scan) || (b.Y < scan && a.Y >= scan) {
				xs = append(xs, a.X+(scan-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Floor(xs[i] / cellSize))
			end := int(math.Floor(xs[i+1] / cellSize))
			for x := start; x <= end; x++ {
				set.add(image.Pt(x, row))
			}
		}
	}
}

// stroke walks each segment in steps of at most one cell.
func stroke(verts []Vec, cellSize float64, set *pointSet) {
	if len(verts) == 1 {
		set.add(toCell(verts[0].X, verts[0].Y, cellSize))
		return
	}
	for i := 0; i+1 < len(verts); i++ {
		a, b := verts[i], verts[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / cellSize))
		if steps == 0 {
			set.add(toCell(a.X, a.Y, cellSize))
			continue
		}
		for t := 0; t <= steps; t++ {
			f := float64(t) / float64(steps)
			set.add(toCell(a.X+dx*f, a.Y+dy*f, cellSize))
		}
	}
}
