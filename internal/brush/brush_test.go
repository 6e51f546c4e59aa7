package brush

import (
	"image"
	"math"
	"testing"
)

func TestDiscCoversRadius(t *testing.T) {
	pts := Disc(5, 5, 2)
	want := map[image.Point]bool{}
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy <= 4 {
				want[image.Pt(5+dx, 5+dy)] = true
			}
		}
	}
	if len(pts) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(pts))
	}
	for _, pt := range pts {
		if !want[pt] {
			t.Fatalf("unexpected cell %v", pt)
		}
	}
	if Disc(0, 0, -1) != nil {
		t.Fatal("negative radius should produce no cells")
	}
}

func TestRingDeduplicates(t *testing.T) {
	pts := Ring(0, 0, 1, 64, 10)
	seen := map[image.Point]bool{}
	for _, pt := range pts {
		if seen[pt] {
			t.Fatalf("duplicate cell %v", pt)
		}
		seen[pt] = true
	}
	if len(pts) == 0 || len(pts) > 4 {
		t.Fatalf("a tiny ring should snap to a handful of cells, got %d", len(pts))
	}
}

type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func TestSparse(t *testing.T) {
	pts := Disc(0, 0, 3)
	if got := Sparse(pts, 0.5, constRand(0.9)); len(got) != 0 {
		t.Fatalf("draws above keep should drop every point, kept %d", len(got))
	}
	if got := Sparse(pts, 0.5, constRand(0.1)); len(got) != len(pts) {
		t.Fatalf("draws below keep should keep every point, kept %d of %d", len(got), len(pts))
	}
	if got := Sparse(pts, 1, nil); len(got) != len(pts) {
		t.Fatal("keep >= 1 should return the input")
	}
}

func TestClosedShapeFillsInterior(t *testing.T) {
	square := Shape{
		X: 0, Y: 0,
		Vertices: []Vec{{0, 0}, {40, 0}, {40, 40}, {0, 40}},
		Closed:   true,
	}
	cells := square.Cells(10)
	set := map[image.Point]bool{}
	for _, c := range cells {
		set[c] = true
	}
	for _, inside := range []image.Point{{1, 1}, {2, 2}, {3, 3}, {0, 2}} {
		if !set[inside] {
			t.Fatalf("expected interior cell %v to be filled", inside)
		}
	}
	if set[image.Pt(6, 6)] {
		t.Fatal("cell outside the square should stay empty")
	}
}

func TestOpenShapeStrokesLine(t *testing.T) {
	line := Shape{Vertices: []Vec{{0, 5}, {95, 5}}}
	cells := line.Cells(10)
	if len(cells) != 10 {
		t.Fatalf("expected 10 cells along the stroke, got %d: %v", len(cells), cells)
	}
	for _, c := range cells {
		if c.Y != 0 {
			t.Fatalf("horizontal stroke should stay in row 0, got %v", c)
		}
	}
}

func TestRotationAroundOrigin(t *testing.T) {
	s := Shape{X: 100, Y: 100, Rotation: math.Pi / 2, Vertices: []Vec{{10, 0}}}
	v := s.Transformed()[0]
	if math.Abs(v.X-100) > 1e-9 || math.Abs(v.Y-110) > 1e-9 {
		t.Fatalf("expected (100,110) after quarter turn, got (%f,%f)", v.X, v.Y)
	}
}

func TestRasterizeUnion(t *testing.T) {
	a := Shape{Vertices: []Vec{{0, 0}, {20, 0}}}
	b := Shape{Vertices: []Vec{{10, 0}, {30, 0}}}
	cells := Rasterize([]Shape{a, b}, 10)
	if len(cells) != 4 {
		t.Fatalf("expected 4 unique cells, got %d: %v", len(cells), cells)
	}
}
