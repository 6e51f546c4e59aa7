package sand

import (
	"image"
	"math"
)

// Rect is an inclusive bounding box in chunk-local cell coordinates. The zero
// value is not empty; use EmptyRect for the inverted bound.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// EmptyRect returns the inverted bound that any Grow call replaces.
func EmptyRect() Rect {
	return Rect{MinX: math.MaxInt, MinY: math.MaxInt, MaxX: math.MinInt, MaxY: math.MinInt}
}

// FullRect covers a size×size chunk.
func FullRect(size int) Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: size - 1, MaxY: size - 1}
}

// Empty reports whether no cell has been added.
func (r Rect) Empty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

// Grow extends r to include (x, y).
func (r *Rect) Grow(x, y int) {
	r.MinX = min(r.MinX, x)
	r.MaxX = max(r.MaxX, x)
	r.MinY = min(r.MinY, y)
	r.MaxY = max(r.MaxY, y)
}

// Union returns the smallest rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Area is the number of cells covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// Bounds converts r into a half-open image rectangle.
func (r Rect) Bounds() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.MinX, r.MinY, r.MaxX+1, r.MaxY+1)
}
