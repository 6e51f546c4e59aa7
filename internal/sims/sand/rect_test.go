package sand

import (
	"image"
	"testing"
)

func TestRectGrowAndUnion(t *testing.T) {
	r := EmptyRect()
	if !r.Empty() || r.Area() != 0 {
		t.Fatal("EmptyRect should be empty")
	}
	r.Grow(3, 4)
	r.Grow(1, 6)
	if r != (Rect{MinX: 1, MinY: 4, MaxX: 3, MaxY: 6}) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if r.Area() != 9 {
		t.Fatalf("expected area 9, got %d", r.Area())
	}
	if !r.Contains(2, 5) || r.Contains(0, 5) {
		t.Fatal("Contains disagrees with bounds")
	}
	if got := r.Bounds(); got != image.Rect(1, 4, 4, 7) {
		t.Fatalf("expected half-open bounds, got %v", got)
	}

	u := r.Union(EmptyRect())
	if u != r {
		t.Fatal("union with empty should be identity")
	}
	u = EmptyRect().Union(Rect{MinX: 7, MinY: 7, MaxX: 7, MaxY: 7})
	if u.Area() != 1 {
		t.Fatalf("expected single cell union, got %+v", u)
	}
	u = r.Union(Rect{MinX: 5, MinY: 0, MaxX: 5, MaxY: 0})
	if u != (Rect{MinX: 1, MinY: 0, MaxX: 5, MaxY: 6}) {
		t.Fatalf("unexpected union %+v", u)
	}
	if EmptyRect().Bounds() != (image.Rectangle{}) {
		t.Fatal("empty rect should convert to the zero rectangle")
	}
}
