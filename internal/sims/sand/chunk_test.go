package sand

import (
	"testing"

	"falling-sand/internal/core"
)

func TestNewChunkFillsEveryCell(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(3))
	c := w.Chunk(0, 0)
	for y := 0; y < c.Size(); y++ {
		for x := 0; x < c.Size(); x++ {
			p := c.Particle(x, y)
			if p == nil {
				t.Fatalf("cell (%d,%d) has no particle", x, y)
			}
			if !p.IsEmpty() {
				t.Fatalf("new chunk cell (%d,%d) should be empty, got %v", x, y, p.Kind())
			}
			if px, py := p.Position(); px != x || py != y {
				t.Fatalf("particle at (%d,%d) reports position (%d,%d)", x, y, px, py)
			}
		}
	}
	if c.Particle(-1, 0) != nil || c.Particle(8, 0) != nil {
		t.Fatal("out-of-chunk lookups should return nil")
	}
	if got := c.DirtyRect(); got != FullRect(8) {
		t.Fatalf("new chunk should start fully dirty, got %+v", got)
	}
}

func TestShuffleVisitsRowsBottomUp(t *testing.T) {
	w := newTestWorld(t, smallConfig(6), core.NewRNG(11))
	c := w.Chunk(0, 0)
	seen := make(map[int]bool, len(c.order))
	for i, idx := range c.order {
		if seen[idx] {
			t.Fatalf("index %d visited twice", idx)
		}
		seen[idx] = true
		wantRow := c.size - 1 - i/c.size
		if row := idx / c.size; row != wantRow {
			t.Fatalf("order position %d holds row %d, want row %d", i, row, wantRow)
		}
	}
	if len(seen) != c.size*c.size {
		t.Fatalf("order should cover every cell, covered %d", len(seen))
	}
}

func TestSwapPreservesIdentity(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), &fixedRand{f: 0.5})
	a := mustCreate(t, w, 2, 2, KindSand)
	b := mustCreate(t, w, 3, 2, KindWater)
	c := w.Chunk(0, 0)

	if !c.swap(a, 1, 0) {
		t.Fatal("swap inside the chunk should succeed")
	}
	if c.Particle(3, 2) != a || c.Particle(2, 2) != b {
		t.Fatal("swap should move the same particle objects")
	}
	if x, _ := a.Position(); x != 3 {
		t.Fatalf("moved particle should report x=3, got %d", x)
	}
	if x, _ := b.Position(); x != 2 {
		t.Fatalf("displaced particle should report x=2, got %d", x)
	}
	if c.swap(a, 10, 0) {
		t.Fatal("swap off the chunk edge should fail")
	}
}

func TestReplaceLeavesPooledEmpty(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), &fixedRand{f: 0.5})
	acid := mustCreate(t, w, 2, 2, KindAcid)
	mustCreate(t, w, 2, 3, KindWater)
	c := w.Chunk(0, 0)

	c.replace(acid, 0, 1)

	if c.Particle(2, 3) != acid {
		t.Fatal("replacing particle should occupy the target cell")
	}
	left := c.Particle(2, 2)
	if left == nil || !left.IsEmpty() {
		t.Fatal("replace should leave an empty particle behind")
	}
}

func TestStaticGridIsIdempotent(t *testing.T) {
	cfg := smallConfig(8)
	cfg.Params.SkipQuiescent = false
	w := newTestWorld(t, cfg, core.NewRNG(5))
	for i := 0; i < 8; i++ {
		mustCreate(t, w, i, i, KindStone)
	}
	mustCreate(t, w, 0, 7, KindBarrier)
	before := w.Stats().Counts

	w.Tick()
	w.Tick()

	c := w.Chunk(0, 0)
	if !c.DirtyRect().Empty() {
		t.Fatalf("static grid should report no changes, dirty %+v", c.DirtyRect())
	}
	if after := w.Stats().Counts; after != before {
		t.Fatalf("static grid changed: before %v after %v", before, after)
	}
	if c.Updates() != 2 {
		t.Fatalf("expected 2 updates, got %d", c.Updates())
	}
}

func TestPlacementsMarkNextUpdateDirty(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(5))
	w.Tick()
	c := w.Chunk(0, 0)
	if !c.DirtyRect().Empty() {
		t.Fatal("empty chunk should settle after one update")
	}

	mustCreate(t, w, 3, 4, KindStone)
	if !c.Active() {
		t.Fatal("pending placement should make the chunk active")
	}
	w.Tick()

	if !c.DirtyRect().Contains(3, 4) {
		t.Fatalf("placement should be part of the dirty rect, got %+v", c.DirtyRect())
	}
}

func TestChunkParityAlternates(t *testing.T) {
	w := newTestWorld(t, smallConfig(4), core.NewRNG(1))
	c := w.Chunk(0, 0)
	first := !c.parity
	c.Step()
	if c.parity != first {
		t.Fatal("Step should flip the chunk parity")
	}
	c.Step()
	if c.parity == first {
		t.Fatal("consecutive steps should alternate parity")
	}
}
