package sand

import (
	"errors"
	"image"
	"testing"

	"falling-sand/internal/core"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 10, 0},
		{9, 10, 0},
		{10, 10, 1},
		{-1, 10, -1},
		{-10, 10, -1},
		{-11, 10, -2},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("floorDiv(%d,%d)=%d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestChunkCoordOf(t *testing.T) {
	w := newTestWorld(t, smallConfig(500), core.NewRNG(1))
	if got := w.ChunkCoordOf(499, 0); got != (ChunkCoord{0, 0}) {
		t.Fatalf("expected chunk (0,0), got %+v", got)
	}
	if got := w.ChunkCoordOf(-1, 500); got != (ChunkCoord{-1, 1}) {
		t.Fatalf("expected chunk (-1,1), got %+v", got)
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig(0)
	if _, err := NewWorld(cfg); err == nil {
		t.Fatal("expected zero chunk size to be rejected")
	}
}

func TestCreateParticleUnknownKind(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(1))
	err := w.CreateParticle(1, 1, Kind(200))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestCreateParticleOutsideWorldIsIgnored(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(1))
	if err := w.CreateParticle(-3, 2, KindSand); err != nil {
		t.Fatalf("out-of-bounds placement should be ignored, got %v", err)
	}
	if err := w.CreateParticle(8, 2, KindSand); err != nil {
		t.Fatalf("out-of-bounds placement should be ignored, got %v", err)
	}
	if n := len(w.Chunks()); n != 0 {
		t.Fatalf("ignored placements must not create chunks, got %d", n)
	}
}

func TestPlaceParticleRules(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(1))
	mustCreate(t, w, 1, 1, KindBarrier)
	mustCreate(t, w, 2, 2, KindStone)

	if err := w.PlaceParticle(1, 1, KindSand); err != nil {
		t.Fatal(err)
	}
	expectKind(t, w, 1, 1, KindBarrier)

	if err := w.PlaceParticle(2, 2, KindWater); err != nil {
		t.Fatal(err)
	}
	expectKind(t, w, 2, 2, KindStone)

	if err := w.PlaceParticle(2, 2, KindEmpty); err != nil {
		t.Fatal(err)
	}
	expectKind(t, w, 2, 2, KindEmpty)

	w.params.BrushOverwrite = true
	mustCreate(t, w, 3, 3, KindSand)
	if err := w.PlaceParticle(3, 3, KindWater); err != nil {
		t.Fatal(err)
	}
	expectKind(t, w, 3, 3, KindWater)

	if err := w.PlaceParticle(1, 1, KindEmpty); err != nil {
		t.Fatal(err)
	}
	expectKind(t, w, 1, 1, KindBarrier)
}

func TestQueryCell(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(1))
	if _, _, ok := w.QueryCell(100, 0); ok {
		t.Fatal("query outside the world should report false")
	}
	k, col, ok := w.QueryCell(2, 2)
	if !ok || k != KindEmpty || col != emptyColor {
		t.Fatalf("missing chunk should read as empty, got %v %v %v", k, col, ok)
	}
	if len(w.Chunks()) != 0 {
		t.Fatal("QueryCell must not create chunks")
	}
	mustCreate(t, w, 2, 2, KindSand)
	k, col, _ = w.QueryCell(2, 2)
	if k != KindSand || col != w.Particle(2, 2).Color() {
		t.Fatalf("expected sand with its own colour, got %v %v", k, col)
	}
}

func TestQuiescentChunksSleepUntilWake(t *testing.T) {
	cfg := smallConfig(8)
	cfg.Params.WakeInterval = 5
	w := newTestWorld(t, cfg, core.NewRNG(1))
	c := w.Chunk(0, 0)

	for i := 0; i < 5; i++ {
		w.Tick()
	}

	if got := c.Updates(); got != 2 {
		t.Fatalf("expected the first tick and the wake tick to run, got %d updates", got)
	}

	mustCreate(t, w, 4, 0, KindSand)
	w.Tick()
	if got := c.Updates(); got != 3 {
		t.Fatalf("placement should wake the chunk, got %d updates", got)
	}
}

func TestClearKindAndRebuildBarriers(t *testing.T) {
	w := newTestWorld(t, smallConfig(8), core.NewRNG(1))
	mustCreate(t, w, 0, 0, KindBarrier)
	mustCreate(t, w, 1, 0, KindBarrier)
	mustCreate(t, w, 2, 0, KindStone)

	if n := w.RebuildBarriers([]image.Point{{5, 5}, {6, 5}, {40, 40}}); n != 2 {
		t.Fatalf("expected 2 barriers inside the world, got %d", n)
	}
	expectKind(t, w, 0, 0, KindEmpty)
	expectKind(t, w, 1, 0, KindEmpty)
	expectKind(t, w, 2, 0, KindStone)
	expectKind(t, w, 5, 5, KindBarrier)

	if n := w.ClearKind(KindStone); n != 1 {
		t.Fatalf("expected to clear 1 stone, cleared %d", n)
	}
	if got := w.Stats().Count(KindBarrier); got != 2 {
		t.Fatalf("expected 2 barriers, got %d", got)
	}
}

func TestStats(t *testing.T) {
	w := newTestWorld(t, smallConfig(4), core.NewRNG(1))
	mustCreate(t, w, 0, 0, KindSand)
	mustCreate(t, w, 1, 0, KindWater)
	s := w.Stats()
	if s.Chunks != 1 || s.Count(KindSand) != 1 || s.Count(KindWater) != 1 || s.Count(KindEmpty) != 14 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.Pool.Allocated != 16 {
		t.Fatalf("expected 16 pooled allocations for a 4x4 chunk, got %d", s.Pool.Allocated)
	}
	if s.PoolFree != 2 {
		t.Fatalf("replaced empties should return to the pool, free %d", s.PoolFree)
	}
	if s.Count(Kind(99)) != 0 {
		t.Fatal("invalid kinds should count zero")
	}
}

func TestDirtyRegionsAreGlobal(t *testing.T) {
	cfg := smallConfig(4)
	cfg.ChunksX = 2
	w := newTestWorld(t, cfg, core.NewRNG(1))
	w.Tick()
	mustCreate(t, w, 6, 1, KindStone)
	w.Tick()
	regions := w.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("expected one dirty region, got %v", regions)
	}
	if !image.Pt(6, 1).In(regions[0]) {
		t.Fatalf("dirty region %v should contain the placement", regions[0])
	}
	if _, ok := w.DirtyRegion(ChunkCoord{0, 0}); ok {
		t.Fatal("untouched chunk should not report a dirty region")
	}
}
