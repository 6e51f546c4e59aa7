package sand

import (
	"errors"
	"image"
	"testing"
	"time"

	"falling-sand/internal/core"
)

func TestScenariosRun(t *testing.T) {
	want := map[string]Kind{
		"columns": KindSand,
		"rain":    KindWater,
		"acid":    KindAcid,
		"garden":  KindPlant,
	}
	if len(Scenarios()) != len(want) {
		t.Fatalf("expected %d scenarios, got %d", len(want), len(Scenarios()))
	}
	for _, sc := range Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			cfg := smallConfig(48)
			observed := 0
			stats, err := sc.Run(cfg, 40, func(s WorldStats, d time.Duration) {
				observed++
				if d < 0 {
					t.Fatalf("negative tick duration %v", d)
				}
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if observed != 40 || stats.Ticks != 40 {
				t.Fatalf("expected 40 observed ticks, got %d (world ticks %d)", observed, stats.Ticks)
			}
			if stats.Count(want[sc.Name]) == 0 {
				t.Fatalf("scenario %s should contain %v after running", sc.Name, want[sc.Name])
			}
		})
	}
}

func TestFindScenario(t *testing.T) {
	if _, ok := FindScenario("rain"); !ok {
		t.Fatal("rain scenario should exist")
	}
	if _, ok := FindScenario("lava"); ok {
		t.Fatal("unknown scenario should not be found")
	}
}

func TestScenarioRejectsInvalidConfig(t *testing.T) {
	sc, _ := FindScenario("columns")
	if _, err := sc.Run(smallConfig(0), 1, nil); err == nil {
		t.Fatal("expected invalid config error")
	}
}

// checkCells verifies that every cell of every chunk holds exactly one
// particle, that no particle sits in two cells, that stored coordinates
// match the cell and that pooled particles are not in use.
func checkCells(t *testing.T, w *World, tick int) {
	t.Helper()
	seen := make(map[*Particle]ChunkCoord)
	for _, c := range w.Chunks() {
		for i, cell := range c.cells {
			p := cell.p
			if p == nil {
				t.Fatalf("tick %d: chunk %v cell %d is empty", tick, c.coord, i)
			}
			if p.x != i%c.size || p.y != i/c.size {
				t.Fatalf("tick %d: chunk %v cell %d holds particle at (%d,%d)", tick, c.coord, i, p.x, p.y)
			}
			if prev, dup := seen[p]; dup {
				t.Fatalf("tick %d: particle in cell %d of chunk %v also seen in chunk %v", tick, i, c.coord, prev)
			}
			seen[p] = c.coord
		}
	}
	for _, c := range w.Chunks() {
		for _, p := range c.pool.free {
			if _, used := seen[p]; used {
				t.Fatalf("tick %d: pooled particle of chunk %v is still in a cell", tick, c.coord)
			}
		}
	}
}

func TestScenariosKeepOneParticlePerCell(t *testing.T) {
	for _, sc := range Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			cfg := smallConfig(32)
			cfg.ChunksX = 2
			w, err := sc.start(cfg)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			checkCells(t, w, 0)
			feed := core.NewRNG(cfg.Seed + 1)
			for tick := 1; tick <= 300; tick++ {
				if _, err := sc.advance(w, feed); err != nil {
					t.Fatalf("advance: %v", err)
				}
				checkCells(t, w, tick)
			}
		})
	}
}

func TestScenarioReportsPlacementErrors(t *testing.T) {
	bad := Kind(200)
	cases := []struct {
		name string
		sc   Scenario
	}{
		{name: "setup", sc: Scenario{Name: "bad-setup", setup: func(p *placer, b image.Rectangle) {
			p.create(b.Min.X, b.Min.Y, bad)
		}}},
		{name: "feed", sc: Scenario{Name: "bad-feed", feed: func(p *placer, b image.Rectangle, _ *core.RNG) {
			p.place(b.Min.X, b.Min.Y, bad)
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.sc.Run(smallConfig(8), 3, nil)
			if !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("expected ErrUnknownKind, got %v", err)
			}
		})
	}
}
