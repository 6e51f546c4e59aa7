package core

import (
	"testing"
	"time"
)

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(3, 2, 7)
	g.Set(4, 0, 9)
	g.Set(-1, 1, 9)
	if got := g.Cells()[g.Index(3, 2)]; got != 7 {
		t.Fatalf("expected 7 at (3,2), got %d", got)
	}
	for i, v := range g.Cells() {
		if i != g.Index(3, 2) && v != 0 {
			t.Fatalf("out-of-bounds write leaked into index %d", i)
		}
	}
	g.Clear()
	if g.Cells()[g.Index(3, 2)] != 0 {
		t.Fatal("Clear should zero the grid")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed should produce identical Float64 sequences")
		}
		if a.IntN(100) != b.IntN(100) {
			t.Fatal("same seed should produce identical IntN sequences")
		}
	}
	if got := a.IntN(0); got != 0 {
		t.Fatalf("IntN(0) should return 0, got %d", got)
	}
}

func TestParameterSnapshotFind(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	p, ok := snap.Find("y")
	if !ok || p.Value != "2" {
		t.Fatalf("expected to find y=2, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.Find("z"); ok {
		t.Fatal("unexpected match for missing key")
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedStep(tps int) (*FixedStep, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	fs := NewFixedStep(tps)
	fs.now = clock.now
	return fs, clock
}

// runFrames calls Steps once per frame for total time and sums the ticks.
func runFrames(fs *FixedStep, clock *fakeClock, frame, total time.Duration) int {
	steps := 0
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		clock.advance(frame)
		steps += fs.Steps()
	}
	return steps
}

func TestFixedStepPrimed(t *testing.T) {
	fs, _ := newClockedStep(60)
	if n := fs.Steps(); n != 1 {
		t.Fatalf("first call should release one tick, got %d", n)
	}
	fs.SetTPS(1)
	if n := fs.Steps(); n != 0 {
		t.Fatalf("a 1 TPS timer should not step again right away, got %d", n)
	}
}

func TestFixedStepRunsFasterThanFrameRate(t *testing.T) {
	fs, clock := newClockedStep(960)
	fs.Steps()
	got := runFrames(fs, clock, time.Second/60, 500*time.Millisecond)
	if got < 450 || got > 500 {
		t.Fatalf("960 TPS over 0.5s at 60 FPS should give about 480 ticks, got %d", got)
	}
}

func TestFixedStepCapsBacklog(t *testing.T) {
	fs, clock := newClockedStep(1000)
	fs.Steps()
	clock.advance(5 * time.Second)
	if n := fs.Steps(); n != MaxStepsPerFrame {
		t.Fatalf("a long stall should release at most %d ticks, got %d", MaxStepsPerFrame, n)
	}
	clock.advance(time.Millisecond)
	if n := fs.Steps(); n != 1 {
		t.Fatalf("the discarded backlog should not carry over, got %d ticks", n)
	}
}

func TestFixedStepResetSkipsPausedTime(t *testing.T) {
	fs, clock := newClockedStep(10)
	fs.Steps()
	fs.Reset()
	clock.advance(time.Second)
	fs.Reset()
	got := runFrames(fs, clock, 16*time.Millisecond, 500*time.Millisecond)
	if got < 4 || got > 5 {
		t.Fatalf("10 TPS for 0.5s after a pause should give about 5 ticks, got %d", got)
	}
}
