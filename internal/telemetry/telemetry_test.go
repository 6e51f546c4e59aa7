package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"falling-sand/internal/config"
	"falling-sand/internal/sims/sand"
)

func TestCollectorWindowWraps(t *testing.T) {
	c := NewCollector(3)
	for i := 1; i <= 5; i++ {
		c.Add(TickRecord{Tick: uint64(i)})
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", c.Len())
	}
	got := c.Samples()
	for i, want := range []uint64{3, 4, 5} {
		if got[i].Tick != want {
			t.Fatalf("sample %d: expected tick %d, got %d", i, want, got[i].Tick)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := make([]TickRecord, 100)
	for i := range records {
		records[i] = TickRecord{Scenario: "columns", Tick: uint64(i + 1), DurationUS: float64(100 - i), DirtyArea: 10}
	}
	s := Summarize(records)
	if s.Samples != 100 || s.LastTick != 100 || s.Scenario != "columns" {
		t.Fatalf("unexpected summary header %+v", s)
	}
	if math.Abs(s.MeanDurationUS-50.5) > 1e-9 {
		t.Fatalf("expected mean 50.5, got %f", s.MeanDurationUS)
	}
	if s.P50DurationUS != 50 {
		t.Fatalf("expected p50 50, got %f", s.P50DurationUS)
	}
	if s.P95DurationUS < 95 || s.P95DurationUS > 96 {
		t.Fatalf("expected p95 near 95, got %f", s.P95DurationUS)
	}
	if s.MaxDurationUS != 100 || s.MeanDirtyArea != 10 {
		t.Fatalf("unexpected max/dirty %+v", s)
	}
	if s.StdDurationUS <= 0 {
		t.Fatal("standard deviation should be positive")
	}
	if math.Abs(s.TicksPerSecond-1e6/50.5) > 1e-6 {
		t.Fatalf("unexpected ticks/sec %f", s.TicksPerSecond)
	}

	if Summarize(nil) != (Summary{}) {
		t.Fatal("empty window should summarise to zero")
	}
	single := Summarize(records[:1])
	if single.StdDurationUS != 0 {
		t.Fatal("single sample should have zero spread")
	}
}

func TestNewTickRecordFromWorld(t *testing.T) {
	cfg := sand.DefaultConfig()
	cfg.ChunkSize = 8
	w, err := sand.NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.CreateParticle(1, 1, sand.KindWater); err != nil {
		t.Fatal(err)
	}
	w.Tick()

	c := NewCollector(4)
	c.StartTick()
	rec := c.EndTick("rain", w.Stats())
	if rec.Scenario != "rain" || rec.Tick != 1 || rec.Water != 1 || rec.Chunks != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.PoolAllocated != 64 {
		t.Fatalf("expected 64 pooled allocations, got %d", rec.PoolAllocated)
	}
	if c.Len() != 1 {
		t.Fatal("EndTick should add the record to the window")
	}
}

func TestCSVWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	if err := w.Write([]TickRecord{{Scenario: "a", Tick: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write([]TickRecord{{Scenario: "a", Tick: 2}, {Scenario: "a", Tick: 3}}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "scenario,tick,duration_us") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "a,3,") {
		t.Fatalf("unexpected last row %q", lines[3])
	}
}

func TestOutputWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.WriteSettings(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteTicks([]TickRecord{{Scenario: "garden", Tick: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteSummary(Summary{Scenario: "garden", Samples: 1}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ticks.csv", "summary.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty %s: %v", name, err)
		}
	}

	var disabled *Output
	if err := disabled.WriteTicks([]TickRecord{{}}); err != nil {
		t.Fatal("nil output should discard writes")
	}
	if o, err := NewOutput(""); o != nil || err != nil {
		t.Fatal("empty dir should disable output")
	}
}
