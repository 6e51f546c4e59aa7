package telemetry

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"falling-sand/internal/sims/sand"
)

// Collector keeps the most recent tick records in a ring buffer.
type Collector struct {
	windowSize  int
	samples     []TickRecord
	writeIndex  int
	sampleCount int
	tickStart   time.Time
}

// NewCollector creates a collector averaging over windowSize ticks.
func NewCollector(windowSize int) *Collector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &Collector{
		windowSize: windowSize,
		samples:    make([]TickRecord, windowSize),
	}
}

// StartTick begins timing a tick.
func (c *Collector) StartTick() {
	c.tickStart = time.Now()
}

// EndTick records the world state after the tick started by StartTick.
func (c *Collector) EndTick(scenario string, s sand.WorldStats) TickRecord {
	rec := NewTickRecord(scenario, s, time.Since(c.tickStart))
	c.Add(rec)
	return rec
}

// Add appends a record, evicting the oldest once the window is full.
func (c *Collector) Add(rec TickRecord) {
	c.samples[c.writeIndex] = rec
	c.writeIndex = (c.writeIndex + 1) % c.windowSize
	if c.sampleCount < c.windowSize {
		c.sampleCount++
	}
}

// Len reports how many records the window holds.
func (c *Collector) Len() int { return c.sampleCount }

// Samples returns the window oldest first.
func (c *Collector) Samples() []TickRecord {
	out := make([]TickRecord, 0, c.sampleCount)
	start := c.writeIndex - c.sampleCount
	if start < 0 {
		start += c.windowSize
	}
	for i := 0; i < c.sampleCount; i++ {
		out = append(out, c.samples[(start+i)%c.windowSize])
	}
	return out
}

// Summary aggregates a window of tick records.
type Summary struct {
	Scenario         string  `csv:"scenario"`
	Samples          int     `csv:"samples"`
	LastTick         uint64  `csv:"last_tick"`
	MeanDurationUS   float64 `csv:"mean_us"`
	StdDurationUS    float64 `csv:"std_us"`
	P50DurationUS    float64 `csv:"p50_us"`
	P95DurationUS    float64 `csv:"p95_us"`
	MaxDurationUS    float64 `csv:"max_us"`
	TicksPerSecond   float64 `csv:"ticks_per_sec"`
	MeanActiveChunks float64 `csv:"mean_active_chunks"`
	MeanDirtyArea    float64 `csv:"mean_dirty_area"`
}

// Summary computes statistics over the current window.
func (c *Collector) Summary() Summary {
	return Summarize(c.Samples())
}

// Summarize computes statistics over records.
func Summarize(records []TickRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	durations := make([]float64, len(records))
	active := make([]float64, len(records))
	dirty := make([]float64, len(records))
	for i, r := range records {
		durations[i] = r.DurationUS
		active[i] = float64(r.ActiveChunks)
		dirty[i] = float64(r.DirtyArea)
	}
	last := records[len(records)-1]
	s := Summary{
		Scenario:         last.Scenario,
		Samples:          len(records),
		LastTick:         last.Tick,
		MeanDurationUS:   stat.Mean(durations, nil),
		MaxDurationUS:    floats.Max(durations),
		MeanActiveChunks: stat.Mean(active, nil),
		MeanDirtyArea:    stat.Mean(dirty, nil),
	}
	if len(durations) > 1 {
		s.StdDurationUS = stat.StdDev(durations, nil)
	}
	sort.Float64s(durations)
	s.P50DurationUS = stat.Quantile(0.5, stat.Empirical, durations, nil)
	s.P95DurationUS = stat.Quantile(0.95, stat.Empirical, durations, nil)
	if s.MeanDurationUS > 0 {
		s.TicksPerSecond = 1e6 / s.MeanDurationUS
	}
	return s
}

// MarshalLogObject lets summaries be logged with zap.Object.
func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("scenario", s.Scenario)
	enc.AddInt("samples", s.Samples)
	enc.AddUint64("last_tick", s.LastTick)
	enc.AddFloat64("mean_us", s.MeanDurationUS)
	enc.AddFloat64("p95_us", s.P95DurationUS)
	enc.AddFloat64("ticks_per_sec", s.TicksPerSecond)
	enc.AddFloat64("mean_dirty_area", s.MeanDirtyArea)
	return nil
}

// Field wraps the summary for structured logging.
func (s Summary) Field() zap.Field {
	return zap.Object("perf", s)
}
