// Package telemetry records per-tick world statistics, summarises them over
// a rolling window and writes them out as CSV.
package telemetry

import (
	"time"

	"falling-sand/internal/sims/sand"
)

// TickRecord is one CSV row describing a single world tick.
type TickRecord struct {
	Scenario     string  `csv:"scenario"`
	Tick         uint64  `csv:"tick"`
	DurationUS   float64 `csv:"duration_us"`
	Chunks       int     `csv:"chunks"`
	ActiveChunks int     `csv:"active_chunks"`
	DirtyArea    int     `csv:"dirty_area"`

	PoolFree      int `csv:"pool_free"`
	PoolAllocated int `csv:"pool_allocated"`
	PoolReused    int `csv:"pool_reused"`
	PoolReleased  int `csv:"pool_released"`

	Barrier int `csv:"barrier"`
	Stone   int `csv:"stone"`
	Sand    int `csv:"sand"`
	Water   int `csv:"water"`
	Steam   int `csv:"steam"`
	Acid    int `csv:"acid"`
	Plant   int `csv:"plant"`
}

// NewTickRecord flattens world stats into a record.
func NewTickRecord(scenario string, s sand.WorldStats, d time.Duration) TickRecord {
	return TickRecord{
		Scenario:      scenario,
		Tick:          s.Ticks,
		DurationUS:    float64(d) / float64(time.Microsecond),
		Chunks:        s.Chunks,
		ActiveChunks:  s.ActiveChunks,
		DirtyArea:     s.DirtyArea,
		PoolFree:      s.PoolFree,
		PoolAllocated: s.Pool.Allocated,
		PoolReused:    s.Pool.Reused,
		PoolReleased:  s.Pool.Released,
		Barrier:       s.Count(sand.KindBarrier),
		Stone:         s.Count(sand.KindStone),
		Sand:          s.Count(sand.KindSand),
		Water:         s.Count(sand.KindWater),
		Steam:         s.Count(sand.KindSteam),
		Acid:          s.Count(sand.KindAcid),
		Plant:         s.Count(sand.KindPlant),
	}
}
