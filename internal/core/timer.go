package core

import "time"

const (
	// MaxStepsPerFrame caps how many ticks one Steps call may release. At
	// 60 FPS it allows up to 960 TPS.
	MaxStepsPerFrame = 16
	// maxFrameGap bounds the time one call may add, so a stalled frame does
	// not turn into a burst of catch-up ticks.
	maxFrameGap = 250 * time.Millisecond
)

// FixedStep paces simulation ticks against wall time. Each frame asks
// Steps how many ticks are due.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep returns a timer targeting tps ticks per second. The first
// call to Steps releases one tick.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetTPS(tps)
	f.accumulator = f.step
	return f
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
	f.accumulator = min(f.accumulator, f.step)
}

// Reset drops accumulated time. Call it when pausing or resuming so the
// paused interval is not replayed.
func (f *FixedStep) Reset() {
	f.last = time.Time{}
	f.accumulator = 0
}

// Steps returns how many ticks are due since the previous call, at most
// MaxStepsPerFrame. Time beyond the cap is discarded.
func (f *FixedStep) Steps() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += min(now.Sub(f.last), maxFrameGap)
	f.last = now

	limit := MaxStepsPerFrame * f.step
	if f.accumulator > limit {
		f.accumulator = limit
	}
	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	return n
}
