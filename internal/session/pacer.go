package session

import "time"

const (
	defaultTicksPerSecond = 60.0
	defaultMaxCatchUp     = 8
)

// Pacer converts elapsed wall time into a bounded number of due ticks at a
// fixed rate. It owns no clock and no goroutine: the caller measures time,
// calls Advance, and runs the ticks itself.
type Pacer struct {
	interval   time.Duration
	maxCatchUp int
	banked     time.Duration
}

func NewPacer(ticksPerSecond float64, maxCatchUp int) *Pacer {
	if ticksPerSecond <= 0 {
		ticksPerSecond = defaultTicksPerSecond
	}
	if maxCatchUp <= 0 {
		maxCatchUp = defaultMaxCatchUp
	}
	interval := time.Duration(float64(time.Second) / ticksPerSecond)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &Pacer{
		interval:   interval,
		maxCatchUp: maxCatchUp,
	}
}

// Advance credits elapsed time and returns how many ticks are now due,
// capped at the catch-up bound. A backlog beyond the bound is forfeited
// rather than banked, so a stalled host resumes at pace instead of
// replaying the stall.
func (p *Pacer) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	p.banked += elapsed
	due := int(p.banked / p.interval)
	if due <= 0 {
		return 0
	}
	if due > p.maxCatchUp {
		p.banked = 0
		return p.maxCatchUp
	}
	p.banked -= time.Duration(due) * p.interval
	return due
}

// Interval reports the wall-time length of a single tick at the configured rate.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
