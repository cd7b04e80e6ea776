package core

import "time"

// TickRate converts a ticks-per-second setting into the interval between
// scheduler ticks.
type TickRate struct {
	tps  int
	step time.Duration
}

// NewTickRate constructs a TickRate targeting the given TPS.
func NewTickRate(tps int) *TickRate {
	r := &TickRate{}
	r.SetTPS(tps)
	return r
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (r *TickRate) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	r.tps = tps
	r.step = time.Second / time.Duration(tps)
}

// TPS reports the configured ticks per second.
func (r *TickRate) TPS() int { return r.tps }

// Interval returns the duration between consecutive ticks.
func (r *TickRate) Interval() time.Duration { return r.step }
