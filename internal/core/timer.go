package core

import "time"

// Delta carries the time elapsed during one tick on both clocks, in seconds.
// Scaled stops while the game is paused; Unscaled keeps running.
type Delta struct {
	Scaled   float64
	Unscaled float64
}

// Pick returns the unscaled component when unscaled is true.
func (d Delta) Pick(unscaled bool) float64 {
	if unscaled {
		return d.Unscaled
	}
	return d.Scaled
}

// Clock produces per-tick deltas with a pausable, scalable game time.
type Clock struct {
	scale  float64
	paused bool
	last   time.Time
	now    func() time.Time
}

// NewClock constructs a Clock running at normal speed.
func NewClock() *Clock {
	return &Clock{scale: 1, now: time.Now}
}

// SetScale changes the game-time multiplier. Negative values are clamped to 0.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Scale returns the game-time multiplier.
func (c *Clock) Scale() float64 { return c.scale }

// SetPaused freezes or resumes scaled time.
func (c *Clock) SetPaused(paused bool) { c.paused = paused }

// Paused reports whether scaled time is frozen.
func (c *Clock) Paused() bool { return c.paused }

// Tick measures wall time since the previous call. The first call reports zero.
func (c *Clock) Tick() Delta {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
	}
	elapsed := now.Sub(c.last).Seconds()
	c.last = now
	return c.Advance(elapsed)
}

// Advance converts an externally measured unscaled step into a Delta.
func (c *Clock) Advance(unscaled float64) Delta {
	if unscaled < 0 {
		unscaled = 0
	}
	d := Delta{Unscaled: unscaled}
	if !c.paused {
		d.Scaled = unscaled * c.scale
	}
	return d
}

// Accumulator is a polled interval timer advanced once per tick.
type Accumulator struct {
	Interval float64
	elapsed  float64
}

// Advance adds dt and reports whether the interval has been reached. On a hit
// the accumulated time is reset to zero rather than carried over. A
// non-positive interval fires on every call.
func (a *Accumulator) Advance(dt float64) bool {
	if a.Interval <= 0 {
		return true
	}
	a.elapsed += dt
	if a.elapsed >= a.Interval {
		a.elapsed = 0
		return true
	}
	return false
}

// Elapsed returns the time accumulated since the last hit.
func (a *Accumulator) Elapsed() float64 { return a.elapsed }

// Reset discards accumulated time.
func (a *Accumulator) Reset() { a.elapsed = 0 }
