package lighting

import "time"

// Clock supplies the time the flicker oscillator is evaluated at. Tests
// inject FixedClock or TickClock so flicker is reproducible.
type Clock interface {
	Now() time.Duration
}

// FixedClock always reports the same time.
type FixedClock time.Duration

// Now implements Clock
func (c FixedClock) Now() time.Duration {
	return time.Duration(c)
}

// TickClock is a counter-based clock advancing by Step per Advance call.
type TickClock struct {
	Step  time.Duration
	ticks int64
}

// Now implements Clock
func (c *TickClock) Now() time.Duration {
	return time.Duration(c.ticks) * c.Step
}

// Advance moves the clock forward one tick.
func (c *TickClock) Advance() {
	c.ticks++
}

// WallClock reports the time elapsed since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a clock starting now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now implements Clock
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}
