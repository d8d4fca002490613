package marquee

import "time"

// DefaultFPS is the modal loop tick rate when MenuConfig.FPS is zero.
const DefaultFPS = 30

// SystemClock is a wall-clock frame clock.
type SystemClock struct {
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewSystemClock creates a clock whose first Delta is measured from now.
func NewSystemClock() *SystemClock {
	return &SystemClock{last: time.Now(), now: time.Now, sleep: time.Sleep}
}

// Delta returns the time since the previous Delta call.
func (c *SystemClock) Delta() time.Duration {
	now := c.now()
	d := now.Sub(c.last)
	c.last = now
	return d
}

// Wait sleeps until one frame at fps has passed since the previous tick.
func (c *SystemClock) Wait(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	frame := time.Second / time.Duration(fps)
	if rest := frame - c.now().Sub(c.last); rest > 0 {
		c.sleep(rest)
	}
	c.Delta()
}

// ManualClock is a Clock driven explicitly, for tests and headless loops.
// Wait advances time by exactly one frame without sleeping.
type ManualClock struct {
	pending time.Duration
	// Ticks counts Wait calls.
	Ticks int
}

// Advance adds d to the next Delta.
func (c *ManualClock) Advance(d time.Duration) { c.pending += d }

// Delta returns and clears the accumulated time.
func (c *ManualClock) Delta() time.Duration {
	d := c.pending
	c.pending = 0
	return d
}

// Wait records a tick and advances by one frame at fps.
func (c *ManualClock) Wait(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	c.Ticks++
	c.pending += time.Second / time.Duration(fps)
}
