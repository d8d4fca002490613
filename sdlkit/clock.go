package sdlkit

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// Clock is a marquee.Clock driven by SDL's millisecond tick counter.
type Clock struct {
	last  uint64
	ticks func() uint64
	delay func(ms uint32)
}

// NewClock creates a clock starting now.
func NewClock() *Clock {
	c := &Clock{ticks: sdl.GetTicks64, delay: sdl.Delay}
	c.last = c.ticks()
	return c
}

// Delta returns the time since the previous call.
func (c *Clock) Delta() time.Duration {
	now := c.ticks()
	d := time.Duration(now-c.last) * time.Millisecond
	c.last = now
	return d
}

// Wait delays until 1/fps seconds have passed since the previous tick.
func (c *Clock) Wait(fps int) {
	if fps <= 0 {
		return
	}
	frame := uint64(1000 / fps)
	if elapsed := c.ticks() - c.last; elapsed < frame {
		c.delay(uint32(frame - elapsed))
	}
	c.last = c.ticks()
}
