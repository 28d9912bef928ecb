// Package clock paces the game loop to a minimum frame interval and
// produces a clamped delta time.
package clock

import (
	"runtime"
	"time"
)

// Source supplies monotonic ticks and a way to sleep.
type Source interface {
	Now() time.Duration
	Sleep(d time.Duration)
}

// systemSource measures time since its creation.
type systemSource struct {
	start time.Time
}

// System returns a Source backed by the monotonic wall clock.
func System() Source {
	return systemSource{start: time.Now()}
}

func (s systemSource) Now() time.Duration    { return time.Since(s.start) }
func (s systemSource) Sleep(d time.Duration) { time.Sleep(d) }

// Clock gates each frame on a minimum interval since the previous one.
type Clock struct {
	src      Source
	minFrame time.Duration
	maxDelta float32
	spin     time.Duration

	lastTicks time.Duration
}

// New creates a clock.
// minFrame: minimum time between frames
// maxDelta: upper bound on the returned delta in seconds
// spin: remaining time below which the clock busy-polls instead of sleeping
func New(src Source, minFrame time.Duration, maxDelta float32, spin time.Duration) *Clock {
	c := &Clock{
		src:      src,
		minFrame: minFrame,
		maxDelta: maxDelta,
		spin:     spin,
	}
	c.Reset()
	return c
}

// now returns the source time truncated to whole milliseconds.
func (c *Clock) now() time.Duration {
	return c.src.Now().Truncate(time.Millisecond)
}

// Reset records the current time as the previous frame.
func (c *Clock) Reset() {
	c.lastTicks = c.now()
}

// LastTicks returns the tick count recorded at the end of the previous wait.
func (c *Clock) LastTicks() time.Duration {
	return c.lastTicks
}

// Tick blocks until at least minFrame has elapsed since the previous frame
// and returns the elapsed time in seconds, clamped to maxDelta.
func (c *Clock) Tick() float32 {
	target := c.lastTicks + c.minFrame
	now := c.now()
	for now < target {
		remaining := target - now
		if remaining > c.spin {
			c.src.Sleep(remaining - c.spin)
		} else {
			runtime.Gosched()
		}
		now = c.now()
	}

	dt := float32((now - c.lastTicks).Seconds())
	if dt > c.maxDelta {
		dt = c.maxDelta
	}

	c.lastTicks = now
	return dt
}
