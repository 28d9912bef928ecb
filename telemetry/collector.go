// Package telemetry provides frame statistics, phase timing and CSV output.
package telemetry

import "github.com/pthm-cable/multipong/systems"

// Collector accumulates events within simulated-time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64
	maxDelta          float32

	// Current window tracking
	windowStartTick int32
	windowSimSec    float64
	simTimeSec      float64

	// Event counters for current window
	leftHits      int
	rightHits     int
	wallBounces   int
	ballsLost     int
	clampedFrames int
	deltas        []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how much simulated time each stats window covers
// maxDelta: the clock clamp, used to count stalled frames
func NewCollector(windowDurationSec float64, maxDelta float32) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		maxDelta:          maxDelta,
	}
}

// RecordFrame records the delta time of one simulated frame.
func (c *Collector) RecordFrame(dt float32) {
	c.deltas = append(c.deltas, float64(dt))
	c.windowSimSec += float64(dt)
	c.simTimeSec += float64(dt)
	if dt >= c.maxDelta {
		c.clampedFrames++
	}
}

// RecordOutcome records the collisions resolved for one ball.
func (c *Collector) RecordOutcome(o systems.Outcome) {
	switch o.Hit {
	case systems.HitLeft:
		c.leftHits++
	case systems.HitRight:
		c.rightHits++
	case systems.Escaped:
		c.ballsLost++
	}
	if o.Wall != systems.WallNone {
		c.wallBounces++
	}
}

// ShouldFlush returns true once the window has covered its simulated duration.
func (c *Collector) ShouldFlush() bool {
	return c.windowSimSec >= c.windowDurationSec
}

// Frames returns the number of frames recorded in the current window.
func (c *Collector) Frames() int {
	return len(c.deltas)
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, ballsAlive int) WindowStats {
	ds := ComputeDeltaStats(c.deltas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTimeSec,
		Frames:          len(c.deltas),

		BallsAlive: ballsAlive,

		LeftHits:    c.leftHits,
		RightHits:   c.rightHits,
		WallBounces: c.wallBounces,
		BallsLost:   c.ballsLost,

		DTMean:        ds.Mean,
		DTStd:         ds.Std,
		DTP95:         ds.P95,
		DTMax:         ds.Max,
		ClampedFrames: c.clampedFrames,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowSimSec = 0
	c.leftHits = 0
	c.rightHits = 0
	c.wallBounces = 0
	c.ballsLost = 0
	c.clampedFrames = 0
	c.deltas = c.deltas[:0]

	return stats
}
