package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/multipong/systems"
)

func TestComputeDeltaStats(t *testing.T) {
	values := []float64{0.016, 0.017, 0.016, 0.018, 0.05, 0.016, 0.017, 0.016, 0.016, 0.017}
	ds := ComputeDeltaStats(values)

	if math.Abs(ds.Mean-0.0199) > 1e-6 {
		t.Errorf("mean = %v, want 0.0199", ds.Mean)
	}
	if ds.Max != 0.05 {
		t.Errorf("max = %v, want 0.05", ds.Max)
	}
	if ds.P95 != 0.05 {
		t.Errorf("p95 = %v, want 0.05", ds.P95)
	}
	if ds.Std <= 0 {
		t.Errorf("std = %v, want positive", ds.Std)
	}

	// Input must not be reordered
	if values[4] != 0.05 {
		t.Error("ComputeDeltaStats sorted its input in place")
	}
}

func TestComputeDeltaStatsSmall(t *testing.T) {
	if ds := ComputeDeltaStats(nil); ds != (DeltaStats{}) {
		t.Errorf("empty = %+v, want zeros", ds)
	}

	ds := ComputeDeltaStats([]float64{0.016})
	if ds.Mean != 0.016 || ds.Std != 0 || ds.Max != 0.016 {
		t.Errorf("single = %+v", ds)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(0.05, 0.05)

	c.RecordFrame(0.016)
	c.RecordOutcome(systems.Outcome{Hit: systems.HitLeft, Wall: systems.WallTop})
	c.RecordOutcome(systems.Outcome{Hit: systems.Escaped})
	if c.ShouldFlush() {
		t.Fatal("window flushed too early")
	}

	c.RecordFrame(0.05)
	c.RecordOutcome(systems.Outcome{Hit: systems.HitRight})
	c.RecordOutcome(systems.Outcome{Wall: systems.WallBottom})
	if !c.ShouldFlush() {
		t.Fatal("expected window to be due")
	}

	stats := c.Flush(2, 4)

	if stats.Frames != 2 || stats.BallsAlive != 4 || stats.WindowEndTick != 2 {
		t.Errorf("frames/balls/end = %d/%d/%d", stats.Frames, stats.BallsAlive, stats.WindowEndTick)
	}
	if stats.LeftHits != 1 || stats.RightHits != 1 || stats.BallsLost != 1 || stats.WallBounces != 2 {
		t.Errorf("events = %+v", stats)
	}
	if stats.ClampedFrames != 1 {
		t.Errorf("ClampedFrames = %d, want 1", stats.ClampedFrames)
	}
	if math.Abs(stats.SimTimeSec-0.066) > 1e-6 {
		t.Errorf("SimTimeSec = %v, want 0.066", stats.SimTimeSec)
	}

	// Counters reset, sim time keeps running
	c.RecordFrame(0.016)
	next := c.Flush(3, 4)
	if next.LeftHits != 0 || next.Frames != 1 || next.WindowStartTick != 2 {
		t.Errorf("after reset = %+v", next)
	}
	if math.Abs(next.SimTimeSec-0.082) > 1e-6 {
		t.Errorf("SimTimeSec = %v, want 0.082", next.SimTimeSec)
	}
}
