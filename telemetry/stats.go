package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	// Ball population at window end
	BallsAlive int `csv:"balls_alive"`

	// Events during window
	LeftHits    int `csv:"left_hits"`
	RightHits   int `csv:"right_hits"`
	WallBounces int `csv:"wall_bounces"`
	BallsLost   int `csv:"balls_lost"`

	// Frame pacing
	DTMean        float64 `csv:"dt_mean"`
	DTStd         float64 `csv:"dt_std"`
	DTP95         float64 `csv:"dt_p95"`
	DTMax         float64 `csv:"dt_max"`
	ClampedFrames int     `csv:"clamped_frames"` // Frames whose dt hit the clamp
}

// DeltaStats summarises per-frame delta times.
type DeltaStats struct {
	Mean, Std, P95, Max float64
}

// ComputeDeltaStats calculates mean, sample std, 95th percentile and max of dt values.
// Returns zeros for an empty slice.
func ComputeDeltaStats(values []float64) DeltaStats {
	if len(values) == 0 {
		return DeltaStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var ds DeltaStats
	if len(sorted) > 1 {
		ds.Mean, ds.Std = stat.MeanStdDev(sorted, nil)
	} else {
		ds.Mean = sorted[0]
	}
	ds.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	ds.Max = floats.Max(sorted)
	return ds
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("balls_alive", s.BallsAlive),
		slog.Int("left_hits", s.LeftHits),
		slog.Int("right_hits", s.RightHits),
		slog.Int("wall_bounces", s.WallBounces),
		slog.Int("balls_lost", s.BallsLost),
		slog.Float64("dt_mean", s.DTMean),
		slog.Float64("dt_std", s.DTStd),
		slog.Float64("dt_p95", s.DTP95),
		slog.Float64("dt_max", s.DTMax),
		slog.Int("clamped_frames", s.ClampedFrames),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
