package game

import "log/slog"

// flushTelemetry writes a stats window when due, and always on game over.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() && g.running {
		return
	}
	g.writeWindow()
}

// flushFinal writes any partially filled window.
func (g *Game) flushFinal() {
	if g.collector.Frames() > 0 {
		g.writeWindow()
	}
}

func (g *Game) writeWindow() {
	stats := g.collector.Flush(g.tick, g.ballCount)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
