package game

import (
	"log/slog"
	"time"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	particles := g.store.Particles()
	for i := range particles {
		p := &particles[i]
		g.collector.Sample(p.Life.Ratio(), p.Brightness())
	}

	stats := g.collector.Flush(g.tick, len(particles), g.store.ObstacleCount(), g.store.SpawnRate())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// report logs frame rate and counts once per wall-clock second.
func (g *Game) report() {
	g.reportFrames++
	elapsed := time.Since(g.reportStart)
	if elapsed < time.Second {
		return
	}

	fps := float64(g.reportFrames) / elapsed.Seconds()
	slog.Info("status",
		"fps", int(fps+0.5),
		"particles", g.store.Count(),
		"colliders", g.store.ObstacleCount(),
	)
	g.reportFrames = 0
	g.reportStart = time.Now()
}
