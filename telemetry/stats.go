package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Particles int `csv:"particles"`
	Obstacles int `csv:"obstacles"`
	SpawnRate int `csv:"spawn_rate"`

	// Events during window
	Spawned        int `csv:"spawned"`
	Expired        int `csv:"expired"`
	Dropped        int `csv:"dropped"`
	ObstaclesAdded int `csv:"obstacles_added"`
	Clears         int `csv:"clears"`

	// Remaining-lifetime ratio, sampled at window end
	LifeMean float64 `csv:"life_mean"`
	LifeStd  float64 `csv:"life_std"`
	LifeP50  float64 `csv:"life_p50"`

	// Brightness, sampled at window end
	BrightMean float64 `csv:"bright_mean"`
	BrightStd  float64 `csv:"bright_std"`
	BrightP50  float64 `csv:"bright_p50"`
}

// Summary is the distribution of one sampled quantity.
type Summary struct {
	Mean float64
	Std  float64
	P50  float64
}

// Summarize computes mean, population standard deviation and median.
// values is sorted in place. Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sort.Float64s(values)
	mean, std := stat.PopMeanStdDev(values, nil)
	return Summary{
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, values, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("obstacles", s.Obstacles),
		slog.Int("spawn_rate", s.SpawnRate),
		slog.Int("spawned", s.Spawned),
		slog.Int("expired", s.Expired),
		slog.Int("dropped", s.Dropped),
		slog.Int("obstacles_added", s.ObstaclesAdded),
		slog.Int("clears", s.Clears),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_std", s.LifeStd),
		slog.Float64("life_p50", s.LifeP50),
		slog.Float64("bright_mean", s.BrightMean),
		slog.Float64("bright_std", s.BrightStd),
		slog.Float64("bright_p50", s.BrightP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"obstacles", s.Obstacles,
		"spawned", s.Spawned,
		"expired", s.Expired,
		"dropped", s.Dropped,
		"life_mean", s.LifeMean,
		"bright_mean", s.BrightMean,
	)
}
