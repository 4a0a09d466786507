// Package telemetry collects per-window simulation statistics and tick timings
// and writes them to CSV.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	spawned        int
	expired        int
	dropped        int
	obstaclesAdded int
	clears         int

	// Samples taken at window end
	lifeRatios []float64
	brightness []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordTick adds one tick's event counts to the window.
func (c *Collector) RecordTick(spawned, expired, dropped, obstaclesAdded, clears int) {
	c.spawned += spawned
	c.expired += expired
	c.dropped += dropped
	c.obstaclesAdded += obstaclesAdded
	c.clears += clears
}

// Sample records one live particle's remaining-lifetime ratio and brightness.
func (c *Collector) Sample(lifeRatio, brightness float32) {
	c.lifeRatios = append(c.lifeRatios, float64(lifeRatio))
	c.brightness = append(c.brightness, float64(brightness))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the counters and samples, then resets them
// for the next window. particles, obstacles and spawnRate describe the state at
// currentTick.
func (c *Collector) Flush(currentTick int32, particles, obstacles, spawnRate int) WindowStats {
	life := Summarize(c.lifeRatios)
	bright := Summarize(c.brightness)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Particles: particles,
		Obstacles: obstacles,
		SpawnRate: spawnRate,

		Spawned:        c.spawned,
		Expired:        c.expired,
		Dropped:        c.dropped,
		ObstaclesAdded: c.obstaclesAdded,
		Clears:         c.clears,

		LifeMean: life.Mean,
		LifeStd:  life.Std,
		LifeP50:  life.P50,

		BrightMean: bright.Mean,
		BrightStd:  bright.Std,
		BrightP50:  bright.P50,
	}

	c.windowStartTick = currentTick
	c.spawned = 0
	c.expired = 0
	c.dropped = 0
	c.obstaclesAdded = 0
	c.clears = 0
	c.lifeRatios = c.lifeRatios[:0]
	c.brightness = c.brightness[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
