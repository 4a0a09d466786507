// Package game wires the particle store to raylib input, rendering and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/renderer"
	"github.com/pthm-cable/sparks/sim"
	"github.com/pthm-cable/sparks/telemetry"
	"github.com/pthm-cable/sparks/ui"
)

// maxFrameDT caps the step after a stall (window drag, breakpoint).
const maxFrameDT = 0.1

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
}

// Game holds the simulation and everything around it.
type Game struct {
	cfg   *config.Config
	store *sim.Store
	input *sim.InputApplier
	cmds  []sim.Command

	// Rendering (nil when headless)
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	hudActions       ui.HUDActions

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Once-per-second console report
	reportStart  time.Time
	reportFrames int

	tick     int32
	headless bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphics mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	params, err := sim.NewParams(cfg, opts.Seed)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:           cfg,
		store:         sim.NewStore(params, slog.Default()),
		input:         sim.NewInputApplier(mgl32.Vec2{float32(cfg.Particles.StartX), float32(cfg.Particles.StartY)}, cfg.Derived.SpawnRates9),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		outputManager: om,
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
		reportStart:   time.Now(),
	}
	g.store.SetPhaseTimer(g.perfCollector)

	if !opts.Headless {
		g.particleRenderer = renderer.NewParticleRenderer(
			int32(cfg.Screen.Width), int32(cfg.Screen.Height),
			cfg.Render.BlurPasses, cfg.Render.Additive,
		)
		g.particleRenderer.Init()
		g.hud = ui.NewHUD()
	}

	if om != nil {
		slog.Info("writing output", "dir", om.Dir())
	}
	return g, nil
}

// Update advances one frame using the wall-clock frame time and live input.
func (g *Game) Update() {
	g.handleResize()
	controls := g.pollControls()
	g.step(frameDT(rl.GetFrameTime(), g.cfg.Derived.DT32), controls)
}

// UpdateHeadless advances one fixed step. The continuous emitter is switched
// on at the first step so a headless run has something to simulate.
func (g *Game) UpdateHeadless() {
	g.step(g.cfg.Derived.DT32, sim.Controls{Toggle: g.tick == 0})
}

// step runs input, the store tick, the render sort and telemetry for one frame.
func (g *Game) step(dt float32, controls sim.Controls) {
	g.perfCollector.StartTick()

	g.cmds = g.input.Apply(g.cmds[:0], controls, g.store)
	res := g.store.Tick(dt, g.cmds)

	g.perfCollector.StartPhase(telemetry.PhaseSort)
	g.store.SortForRender()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(res.Spawned, res.Expired, res.Dropped, res.ObstaclesAdded, res.Clears)
	g.tick++
	g.flushTelemetry()
	g.report()

	g.perfCollector.EndTick()
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 {
	return g.tick
}

// Store returns the particle store.
func (g *Game) Store() *sim.Store {
	return g.store
}

// Unload releases the worker pool, GPU resources and output files.
func (g *Game) Unload() {
	g.store.Close()
	if g.particleRenderer != nil {
		g.particleRenderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// frameDT clamps a measured frame time, falling back to the fixed step when
// the measurement is unusable.
func frameDT(dt, fixed float32) float32 {
	if !(dt > 0) {
		return fixed
	}
	if dt > maxFrameDT {
		return maxFrameDT
	}
	return dt
}
