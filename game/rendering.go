package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/ui"
)

// Draw renders the particles, obstacles and HUD. HUD button presses are
// stored and applied on the next Update.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.particleRenderer.Draw(g.store.Particles(), g.store.Obstacles(), g.store.Camera())

	g.hudActions = g.hud.Draw(g.hudData())
	g.hud.DrawControls(int32(g.screenHeight))

	rl.EndDrawing()
}

func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Particles:    g.store.Count(),
		Obstacles:    g.store.ObstacleCount(),
		SpawnRate:    g.store.SpawnRate(),
		Rates:        g.cfg.Derived.SpawnRates9,
		FPS:          rl.GetFPS(),
		Continuous:   g.input.Continuous(),
		TickMicros:   g.perfCollector.Stats().AvgTickDuration.Microseconds(),
		BudgetMicros: int64(1e6 / g.cfg.Screen.TargetFPS),
	}
}
