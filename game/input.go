package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/sim"
	"github.com/pthm-cable/sparks/ui"
)

var rateKeys = [9]int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// pollControls samples the mouse and keyboard, folding in the HUD buttons
// pressed on the previous frame. Buttons are level-triggered: holding the
// left button keeps spawning every frame.
func (g *Game) pollControls() sim.Controls {
	mouse := rl.GetMousePosition()
	c := sim.Controls{
		Pointer: mgl32.Vec2{mouse.X, mouse.Y},
		Toggle:  rl.IsKeyDown(rl.KeySpace),
		Reset:   rl.IsKeyDown(rl.KeyR),
	}

	if g.hud == nil || !g.hud.Captures(mouse.X, mouse.Y) {
		c.Primary = rl.IsMouseButtonDown(rl.MouseButtonLeft)
		c.Secondary = rl.IsMouseButtonDown(rl.MouseButtonRight)
		c.Tertiary = rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	}

	var down [9]bool
	for i, k := range rateKeys {
		down[i] = rl.IsKeyDown(k)
	}
	c.RateKey = highestRateKey(down)

	c = mergeHUDActions(c, g.hudActions)
	g.hudActions = ui.HUDActions{}
	return c
}

// highestRateKey returns the highest held number key (1..9), or 0.
func highestRateKey(down [9]bool) int {
	for i := len(down) - 1; i >= 0; i-- {
		if down[i] {
			return i + 1
		}
	}
	return 0
}

// mergeHUDActions folds HUD button presses into keyboard and mouse controls.
// A rate button wins over a held number key.
func mergeHUDActions(c sim.Controls, a ui.HUDActions) sim.Controls {
	c.Toggle = c.Toggle || a.Toggle
	c.Reset = c.Reset || a.Clear
	if a.RateKey != 0 {
		c.RateKey = a.RateKey
	}
	return c
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.store.Resize(w, h)
	if g.particleRenderer != nil {
		g.particleRenderer.Resize(int32(w), int32(h))
	}
}
