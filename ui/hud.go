package ui

import (
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudX      = 10
	hudY      = 10
	hudWidth  = 300
	hudHeight = 190

	rateButtonGap = 2
)

// HUDData holds everything the HUD displays for one frame.
type HUDData struct {
	Particles  int
	Obstacles  int
	SpawnRate  int
	Rates      [9]int
	FPS        int32
	Continuous bool

	// Update cost against the frame budget
	TickMicros   int64
	BudgetMicros int64
}

// HUDActions reports the HUD buttons pressed this frame.
type HUDActions struct {
	RateKey int // 1..9, 0 when no rate button was pressed
	Clear   bool
	Toggle  bool
}

// hudLayout holds the HUD's screen rectangles.
type hudLayout struct {
	panel  rl.Rectangle
	rates  [9]rl.Rectangle
	clear  rl.Rectangle
	toggle rl.Rectangle
}

// HUD renders the counters panel and its buttons.
type HUD struct {
	renderer *Renderer
	layout   hudLayout
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	r := NewRenderer()
	return &HUD{renderer: r, layout: computeLayout(r.Theme)}
}

func computeLayout(theme Theme) hudLayout {
	l := hudLayout{
		panel: rl.Rectangle{X: hudX, Y: hudY, Width: hudWidth, Height: hudHeight},
	}

	inner := float32(hudWidth - 2*theme.Padding)
	left := float32(hudX + theme.Padding)
	bh := float32(theme.ButtonHeight)

	rateY := float32(hudY+hudHeight-theme.Padding) - 2*bh - rateButtonGap
	rateW := (inner - 8*rateButtonGap) / 9
	for i := range l.rates {
		l.rates[i] = rl.Rectangle{X: left + float32(i)*(rateW+rateButtonGap), Y: rateY, Width: rateW, Height: bh}
	}

	rowY := rateY + bh + rateButtonGap
	half := (inner - rateButtonGap) / 2
	l.toggle = rl.Rectangle{X: left, Y: rowY, Width: half, Height: bh}
	l.clear = rl.Rectangle{X: left + half + rateButtonGap, Y: rowY, Width: half, Height: bh}
	return l
}

// Captures reports whether a screen point is over the HUD, so pointer
// actions there are not forwarded to the simulation.
func (h *HUD) Captures(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, h.layout.panel)
}

// Draw renders the HUD and returns the buttons pressed this frame.
func (h *HUD) Draw(data HUDData) HUDActions {
	r := h.renderer
	p := r.Theme.Padding
	l := h.layout

	r.DrawPanel(int32(l.panel.X), int32(l.panel.Y), int32(l.panel.Width), int32(l.panel.Height))

	x := int32(l.panel.X) + p
	y := int32(l.panel.Y) + p
	y = r.DrawSectionHeader(x, y, "Sparks")
	y = r.DrawLabelValue(x, y, "FPS", strconv.Itoa(int(data.FPS)))
	y = r.DrawLabelValue(x, y, "Particles", strconv.Itoa(data.Particles))
	y = r.DrawLabelValue(x, y, "Colliders", strconv.Itoa(data.Obstacles))
	y = r.DrawLabelValue(x, y, "Spawn rate", strconv.Itoa(data.SpawnRate))
	r.DrawBar(x, y, "Update", float32(data.TickMicros), float32(data.BudgetMicros), hudWidth-2*p)

	var actions HUDActions
	for i, rate := range data.Rates {
		if rate <= 0 {
			continue
		}
		label := strconv.Itoa(i + 1)
		if rate == data.SpawnRate {
			label = "[" + label + "]"
		}
		if gui.Button(l.rates[i], label) {
			actions.RateKey = i + 1
		}
	}

	if gui.Button(l.toggle, toggleText(data.Continuous, "Emitter: ON", "Emitter: OFF")) {
		actions.Toggle = true
	}
	if gui.Button(l.clear, "Clear") {
		actions.Clear = true
	}

	return actions
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("LMB: Spawn | RMB: Wind | MMB: Collider | SPACE: Emitter | R: Clear | 1-9: Rate",
		10, screenHeight-25, 14, rl.Gray)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
