// Package renderer draws the particle scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/camera"
	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/sim"
)

// spriteSize is the resolution of the soft disc sprite used for particles.
const spriteSize = 64

// ParticleRenderer draws particles and obstacles into an offscreen scene,
// blurs it, and presents the result.
type ParticleRenderer struct {
	scene  rl.RenderTexture2D
	sprite rl.Texture2D
	blur   *BlurFilter

	blurPasses int
	additive   bool

	width       int32
	height      int32
	initialized bool
}

// NewParticleRenderer creates a renderer for a width x height screen.
func NewParticleRenderer(width, height int32, blurPasses int, additive bool) *ParticleRenderer {
	return &ParticleRenderer{
		blur:       NewBlurFilter(width, height),
		blurPasses: blurPasses,
		additive:   additive,
		width:      width,
		height:     height,
	}
}

// Init allocates GPU resources (must be called after raylib window is created).
func (r *ParticleRenderer) Init() {
	if r.initialized {
		return
	}

	r.scene = rl.LoadRenderTexture(r.width, r.height)
	rl.SetTextureFilter(r.scene.Texture, rl.FilterBilinear)

	img := rl.GenImageGradientRadial(spriteSize, spriteSize, 0.6, rl.White, rl.Blank)
	r.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.sprite, rl.FilterBilinear)

	r.blur.Init()
	r.initialized = true
}

// Draw renders one frame. particles must already be sorted for rendering.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (r *ParticleRenderer) Draw(particles []sim.Particle, obstacles []components.Obstacle, cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}

	ppu := cam.PixelsPerUnit()

	rl.BeginTextureMode(r.scene)
	rl.ClearBackground(rl.Black)

	if r.additive {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	spriteRect := rl.Rectangle{Width: float32(r.sprite.Width), Height: float32(r.sprite.Height)}
	for i := range particles {
		p := &particles[i]
		if !cam.IsVisible(p.Pos.X(), p.Pos.Y(), p.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.Pos.X(), p.Pos.Y())
		dst := spriteDest(sx, sy, p.Radius*ppu)
		rl.DrawTexturePro(r.sprite, spriteRect, dst, rl.Vector2{}, 0, ToColor(p.Color))
	}
	if r.additive {
		rl.EndBlendMode()
	}

	for i := range obstacles {
		o := &obstacles[i]
		sx, sy := cam.WorldToScreen(o.Pos.X(), o.Pos.Y())
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, o.Radius*ppu, ToColor(o.Color))
	}

	rl.EndTextureMode()

	out := r.blur.Apply(r.scene, r.blurPasses)
	drawTarget(out, r.width, r.height)
}

// Resize recreates the offscreen targets for a new screen size.
func (r *ParticleRenderer) Resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return
	}
	r.width = width
	r.height = height
	if r.initialized {
		rl.UnloadRenderTexture(r.scene)
		r.scene = rl.LoadRenderTexture(width, height)
		rl.SetTextureFilter(r.scene.Texture, rl.FilterBilinear)
	}
	r.blur.Resize(width, height)
}

// Unload frees resources.
func (r *ParticleRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.scene)
		rl.UnloadTexture(r.sprite)
		r.blur.Unload()
		r.initialized = false
	}
}

// spriteDest returns the square covering a disc of radius pixels centered at (x, y).
func spriteDest(x, y, radius float32) rl.Rectangle {
	return rl.Rectangle{X: x - radius, Y: y - radius, Width: 2 * radius, Height: 2 * radius}
}

// ToColor converts a straight-alpha float color to an 8-bit raylib color.
// Channels outside [0, 1] are clamped.
func ToColor(c mgl32.Vec4) rl.Color {
	return rl.Color{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
