package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/blur.fs
var blurShaderSrc string

// BlurFilter applies a separable Gaussian blur by ping-ponging between two
// render targets, alternating horizontal and vertical passes.
type BlurFilter struct {
	shader        rl.Shader
	horizontalLoc int32
	texelSizeLoc  int32

	targets     [2]rl.RenderTexture2D
	width       int32
	height      int32
	initialized bool
}

// NewBlurFilter creates a blur filter for a width x height target.
func NewBlurFilter(width, height int32) *BlurFilter {
	return &BlurFilter{width: width, height: height}
}

// Init loads the shader and targets (must be called after raylib window is created).
func (b *BlurFilter) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", blurShaderSrc)
	b.horizontalLoc = rl.GetShaderLocation(b.shader, "horizontal")
	b.texelSizeLoc = rl.GetShaderLocation(b.shader, "texelSize")

	b.loadTargets()
	b.initialized = true
}

func (b *BlurFilter) loadTargets() {
	for i := range b.targets {
		b.targets[i] = rl.LoadRenderTexture(b.width, b.height)
		rl.SetTextureFilter(b.targets[i].Texture, rl.FilterBilinear)
	}
	texel := []float32{1 / float32(b.width), 1 / float32(b.height)}
	rl.SetShaderValue(b.shader, b.texelSizeLoc, texel, rl.ShaderUniformVec2)
}

func (b *BlurFilter) unloadTargets() {
	for i := range b.targets {
		rl.UnloadRenderTexture(b.targets[i])
	}
}

// Apply blurs src with the given number of passes and returns the target holding
// the result. Zero passes returns src unchanged.
func (b *BlurFilter) Apply(src rl.RenderTexture2D, passes int) rl.RenderTexture2D {
	if passes <= 0 {
		return src
	}
	if !b.initialized {
		b.Init()
	}

	for pass := 0; pass < passes; pass++ {
		dst := b.targets[pass%2]

		horizontal := float32(0)
		if pass%2 == 0 {
			horizontal = 1
		}
		rl.SetShaderValue(b.shader, b.horizontalLoc, []float32{horizontal}, rl.ShaderUniformFloat)

		rl.BeginTextureMode(dst)
		rl.ClearBackground(rl.Black)
		rl.BeginShaderMode(b.shader)
		drawTarget(src, b.width, b.height)
		rl.EndShaderMode()
		rl.EndTextureMode()

		src = dst
	}
	return src
}

// Resize recreates the ping-pong targets for a new size.
func (b *BlurFilter) Resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == b.width && height == b.height) {
		return
	}
	b.width = width
	b.height = height
	if b.initialized {
		b.unloadTargets()
		b.loadTargets()
	}
}

// Unload frees resources.
func (b *BlurFilter) Unload() {
	if b.initialized {
		b.unloadTargets()
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}

// drawTarget draws a render texture over a width x height area.
// Render textures are stored bottom-up, so the source rect is flipped.
func drawTarget(t rl.RenderTexture2D, width, height int32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(t.Texture.Width), Height: -float32(t.Texture.Height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(width), Height: float32(height)}
	rl.DrawTexturePro(t.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}
