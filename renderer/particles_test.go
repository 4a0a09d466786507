package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func TestToColor(t *testing.T) {
	tests := []struct {
		name string
		in   mgl32.Vec4
		want rl.Color
	}{
		{"red", mgl32.Vec4{1, 0, 0, 1}, rl.Color{R: 255, G: 0, B: 0, A: 255}},
		{"half", mgl32.Vec4{0.5, 0.5, 0.5, 1}, rl.Color{R: 128, G: 128, B: 128, A: 255}},
		{"obstacle", mgl32.Vec4{0.1, 0.1, 0.1, 1}, rl.Color{R: 26, G: 26, B: 26, A: 255}},
		{"out of range", mgl32.Vec4{-1, 2, 0, 1}, rl.Color{R: 0, G: 255, B: 0, A: 255}},
		{"nan", mgl32.Vec4{float32(math.NaN()), 0, 0, 1}, rl.Color{R: 0, G: 0, B: 0, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToColor(tt.in); got != tt.want {
				t.Errorf("ToColor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpriteDest(t *testing.T) {
	got := spriteDest(100, 50, 24)
	want := rl.Rectangle{X: 76, Y: 26, Width: 48, Height: 48}
	if got != want {
		t.Errorf("spriteDest = %+v, want %+v", got, want)
	}
}
