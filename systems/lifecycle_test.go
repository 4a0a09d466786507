package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vec4Near(a, b mgl32.Vec4, eps float32) bool {
	for i := range a {
		if absf(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMapColorSpectrum(t *testing.T) {
	tests := []struct {
		name  string
		ratio float32
		want  mgl32.Vec4
	}{
		{"full life", 1, mgl32.Vec4{1, 0, 0, 1}},
		{"two thirds", 2.0 / 3, mgl32.Vec4{0, 1, 0, 1}},
		{"one third", 1.0 / 3, mgl32.Vec4{0, 0, 1, 1}},
		{"expired", 0, mgl32.Vec4{0, 0, 1, 1}},
		{"half", 0.5, mgl32.Vec4{0, 0.5, 0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapColor(tt.ratio, RampSpectrum)
			if !vec4Near(got, tt.want, 1e-5) {
				t.Errorf("MapColor(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestMapColorFire(t *testing.T) {
	tests := []struct {
		ratio float32
		want  mgl32.Vec4
	}{
		{1, mgl32.Vec4{1, 1, 1, 1}},
		{0.5, mgl32.Vec4{1, 0.5, 0, 1}},
		{0, mgl32.Vec4{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		got := MapColor(tt.ratio, RampFire)
		if !vec4Near(got, tt.want, 1e-5) {
			t.Errorf("MapColor(%v, fire) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestMapColorChannelsInRange(t *testing.T) {
	inputs := []float32{
		-1e9, -2, -1, -0.01, 0, 0.1, 0.3, 0.34, 0.6, 0.67, 0.9, 1, 1.5, 7, 1e9,
		float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN()),
	}

	for _, ramp := range []ColorRamp{RampSpectrum, RampFire} {
		for _, r := range inputs {
			c := MapColor(r, ramp)
			for i, ch := range c {
				if ch != ch || ch < 0 || ch > 1 {
					t.Errorf("%s: MapColor(%v)[%d] = %v, want in [0,1]", ramp, r, i, ch)
				}
			}
			if c[3] != 1 {
				t.Errorf("%s: MapColor(%v) alpha = %v, want 1", ramp, r, c[3])
			}
		}
	}
}

func TestParseColorRamp(t *testing.T) {
	for _, name := range []string{"", "spectrum", "fire"} {
		r, err := ParseColorRamp(name)
		if err != nil {
			t.Errorf("ParseColorRamp(%q): %v", name, err)
			continue
		}
		if name != "" && r.String() != name {
			t.Errorf("ParseColorRamp(%q).String() = %q", name, r.String())
		}
	}
	if _, err := ParseColorRamp("rainbow"); err == nil {
		t.Error("expected error for unknown ramp")
	}
}

func TestShrinkRadius(t *testing.T) {
	const base, floor = 0.3, 0.01

	tests := []struct {
		name   string
		radius float32
		ratio  float32
		want   float32
	}{
		{"early life keeps radius", 0.3, 0.9, 0.3},
		{"boundary keeps radius", 0.25, 1.0 / 3, 0.25},
		{"last third shrinks", 0.3, 0.1, 0.09},
		{"near zero clamps to floor", 0.3, 0.001, floor},
		{"negative ratio clamps to floor", 0.3, -0.5, floor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShrinkRadius(tt.radius, tt.ratio, base, floor)
			if absf(got-tt.want) > 1e-6 {
				t.Errorf("ShrinkRadius(%v, %v) = %v, want %v", tt.radius, tt.ratio, got, tt.want)
			}
			if got < 0 {
				t.Errorf("negative radius %v", got)
			}
		})
	}
}
