package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ColorRamp selects how the lifetime ratio is turned into a color.
type ColorRamp uint8

const (
	// RampSpectrum walks red -> green -> blue as the ratio falls from 1 to 0.
	RampSpectrum ColorRamp = iota
	// RampFire starts white and fades through yellow and red to black.
	RampFire
)

// ParseColorRamp maps a config name to a ColorRamp. Empty selects RampSpectrum.
func ParseColorRamp(name string) (ColorRamp, error) {
	switch name {
	case "", "spectrum":
		return RampSpectrum, nil
	case "fire":
		return RampFire, nil
	}
	return RampSpectrum, fmt.Errorf("unknown color ramp %q", name)
}

func (r ColorRamp) String() string {
	if r == RampFire {
		return "fire"
	}
	return "spectrum"
}

// thirds splits ratio into three saturating segments, one per third of the range.
func thirds(ratio float32) (t0, t1, t2 float32) {
	if ratio != ratio {
		ratio = 0
	}
	t0 = clamp01(ratio * 3)
	t1 = clamp01((ratio - 1.0/3) * 3)
	t2 = clamp01((ratio - 2.0/3) * 3)
	return t0, t1, t2
}

// MapColor maps a remaining-lifetime ratio to an opaque color.
// Any input is accepted; every channel of the result lies in [0, 1].
func MapColor(ratio float32, ramp ColorRamp) mgl32.Vec4 {
	t0, t1, t2 := thirds(ratio)
	if ramp == RampFire {
		return mgl32.Vec4{t0, t1, t2, 1}
	}
	return mgl32.Vec4{t2, clamp01(t1 - t2), clamp01(1 - t1), 1}
}

// ShrinkRadius returns the radius for a particle in the last third of its life.
// Earlier in life the current radius is returned unchanged.
func ShrinkRadius(radius, ratio, baseRadius, floor float32) float32 {
	if ratio >= 1.0/3 {
		return radius
	}
	return clampFloat(ratio*baseRadius*3, floor, baseRadius)
}
