package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clampFloat clamps a float32 value between min and max.
// NaN maps to minVal so corrupted input never leaks into colors or radii.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v != v {
		return minVal
	}
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// unitX is the fallback direction for coincident points.
var unitX = mgl32.Vec2{1, 0}

// directionFrom returns the unit vector pointing from origin to p and the distance.
// Coincident points yield unitX.
func directionFrom(p, origin mgl32.Vec2) (mgl32.Vec2, float32) {
	d := p.Sub(origin)
	dist := d.Len()
	if dist == 0 || math.IsInf(float64(dist), 0) || dist != dist {
		return unitX, 0
	}
	return d.Mul(1 / dist), dist
}
