package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/components"
)

// Integrate advances motion by one explicit Euler step.
// Gravity is added to the accumulated acceleration rather than replacing it, so
// forces applied in earlier ticks (and wind impulses this tick) keep contributing.
func Integrate(m *components.Motion, gravity mgl32.Vec2, dt float32) {
	m.Acc = m.Acc.Add(gravity.Mul(dt))
	m.Vel = m.Vel.Add(m.Acc.Mul(dt))
	m.Pos = m.Pos.Add(m.Vel.Mul(dt))
}

// ClampVelocity clamps each axis independently to [-limit, limit].
func ClampVelocity(v mgl32.Vec2, limit float32) mgl32.Vec2 {
	return mgl32.Vec2{clampFloat(v[0], -limit, limit), clampFloat(v[1], -limit, limit)}
}

// WindImpulse returns the acceleration pushed onto a particle at pos by wind
// blowing out from origin. Particles farther than radius are unaffected.
// Strength falls off as strength/max(distance, 1).
func WindImpulse(pos, origin mgl32.Vec2, radius, strength float32) (mgl32.Vec2, bool) {
	dir, dist := directionFrom(pos, origin)
	if dist > radius {
		return mgl32.Vec2{}, false
	}
	falloff := dist
	if falloff < 1 {
		falloff = 1
	}
	return dir.Mul(strength / falloff), true
}
