// Package components defines the ECS components for particles and obstacles.
package components

import "github.com/go-gl/mathgl/mgl32"

// Motion holds a particle's kinematic state.
// Acc is a running sum of applied forces; it is never reset between ticks.
type Motion struct {
	Pos mgl32.Vec2
	Vel mgl32.Vec2
	Acc mgl32.Vec2
}

// Appearance holds the drawn extent and straight-alpha color.
type Appearance struct {
	Radius float32
	Color  mgl32.Vec4
}

// Life tracks remaining lifetime in seconds.
// MaxLifespan is fixed at spawn and only used to normalize Lifespan.
type Life struct {
	Lifespan    float32
	MaxLifespan float32
}

// Ratio returns Lifespan/MaxLifespan, or 0 when MaxLifespan is zero.
func (l Life) Ratio() float32 {
	if l.MaxLifespan == 0 {
		return 0
	}
	return l.Lifespan / l.MaxLifespan
}

// Obstacle is a static disc that particles are pushed out of.
// Seq records insertion order; the first obstacle is the one with the lowest Seq.
type Obstacle struct {
	Pos    mgl32.Vec2
	Radius float32
	Color  mgl32.Vec4
	Seq    uint32
}

// Brightness returns the mean of the RGB channels.
func Brightness(c mgl32.Vec4) float32 {
	return (c[0] + c[1] + c[2]) / 3
}
