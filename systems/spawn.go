package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/components"
)

// minLifespan replaces a lifespan that stays exactly zero after resampling.
const minLifespan = 1e-4

// maxLifespanDraws bounds the zero-lifespan resample loop.
const maxLifespanDraws = 4

// SpawnParams holds the per-particle spawn constants.
type SpawnParams struct {
	BaseLifespan float32
	BaseRadius   float32
	DiskRadius   float32
}

// spawnColor is the color a particle carries until its first update.
var spawnColor = mgl32.Vec4{1, 0, 0, 1}

// RandomPointInDisk samples a point uniformly by area inside a disc of the given radius.
func RandomPointInDisk(rng *rand.Rand, radius float32) mgl32.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	dist := float32(math.Sqrt(rng.Float64())) * radius
	return mgl32.Vec2{dist * float32(math.Cos(angle)), dist * float32(math.Sin(angle))}
}

// signedUnit returns a uniform sample in [-1, 1).
func signedUnit(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}

// SpawnParticle draws one particle around origin.
//
// The initial acceleration has a directional part (2cos a, 4|sin a + jitter|) plus
// uniform jitter, and the lifespan is base * U[-1,1] * scale. Negative lifespans are
// kept: such particles expire on their first update without being drawn.
func SpawnParticle(rng *rand.Rand, origin mgl32.Vec2, p SpawnParams) (components.Motion, components.Appearance, components.Life) {
	angle := rng.Float64() * 2 * math.Pi
	accX := 2*float32(math.Cos(angle)) + signedUnit(rng)
	accY := 4 * absf(float32(math.Sin(angle))+signedUnit(rng))

	denom := absf(accX)
	if denom < 1 {
		denom = 1
	}
	scale := clampFloat(accY/denom, p.BaseLifespan, p.BaseLifespan*1.2)

	var lifespan float32
	for range maxLifespanDraws {
		lifespan = p.BaseLifespan * signedUnit(rng) * scale
		if lifespan != 0 {
			break
		}
	}
	if lifespan == 0 {
		lifespan = minLifespan
	}

	motion := components.Motion{
		Pos: origin.Add(RandomPointInDisk(rng, p.DiskRadius)),
		Acc: mgl32.Vec2{accX, accY},
	}
	appearance := components.Appearance{Radius: p.BaseRadius, Color: spawnColor}
	life := components.Life{Lifespan: lifespan, MaxLifespan: lifespan}
	return motion, appearance, life
}
