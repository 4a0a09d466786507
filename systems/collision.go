package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sparks/components"
)

// CollisionMode selects which obstacle radius sets the push-out distance.
type CollisionMode uint8

const (
	// CollisionFirstObstacle pushes particles out by the first obstacle's radius,
	// whichever obstacle they hit.
	CollisionFirstObstacle CollisionMode = iota
	// CollisionOwnObstacle pushes particles out by the radius of the obstacle hit.
	CollisionOwnObstacle
)

// ParseCollisionMode maps a config name to a CollisionMode. Empty selects CollisionFirstObstacle.
func ParseCollisionMode(name string) (CollisionMode, error) {
	switch name {
	case "", "first_obstacle":
		return CollisionFirstObstacle, nil
	case "own_obstacle":
		return CollisionOwnObstacle, nil
	}
	return CollisionFirstObstacle, fmt.Errorf("unknown collision mode %q", name)
}

func (m CollisionMode) String() string {
	if m == CollisionOwnObstacle {
		return "own_obstacle"
	}
	return "first_obstacle"
}

// ResolveCollision moves pos out of obstacle o when the discs overlap by more than slack.
// The corrected position lies on the ray from the obstacle center through pos, at
// distance radius+pushRadius. Returns the (possibly unchanged) position and whether it moved.
func ResolveCollision(pos mgl32.Vec2, radius float32, o components.Obstacle, pushRadius, slack float32) (mgl32.Vec2, bool) {
	dir, dist := directionFrom(pos, o.Pos)
	if dist >= radius+o.Radius-slack {
		return pos, false
	}
	return o.Pos.Add(dir.Mul(radius + pushRadius)), true
}

// ResolveCollisions runs ResolveCollision against every obstacle in order.
// obstacles must be sorted by insertion; obstacles[0] is the first obstacle.
func ResolveCollisions(pos mgl32.Vec2, radius float32, obstacles []components.Obstacle, mode CollisionMode, slack float32) mgl32.Vec2 {
	if len(obstacles) == 0 {
		return pos
	}
	first := obstacles[0].Radius
	for i := range obstacles {
		push := first
		if mode == CollisionOwnObstacle {
			push = obstacles[i].Radius
		}
		pos, _ = ResolveCollision(pos, radius, obstacles[i], push, slack)
	}
	return pos
}
