package sim

import "github.com/go-gl/mathgl/mgl32"

// CommandKind identifies a store command.
type CommandKind uint8

const (
	CmdSpawn CommandKind = iota
	CmdWind
	CmdAddObstacle
	CmdClear
	CmdSetSpawnRate
)

func (k CommandKind) String() string {
	switch k {
	case CmdSpawn:
		return "spawn"
	case CmdWind:
		return "wind"
	case CmdAddObstacle:
		return "add_obstacle"
	case CmdClear:
		return "clear"
	case CmdSetSpawnRate:
		return "set_spawn_rate"
	}
	return "unknown"
}

// Command is a request queued for the next Tick. At is in world units.
// For CmdSpawn a Count of 0 uses the store's current spawn rate;
// for CmdSetSpawnRate Count is the new rate.
type Command struct {
	Kind  CommandKind
	At    mgl32.Vec2
	Count int
}

// SpawnAt requests count particles at p (0 = current spawn rate).
func SpawnAt(p mgl32.Vec2, count int) Command {
	return Command{Kind: CmdSpawn, At: p, Count: count}
}

// WindAt requests a wind impulse blowing out from p.
func WindAt(p mgl32.Vec2) Command {
	return Command{Kind: CmdWind, At: p}
}

// ObstacleAt requests an obstacle disc centered at p.
func ObstacleAt(p mgl32.Vec2) Command {
	return Command{Kind: CmdAddObstacle, At: p}
}

// ClearAll requests removal of every particle and obstacle.
func ClearAll() Command {
	return Command{Kind: CmdClear}
}

// SetSpawnRate requests a new number of particles per spawn command.
func SetSpawnRate(rate int) Command {
	return Command{Kind: CmdSetSpawnRate, Count: rate}
}
