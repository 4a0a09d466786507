package sim

import "github.com/go-gl/mathgl/mgl32"

// Controls is one frame's worth of discrete input signals.
// Pointer is in screen pixels; RateKey is 1..9 for a pressed number key, 0 otherwise.
type Controls struct {
	Pointer   mgl32.Vec2
	Primary   bool // spawn at pointer
	Secondary bool // wind at pointer
	Tertiary  bool // obstacle at pointer
	Toggle    bool // continuous-spawn key held
	Reset     bool
	RateKey   int
}

// ScreenMapper converts screen pixels to world units.
type ScreenMapper interface {
	ScreenToWorld(screen mgl32.Vec2) mgl32.Vec2
}

// InputApplier turns Controls into store commands.
// Its only state is the continuous-spawn toggle, flipped on the key's press edge.
type InputApplier struct {
	start mgl32.Vec2
	rates [9]int

	continuous  bool
	wasToggleOn bool
}

// NewInputApplier creates an applier whose continuous emitter sits at start.
// rates[i] is the spawn rate selected by number key i+1; zero entries are ignored.
func NewInputApplier(start mgl32.Vec2, rates [9]int) *InputApplier {
	return &InputApplier{start: start, rates: rates}
}

// Continuous reports whether continuous spawning is on.
func (a *InputApplier) Continuous() bool {
	return a.continuous
}

// Apply appends the commands for one frame of input to dst and returns it.
// Order: wind, pointer spawn, obstacle, continuous spawn, clear, spawn rate.
func (a *InputApplier) Apply(dst []Command, c Controls, m ScreenMapper) []Command {
	var pointer mgl32.Vec2
	if c.Primary || c.Secondary || c.Tertiary {
		pointer = m.ScreenToWorld(c.Pointer)
	}

	if c.Secondary {
		dst = append(dst, WindAt(pointer))
	}
	if c.Primary {
		dst = append(dst, SpawnAt(pointer, 0))
	}
	if c.Tertiary {
		dst = append(dst, ObstacleAt(pointer))
	}

	if c.Toggle && !a.wasToggleOn {
		a.continuous = !a.continuous
	}
	a.wasToggleOn = c.Toggle
	if a.continuous {
		dst = append(dst, SpawnAt(a.start, 0))
	}

	if c.Reset {
		dst = append(dst, ClearAll())
	}

	if c.RateKey >= 1 && c.RateKey <= len(a.rates) {
		if rate := a.rates[c.RateKey-1]; rate > 0 {
			dst = append(dst, SetSpawnRate(rate))
		}
	}
	return dst
}
