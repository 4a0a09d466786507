// Package sim owns the live particle population and runs the per-frame update.
package sim

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sparks/camera"
	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/systems"
	"github.com/pthm-cable/sparks/telemetry"
)

// Params holds the simulation parameters a Store runs with.
type Params struct {
	WorldSize  mgl32.Vec2
	ScreenSize mgl32.Vec2
	Gravity    mgl32.Vec2
	SpawnRate  int
	Spawn      systems.SpawnParams

	ShrinkFloor    float32
	MaxVelocity    float32
	CollisionSlack float32
	CollisionMode  systems.CollisionMode
	ColorRamp      systems.ColorRamp

	WindRadius     float32
	WindStrength   float32
	ObstacleRadius float32
	ObstacleColor  mgl32.Vec4

	ParallelThreshold int
	MaxWorkers        int
	Seed              int64
}

// NewParams builds Params from a loaded configuration.
func NewParams(cfg *config.Config, seed int64) (Params, error) {
	ramp, err := systems.ParseColorRamp(cfg.Particles.ColorRamp)
	if err != nil {
		return Params{}, fmt.Errorf("particles.color_ramp: %w", err)
	}
	mode, err := systems.ParseCollisionMode(cfg.Physics.CollisionMode)
	if err != nil {
		return Params{}, fmt.Errorf("physics.collision_mode: %w", err)
	}
	oc := cfg.Obstacles.Color

	return Params{
		WorldSize:  mgl32.Vec2{cfg.Derived.WorldW32, cfg.Derived.WorldH32},
		ScreenSize: mgl32.Vec2{cfg.Derived.ScreenW32, cfg.Derived.ScreenH32},
		Gravity:    mgl32.Vec2{float32(cfg.Physics.GravityX), float32(cfg.Physics.GravityY)},
		SpawnRate:  cfg.Particles.SpawnRate,
		Spawn: systems.SpawnParams{
			BaseLifespan: float32(cfg.Particles.BaseLifespan),
			BaseRadius:   float32(cfg.Particles.BaseRadius),
			DiskRadius:   float32(cfg.Particles.SpawnDisk),
		},
		ShrinkFloor:       float32(cfg.Particles.ShrinkFloor),
		MaxVelocity:       float32(cfg.Particles.MaxVelocity),
		CollisionSlack:    float32(cfg.Physics.CollisionSlack),
		CollisionMode:     mode,
		ColorRamp:         ramp,
		WindRadius:        float32(cfg.Wind.Radius),
		WindStrength:      float32(cfg.Wind.Strength),
		ObstacleRadius:    float32(cfg.Obstacles.Radius),
		ObstacleColor:     mgl32.Vec4{float32(oc[0]), float32(oc[1]), float32(oc[2]), float32(oc[3])},
		ParallelThreshold: cfg.Parallel.Threshold,
		MaxWorkers:        cfg.Derived.Workers,
		Seed:              seed,
	}, nil
}

// Particle is a snapshot of one live particle.
type Particle struct {
	Entity ecs.Entity
	components.Motion
	components.Appearance
	components.Life
}

// Brightness returns the mean of the particle's RGB channels.
func (p *Particle) Brightness() float32 {
	return components.Brightness(p.Color)
}

// TickResult summarizes what one Tick did.
type TickResult struct {
	Spawned        int
	Expired        int
	Dropped        int
	ObstaclesAdded int
	Clears         int
}

// PhaseTimer receives phase boundaries during a Tick.
type PhaseTimer interface {
	StartPhase(phase string)
}

// spawned holds one generated particle before it becomes an entity.
type spawned struct {
	motion     components.Motion
	appearance components.Appearance
	life       components.Life
}

// Store owns the particle and obstacle entities and drives the per-frame update.
// It is not safe for concurrent use: Tick, Clear and the read views must be
// called from one goroutine, and the views must not be read during Tick.
type Store struct {
	params Params
	world  *ecs.World
	camera *camera.Camera
	logger *slog.Logger
	timer  PhaseTimer

	particleMap    *ecs.Map3[components.Motion, components.Appearance, components.Life]
	particleFilter *ecs.Filter3[components.Motion, components.Appearance, components.Life]
	obstacleMap    *ecs.Map1[components.Obstacle]
	obstacleFilter *ecs.Filter1[components.Obstacle]

	spawnRate      int
	nextSeq        uint32
	obstaclesDirty bool

	// particles is the per-tick working set; after Tick it holds the survivors
	// and is the render view.
	particles []Particle
	obstacles []components.Obstacle
	dead      []bool

	// spawn scratch
	spawnBuf    []spawned
	spawnOrigin mgl32.Vec2

	dt       float32
	removal  removalCollector
	parallel *parallelState

	// step advances one particle and reports whether it is still alive.
	step     func(p *Particle, dt float32) bool
	updateFn chunkFunc
	spawnFn  chunkFunc
}

// NewStore creates an empty store.
func NewStore(params Params, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	world := ecs.NewWorld()

	s := &Store{
		params:         params,
		world:          world,
		camera:         camera.New(params.ScreenSize.X(), params.ScreenSize.Y(), params.WorldSize.X(), params.WorldSize.Y()),
		logger:         logger,
		particleMap:    ecs.NewMap3[components.Motion, components.Appearance, components.Life](world),
		particleFilter: ecs.NewFilter3[components.Motion, components.Appearance, components.Life](world),
		obstacleMap:    ecs.NewMap1[components.Obstacle](world),
		obstacleFilter: ecs.NewFilter1[components.Obstacle](world),
		spawnRate:      params.SpawnRate,
		particles:      make([]Particle, 0, 1024),
		parallel:       newParallelState(params.MaxWorkers, params.ParallelThreshold, params.Seed),
	}
	s.step = s.stepParticle
	s.updateFn = s.updateChunk
	s.spawnFn = s.spawnChunk
	return s
}

// SetPhaseTimer installs a timer notified at each Tick phase. nil disables timing.
func (s *Store) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

func (s *Store) startPhase(phase string) {
	if s.timer != nil {
		s.timer.StartPhase(phase)
	}
}

// Close stops the worker pool.
func (s *Store) Close() {
	s.parallel.stopWorkers()
}

// Tick applies the queued commands, advances every live particle by dt seconds,
// and removes the particles whose lifespan ran out.
func (s *Store) Tick(dt float32, cmds []Command) TickResult {
	var res TickResult

	s.startPhase(telemetry.PhaseCommands)
	for _, c := range cmds {
		s.apply(c, &res)
	}

	s.startPhase(telemetry.PhaseUpdate)
	s.refreshObstacles()
	s.snapshot()
	s.removal.reset()
	s.dt = dt
	s.parallel.run(len(s.particles), s.updateFn)

	s.startPhase(telemetry.PhaseRemoval)
	res.Expired, res.Dropped = s.writeBack()

	return res
}

// apply executes one command.
func (s *Store) apply(c Command, res *TickResult) {
	switch c.Kind {
	case CmdSpawn:
		count := c.Count
		if count <= 0 {
			count = s.spawnRate
		}
		res.Spawned += s.Spawn(c.At, count)
	case CmdWind:
		s.ApplyWind(c.At)
	case CmdAddObstacle:
		s.AddObstacle(c.At)
		res.ObstaclesAdded++
	case CmdClear:
		s.Clear()
		res.Clears++
	case CmdSetSpawnRate:
		if c.Count >= 0 {
			s.spawnRate = c.Count
		}
	default:
		s.logger.Warn("unknown command", "kind", c.Kind)
	}
}

// Spawn creates count particles around origin and returns how many were created.
// Particles are generated in parallel and become entities in one serial pass.
func (s *Store) Spawn(origin mgl32.Vec2, count int) int {
	if count <= 0 {
		return 0
	}
	if cap(s.spawnBuf) < count {
		s.spawnBuf = make([]spawned, count)
	}
	s.spawnBuf = s.spawnBuf[:count]
	s.spawnOrigin = origin

	s.parallel.run(count, s.spawnFn)

	for i := range s.spawnBuf {
		b := &s.spawnBuf[i]
		s.particleMap.NewEntity(&b.motion, &b.appearance, &b.life)
	}
	return count
}

// spawnChunk generates spawnBuf[start:end] with the worker's RNG.
func (s *Store) spawnChunk(scratch *workerScratch, start, end int) {
	for i := start; i < end; i++ {
		b := &s.spawnBuf[i]
		b.motion, b.appearance, b.life = systems.SpawnParticle(scratch.rng, s.spawnOrigin, s.params.Spawn)
	}
}

// ApplyWind adds a wind impulse to the acceleration of every particle near origin.
func (s *Store) ApplyWind(origin mgl32.Vec2) {
	query := s.particleFilter.Query()
	for query.Next() {
		motion, _, _ := query.Get()
		impulse, ok := systems.WindImpulse(motion.Pos, origin, s.params.WindRadius, s.params.WindStrength)
		if ok {
			motion.Acc = motion.Acc.Add(impulse)
		}
	}
}

// AddObstacle places an obstacle disc at p.
func (s *Store) AddObstacle(p mgl32.Vec2) {
	o := components.Obstacle{
		Pos:    p,
		Radius: s.params.ObstacleRadius,
		Color:  s.params.ObstacleColor,
		Seq:    s.nextSeq,
	}
	s.nextSeq++
	s.obstacleMap.NewEntity(&o)
	s.obstaclesDirty = true
}

// Clear removes every particle and obstacle. Must not run concurrently with Tick.
func (s *Store) Clear() {
	var toRemove []ecs.Entity

	query := s.particleFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	oquery := s.obstacleFilter.Query()
	for oquery.Next() {
		toRemove = append(toRemove, oquery.Entity())
	}

	// Queries are closed; structural changes are allowed again
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}

	s.particles = s.particles[:0]
	s.obstacles = s.obstacles[:0]
	s.obstaclesDirty = false
}

// refreshObstacles rebuilds the ordered obstacle slice after obstacles changed.
func (s *Store) refreshObstacles() {
	if !s.obstaclesDirty {
		return
	}
	s.obstacles = s.obstacles[:0]
	query := s.obstacleFilter.Query()
	for query.Next() {
		s.obstacles = append(s.obstacles, *query.Get())
	}
	sort.Slice(s.obstacles, func(i, j int) bool {
		return s.obstacles[i].Seq < s.obstacles[j].Seq
	})
	s.obstaclesDirty = false
}

// snapshot copies every particle entity into the working set.
func (s *Store) snapshot() {
	s.particles = s.particles[:0]
	query := s.particleFilter.Query()
	for query.Next() {
		motion, appearance, life := query.Get()
		s.particles = append(s.particles, Particle{
			Entity:     query.Entity(),
			Motion:     *motion,
			Appearance: *appearance,
			Life:       *life,
		})
	}
}

// updateChunk advances particles[start:end]. Each index is owned by exactly one worker.
func (s *Store) updateChunk(scratch *workerScratch, start, end int) {
	for i := start; i < end; i++ {
		s.updateOne(scratch, i)
	}
	s.removal.flush(scratch)
}

// updateOne advances one particle, isolating a panic to that particle.
func (s *Store) updateOne(scratch *workerScratch, i int) {
	defer func() {
		if r := recover(); r != nil {
			scratch.dropped = append(scratch.dropped, i)
			s.logger.Warn("dropping particle after failed update", "index", i, "panic", r)
		}
	}()
	if !s.step(&s.particles[i], s.dt) {
		scratch.expired = append(scratch.expired, i)
	}
}

// stepParticle runs the lifecycle, physics and collision steps for one particle.
func (s *Store) stepParticle(p *Particle, dt float32) bool {
	p.Lifespan -= dt
	if p.Lifespan <= 0 {
		return false
	}

	ratio := p.Ratio()
	p.Color = systems.MapColor(ratio, s.params.ColorRamp)
	p.Radius = systems.ShrinkRadius(p.Radius, ratio, s.params.Spawn.BaseRadius, s.params.ShrinkFloor)

	systems.Integrate(&p.Motion, s.params.Gravity, dt)
	p.Pos = systems.ResolveCollisions(p.Pos, p.Radius, s.obstacles, s.params.CollisionMode, s.params.CollisionSlack)
	p.Vel = systems.ClampVelocity(p.Vel, s.params.MaxVelocity)
	return true
}

// writeBack copies survivors into their entities, removes the rest, and compacts
// the working set down to the survivors. Runs after the update barrier.
func (s *Store) writeBack() (expired, dropped int) {
	n := len(s.particles)
	if cap(s.dead) < n {
		s.dead = make([]bool, n)
	}
	s.dead = s.dead[:n]
	clear(s.dead)

	for _, i := range s.removal.expired {
		s.dead[i] = true
	}
	for _, i := range s.removal.dropped {
		s.dead[i] = true
	}

	alive := 0
	for i := range s.particles {
		p := &s.particles[i]
		if s.dead[i] {
			s.world.RemoveEntity(p.Entity)
			continue
		}
		motion, appearance, life := s.particleMap.Get(p.Entity)
		*motion = p.Motion
		*appearance = p.Appearance
		*life = p.Life

		s.particles[alive] = *p
		alive++
	}
	s.particles = s.particles[:alive]

	return len(s.removal.expired), len(s.removal.dropped)
}

// SortForRender orders the particle view by ascending brightness so bright
// particles draw last. The sort is stable and brightness is always finite.
func (s *Store) SortForRender() {
	sort.SliceStable(s.particles, func(i, j int) bool {
		return s.particles[i].Brightness() < s.particles[j].Brightness()
	})
}

// Particles returns the live particles as of the last Tick.
// The slice is owned by the store and valid until the next Tick or Clear.
func (s *Store) Particles() []Particle {
	return s.particles
}

// Obstacles returns the obstacles in insertion order.
func (s *Store) Obstacles() []components.Obstacle {
	s.refreshObstacles()
	return s.obstacles
}

// Count returns the number of live particle entities.
func (s *Store) Count() int {
	query := s.particleFilter.Query()
	n := query.Count()
	query.Close()
	return n
}

// ObstacleCount returns the number of obstacles.
func (s *Store) ObstacleCount() int {
	return len(s.Obstacles())
}

// SpawnRate returns the number of particles created per spawn command.
func (s *Store) SpawnRate() int {
	return s.spawnRate
}

// Resize records a new screen size for pointer mapping.
func (s *Store) Resize(width, height float32) {
	s.camera.Resize(width, height)
}

// Camera returns the screen/world mapping.
func (s *Store) Camera() *camera.Camera {
	return s.camera
}

// ScreenToWorld maps a screen-space point to world units.
func (s *Store) ScreenToWorld(screen mgl32.Vec2) mgl32.Vec2 {
	wx, wy := s.camera.ScreenToWorld(screen.X(), screen.Y())
	return mgl32.Vec2{wx, wy}
}
