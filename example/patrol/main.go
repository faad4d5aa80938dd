// Patrol demo. A YAML scenario describes a world, a planning grid and a
// handful of vehicles; patrol routes are planned cell by cell, then each
// tick steers the vehicles along them while step summaries and contact
// events stream out as JSON logs.
//
// Usage:
//
//	go run . -config scenario.yaml -ticks 1200 -seed 7
package main

import (
	"flag"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skiffworks/skiff"
	"github.com/skiffworks/skiff/actor"
	"github.com/skiffworks/skiff/pathfind"
	"github.com/skiffworks/skiff/steer"
	"github.com/skiffworks/skiff/vmath"
)

const (
	// waypointRadius is the distance at which a route point counts as
	// reached. Must stay above the thrust deadzone.
	waypointRadius = 2.0

	// arriveRadius is the ease-in distance for patrol corners.
	arriveRadius = 10.0

	// wanderProjection is how far ahead of a wanderer its heading is
	// projected as a thrust target.
	wanderProjection = 15.0

	wanderRadius   = 2.0
	wanderDistance = 4.0
)

func main() {
	configPath := flag.String("config", "", "scenario YAML path (empty runs the embedded default)")
	ticks := flag.Int("ticks", 0, "tick count override (0 keeps the scenario value)")
	seed := flag.Uint("seed", 0, "seed override (0 keeps the scenario value)")
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	sc, err := loadScenario(*configPath)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}
	if *ticks > 0 {
		sc.Ticks = *ticks
	}
	if *seed != 0 {
		sc.Seed = uint32(*seed)
	}

	s, err := newSim(logger, sc)
	if err != nil {
		logger.Fatal("build scenario", zap.Error(err))
	}
	s.run()
}

func newLogger() *zap.Logger {
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// sim owns the world, the per-vehicle drivers and the label table mapping
// kernel ids to harness uuids.
type sim struct {
	log      *zap.Logger
	scenario *scenario
	world    *skiff.World
	rng      *vmath.Random
	units    []*patroller
	labels   map[skiff.VehicleID]string
}

func newSim(log *zap.Logger, sc *scenario) (*sim, error) {
	grid := sc.buildGrid()

	s := &sim{
		log:      log,
		scenario: sc,
		rng:      vmath.NewRandom(sc.Seed),
		labels:   make(map[skiff.VehicleID]string),
	}
	s.world = skiff.NewWorld(
		skiff.WithCellSize(sc.World.CellSize),
		skiff.WithGridCells(sc.World.GridCells),
		skiff.WithObserver(&stepLogger{log: log, every: uint64(sc.TickRate)}),
	)

	extentX, extentZ := sc.extent()
	for _, v := range sc.Vehicles {
		spawn := mgl64.Vec3{v.Spawn[0], v.Spawn[1], v.Spawn[2]}
		legs, err := planRoute(grid, sc, v, spawn)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", v.Name, err)
		}

		id := s.world.Spawn(v.config(), actor.Transform{
			Position: spawn,
			Rotation: mgl64.QuatIdent(),
		})
		label := v.Name + "/" + uuid.NewString()
		s.labels[id] = label
		s.units = append(s.units, &patroller{
			id:       id,
			cruise:   v.cruise(),
			altitude: spawn.Y(),
			extent:   [2]float64{extentX, extentZ},
			legs:     legs,
		})

		log.Info("spawned",
			zap.String("vehicle", label),
			zap.Int("id", int(id)),
			zap.Int("route_points", routeLen(legs)),
		)
	}

	s.world.Events.Subscribe(skiff.CONTACT_ENTER, func(ev skiff.ContactEvent) {
		log.Info("contact enter",
			zap.String("a", s.labels[ev.Contact.A]),
			zap.String("b", s.labels[ev.Contact.B]),
			zap.Float64("depth", ev.Contact.Depth),
		)
	})
	s.world.Events.Subscribe(skiff.CONTACT_EXIT, func(ev skiff.ContactEvent) {
		log.Info("contact exit",
			zap.String("a", s.labels[ev.Contact.A]),
			zap.String("b", s.labels[ev.Contact.B]),
		)
	})

	return s, nil
}

func (s *sim) run() {
	dt := 1.0 / float64(s.scenario.TickRate)
	s.log.Info("scenario start",
		zap.String("name", s.scenario.Name),
		zap.Int("ticks", s.scenario.Ticks),
		zap.Int("tick_rate", s.scenario.TickRate),
		zap.Uint32("seed", s.scenario.Seed),
		zap.Int("vehicles", s.world.Len()),
	)

	for i := 0; i < s.scenario.Ticks; i++ {
		for _, u := range s.units {
			u.steerTick(s.world, s.rng)
		}
		s.world.Step(dt)
	}

	for _, st := range s.world.States() {
		s.log.Info("final state",
			zap.String("vehicle", s.labels[st.ID]),
			zap.Float64("x", st.Position.X()),
			zap.Float64("y", st.Position.Y()),
			zap.Float64("z", st.Position.Z()),
			zap.Float64("speed", st.Velocity.Len()),
		)
	}
	s.log.Info("scenario done", zap.Uint64("ticks", s.world.Tick()))
}

// planRoute plans one leg per consecutive waypoint pair, starting from the
// spawn cell and closing the loop back to the first waypoint. Vehicles
// without waypoints get no route and wander instead.
func planRoute(g *pathfind.Grid2D, sc *scenario, v vehicleSpec, spawn mgl64.Vec3) ([][]mgl64.Vec3, error) {
	if len(v.Waypoints) == 0 {
		return nil, nil
	}

	corners := make([][2]int, 0, len(v.Waypoints)+2)
	corners = append(corners, sc.cellAt(spawn))
	for _, wp := range v.Waypoints {
		corners = append(corners, [2]int{wp[0], wp[1]})
	}
	if len(v.Waypoints) > 1 {
		corners = append(corners, [2]int{v.Waypoints[0][0], v.Waypoints[0][1]})
	}

	legs := make([][]mgl64.Vec3, 0, len(corners)-1)
	for i := 0; i+1 < len(corners); i++ {
		path := pathfind.AStarGrid(g, corners[i], corners[i+1], true)
		if !path.Found {
			return nil, fmt.Errorf("no route from %v to %v", corners[i], corners[i+1])
		}
		leg := make([]mgl64.Vec3, len(path.Cells))
		for j, c := range path.Cells {
			leg[j] = sc.cellCenter(c[0], c[1], spawn.Y())
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func routeLen(legs [][]mgl64.Vec3) int {
	n := 0
	for _, leg := range legs {
		n += len(leg)
	}
	return n
}

// patroller drives one vehicle along its planned route, or wanders when it
// has none. legs[0] runs from the spawn cell to the first waypoint; the
// cycle restarts at legs[1].
type patroller struct {
	id       skiff.VehicleID
	cruise   float64
	altitude float64
	extent   [2]float64

	legs   [][]mgl64.Vec3
	legIdx int
	ptIdx  int

	wanderAngle float64
}

func (p *patroller) steerTick(w *skiff.World, rng *vmath.Random) {
	state, ok := w.State(p.id)
	if !ok {
		return
	}
	if len(p.legs) == 0 {
		p.wanderTick(w, state, rng)
		return
	}

	target := p.legs[p.legIdx][p.ptIdx]
	if state.Position.Sub(target).Len() < waypointRadius {
		p.advance()
		target = p.legs[p.legIdx][p.ptIdx]
	}

	// Full thrust between cells, ease in and settle on patrol corners.
	var desired mgl64.Vec3
	action := skiff.BOOST
	if p.ptIdx == len(p.legs[p.legIdx])-1 {
		desired = steer.Arrive(state.Position, target, p.cruise, arriveRadius)
		action = skiff.STABILIZE
	} else {
		desired = steer.Seek(state.Position, target, p.cruise)
	}

	w.SetTarget(p.id, target)
	w.ApplyThrust(p.id, action, desired.Len()/p.cruise)
}

// advance steps to the next route point. Single-waypoint routes hold at
// their last point once reached.
func (p *patroller) advance() {
	if p.ptIdx+1 < len(p.legs[p.legIdx]) {
		p.ptIdx++
		return
	}
	if len(p.legs) == 1 {
		return
	}
	p.legIdx++
	if p.legIdx >= len(p.legs) {
		p.legIdx = 1
	}
	p.ptIdx = 0
}

// wanderTick projects a wander heading on the x/z plane into a thrust
// target. Outside the grid extent it steers back to the center instead.
func (p *patroller) wanderTick(w *skiff.World, state skiff.VehicleState, rng *vmath.Random) {
	pos := state.Position
	if pos.X() < 0 || pos.Z() < 0 || pos.X() > p.extent[0] || pos.Z() > p.extent[1] {
		center := mgl64.Vec3{p.extent[0] / 2, p.altitude, p.extent[1] / 2}
		desired := steer.Seek(pos, center, p.cruise)
		w.SetTarget(p.id, center)
		w.ApplyThrust(p.id, skiff.BOOST, desired.Len()/p.cruise)
		return
	}

	flat := mgl64.Vec3{state.Velocity.X(), state.Velocity.Z(), 0}
	h := steer.Wander(flat, wanderRadius, wanderDistance, &p.wanderAngle, rng)
	heading := mgl64.Vec3{h.X(), 0, h.Y()}

	target := pos.Add(heading.Mul(wanderProjection))
	target[1] = p.altitude
	w.SetTarget(p.id, target)
	w.ApplyThrust(p.id, skiff.GLIDE, 1)
}

// stepLogger summarizes completed steps, once per simulated second at info
// and every tick at debug.
type stepLogger struct {
	log   *zap.Logger
	every uint64
}

func (s *stepLogger) AfterStep(tick uint64, states []skiff.VehicleState) {
	var maxSpeed float64
	for _, st := range states {
		maxSpeed = max(maxSpeed, st.Velocity.Len())
	}

	fields := []zap.Field{
		zap.Uint64("tick", tick),
		zap.Int("vehicles", len(states)),
		zap.Float64("max_speed", maxSpeed),
	}
	if tick%s.every == 0 {
		s.log.Info("step", fields...)
		return
	}
	s.log.Debug("step", fields...)
}
