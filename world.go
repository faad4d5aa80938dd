// Package skiff is a deterministic vehicle simulation kernel: rigid-body
// integration, target-seeking thrust, sphere-proxy contact detection and
// contact events, stepped synchronously on a single goroutine.
package skiff

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
)

const (
	DEFAULT_CELL_SIZE  = 10.0
	DEFAULT_GRID_CELLS = 1024
)

// StepObserver receives a callback after each completed step. A nil observer
// costs nothing.
type StepObserver interface {
	AfterStep(tick uint64, states []VehicleState)
}

type World struct {
	vehicles *orderedmap.OrderedMap[VehicleID, *Vehicle]
	nextID   VehicleID

	grid      *SpatialGrid
	cellSize  float64
	gridCells int

	// Registry-order snapshot rebuilt on spawn, removal and each step.
	snapshot []*Vehicle
	boxes    []actor.AABB

	observer StepObserver
	tick     uint64

	Events Events
}

type Option func(*World)

// WithCellSize sets the spatial grid cell size. Cells should be comfortably
// larger than the biggest vehicle proxy.
func WithCellSize(size float64) Option {
	return func(w *World) { w.cellSize = size }
}

// WithGridCells sets the bucket count of the spatial grid, rounded up to a
// power of two.
func WithGridCells(n int) Option {
	return func(w *World) { w.gridCells = n }
}

// WithObserver installs the per-step callback.
func WithObserver(obs StepObserver) Option {
	return func(w *World) { w.observer = obs }
}

func NewWorld(opts ...Option) *World {
	w := &World{
		vehicles:  orderedmap.NewOrderedMap[VehicleID, *Vehicle](),
		nextID:    1,
		cellSize:  DEFAULT_CELL_SIZE,
		gridCells: DEFAULT_GRID_CELLS,
		Events:    NewEvents(),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.grid = NewSpatialGrid(w.cellSize, w.gridCells)
	return w
}

// Spawn adds a vehicle and returns its id. Ids are assigned in increasing
// order and never reused.
func (w *World) Spawn(config VehicleConfig, transform actor.Transform) VehicleID {
	id := w.nextID
	w.nextID++

	w.vehicles.Set(id, &Vehicle{
		Body:   actor.NewRigidBody(transform, config.bodyConfig()),
		Config: config,
		id:     id,
	})
	w.rebuild()

	return id
}

// Remove deletes a vehicle and forgets its tracked contact pairs. Unknown
// ids are ignored.
func (w *World) Remove(id VehicleID) {
	if w.vehicles.Delete(id) {
		w.Events.forget(id)
		w.rebuild()
	}
}

// Vehicle returns the vehicle for an id. The pointer stays valid until the
// vehicle is removed.
func (w *World) Vehicle(id VehicleID) (*Vehicle, bool) {
	return w.vehicles.Get(id)
}

func (w *World) Len() int {
	return w.vehicles.Len()
}

func (w *World) Tick() uint64 {
	return w.tick
}

// SetTarget stores the target position for a vehicle. Unknown ids are
// ignored.
func (w *World) SetTarget(id VehicleID, pos mgl64.Vec3) {
	if v, ok := w.vehicles.Get(id); ok {
		v.SetTarget(pos)
	}
}

// ApplyThrust accumulates one thrust action on a vehicle. Unknown ids are
// ignored.
func (w *World) ApplyThrust(id VehicleID, action ThrustAction, intensity float64) {
	if v, ok := w.vehicles.Get(id); ok {
		v.ApplyThrust(action, intensity)
	}
}

// ApplyBanking accumulates a banking torque on a vehicle. Unknown ids are
// ignored.
func (w *World) ApplyBanking(id VehicleID, desiredRoll, rollFactor float64) {
	if v, ok := w.vehicles.Get(id); ok {
		v.ApplyBanking(desiredRoll, rollFactor)
	}
}

// Step advances the simulation by dt seconds: integrates every vehicle in
// registry order, rebuilds the spatial grid, runs the contact pass, flushes
// contact events and finally notifies the observer.
func (w *World) Step(dt float64) {
	w.tick++

	for el := w.vehicles.Front(); el != nil; el = el.Next() {
		el.Value.Body.Integrate(dt)
	}
	w.rebuild()

	contacts := w.findContacts()
	w.Events.record(contacts)
	w.Events.flush()

	if w.observer != nil {
		w.observer.AfterStep(w.tick, w.States())
	}
}

// State returns the snapshot for one vehicle.
func (w *World) State(id VehicleID) (VehicleState, bool) {
	v, ok := w.vehicles.Get(id)
	if !ok {
		return VehicleState{}, false
	}
	return v.State(), true
}

// States returns snapshots for all vehicles in registry order.
func (w *World) States() []VehicleState {
	states := make([]VehicleState, 0, w.vehicles.Len())
	for el := w.vehicles.Front(); el != nil; el = el.Next() {
		states = append(states, el.Value.State())
	}
	return states
}

// Nearby returns the ids of vehicles whose position lies within radius of
// pos, in registry order. Positions are as of the last step, spawn or
// removal.
func (w *World) Nearby(pos mgl64.Vec3, radius float64) []VehicleID {
	query := actor.AABBFromCenterExtents(pos, mgl64.Vec3{radius, radius, radius})

	var ids []VehicleID
	for _, idx := range w.grid.Candidates(query) {
		v := w.snapshot[idx]
		if v.Body.Transform.Position.Sub(pos).Len() <= radius {
			ids = append(ids, v.id)
		}
	}
	return ids
}

// rebuild refreshes the registry-order snapshot and reindexes the spatial
// grid from the vehicle proxies.
func (w *World) rebuild() {
	w.snapshot = w.snapshot[:0]
	w.boxes = w.boxes[:0]
	for el := w.vehicles.Front(); el != nil; el = el.Next() {
		w.snapshot = append(w.snapshot, el.Value)
		w.boxes = append(w.boxes, el.Value.proxy().AABB())
	}

	w.grid.Clear()
	for i := range w.boxes {
		w.grid.Insert(i, w.boxes[i])
	}
	w.grid.SortCells()
}
