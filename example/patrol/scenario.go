package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/skiffworks/skiff"
	"github.com/skiffworks/skiff/pathfind"
)

// defaultScenario runs when no config file is given: two skiffs on crossing
// patrol loops around a harbor wall, plus one wandering rover.
const defaultScenario = `
name: harbor-patrol
seed: 42
tick_rate: 60
ticks: 900
world:
  cell_size: 10
  grid_cells: 1024
grid:
  width: 24
  height: 24
  cell_size: 5
  obstacles:
    - rect: [10, 6, 2, 12]
    - rect: [4, 16, 6, 2]
    - circle: [18, 8, 2]
vehicles:
  - name: skiff-a
    mass: 900
    max_thrust: 9000
    radius: 2
    cruise_speed: 15
    spawn: [12.5, 10, 12.5]
    waypoints: [[2, 2], [21, 2], [21, 21], [2, 21]]
  - name: skiff-b
    mass: 900
    max_thrust: 9000
    radius: 2
    cruise_speed: 15
    spawn: [107.5, 10, 62.5]
    waypoints: [[21, 12], [12, 21], [2, 12], [12, 2]]
  - name: rover
    mass: 600
    max_thrust: 4000
    radius: 1.5
    cruise_speed: 8
    spawn: [60, 10, 60]
`

const defaultCruiseSpeed = 10.0

type scenario struct {
	Name     string        `yaml:"name"`
	Seed     uint32        `yaml:"seed"`
	TickRate int           `yaml:"tick_rate"`
	Ticks    int           `yaml:"ticks"`
	World    worldSpec     `yaml:"world"`
	Grid     gridSpec      `yaml:"grid"`
	Vehicles []vehicleSpec `yaml:"vehicles"`
}

// worldSpec tunes the contact broad phase.
type worldSpec struct {
	CellSize  float64 `yaml:"cell_size"`
	GridCells int     `yaml:"grid_cells"`
}

// gridSpec describes the planning grid. CellSize is world units per cell;
// the grid covers the x/z plane starting at the origin.
type gridSpec struct {
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	CellSize  float64        `yaml:"cell_size"`
	Obstacles []obstacleSpec `yaml:"obstacles"`
}

// obstacleSpec is either a rect [x y w h] or a circle [cx cy r], in cells.
type obstacleSpec struct {
	Rect   []int `yaml:"rect,omitempty"`
	Circle []int `yaml:"circle,omitempty"`
}

// vehicleSpec declares one vehicle. Waypoints are grid cells visited in
// order, looping forever; a vehicle without waypoints wanders.
type vehicleSpec struct {
	Name        string    `yaml:"name"`
	Mass        float64   `yaml:"mass"`
	MaxThrust   float64   `yaml:"max_thrust"`
	Radius      float64   `yaml:"radius"`
	CruiseSpeed float64   `yaml:"cruise_speed"`
	Spawn       []float64 `yaml:"spawn"`
	Waypoints   [][]int   `yaml:"waypoints"`
}

// loadScenario reads a scenario from path, or the embedded default when path
// is empty.
func loadScenario(path string) (*scenario, error) {
	if path == "" {
		return decodeScenario(strings.NewReader(defaultScenario))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return decodeScenario(f)
}

func decodeScenario(r io.Reader) (*scenario, error) {
	var s scenario
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *scenario) applyDefaults() {
	if s.Name == "" {
		s.Name = "scenario"
	}
	if s.Seed == 0 {
		s.Seed = 1
	}
	if s.TickRate <= 0 {
		s.TickRate = 60
	}
	if s.Ticks <= 0 {
		s.Ticks = 600
	}
	if s.World.CellSize <= 0 {
		s.World.CellSize = skiff.DEFAULT_CELL_SIZE
	}
	if s.World.GridCells <= 0 {
		s.World.GridCells = skiff.DEFAULT_GRID_CELLS
	}
	if s.Grid.CellSize <= 0 {
		s.Grid.CellSize = 1
	}
	for i := range s.Vehicles {
		if s.Vehicles[i].Name == "" {
			s.Vehicles[i].Name = fmt.Sprintf("vehicle-%d", i)
		}
	}
}

func (s *scenario) validate() error {
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return fmt.Errorf("grid: dimensions %dx%d must be positive", s.Grid.Width, s.Grid.Height)
	}
	for i, o := range s.Grid.Obstacles {
		if len(o.Rect) != 4 && len(o.Circle) != 3 {
			return fmt.Errorf("obstacle %d: want rect [x y w h] or circle [cx cy r]", i)
		}
	}
	if len(s.Vehicles) == 0 {
		return errors.New("scenario needs at least one vehicle")
	}
	for _, v := range s.Vehicles {
		if len(v.Spawn) != 3 {
			return fmt.Errorf("vehicle %s: spawn wants [x y z]", v.Name)
		}
		for j, wp := range v.Waypoints {
			if len(wp) != 2 {
				return fmt.Errorf("vehicle %s: waypoint %d wants [cx cy]", v.Name, j)
			}
		}
	}
	return nil
}

// buildGrid rasterizes the obstacle list onto a fresh planning grid.
func (s *scenario) buildGrid() *pathfind.Grid2D {
	g := pathfind.NewGrid2D(s.Grid.Width, s.Grid.Height)
	for _, o := range s.Grid.Obstacles {
		switch {
		case len(o.Rect) == 4:
			g.FillRect(o.Rect[0], o.Rect[1], o.Rect[2], o.Rect[3], true)
		case len(o.Circle) == 3:
			g.FillCircle(o.Circle[0], o.Circle[1], o.Circle[2], true)
		}
	}
	return g
}

// cellCenter maps a grid cell to the world-space center of that cell on the
// x/z plane at the given altitude.
func (s *scenario) cellCenter(cx, cy int, altitude float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(cx) + 0.5) * s.Grid.CellSize,
		altitude,
		(float64(cy) + 0.5) * s.Grid.CellSize,
	}
}

// cellAt maps a world position to its grid cell.
func (s *scenario) cellAt(p mgl64.Vec3) [2]int {
	return [2]int{
		int(math.Floor(p.X() / s.Grid.CellSize)),
		int(math.Floor(p.Z() / s.Grid.CellSize)),
	}
}

// extent returns the world-space span of the planning grid in x and z.
func (s *scenario) extent() (float64, float64) {
	return float64(s.Grid.Width) * s.Grid.CellSize, float64(s.Grid.Height) * s.Grid.CellSize
}

func (v vehicleSpec) config() skiff.VehicleConfig {
	cfg := skiff.DefaultVehicleConfig()
	if v.Mass > 0 {
		cfg.Mass = v.Mass
	}
	if v.MaxThrust > 0 {
		cfg.MaxThrust = v.MaxThrust
	}
	if v.Radius > 0 {
		cfg.Radius = v.Radius
	}
	return cfg
}

func (v vehicleSpec) cruise() float64 {
	if v.CruiseSpeed > 0 {
		return v.CruiseSpeed
	}
	return defaultCruiseSpeed
}
