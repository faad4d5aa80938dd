// Package pathfind implements route planning over dense grids, explicit
// navigation graphs, and continuous 3-D space.
//
// Grid searches (A*, Dijkstra, BFS, jump point search) run over a Grid2D of
// per-cell traversal costs; graph searches run over a NavGraph of positioned
// nodes. Orthogonal steps cost 1 and diagonal steps 1.414, each scaled by the
// destination cell's cost, so A* with the octile heuristic and Dijkstra agree
// on path cost. Every search is deterministic: priority ties resolve to the
// lower flat cell index (or node id), and identical inputs yield identical
// paths. Continuous planning is covered by RRT over a bounded volume with
// sphere obstacles, and by potential and flow fields that steer agents along
// cost gradients instead of explicit paths.
//
// References:
//   - Hart, Nilsson, Raphael: "A Formal Basis for the Heuristic Determination
//     of Minimum Cost Paths" (1968)
//   - Harabor, Grastien: "Online Graph Pruning for Pathfinding on Grid Maps"
//     (2011)
//   - LaValle: "Rapidly-Exploring Random Trees: A New Tool for Path
//     Planning" (1998)
//   - Khatib: "Real-Time Obstacle Avoidance for Manipulators and Mobile
//     Robots" (1986)
package pathfind

import "math"

// Step costs for grid movement. The diagonal constant deliberately truncates
// sqrt(2) so costs stay exactly representable across platforms.
const (
	orthogonalStepCost = 1.0
	diagonalStepCost   = 1.414
)

// neighborOffsets lists the 8 king moves. The first four entries are
// orthogonal, the last four diagonal; searches restricted to 4-connectivity
// iterate only the first half.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// PathResult is the outcome of a grid search. Cells holds every cell from
// start to goal inclusive; it is empty when Found is false.
type PathResult struct {
	Found bool
	Cost  float64
	Cells [][2]int
}

// GraphResult is the outcome of a graph search. Nodes holds every node id
// from start to goal inclusive; it is empty when Found is false.
type GraphResult struct {
	Found bool
	Cost  float64
	Nodes []int
}

// Grid2D is a dense row-major navigation grid. Each cell is either blocked
// or traversable with a positive cost multiplier (1 by default). Reads
// outside the grid behave as solid wall: Blocked reports true and Cost
// reports +Inf, so searches need no explicit bounds checks.
type Grid2D struct {
	width, height int
	blocked       []bool
	costs         []float64
}

// NewGrid2D returns a grid of the given dimensions with every cell open at
// cost 1.
func NewGrid2D(width, height int) *Grid2D {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid2D{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		costs:   make([]float64, width*height),
	}
	for i := range g.costs {
		g.costs[i] = 1
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid2D) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid2D) Height() int { return g.height }

// InBounds reports whether the cell lies inside the grid.
func (g *Grid2D) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Blocked reports whether the cell is impassable. Out-of-bounds cells are
// always blocked.
func (g *Grid2D) Blocked(x, y int) bool {
	return !g.InBounds(x, y) || g.blocked[y*g.width+x]
}

// SetBlocked marks a cell impassable or open. Out-of-bounds writes are
// ignored.
func (g *Grid2D) SetBlocked(x, y int, blocked bool) {
	if g.InBounds(x, y) {
		g.blocked[y*g.width+x] = blocked
	}
}

// Cost returns the traversal cost multiplier of the cell. Out-of-bounds
// cells cost +Inf.
func (g *Grid2D) Cost(x, y int) float64 {
	if !g.InBounds(x, y) {
		return math.Inf(1)
	}
	return g.costs[y*g.width+x]
}

// SetCost sets the traversal cost multiplier of the cell. Out-of-bounds
// writes are ignored.
func (g *Grid2D) SetCost(x, y int, cost float64) {
	if g.InBounds(x, y) {
		g.costs[y*g.width+x] = cost
	}
}

// Clear opens every cell and resets all costs to 1.
func (g *Grid2D) Clear() {
	for i := range g.blocked {
		g.blocked[i] = false
		g.costs[i] = 1
	}
}

// FillRect sets the blocked flag over the half-open rectangle
// [x, x+w) x [y, y+h). Cells outside the grid are ignored.
func (g *Grid2D) FillRect(x, y, w, h int, blocked bool) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			g.SetBlocked(cx, cy, blocked)
		}
	}
}

// FillCircle sets the blocked flag over all cells within radius of the
// center cell. Cells outside the grid are ignored.
func (g *Grid2D) FillCircle(cx, cy, radius int, blocked bool) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= radius*radius {
				g.SetBlocked(x, y, blocked)
			}
		}
	}
}

// uniformCost reports whether all open cells share one cost multiplier, and
// returns that multiplier. An empty or fully blocked grid is uniform at
// cost 1.
func (g *Grid2D) uniformCost() (float64, bool) {
	cost := 1.0
	seen := false
	for i := range g.costs {
		if g.blocked[i] {
			continue
		}
		if !seen {
			cost = g.costs[i]
			seen = true
		} else if g.costs[i] != cost {
			return 0, false
		}
	}
	return cost, true
}

func (g *Grid2D) index(x, y int) int { return y*g.width + x }
