package pathfind

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// fieldSoftening keeps potential terms finite at zero distance.
const fieldSoftening = 0.1

// obstacleStrength is the fixed repulsion weight of point obstacles.
const obstacleStrength = 100.0

// gradientEpsilon is the central difference half-width used when sampling
// the potential gradient.
const gradientEpsilon = 0.1

type attractor struct {
	position mgl64.Vec3
	strength float64
}

type repulsor struct {
	position mgl64.Vec3
	strength float64
	radius   float64
}

// PotentialField3D models goals and hazards as a continuous scalar field:
// attractors lower the potential around themselves, repulsors and obstacles
// raise it. An agent descending the gradient drifts toward attractors while
// sliding around hazards, without ever planning an explicit path.
type PotentialField3D struct {
	attractors []attractor
	repulsors  []repulsor
	obstacles  []mgl64.Vec3
}

// NewPotentialField3D returns an empty field with zero potential everywhere.
func NewPotentialField3D() *PotentialField3D {
	return &PotentialField3D{}
}

// AddAttractor registers a goal that pulls with the given strength.
func (f *PotentialField3D) AddAttractor(position mgl64.Vec3, strength float64) {
	f.attractors = append(f.attractors, attractor{position: position, strength: strength})
}

// AddRepulsor registers a hazard that pushes with the given strength inside
// radius and has no influence beyond it.
func (f *PotentialField3D) AddRepulsor(position mgl64.Vec3, strength, radius float64) {
	f.repulsors = append(f.repulsors, repulsor{position: position, strength: strength, radius: radius})
}

// AddObstacle registers a point obstacle with fixed repulsion strength.
func (f *PotentialField3D) AddObstacle(position mgl64.Vec3) {
	f.obstacles = append(f.obstacles, position)
}

// Clear removes all attractors, repulsors, and obstacles.
func (f *PotentialField3D) Clear() {
	f.attractors = f.attractors[:0]
	f.repulsors = f.repulsors[:0]
	f.obstacles = f.obstacles[:0]
}

// Potential evaluates the field at a point. Lower values are more
// attractive.
func (f *PotentialField3D) Potential(p mgl64.Vec3) float64 {
	potential := 0.0

	for _, a := range f.attractors {
		dist := p.Sub(a.position).Len()
		potential -= a.strength / (dist + fieldSoftening)
	}
	for _, r := range f.repulsors {
		dist := p.Sub(r.position).Len()
		if dist < r.radius {
			potential += r.strength * (1/(dist+fieldSoftening) - 1/r.radius)
		}
	}
	for _, o := range f.obstacles {
		dist := p.Sub(o).Len()
		potential += obstacleStrength / (dist + fieldSoftening)
	}
	return potential
}

// SampleGradient returns the unit descent direction at a point, estimated
// by central differences. Flat regions yield the zero vector.
func (f *PotentialField3D) SampleGradient(p mgl64.Vec3) mgl64.Vec3 {
	var gradient mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		hi := p
		lo := p
		hi[axis] += gradientEpsilon
		lo[axis] -= gradientEpsilon
		gradient[axis] = (f.Potential(hi) - f.Potential(lo)) / (2 * gradientEpsilon)
	}
	return vmath.SafeNormalize(gradient.Mul(-1))
}

// Flow field edge costs. Integer weights keep the Dijkstra pass exact:
// orthogonal neighbors cost 10 and diagonal 14, approximating sqrt(2).
const (
	flowOrthogonalCost = 10
	flowDiagonalCost   = 14
)

// Unreachable is the cost reported for cells no goal can reach.
const Unreachable = 1<<30 - 1

type distEntry struct {
	idx  int
	dist int
}

// distHeap is a binary min-heap over integer distances.
type distHeap []distEntry

func (h *distHeap) push(e distEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *distHeap) pop() distEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FlowField precomputes, for every cell of a grid, the direction toward the
// nearest goal. One Compute pass serves any number of agents afterwards:
// each agent just reads the direction under its feet, which is what makes
// flow fields cheaper than per-agent searches for crowds sharing a
// destination.
type FlowField struct {
	width, height int
	blocked       []bool
	costs         []int
	directions    []mgl64.Vec2
	goals         [][2]int

	heap distHeap
}

// NewFlowField returns an empty field of the given dimensions with no goals
// and every cell open.
func NewFlowField(width, height int) *FlowField {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	f := &FlowField{
		width:      width,
		height:     height,
		blocked:    make([]bool, size),
		costs:      make([]int, size),
		directions: make([]mgl64.Vec2, size),
		heap:       make(distHeap, 0, size/4+1),
	}
	for i := range f.costs {
		f.costs[i] = Unreachable
	}
	return f
}

// Width returns the field width in cells.
func (f *FlowField) Width() int { return f.width }

// Height returns the field height in cells.
func (f *FlowField) Height() int { return f.height }

// SetBlocked marks a cell impassable or open. Out-of-bounds writes are
// ignored. Compute must run again for the change to take effect.
func (f *FlowField) SetBlocked(x, y int, blocked bool) {
	if f.inBounds(x, y) {
		f.blocked[y*f.width+x] = blocked
	}
}

// AddGoal registers a goal cell. Out-of-bounds goals are ignored.
func (f *FlowField) AddGoal(x, y int) {
	if f.inBounds(x, y) {
		f.goals = append(f.goals, [2]int{x, y})
	}
}

// ClearGoals removes all goals.
func (f *FlowField) ClearGoals() {
	f.goals = f.goals[:0]
}

// Compute runs a multi-source Dijkstra from every goal, then derives each
// cell's direction from the cost gradient. Cells no goal can reach keep
// cost Unreachable and the zero direction.
func (f *FlowField) Compute() {
	for i := range f.costs {
		f.costs[i] = Unreachable
		f.directions[i] = mgl64.Vec2{}
	}

	f.heap = f.heap[:0]
	for _, goal := range f.goals {
		idx := goal[1]*f.width + goal[0]
		f.costs[idx] = 0
		f.heap.push(distEntry{idx: idx, dist: 0})
	}

	for len(f.heap) > 0 {
		entry := f.heap.pop()
		if entry.dist > f.costs[entry.idx] {
			continue
		}

		cx := entry.idx % f.width
		cy := entry.idx / f.width

		for i := 0; i < 8; i++ {
			nx := cx + neighborOffsets[i][0]
			ny := cy + neighborOffsets[i][1]
			if !f.inBounds(nx, ny) || f.blocked[ny*f.width+nx] {
				continue
			}

			stepCost := flowOrthogonalCost
			if i >= 4 {
				stepCost = flowDiagonalCost
			}
			nIdx := ny*f.width + nx
			if next := entry.dist + stepCost; next < f.costs[nIdx] {
				f.costs[nIdx] = next
				f.heap.push(distEntry{idx: nIdx, dist: next})
			}
		}
	}

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			idx := y*f.width + x
			if f.blocked[idx] || f.costs[idx] == Unreachable {
				continue
			}

			best := f.costs[idx]
			bestDx, bestDy := 0, 0
			for i := 0; i < 8; i++ {
				nx := x + neighborOffsets[i][0]
				ny := y + neighborOffsets[i][1]
				if !f.inBounds(nx, ny) {
					continue
				}
				if c := f.costs[ny*f.width+nx]; c < best {
					best = c
					bestDx = neighborOffsets[i][0]
					bestDy = neighborOffsets[i][1]
				}
			}

			if length := math.Sqrt(float64(bestDx*bestDx + bestDy*bestDy)); length > 0 {
				f.directions[idx] = mgl64.Vec2{float64(bestDx) / length, float64(bestDy) / length}
			}
		}
	}
}

// Direction returns the unit step toward the nearest goal, or the zero
// vector for blocked, unreachable, goal, or out-of-bounds cells.
func (f *FlowField) Direction(x, y int) mgl64.Vec2 {
	if !f.inBounds(x, y) {
		return mgl64.Vec2{}
	}
	return f.directions[y*f.width+x]
}

// Cost returns the weighted distance to the nearest goal, or Unreachable.
func (f *FlowField) Cost(x, y int) int {
	if !f.inBounds(x, y) {
		return Unreachable
	}
	return f.costs[y*f.width+x]
}

func (f *FlowField) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}
