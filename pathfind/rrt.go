package pathfind

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// goalBias is the goal sampling rate denominator: one in every goalBias
// iterations samples the goal itself, pulling tree growth toward the target.
const goalBias = 10

type rrtObstacle struct {
	center mgl64.Vec3
	radius float64
}

// RRTResult is the outcome of a tree search through continuous space.
// Points holds the waypoint positions from start to goal inclusive; it is
// empty when Found is false.
type RRTResult struct {
	Found  bool
	Cost   float64
	Points []mgl64.Vec3
}

// RRT grows a rapidly-exploring random tree through a bounded volume,
// avoiding sphere obstacles. StepSize bounds the length of each new branch
// and MaxIterations bounds the sampling budget; a search that exhausts the
// budget reports Found == false rather than a partial path.
type RRT struct {
	min, max  mgl64.Vec3
	obstacles []rrtObstacle

	StepSize      float64
	MaxIterations int
}

// NewRRT returns a planner over the axis-aligned volume spanned by min and
// max, with step size 1 and a 1000 iteration budget.
func NewRRT(min, max mgl64.Vec3) *RRT {
	return &RRT{
		min:           min,
		max:           max,
		StepSize:      1,
		MaxIterations: 1000,
	}
}

// AddObstacle registers a sphere the tree must not enter.
func (r *RRT) AddObstacle(center mgl64.Vec3, radius float64) {
	r.obstacles = append(r.obstacles, rrtObstacle{center: center, radius: radius})
}

// ClearObstacles removes all obstacles.
func (r *RRT) ClearObstacles() {
	r.obstacles = r.obstacles[:0]
}

func (r *RRT) colliding(p mgl64.Vec3) bool {
	for _, o := range r.obstacles {
		if p.Sub(o.center).LenSqr() < o.radius*o.radius {
			return true
		}
	}
	return false
}

// segmentCollides samples the segment at half step-size granularity and
// reports whether any sample lands inside an obstacle.
func (r *RRT) segmentCollides(a, b mgl64.Vec3) bool {
	delta := b.Sub(a)
	steps := int(delta.Len()/(r.StepSize*0.5)) + 1
	for i := 0; i <= steps; i++ {
		p := a.Add(delta.Mul(float64(i) / float64(steps)))
		if r.colliding(p) {
			return true
		}
	}
	return false
}

// FindPath grows the tree from start until a branch lands within one step
// of the goal and connects collision-free. Sampling draws from rng, so runs
// with the same seed, volume, and obstacles reproduce the same tree.
func (r *RRT) FindPath(start, goal mgl64.Vec3, rng *vmath.Random) RRTResult {
	if r.colliding(start) || r.colliding(goal) {
		return RRTResult{}
	}

	type treeNode struct {
		pos    mgl64.Vec3
		parent int
	}
	tree := make([]treeNode, 0, 64)
	tree = append(tree, treeNode{pos: start, parent: -1})

	for iter := 0; iter < r.MaxIterations; iter++ {
		sample := goal
		if rng.IntRange(0, goalBias-1) != 0 {
			sample = rng.InVolume(r.min, r.max)
		}

		nearest := 0
		nearestDist := tree[0].pos.Sub(sample).LenSqr()
		for i := 1; i < len(tree); i++ {
			if d := tree[i].pos.Sub(sample).LenSqr(); d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}

		dir := vmath.SafeNormalize(sample.Sub(tree[nearest].pos))
		newPos := tree[nearest].pos.Add(dir.Mul(r.StepSize))

		if r.segmentCollides(tree[nearest].pos, newPos) {
			continue
		}
		tree = append(tree, treeNode{pos: newPos, parent: nearest})

		if newPos.Sub(goal).Len() < r.StepSize && !r.segmentCollides(newPos, goal) {
			tree = append(tree, treeNode{pos: goal, parent: len(tree) - 1})

			var points []mgl64.Vec3
			for idx := len(tree) - 1; idx >= 0; idx = tree[idx].parent {
				points = append(points, tree[idx].pos)
			}
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}

			cost := 0.0
			for i := 1; i < len(points); i++ {
				cost += points[i].Sub(points[i-1]).Len()
			}
			return RRTResult{Found: true, Cost: cost, Points: points}
		}
	}
	return RRTResult{}
}
