package pathfind

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type graphEdge struct {
	to     int
	weight float64
}

// NavGraph is an append-only graph of positioned waypoints with directed
// weighted edges. Node ids are the order of insertion.
type NavGraph struct {
	positions []mgl64.Vec3
	edges     [][]graphEdge
}

// NewNavGraph returns an empty graph.
func NewNavGraph() *NavGraph {
	return &NavGraph{}
}

// AddNode appends a node at the given position and returns its id.
func (g *NavGraph) AddNode(position mgl64.Vec3) int {
	g.positions = append(g.positions, position)
	g.edges = append(g.edges, nil)
	return len(g.positions) - 1
}

// AddEdge adds a directed edge. A negative weight is replaced by the
// euclidean distance between the endpoints. Edges naming unknown nodes are
// dropped.
func (g *NavGraph) AddEdge(from, to int, weight float64) {
	if !g.valid(from) || !g.valid(to) {
		return
	}
	if weight < 0 {
		weight = g.positions[to].Sub(g.positions[from]).Len()
	}
	g.edges[from] = append(g.edges[from], graphEdge{to: to, weight: weight})
}

// AddBidirectionalEdge adds the edge in both directions.
func (g *NavGraph) AddBidirectionalEdge(a, b int, weight float64) {
	g.AddEdge(a, b, weight)
	g.AddEdge(b, a, weight)
}

// Len returns the number of nodes.
func (g *NavGraph) Len() int { return len(g.positions) }

// Position returns the position of a node, or the zero vector for an
// unknown id.
func (g *NavGraph) Position(id int) mgl64.Vec3 {
	if !g.valid(id) {
		return mgl64.Vec3{}
	}
	return g.positions[id]
}

// Clear removes all nodes and edges.
func (g *NavGraph) Clear() {
	g.positions = g.positions[:0]
	g.edges = g.edges[:0]
}

func (g *NavGraph) valid(id int) bool {
	return id >= 0 && id < len(g.positions)
}

// AStarGraph finds a cheapest node sequence from start to goal, guided by
// straight-line distance to the goal position. Unknown ids yield
// Found == false.
func AStarGraph(g *NavGraph, start, goal int) GraphResult {
	if !g.valid(start) || !g.valid(goal) {
		return GraphResult{}
	}
	goalPos := g.positions[goal]
	return searchGraph(g, start, goal, func(id int) float64 {
		return g.positions[id].Sub(goalPos).Len()
	})
}

// DijkstraGraph finds a cheapest node sequence from start to goal without a
// heuristic.
func DijkstraGraph(g *NavGraph, start, goal int) GraphResult {
	if !g.valid(start) || !g.valid(goal) {
		return GraphResult{}
	}
	return searchGraph(g, start, goal, func(id int) float64 { return 0 })
}

func searchGraph(g *NavGraph, start, goal int, heuristic func(id int) float64) GraphResult {
	size := g.Len()
	gScore := make([]float64, size)
	cameFrom := make([]int, size)
	for i := 0; i < size; i++ {
		gScore[i] = math.Inf(1)
		cameFrom[i] = -1
	}
	gScore[start] = 0

	open := make(openHeap, 0, 16)
	open.push(openEntry{idx: start, g: 0, f: heuristic(start)})

	for len(open) > 0 {
		current := open.pop()

		if current.idx == goal {
			var nodes []int
			for id := goal; id >= 0; id = cameFrom[id] {
				nodes = append(nodes, id)
			}
			for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
				nodes[i], nodes[j] = nodes[j], nodes[i]
			}
			return GraphResult{Found: true, Cost: gScore[goal], Nodes: nodes}
		}
		if current.g > gScore[current.idx] {
			continue
		}

		for _, edge := range g.edges[current.idx] {
			tentative := gScore[current.idx] + edge.weight
			if tentative < gScore[edge.to] {
				gScore[edge.to] = tentative
				cameFrom[edge.to] = current.idx
				open.push(openEntry{idx: edge.to, g: tentative, f: tentative + heuristic(edge.to)})
			}
		}
	}
	return GraphResult{}
}
