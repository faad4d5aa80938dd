package pathfind

import "math"

// openEntry is a frontier node in a best-first search. idx is the flat cell
// index (or node id), g the cost from the start, and f the heap priority
// (g plus heuristic).
type openEntry struct {
	idx  int
	g, f float64
}

// openHeap is a binary min-heap ordered by f, with ties resolved to the
// lower index so expansion order never depends on insertion order.
type openHeap []openEntry

func (h openHeap) less(a, b openEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.idx < b.idx
}

func (h *openHeap) push(e openEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less((*h)[i], (*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *openHeap) pop() openEntry {
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
		if right := left + 1; right < len(*h) && h.less((*h)[right], (*h)[left]) {
			smallest = right
		}
		if !h.less((*h)[smallest], (*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// octileDistance underestimates the weighted path length between two cells
// when diagonal moves are allowed: the long axis costs 1 per step and the
// remainder rides along diagonals for 0.414 extra each.
func octileDistance(x, y, goalX, goalY int) float64 {
	dx := abs(x - goalX)
	dy := abs(y - goalY)
	return float64(max(dx, dy)) + 0.414*float64(min(dx, dy))
}

// manhattanDistance underestimates the path length when only orthogonal
// moves are allowed.
func manhattanDistance(x, y, goalX, goalY int) float64 {
	return float64(abs(x-goalX) + abs(y-goalY))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AStarGrid finds a cheapest path between two cells. Stepping into a cell
// costs 1 orthogonally or 1.414 diagonally, times the destination cell's
// cost multiplier. A blocked start or goal yields Found == false.
func AStarGrid(g *Grid2D, start, goal [2]int, diagonal bool) PathResult {
	heuristic := manhattanDistance
	if diagonal {
		heuristic = octileDistance
	}
	return searchGrid(g, start, goal, diagonal, heuristic)
}

// DijkstraGrid finds a cheapest path between two cells without a heuristic.
// It expands more cells than AStarGrid but reaches the same cost.
func DijkstraGrid(g *Grid2D, start, goal [2]int, diagonal bool) PathResult {
	return searchGrid(g, start, goal, diagonal, func(x, y, goalX, goalY int) float64 {
		return 0
	})
}

func searchGrid(g *Grid2D, start, goal [2]int, diagonal bool, heuristic func(x, y, goalX, goalY int) float64) PathResult {
	if g.Blocked(start[0], start[1]) || g.Blocked(goal[0], goal[1]) {
		return PathResult{}
	}

	size := g.width * g.height
	gScore := make([]float64, size)
	cameFrom := make([]int, size)
	for i := 0; i < size; i++ {
		gScore[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	startIdx := g.index(start[0], start[1])
	goalIdx := g.index(goal[0], goal[1])
	gScore[startIdx] = 0

	open := make(openHeap, 0, 64)
	open.push(openEntry{idx: startIdx, g: 0, f: heuristic(start[0], start[1], goal[0], goal[1])})

	neighbors := 4
	if diagonal {
		neighbors = 8
	}

	for len(open) > 0 {
		current := open.pop()

		if current.idx == goalIdx {
			return PathResult{
				Found: true,
				Cost:  gScore[goalIdx],
				Cells: reconstructCells(g, cameFrom, goalIdx),
			}
		}
		if current.g > gScore[current.idx] {
			continue
		}

		cx := current.idx % g.width
		cy := current.idx / g.width

		for i := 0; i < neighbors; i++ {
			nx := cx + neighborOffsets[i][0]
			ny := cy + neighborOffsets[i][1]
			if g.Blocked(nx, ny) {
				continue
			}

			moveCost := orthogonalStepCost
			if i >= 4 {
				moveCost = diagonalStepCost
			}
			nIdx := g.index(nx, ny)
			tentative := gScore[current.idx] + moveCost*g.Cost(nx, ny)

			if tentative < gScore[nIdx] {
				gScore[nIdx] = tentative
				cameFrom[nIdx] = current.idx
				open.push(openEntry{idx: nIdx, g: tentative, f: tentative + heuristic(nx, ny, goal[0], goal[1])})
			}
		}
	}
	return PathResult{}
}

// BFSGrid finds a path with the fewest steps, ignoring cell costs. Cost is
// the hop count.
func BFSGrid(g *Grid2D, start, goal [2]int, diagonal bool) PathResult {
	if g.Blocked(start[0], start[1]) || g.Blocked(goal[0], goal[1]) {
		return PathResult{}
	}

	size := g.width * g.height
	cameFrom := make([]int, size)
	visited := make([]bool, size)
	for i := 0; i < size; i++ {
		cameFrom[i] = -1
	}

	startIdx := g.index(start[0], start[1])
	goalIdx := g.index(goal[0], goal[1])
	visited[startIdx] = true

	queue := make([]int, 0, 64)
	queue = append(queue, startIdx)

	neighbors := 4
	if diagonal {
		neighbors = 8
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == goalIdx {
			cells := reconstructCells(g, cameFrom, goalIdx)
			return PathResult{
				Found: true,
				Cost:  float64(len(cells) - 1),
				Cells: cells,
			}
		}

		cx := current % g.width
		cy := current / g.width

		for i := 0; i < neighbors; i++ {
			nx := cx + neighborOffsets[i][0]
			ny := cy + neighborOffsets[i][1]
			if g.Blocked(nx, ny) {
				continue
			}
			nIdx := g.index(nx, ny)
			if visited[nIdx] {
				continue
			}
			visited[nIdx] = true
			cameFrom[nIdx] = current
			queue = append(queue, nIdx)
		}
	}
	return PathResult{}
}

// reconstructCells walks predecessor links back from the goal and returns
// the path in start-to-goal order.
func reconstructCells(g *Grid2D, cameFrom []int, goalIdx int) [][2]int {
	var cells [][2]int
	for idx := goalIdx; idx >= 0; idx = cameFrom[idx] {
		cells = append(cells, [2]int{idx % g.width, idx / g.width})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
