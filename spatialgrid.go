package skiff

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordonnées d'une cellule dans l'espace 3D
type CellKey struct {
	X, Y, Z int
}

// Cell - Conteneur d'indices d'entrées dans une cellule
type Cell struct {
	indices []int
}

// SpatialGrid - Grille spatiale uniforme avec hashing pour broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructeur
// ============================================================================

// NewSpatialGrid - Crée une nouvelle grille spatiale
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Arrondit à la puissance de 2 supérieure
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - Insère une AABB dans toutes les cellules qu'elle occupe
func (sg *SpatialGrid) Insert(index int, box actor.AABB) {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].indices = append(sg.cells[cellIdx].indices, index)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].indices = sg.cells[i].indices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].indices) > 1 {
			sort.Ints(sg.cells[i].indices)
		}
	}
}

// FindPairs returns every index pair whose boxes overlap, each pair once,
// ordered deterministically: ascending first index, then scan order of the
// first index's cells.
func (sg *SpatialGrid) FindPairs(boxes []actor.AABB) [][2]int {
	pairs := make([][2]int, 0, len(boxes)/2)

	seen := make([]bool, len(boxes))
	clearSeen := make([]bool, len(boxes))

	for idx := range boxes {
		copy(seen, clearSeen)

		minCell := sg.worldToCell(boxes[idx].Min)
		maxCell := sg.worldToCell(boxes[idx].Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					cellIdx := sg.hashCell(CellKey{x, y, z})

					for _, otherIdx := range sg.cells[cellIdx].indices {
						// ========== ORDRE DÉTERMINISTE ==========
						if otherIdx <= idx || seen[otherIdx] {
							continue // Évite doublons (A,B) et (B,A)
						}
						seen[otherIdx] = true

						if boxes[idx].Overlaps(boxes[otherIdx]) {
							pairs = append(pairs, [2]int{idx, otherIdx})
						}
					}
				}
			}
		}
	}

	return pairs
}

// Candidates returns the deduplicated, ascending indices stored in the cells
// the query box covers. Hash collisions can make this a superset of the true
// neighborhood; callers filter with exact positions.
func (sg *SpatialGrid) Candidates(box actor.AABB) []int {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	var indices []int
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				indices = append(indices, sg.cells[cellIdx].indices...)
			}
		}
	}

	if len(indices) < 2 {
		return indices
	}
	sort.Ints(indices)

	n := 1
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1] {
			indices[n] = indices[i]
			n++
		}
	}
	return indices[:n]
}

// worldToCell - Convertit une position monde en coordonnées de cellule
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hash une cellule vers un index dans l'array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
