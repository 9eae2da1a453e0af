package scene

import (
	"math"
	"sort"
)

// Grid is a uniform spatial hash over the ground plane (x, z). Boxes are
// keyed by the cell holding their centre. With a cell size at least as large
// as the widest box, any two boxes that overlap sit in the same or
// neighbouring cells, so a 3x3 neighbourhood is a complete broad phase.
// Accessed only from the tick loop goroutine; no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]int
	keys     []cellKey // keys[i] is the cell of item i
}

type cellKey struct {
	cx, cz int32
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cellKey][]int)}
}

// Reset empties the grid and sets the cell size. Non-positive sizes become 1.
func (g *Grid) Reset(cellSize float64) {
	if !(cellSize > 0) {
		cellSize = 1
	}
	g.cellSize = cellSize
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.keys = g.keys[:0]
}

func (g *Grid) key(b Box) cellKey {
	cx := (b.Min.X + b.Max.X) / 2
	cz := (b.Min.Z + b.Max.Z) / 2
	return cellKey{
		cx: int32(math.Floor(cx / g.cellSize)),
		cz: int32(math.Floor(cz / g.cellSize)),
	}
}

// Add inserts item i. Items must be added in ascending order starting at 0.
func (g *Grid) Add(i int, b Box) {
	k := g.key(b)
	g.keys = append(g.keys, k)
	g.cells[k] = append(g.cells[k], i)
}

// Nearby appends to dst every item in the 3x3 neighbourhood of item i whose
// index is greater than i, in ascending order.
func (g *Grid) Nearby(i int, dst []int) []int {
	k := g.keys[i]
	start := len(dst)
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for _, j := range g.cells[cellKey{cx: k.cx + dx, cz: k.cz + dz}] {
				if j > i {
					dst = append(dst, j)
				}
			}
		}
	}
	sort.Ints(dst[start:])
	return dst
}

// Span returns the widest x or z extent among boxes, the smallest cell size
// that keeps Nearby complete.
func Span(boxes []Box) float64 {
	var span float64
	for _, b := range boxes {
		span = math.Max(span, math.Max(b.Max.X-b.Min.X, b.Max.Z-b.Min.Z))
	}
	return span
}
