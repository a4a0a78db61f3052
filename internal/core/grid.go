package core

import "iter"

// SparseGrid stores colors for an unbounded 2D grid keyed by the full-width
// Point. Only non-default cells occupy memory; writing DefaultColor removes
// the entry.
type SparseGrid struct {
	cells map[Point]Color
}

// NewSparseGrid allocates an empty grid.
func NewSparseGrid() *SparseGrid {
	return &SparseGrid{cells: make(map[Point]Color)}
}

// Get returns the color at (x, y), or DefaultColor when the cell is unset.
func (g *SparseGrid) Get(x, y int) Color {
	return g.cells[Point{X: x, Y: y}]
}

// Set stores c at (x, y). Storing DefaultColor deletes the cell.
func (g *SparseGrid) Set(x, y int, c Color) {
	k := Point{X: x, Y: y}
	if c == DefaultColor {
		delete(g.cells, k)
		return
	}
	g.cells[k] = c
}

// Has reports whether (x, y) holds a non-default color.
func (g *SparseGrid) Has(x, y int) bool {
	_, ok := g.cells[Point{X: x, Y: y}]
	return ok
}

// Len returns the number of non-default cells.
func (g *SparseGrid) Len() int { return len(g.cells) }

// All yields every stored cell. Iteration order is unspecified.
func (g *SparseGrid) All() iter.Seq2[Point, Color] {
	return func(yield func(Point, Color) bool) {
		for p, c := range g.cells {
			if !yield(p, c) {
				return
			}
		}
	}
}

// Bounds returns the inclusive bounding box of stored cells. ok is false for
// an empty grid.
func (g *SparseGrid) Bounds() (lo, hi Point, ok bool) {
	for p := range g.All() {
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi, ok
}

// Clear removes every stored cell.
func (g *SparseGrid) Clear() {
	clear(g.cells)
}
