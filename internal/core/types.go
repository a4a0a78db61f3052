package core

// Color indexes a palette entry. The zero value is the default, never-visited
// color and is not stored by SparseGrid.
type Color = int

// DefaultColor is the color of every cell that has never been written.
const DefaultColor Color = 0

// Point is an integer coordinate on the unbounded plane.
type Point struct {
	X int
	Y int
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Size describes the dimensions of a viewport in cells.
type Size struct {
	W int
	H int
}
