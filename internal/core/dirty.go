package core

// Invalidation collects the cells a renderer must repaint. Marks are
// deduplicated; the full flag asks for a repaint of the whole visible region.
type Invalidation struct {
	cells map[Point]struct{}
	full  bool
}

// NewInvalidation returns an empty invalidation set with the full flag raised
// so the first frame paints everything.
func NewInvalidation() *Invalidation {
	return &Invalidation{cells: make(map[Point]struct{}), full: true}
}

// Mark queues p for repaint.
func (inv *Invalidation) Mark(p Point) {
	if inv.full {
		return
	}
	inv.cells[p] = struct{}{}
}

// MarkAll requests a full repaint and drops individual marks.
func (inv *Invalidation) MarkAll() {
	inv.full = true
	clear(inv.cells)
}

// Full reports whether a full repaint is pending.
func (inv *Invalidation) Full() bool { return inv.full }

// Len returns the number of individually marked cells.
func (inv *Invalidation) Len() int { return len(inv.cells) }

// Drain visits every marked cell and empties the set. The full flag is left
// alone; renderers clear it with Reset once the whole region is repainted.
func (inv *Invalidation) Drain(fn func(Point)) {
	for p := range inv.cells {
		if fn != nil {
			fn(p)
		}
	}
	clear(inv.cells)
}

// Reset clears both the marked cells and the full flag.
func (inv *Invalidation) Reset() {
	inv.full = false
	clear(inv.cells)
}
