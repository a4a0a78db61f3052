package render

import (
	"math"

	"turmites/internal/core"
)

// Camera limits.
const (
	InitialScale = 8.0
	MinScale     = 0.1
	MaxScale     = 50.0
	ZoomFactor   = 1.1
)

// Camera maps world cells to screen pixels: screen = offset + world*scale.
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewCamera returns a camera at scale with the world origin at the center
// of a w×h screen.
func NewCamera(scale float64, w, h int) *Camera {
	c := &Camera{Scale: clampScale(scale)}
	c.Center(w, h)
	return c
}

func clampScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) {
		return InitialScale
	}
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// Center puts the world origin in the middle of a w×h screen.
func (c *Camera) Center(w, h int) {
	c.OffsetX = math.Floor(float64(w)/2 - c.Scale/2)
	c.OffsetY = math.Floor(float64(h)/2 - c.Scale/2)
}

// Reset restores scale and centers the origin.
func (c *Camera) Reset(scale float64, w, h int) {
	c.Scale = clampScale(scale)
	c.Center(w, h)
}

// ScreenToWorld converts a screen position to fractional world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.OffsetX) / c.Scale, (sy - c.OffsetY) / c.Scale
}

// WorldToScreen converts world coordinates to a screen position.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return c.OffsetX + wx*c.Scale, c.OffsetY + wy*c.Scale
}

// CellAt returns the world cell under a screen position.
func (c *Camera) CellAt(sx, sy float64) core.Point {
	wx, wy := c.ScreenToWorld(sx, sy)
	return core.Point{X: int(math.Floor(wx)), Y: int(math.Floor(wy))}
}

// Pan shifts the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt scales by ZoomFactor (in) or its inverse, keeping the world point
// under (sx, sy) fixed. It reports whether the scale changed.
func (c *Camera) ZoomAt(sx, sy float64, in bool) bool {
	wx, wy := c.ScreenToWorld(sx, sy)
	next := c.Scale / ZoomFactor
	if in {
		next = c.Scale * ZoomFactor
	}
	next = math.Min(MaxScale, math.Max(MinScale, next))
	if next == c.Scale {
		return false
	}
	c.Scale = next
	c.OffsetX = sx - wx*next
	c.OffsetY = sy - wy*next
	return true
}

// CellRect returns the pixel rectangle [x0,x1)×[y0,y1) covered by cell p.
func (c *Camera) CellRect(p core.Point) (x0, y0, x1, y1 int) {
	px, py := c.WorldToScreen(float64(p.X), float64(p.Y))
	x0, y0 = int(math.Floor(px)), int(math.Floor(py))
	size := int(math.Ceil(c.Scale))
	return x0, y0, x0 + size, y0 + size
}

// Visible returns the inclusive range of cells intersecting a w×h screen.
func (c *Camera) Visible(w, h int) (lo, hi core.Point) {
	lo = c.CellAt(0, 0)
	hi = c.CellAt(float64(w-1), float64(h-1))
	return lo, hi
}
