//go:build ebiten

package render

import (
	"turmites/internal/turmite"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps a persistent framebuffer on the GPU and uploads only
// after incremental repaints.
type GridPainter struct {
	fb  *Framebuffer
	img *ebiten.Image
}

// NewGridPainter allocates a painter for a w×h view.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.Resize(w, h)
	return gp
}

// Resize reallocates the buffers when the view size changes. It reports
// whether a reallocation happened, in which case callers should request a
// full redraw.
func (gp *GridPainter) Resize(w, h int) bool {
	if gp.fb != nil && gp.fb.W == w && gp.fb.H == h {
		return false
	}
	gp.fb = NewFramebuffer(w, h)
	gp.img = ebiten.NewImage(gp.fb.W, gp.fb.H)
	return true
}

// Draw repaints what changed and blits the result onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, cam *Camera, s *turmite.SimulationState) {
	Paint(gp.fb, cam, s)
	gp.img.WritePixels(gp.fb.Pix)
	dst.DrawImage(gp.img, &ebiten.DrawImageOptions{})
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.fb.W, gp.fb.H }
