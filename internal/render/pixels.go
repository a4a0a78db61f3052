package render

import (
	"image/color"

	"turmites/internal/core"
	"turmites/internal/turmite"
)

// Framebuffer is a w×h RGBA pixel buffer.
type Framebuffer struct {
	W, H int
	Pix  []byte
}

// NewFramebuffer allocates a cleared buffer.
func NewFramebuffer(w, h int) *Framebuffer {
	w, h = max(w, 1), max(h, 1)
	return &Framebuffer{W: w, H: h, Pix: make([]byte, 4*w*h)}
}

// fillRect paints [x0,x1)×[y0,y1), clipped to the buffer.
func (fb *Framebuffer) fillRect(x0, y0, x1, y1 int, col color.RGBA) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, fb.W), min(y1, fb.H)
	for y := y0; y < y1; y++ {
		row := y * fb.W * 4
		for x := x0; x < x1; x++ {
			base := row + x*4
			fb.Pix[base+0] = col.R
			fb.Pix[base+1] = col.G
			fb.Pix[base+2] = col.B
			fb.Pix[base+3] = col.A
		}
	}
}

// At returns the pixel color at (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA {
	base := (y*fb.W + x) * 4
	return color.RGBA{fb.Pix[base], fb.Pix[base+1], fb.Pix[base+2], fb.Pix[base+3]}
}

// Paint brings fb up to date with the world. With the full-redraw flag set
// it repaints the whole view and clears the flag; otherwise it repaints only
// the marked cells. Ants are drawn last. It returns the number of cells
// painted, ants excluded.
func Paint(fb *Framebuffer, cam *Camera, s *turmite.SimulationState) int {
	painted := 0
	if s.Dirty.Full() {
		fb.fillRect(0, 0, fb.W, fb.H, Palette[0])
		lo, hi := cam.Visible(fb.W, fb.H)
		for p, c := range s.Grid.All() {
			if p.X < lo.X || p.X > hi.X || p.Y < lo.Y || p.Y > hi.Y {
				continue
			}
			paintCell(fb, cam, p, ColorFor(c))
			painted++
		}
		s.Dirty.Reset()
	} else {
		s.Dirty.Drain(func(p core.Point) {
			paintCell(fb, cam, p, ColorFor(s.Grid.Get(p.X, p.Y)))
			painted++
		})
	}
	for i := range s.Ants {
		paintCell(fb, cam, s.Ants[i].Pos, AntColor)
	}
	return painted
}

func paintCell(fb *Framebuffer, cam *Camera, p core.Point, col color.RGBA) {
	x0, y0, x1, y1 := cam.CellRect(p)
	if x1 <= 0 || y1 <= 0 || x0 >= fb.W || y0 >= fb.H {
		return
	}
	fb.fillRect(x0, y0, x1, y1, col)
}
