//go:build ebiten

package ui

import (
	"image/color"
	"math"
	"strconv"

	"turmites/internal/render"
	"turmites/internal/rules"
	"turmites/internal/turmite"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// minMarkerScale is the cell size below which heading markers are skipped.
const minMarkerScale = 4

// Overlay draws optional visuals on top of the grid: heading markers for
// each ant and a color legend.
type Overlay struct {
	showHeadings bool
	showLegend   bool
	pixel        *ebiten.Image
	message      string
	messageTTL   int
}

// NewOverlay constructs an overlay with heading markers enabled.
func NewOverlay() *Overlay {
	o := &Overlay{showHeadings: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers and ages the status message.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHeadings = !o.showHeadings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showLegend = !o.showLegend
	}
	if o.messageTTL > 0 {
		o.messageTTL--
	}
}

// Flash shows msg in the corner for ttl frames.
func (o *Overlay) Flash(msg string, ttl int) {
	o.message, o.messageTTL = msg, ttl
}

// Draw renders the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image, cam *render.Camera, s *turmite.SimulationState) {
	if o.showHeadings && cam.Scale >= minMarkerScale {
		o.drawHeadings(screen, cam, s.Ants)
	}
	if o.showLegend {
		o.drawLegend(screen, s.Rules)
	}
	if o.messageTTL > 0 && o.message != "" {
		h := screen.Bounds().Dy()
		text.Draw(screen, o.message, basicfont.Face7x13, 8, h-8, color.RGBA{R: 255, G: 200, B: 80, A: 255})
	}
}

func (o *Overlay) drawHeadings(screen *ebiten.Image, cam *render.Camera, ants []turmite.Ant) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	half := cam.Scale / 2
	for i := range ants {
		a := &ants[i]
		cx, cy := cam.WorldToScreen(float64(a.Pos.X), float64(a.Pos.Y))
		cx += half
		cy += half
		if cx < 0 || cy < 0 || cx >= float64(w) || cy >= float64(h) {
			continue
		}
		v := a.Heading.Vector()
		tip := half * 0.9
		col := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if a.Halted() {
			col = color.RGBA{R: 120, G: 120, B: 130, A: 255}
		}
		o.drawLine(screen, cx, cy, cx+float64(v.X)*tip, cy+float64(v.Y)*tip, math.Max(1, cam.Scale/6), col)
	}
}

func (o *Overlay) drawLegend(screen *ebiten.Image, t rules.Table) {
	const swatch = 14
	face := basicfont.Face7x13
	n := min(max(t.MaxColor()+1, 1), len(render.Palette))
	x, y := 8.0, 8.0
	for c := 0; c < n; c++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(swatch, swatch)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(render.ColorFor(c))
		screen.DrawImage(o.pixel, op)
		text.Draw(screen, strconv.Itoa(c), face, int(x)+swatch+4, int(y)+swatch-2, color.White)
		y += swatch + 4
	}
	text.Draw(screen, rules.MoveLegend, face, 8, int(y)+12, color.RGBA{R: 200, G: 200, B: 210, A: 255})
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
