//go:build ebiten

package app

import (
	"fmt"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/presets"
	"turmites/internal/render"
	"turmites/internal/rules"
	"turmites/internal/sim"
	"turmites/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const flashFrames = 180

// Game adapts a simulation controller to the ebiten.Game interface.
type Game struct {
	ctrl    *sim.Controller
	painter *render.GridPainter
	camera  *render.Camera
	hud     *ui.HUD
	overlay *ui.Overlay

	initialScale float64
	rulesPath    string
	presetIndex  int

	viewW, viewH int
	dragging     bool
	lastX, lastY int
}

// New constructs a Game for ctrl using the view settings in cfg.
func New(ctrl *sim.Controller, cfg *config.Config) *Game {
	w := int(float64(cfg.View.Cols) * cfg.View.Scale)
	h := int(float64(cfg.View.Rows) * cfg.View.Scale)
	rulesPath := cfg.Simulation.RulesFile
	if rulesPath == "" {
		rulesPath = rules.DefaultFileName
	}
	return &Game{
		ctrl:         ctrl,
		painter:      render.NewGridPainter(w, h),
		camera:       render.NewCamera(cfg.View.Scale, w, h),
		hud:          ui.NewHUD(ctrl, ctrl, "Turmites", cfg.View.HUDWidth),
		overlay:      ui.NewOverlay(),
		initialScale: cfg.View.Scale,
		rulesPath:    rulesPath,
		viewW:        w,
		viewH:        h,
	}
}

// WindowSize returns the initial window dimensions including the HUD.
func (g *Game) WindowSize() (int, int) {
	return g.viewW + g.hud.Width(), g.viewH
}

// Update handles per-frame input and advances the simulation by whatever
// ticks are owed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.overlay.Update()
	onPanel := g.hud.Update(g.viewW)
	if !onPanel {
		g.handleMouse()
	}
	g.ctrl.Scheduler().Advance()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.ctrl.Toggle(); err != nil {
			g.overlay.Flash(err.Error(), flashFrames)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.Randomize()
		g.overlay.Flash(fmt.Sprintf("random rules: %d states, %d colors",
			g.ctrl.State().Rules.NumStates(), g.ctrl.State().Rules.NumColors()), flashFrames)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.nextPreset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.ctrl.SetSpeedInput(g.ctrl.SpeedInput() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.ctrl.SetSpeedInput(g.ctrl.SpeedInput() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.camera.Reset(g.initialScale, g.viewW, g.viewH)
		g.ctrl.State().Dirty.MarkAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.ctrl.SaveRulesFile(g.rulesPath); err != nil {
			g.overlay.Flash(err.Error(), flashFrames)
		} else {
			g.overlay.Flash("saved "+g.rulesPath, flashFrames)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.ctrl.LoadRulesFile(g.rulesPath); err != nil {
			g.overlay.Flash(err.Error(), flashFrames)
		} else {
			g.overlay.Flash("loaded "+g.rulesPath, flashFrames)
		}
	}
}

func (g *Game) nextPreset() {
	keys := presets.Keys()
	if len(keys) == 0 {
		return
	}
	g.presetIndex = (g.presetIndex + 1) % len(keys)
	if err := g.ctrl.LoadPreset(keys[g.presetIndex]); err != nil {
		g.overlay.Flash(err.Error(), flashFrames)
		return
	}
	g.overlay.Flash(g.ctrl.PresetName(), flashFrames)
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 && mx < g.viewW {
		if g.camera.ZoomAt(float64(mx), float64(my), wy > 0) {
			g.ctrl.State().Dirty.MarkAll()
		}
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && mx < g.viewW:
		g.dragging = true
		g.lastX, g.lastY = mx, my
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if dx, dy := mx-g.lastX, my-g.lastY; dx != 0 || dy != 0 {
			g.camera.Pan(float64(dx), float64(dy))
			g.ctrl.State().Dirty.MarkAll()
			g.lastX, g.lastY = mx, my
		}
	default:
		g.dragging = false
	}
}

// Draw renders the grid, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	state := g.ctrl.State()
	g.painter.Draw(screen, g.camera, state)
	g.overlay.Draw(screen, g.camera, state)
	g.hud.Draw(screen, g.viewW, g.viewH)
}

// Layout tracks window resizes; the grid area is everything left of the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(outsideWidth-g.hud.Width(), 1)
	h := max(outsideHeight, 1)
	if g.painter.Resize(w, h) {
		g.viewW, g.viewH = w, h
		g.ctrl.SetViewSize(core.Size{
			W: max(int(float64(w)/g.camera.Scale), 1),
			H: max(int(float64(h)/g.camera.Scale), 1),
		})
		g.ctrl.State().Dirty.MarkAll()
	}
	return outsideWidth, outsideHeight
}
