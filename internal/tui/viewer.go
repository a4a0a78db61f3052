// Package tui renders a simulation in a terminal, one character cell per
// world cell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"turmites/internal/core"
	"turmites/internal/render"
	"turmites/internal/sched"
	"turmites/internal/sim"
)

// AntRune marks ant positions.
const AntRune = '@'

// Viewer draws a controller's world on a tcell screen and maps keys to
// controller operations. All controller access happens on the loop
// goroutine.
type Viewer struct {
	screen tcell.Screen
	ctrl   *sim.Controller
	loop   *sched.Loop
	log    *slog.Logger

	offX, offY int
	styles     []tcell.Style
	antStyle   tcell.Style
	status     string
}

// New builds a viewer on an initialized screen. frame is the redraw
// interval while running.
func New(screen tcell.Screen, ctrl *sim.Controller, frame time.Duration, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Viewer{screen: screen, ctrl: ctrl, log: logger}
	v.styles = make([]tcell.Style, len(render.Palette))
	for i, c := range render.Palette {
		v.styles[i] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	v.antStyle = tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(render.AntColor.R), int32(render.AntColor.G), int32(render.AntColor.B))).
		Foreground(tcell.ColorWhite).Bold(true)
	v.loop = sched.NewLoop(ctrl.Scheduler(), v.Draw, frame, logger)
	v.Recenter()
	return v
}

// Loop exposes the loop hosting the controller.
func (v *Viewer) Loop() *sched.Loop { return v.loop }

// Run polls input and drives the simulation until ctx is cancelled or the
// user quits.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go v.pollEvents(cancel)
	v.loop.Post(func() { v.ctrl.State().Dirty.MarkAll() })
	err := v.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (v *Viewer) pollEvents(quit context.CancelFunc) {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.loop.Post(v.resize)
		case *tcell.EventKey:
			fn, done := v.Action(ev.Key(), ev.Rune())
			if done {
				quit()
				return
			}
			if fn != nil && !v.loop.Post(fn) {
				return
			}
		}
	}
}

// Action maps a key to the command it triggers; r is consulted for
// tcell.KeyRune. done reports a quit request.
func (v *Viewer) Action(key tcell.Key, r rune) (fn func(), done bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyLeft:
		return v.pan(1, 0), false
	case tcell.KeyRight:
		return v.pan(-1, 0), false
	case tcell.KeyUp:
		return v.pan(0, 1), false
	case tcell.KeyDown:
		return v.pan(0, -1), false
	case tcell.KeyRune:
	default:
		return nil, false
	}
	switch r {
	case 'q':
		return nil, true
	case ' ':
		return func() {
			if err := v.ctrl.Toggle(); err != nil {
				v.status = err.Error()
			}
		}, false
	case 'r':
		return v.ctrl.Reset, false
	case 'n':
		return v.ctrl.Randomize, false
	case '+', '=':
		return func() { v.ctrl.SetSpeedInput(v.ctrl.SpeedInput() + 1) }, false
	case '-':
		return func() { v.ctrl.SetSpeedInput(v.ctrl.SpeedInput() - 1) }, false
	case 'c':
		return func() {
			v.Recenter()
			v.ctrl.State().Dirty.MarkAll()
		}, false
	}
	return nil, false
}

func (v *Viewer) pan(dx, dy int) func() {
	return func() {
		v.offX += dx
		v.offY += dy
		v.ctrl.State().Dirty.MarkAll()
	}
}

func (v *Viewer) resize() {
	v.screen.Sync()
	w, h := v.gridSize()
	v.ctrl.SetViewSize(core.Size{W: w, H: h})
	v.ctrl.State().Dirty.MarkAll()
}

// gridSize is the screen area minus the status row.
func (v *Viewer) gridSize() (int, int) {
	w, h := v.screen.Size()
	return w, max(h-1, 0)
}

// Recenter puts the world origin in the middle of the grid area.
func (v *Viewer) Recenter() {
	w, h := v.gridSize()
	v.offX, v.offY = w/2, h/2
}

// ScreenCell returns the terminal cell showing world cell p and whether it
// is inside the grid area.
func (v *Viewer) ScreenCell(p core.Point) (int, int, bool) {
	w, h := v.gridSize()
	x, y := p.X+v.offX, p.Y+v.offY
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}

func (v *Viewer) setCell(p core.Point, c core.Color) {
	if x, y, ok := v.ScreenCell(p); ok {
		v.screen.SetContent(x, y, ' ', nil, v.styles[min(max(c, 0), len(v.styles)-1)])
	}
}

// Draw repaints changed cells, or everything after a full invalidation, then
// the ants and the status row.
func (v *Viewer) Draw() {
	s := v.ctrl.State()
	if s.Dirty.Full() {
		v.screen.Fill(' ', v.styles[0])
		for p, c := range s.Grid.All() {
			v.setCell(p, c)
		}
		s.Dirty.Reset()
	} else {
		s.Dirty.Drain(func(p core.Point) {
			v.setCell(p, s.Grid.Get(p.X, p.Y))
		})
	}
	for i := range s.Ants {
		if x, y, ok := v.ScreenCell(s.Ants[i].Pos); ok {
			v.screen.SetContent(x, y, AntRune, nil, v.antStyle)
		}
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	s := v.ctrl.State()
	name := v.ctrl.PresetName()
	if name == "" {
		name = "custom"
	}
	line := fmt.Sprintf(" %s | speed %d (%.0f/s) | tick %d | ants %d | %s",
		v.ctrl.Scheduler().State(), v.ctrl.SpeedInput(), v.ctrl.Scheduler().Speed(),
		s.Ticks, len(s.Ants), name)
	if v.status != "" {
		line += " | " + v.status
	}
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, h-1, r, nil, style)
	}
}
