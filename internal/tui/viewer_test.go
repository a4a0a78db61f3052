package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/sched"
	"turmites/internal/sim"
)

func newViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 21)

	ctrl, err := sim.New(config.Default(), core.NewManualClock(time.Unix(0, 0)), nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return New(screen, ctrl, 0, nil), screen
}

func TestRecenterPutsOriginMidScreen(t *testing.T) {
	v, _ := newViewer(t)
	x, y, ok := v.ScreenCell(core.Point{})
	if !ok || x != 20 || y != 10 {
		t.Fatalf("origin at (%d,%d,%v), want (20,10,true)", x, y, ok)
	}
	if _, _, ok := v.ScreenCell(core.Point{X: 0, Y: 10}); ok {
		t.Fatalf("status row reported as grid area")
	}
}

func TestDrawShowsAntAndWrittenCell(t *testing.T) {
	v, screen := newViewer(t)
	v.Draw()
	if r, _, _, _ := screen.GetContent(20, 10); r != AntRune {
		t.Fatalf("ant rune = %q, want %q", r, AntRune)
	}
	if v.ctrl.State().Dirty.Full() {
		t.Fatalf("full redraw flag not cleared")
	}

	if _, ticks := v.ctrl.Scheduler().Advance(); ticks != 1 {
		t.Fatalf("advance ran %d ticks, want 1", ticks)
	}
	v.Draw()
	r, _, style, _ := screen.GetContent(20, 10)
	if r == AntRune {
		t.Fatalf("ant still drawn at origin after stepping")
	}
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(0xff, 0xff, 0xff) {
		t.Fatalf("written cell background = %v, want white", bg)
	}
	if r, _, _, _ := screen.GetContent(21, 10); r != AntRune {
		t.Fatalf("ant not drawn at its new cell")
	}
}

func TestActionKeys(t *testing.T) {
	v, _ := newViewer(t)
	if _, done := v.Action(tcell.KeyRune, 'q'); !done {
		t.Fatalf("q did not quit")
	}
	if _, done := v.Action(tcell.KeyEscape, 0); !done {
		t.Fatalf("Esc did not quit")
	}

	fn, _ := v.Action(tcell.KeyRune, '+')
	speed := v.ctrl.SpeedInput()
	fn()
	if v.ctrl.SpeedInput() != speed+1 {
		t.Fatalf("speed input = %d, want %d", v.ctrl.SpeedInput(), speed+1)
	}

	fn, _ = v.Action(tcell.KeyRune, ' ')
	fn()
	if v.ctrl.Scheduler().State() != sched.Paused {
		t.Fatalf("space did not pause: %v", v.ctrl.Scheduler().State())
	}

	fn, _ = v.Action(tcell.KeyLeft, 0)
	fn()
	if x, _, _ := v.ScreenCell(core.Point{}); x != 21 {
		t.Fatalf("pan left moved origin to x=%d, want 21", x)
	}
	if !v.ctrl.State().Dirty.Full() {
		t.Fatalf("pan did not request a full redraw")
	}

	fn, _ = v.Action(tcell.KeyRune, 'c')
	fn()
	if x, _, _ := v.ScreenCell(core.Point{}); x != 20 {
		t.Fatalf("recenter left origin at x=%d", x)
	}
}
