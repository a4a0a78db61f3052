package render

import (
	"math"
	"testing"

	"turmites/internal/core"
	"turmites/internal/rules"
	"turmites/internal/turmite"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(8, 800, 600)
	wx, wy := cam.ScreenToWorld(cam.WorldToScreen(12.5, -3))
	if math.Abs(wx-12.5) > 1e-9 || math.Abs(wy+3) > 1e-9 {
		t.Fatalf("round trip = (%v,%v)", wx, wy)
	}
	if p := cam.CellAt(400, 300); p != (core.Point{}) {
		t.Fatalf("center cell = %v, want origin", p)
	}
}

func TestZoomKeepsCursorAnchored(t *testing.T) {
	cam := NewCamera(8, 800, 600)
	bx, by := cam.ScreenToWorld(123, 456)
	if !cam.ZoomAt(123, 456, true) {
		t.Fatalf("zoom in reported no change")
	}
	if math.Abs(cam.Scale-8.8) > 1e-9 {
		t.Fatalf("scale = %v, want 8.8", cam.Scale)
	}
	ax, ay := cam.ScreenToWorld(123, 456)
	if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
		t.Fatalf("anchor moved from (%v,%v) to (%v,%v)", bx, by, ax, ay)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := NewCamera(MaxScale, 100, 100)
	if cam.ZoomAt(0, 0, true) {
		t.Fatalf("zoomed past max scale")
	}
	cam.Reset(MinScale, 100, 100)
	if cam.ZoomAt(0, 0, false) {
		t.Fatalf("zoomed past min scale")
	}
	if c := NewCamera(-1, 10, 10); c.Scale != InitialScale {
		t.Fatalf("invalid scale not replaced: %v", c.Scale)
	}
}

func TestColorForClamps(t *testing.T) {
	if ColorFor(40) != Palette[len(Palette)-1] {
		t.Fatalf("overflow color not clamped")
	}
	if ColorFor(-3) != Palette[0] {
		t.Fatalf("negative color not clamped")
	}
}

func TestPaintFullThenIncremental(t *testing.T) {
	s := turmite.NewState(rules.Langton())
	s.Reset([]turmite.Ant{{Heading: turmite.North}})
	cam := &Camera{Scale: 2, OffsetX: 10, OffsetY: 10}
	fb := NewFramebuffer(40, 40)

	Paint(fb, cam, s)
	if s.Dirty.Full() {
		t.Fatalf("full flag not cleared")
	}
	if fb.At(0, 0) != Palette[0] || fb.At(10, 10) != AntColor {
		t.Fatalf("full paint wrong: bg=%v ant=%v", fb.At(0, 0), fb.At(10, 10))
	}

	turmite.NewEngine(nil).Tick(s)
	if n := Paint(fb, cam, s); n != 2 {
		t.Fatalf("incremental paint touched %d cells, want 2", n)
	}
	if fb.At(10, 10) != Palette[1] {
		t.Fatalf("written cell = %v, want white", fb.At(10, 10))
	}
	if fb.At(12, 10) != AntColor {
		t.Fatalf("ant not drawn at its new cell")
	}
}

func TestPaintSkipsOffscreen(t *testing.T) {
	s := turmite.NewState(rules.Langton())
	s.Reset(nil)
	s.Grid.Set(1000, 1000, 3)
	s.Grid.Set(-1000, 0, 3)
	fb := NewFramebuffer(16, 16)
	if n := Paint(fb, &Camera{Scale: 1}, s); n != 0 {
		t.Fatalf("painted %d offscreen cells", n)
	}
}
