package turmite

import (
	"testing"

	"turmites/internal/core"
	pcore "turmites/pkg/core"
)

func TestPlaceCenterSingleAntAtOrigin(t *testing.T) {
	got := Place(pcore.NewRNG(1), PlaceCenter, 1, core.Size{W: 100, H: 80})
	if len(got) != 1 || got[0] != (core.Point{}) {
		t.Fatalf("center placement = %v, want [(0,0)]", got)
	}
}

func TestPlaceModesStayInView(t *testing.T) {
	view := core.Size{W: 40, H: 30}
	for _, mode := range []Placement{PlaceCenter, PlaceRandom, PlaceGrid, PlaceRow} {
		pts := Place(pcore.NewRNG(2), mode, 64, view)
		if len(pts) != 64 {
			t.Fatalf("%s: got %d points", mode, len(pts))
		}
		for _, p := range pts {
			if p.X < -20 || p.X >= 20 || p.Y < -15 || p.Y >= 15 {
				t.Fatalf("%s: point %v outside view", mode, p)
			}
		}
	}
}

func TestPlaceRandomAvoidsCollisions(t *testing.T) {
	pts := Place(pcore.NewRNG(3), PlaceRandom, 50, core.Size{W: 20, H: 20})
	seen := map[core.Point]bool{}
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("duplicate position %v", p)
		}
		seen[p] = true
	}
}

func TestPlaceRowIsContiguous(t *testing.T) {
	pts := Place(pcore.NewRNG(4), PlaceRow, 5, core.Size{W: 40, H: 30})
	for i := 1; i < len(pts); i++ {
		if pts[i].X != pts[i-1].X+1 || pts[i].Y != pts[0].Y {
			t.Fatalf("row placement not contiguous: %v", pts)
		}
	}
}

func TestParseModes(t *testing.T) {
	if _, err := ParsePlacement("spiral"); err == nil {
		t.Fatalf("unknown placement accepted")
	}
	m, err := ParseHeadingMode("2")
	if err != nil || m.Random || m.Fixed != South {
		t.Fatalf("ParseHeadingMode(2) = %+v, %v", m, err)
	}
	if m, _ := ParseHeadingMode("random"); !m.Random {
		t.Fatalf("random heading mode not parsed")
	}
	if _, err := ParseHeadingMode("4"); err == nil {
		t.Fatalf("heading 4 accepted")
	}
}
