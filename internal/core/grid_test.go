package core

import "testing"

func TestSparseGridDefaultsEverywhere(t *testing.T) {
	g := NewSparseGrid()
	points := []Point{{0, 0}, {-1, -1}, {100000, 200000}, {-2147483648, 2147483647}}
	for _, p := range points {
		if got := g.Get(p.X, p.Y); got != DefaultColor {
			t.Fatalf("Get(%d,%d) = %d, want default", p.X, p.Y, got)
		}
		if g.Has(p.X, p.Y) {
			t.Fatalf("Has(%d,%d) on empty grid", p.X, p.Y)
		}
	}
	if g.Len() != 0 {
		t.Fatalf("Len = %d, want 0", g.Len())
	}
}

func TestSparseGridSetDefaultDeletes(t *testing.T) {
	g := NewSparseGrid()
	g.Set(3, -4, 2)
	g.Set(-7, 9, 5)
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	g.Set(3, -4, DefaultColor)
	if g.Len() != 1 {
		t.Fatalf("Len after delete = %d, want 1", g.Len())
	}
	if g.Has(3, -4) {
		t.Fatalf("cell (3,-4) should be gone")
	}
	if got := g.Get(-7, 9); got != 5 {
		t.Fatalf("Get(-7,9) = %d, want 5", got)
	}
	g.Set(100, 100, DefaultColor)
	if g.Len() != 1 {
		t.Fatalf("writing default to empty cell changed Len to %d", g.Len())
	}
}

func TestSparseGridNegativeKeysDoNotCollide(t *testing.T) {
	g := NewSparseGrid()
	g.Set(-1, 0, 1)
	g.Set(0, -1, 2)
	g.Set(1, -1, 3)
	g.Set(-1, 1, 4)
	want := map[Point]Color{{-1, 0}: 1, {0, -1}: 2, {1, -1}: 3, {-1, 1}: 4}
	seen := 0
	for p, c := range g.All() {
		if want[p] != c {
			t.Fatalf("All yielded %v=%d, want %d", p, c, want[p])
		}
		seen++
	}
	if seen != len(want) {
		t.Fatalf("All yielded %d cells, want %d", seen, len(want))
	}
}

func TestSparseGridBoundsAndClear(t *testing.T) {
	g := NewSparseGrid()
	if _, _, ok := g.Bounds(); ok {
		t.Fatalf("empty grid reported bounds")
	}
	g.Set(-3, 4, 1)
	g.Set(5, -2, 1)
	lo, hi, ok := g.Bounds()
	if !ok || lo != (Point{-3, -2}) || hi != (Point{5, 4}) {
		t.Fatalf("Bounds = %v %v %v", lo, hi, ok)
	}
	g.Clear()
	if g.Len() != 0 {
		t.Fatalf("Len after Clear = %d", g.Len())
	}
}

func TestSparseGridWideCoordinatesDoNotAlias(t *testing.T) {
	g := NewSparseGrid()
	g.Set(1<<32, 7, 3)
	g.Set(1<<31, 0, 1)
	if got := g.Get(0, 7); got != DefaultColor || g.Has(0, 7) {
		t.Fatalf("Get(0,7) = %d after writing (1<<32,7), want default", got)
	}
	if got := g.Get(-1<<31, 0); got != DefaultColor {
		t.Fatalf("Get(-1<<31,0) = %d after writing (1<<31,0), want default", got)
	}
	if got := g.Get(1<<32, 7); got != 3 {
		t.Fatalf("Get(1<<32,7) = %d, want 3", got)
	}
	seen := map[Point]Color{}
	for p, c := range g.All() {
		seen[p] = c
	}
	want := map[Point]Color{{X: 1 << 32, Y: 7}: 3, {X: 1 << 31, Y: 0}: 1}
	if len(seen) != len(want) {
		t.Fatalf("All yielded %v, want %v", seen, want)
	}
	for p, c := range want {
		if seen[p] != c {
			t.Fatalf("All yielded %v, want %v", seen, want)
		}
	}
	lo, hi, _ := g.Bounds()
	if lo.X != 1<<31 || hi.X != 1<<32 {
		t.Fatalf("bounds x = [%d,%d]", lo.X, hi.X)
	}
}
