package core

import (
	"testing"
	"time"
)

func TestInvalidationDedupAndDrain(t *testing.T) {
	inv := NewInvalidation()
	if !inv.Full() {
		t.Fatalf("new invalidation should request a full repaint")
	}
	inv.Reset()
	inv.Mark(Point{1, 1})
	inv.Mark(Point{1, 1})
	inv.Mark(Point{2, 1})
	if inv.Len() != 2 {
		t.Fatalf("Len = %d, want 2", inv.Len())
	}
	var got []Point
	inv.Drain(func(p Point) { got = append(got, p) })
	if len(got) != 2 || inv.Len() != 0 {
		t.Fatalf("Drain visited %d, left %d", len(got), inv.Len())
	}
}

func TestInvalidationMarkAll(t *testing.T) {
	inv := NewInvalidation()
	inv.Reset()
	inv.Mark(Point{0, 0})
	inv.MarkAll()
	if !inv.Full() || inv.Len() != 0 {
		t.Fatalf("MarkAll: full=%v len=%d", inv.Full(), inv.Len())
	}
	inv.Mark(Point{4, 4})
	if inv.Len() != 0 {
		t.Fatalf("marks while full should be absorbed")
	}
	inv.Reset()
	if inv.Full() {
		t.Fatalf("Reset should clear the full flag")
	}
}

func TestManualClockAdvance(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Fatalf("elapsed = %v", got)
	}
}
