package telemetry

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"turmites/internal/core"
	"turmites/internal/rules"
	"turmites/internal/turmite"
)

func TestMeasure(t *testing.T) {
	s := turmite.NewState(rules.Langton())
	s.Reset([]turmite.Ant{
		{Pos: core.Point{X: 3, Y: 4}},
		{Pos: core.Point{X: 0, Y: 0}, State: rules.HaltState},
	})
	s.Grid.Set(-2, 1, 1)
	s.Grid.Set(2, 5, 1)
	ws := Measure(s)
	if ws.Cells != 2 || ws.SpanW != 5 || ws.SpanH != 5 {
		t.Fatalf("cells/span = %d %dx%d", ws.Cells, ws.SpanW, ws.SpanH)
	}
	if ws.Ants != 2 || ws.Halted != 1 {
		t.Fatalf("ants=%d halted=%d", ws.Ants, ws.Halted)
	}
	if math.Abs(ws.MeanDist-2.5) > 1e-9 || ws.MaxDist != 5 {
		t.Fatalf("mean=%v max=%v", ws.MeanDist, ws.MaxDist)
	}
	if ws.StdDist <= 0 {
		t.Fatalf("std = %v, want positive", ws.StdDist)
	}
}

func TestOutputWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput[WindowStats](&buf)
	if err := out.Write(WindowStats{Tick: 1}); err != nil {
		t.Fatal(err)
	}
	if err := out.Write(WindowStats{Tick: 2}, WindowStats{Tick: 3}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,") || strings.Count(buf.String(), "tick,") != 1 {
		t.Fatalf("header missing or repeated:\n%s", buf.String())
	}
}

func TestNilOutputIsNoop(t *testing.T) {
	var out *Output[WindowStats]
	if err := out.Write(WindowStats{}); err != nil {
		t.Fatalf("nil Write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestCollectorSamplesEveryN(t *testing.T) {
	clock := core.NewManualClock(time.Unix(0, 0))
	var buf bytes.Buffer
	c := NewCollector(10, clock, NewOutput[WindowStats](&buf), nil)
	s := turmite.NewState(rules.Langton())
	s.Reset([]turmite.Ant{{}})
	e := turmite.NewEngine(nil)
	for i := 0; i < 25; i++ {
		e.Tick(s)
		clock.Advance(10 * time.Millisecond)
		c.Observe(s)
	}
	if c.Samples() != 2 {
		t.Fatalf("samples = %d, want 2", c.Samples())
	}
	if last := c.Last(); last.Tick != 20 || math.Abs(last.StepsPerSec-100) > 1e-6 {
		t.Fatalf("last sample = %+v", last)
	}
}
