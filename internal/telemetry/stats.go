package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"turmites/internal/turmite"
)

// WindowStats is one telemetry row.
type WindowStats struct {
	Tick        uint64  `csv:"tick"`
	ElapsedSec  float64 `csv:"elapsed_s"`
	Cells       int     `csv:"cells"`
	SpanW       int     `csv:"span_w"`
	SpanH       int     `csv:"span_h"`
	Ants        int     `csv:"ants"`
	Halted      int     `csv:"halted"`
	MeanDist    float64 `csv:"mean_distance"`
	StdDist     float64 `csv:"std_distance"`
	MaxDist     float64 `csv:"max_distance"`
	Writes      uint64  `csv:"writes"`
	StepsPerSec float64 `csv:"steps_per_sec"`
}

// Measure summarizes the world. Distances are Euclidean from the origin.
// ElapsedSec and StepsPerSec are left for the caller.
func Measure(s *turmite.SimulationState) WindowStats {
	ws := WindowStats{
		Tick:   s.Ticks,
		Cells:  s.Grid.Len(),
		Ants:   len(s.Ants),
		Halted: s.HaltedCount(),
		Writes: s.Writes,
	}
	if lo, hi, ok := s.Grid.Bounds(); ok {
		ws.SpanW = hi.X - lo.X + 1
		ws.SpanH = hi.Y - lo.Y + 1
	}
	if len(s.Ants) == 0 {
		return ws
	}
	dists := make([]float64, len(s.Ants))
	for i, p := range s.Positions() {
		dists[i] = math.Hypot(float64(p.X), float64(p.Y))
		ws.MaxDist = math.Max(ws.MaxDist, dists[i])
	}
	if len(dists) == 1 {
		ws.MeanDist = dists[0]
		return ws
	}
	ws.MeanDist, ws.StdDist = stat.MeanStdDev(dists, nil)
	return ws
}

// LogValue implements slog.LogValuer.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", w.Tick),
		slog.Int("cells", w.Cells),
		slog.Int("ants", w.Ants),
		slog.Int("halted", w.Halted),
		slog.Float64("mean_distance", w.MeanDist),
		slog.Int("steps_per_sec", int(w.StepsPerSec)),
	)
}
