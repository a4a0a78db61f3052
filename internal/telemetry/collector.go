package telemetry

import (
	"log/slog"
	"time"

	"turmites/internal/core"
	"turmites/internal/turmite"
)

// Collector samples the world every few ticks and writes rows to an Output.
type Collector struct {
	every uint64
	clock core.Clock
	out   *Output[WindowStats]
	log   *slog.Logger

	start     time.Time
	lastTime  time.Time
	lastSteps uint64
	last      WindowStats
	samples   int
}

// NewCollector samples every `every` ticks. out may be nil to only keep the
// latest sample.
func NewCollector(every int, clock core.Clock, out *Output[WindowStats], logger *slog.Logger) *Collector {
	if every < 1 {
		every = 1
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	now := clock.Now()
	return &Collector{every: uint64(every), clock: clock, out: out, log: logger, start: now, lastTime: now}
}

// Observe is called after every tick.
func (c *Collector) Observe(s *turmite.SimulationState) {
	if s.Ticks == 0 || s.Ticks%c.every != 0 {
		return
	}
	now := c.clock.Now()
	ws := Measure(s)
	ws.ElapsedSec = now.Sub(c.start).Seconds()
	if dt := now.Sub(c.lastTime).Seconds(); dt > 0 && s.Steps >= c.lastSteps {
		ws.StepsPerSec = float64(s.Steps-c.lastSteps) / dt
	}
	c.lastTime, c.lastSteps = now, s.Steps
	c.last = ws
	c.samples++
	if err := c.out.Write(ws); err != nil {
		c.log.Error("telemetry write failed", "error", err)
	}
	c.log.Debug("telemetry", "stats", ws)
}

// Restart re-bases timing after the world is reset.
func (c *Collector) Restart() {
	now := c.clock.Now()
	c.start, c.lastTime, c.lastSteps = now, now, 0
}

// Last returns the most recent sample.
func (c *Collector) Last() WindowStats { return c.last }

// Samples returns how many rows were produced.
func (c *Collector) Samples() int { return c.samples }

// Close closes the output.
func (c *Collector) Close() error { return c.out.Close() }
