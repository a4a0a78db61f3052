package sched

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"turmites/internal/core"
)

// MaxStepsPerWake caps the ant steps executed in one Advance call.
const MaxStepsPerWake = 100000

// Idle is returned by Advance when the scheduler should not be re-armed.
const Idle time.Duration = -1

// ErrInvalidTransition reports a run-state change the machine does not allow.
var ErrInvalidTransition = errors.New("invalid run state transition")

// RunState is the process-level run state.
type RunState int

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// TickFunc runs one simulation tick and returns the number of ant steps it
// performed.
type TickFunc func() int

// Scheduler keeps simulated ticks aligned with wall-clock deadlines. It is
// not safe for concurrent use; a single host goroutine drives it.
type Scheduler struct {
	clock core.Clock
	tick  TickFunc
	log   *slog.Logger

	speed    float64
	interval time.Duration
	next     time.Time
	pausedAt time.Time
	state    RunState
}

// New returns a stopped scheduler running tick at stepsPerSecond.
func New(clock core.Clock, tick TickFunc, stepsPerSecond float64, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{clock: clock, tick: tick, log: logger}
	s.SetSpeed(stepsPerSecond)
	return s
}

// SetSpeed changes the tick rate, clamped to [MinSpeed, MaxSpeed]. The
// current deadline is kept; the new interval applies from the next tick.
func (s *Scheduler) SetSpeed(stepsPerSecond float64) {
	s.speed = min(max(stepsPerSecond, MinSpeed), MaxSpeed)
	s.interval = time.Duration(float64(time.Second) / s.speed)
}

// Speed returns the target ticks per second.
func (s *Scheduler) Speed() float64 { return s.speed }

// Interval returns the wall time between ticks.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// State returns the run state.
func (s *Scheduler) State() RunState { return s.state }

// Next returns the deadline of the next tick.
func (s *Scheduler) Next() time.Time { return s.next }

// Start moves a stopped scheduler to Running with the first tick due now.
func (s *Scheduler) Start() error {
	if s.state != Stopped {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.state = Running
	s.next = s.clock.Now()
	s.pausedAt = time.Time{}
	return nil
}

// Pause stops ticking and remembers when.
func (s *Scheduler) Pause() error {
	if s.state != Running {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, s.state)
	}
	s.state = Paused
	s.pausedAt = s.clock.Now()
	return nil
}

// Resume restarts ticking, pushing the deadline back by the time spent
// paused so no ticks are owed for it.
func (s *Scheduler) Resume() error {
	if s.state != Paused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, s.state)
	}
	paused := s.clock.Now().Sub(s.pausedAt)
	s.next = s.next.Add(paused)
	s.pausedAt = time.Time{}
	s.state = Running
	s.log.Debug("scheduler resumed", "paused", paused)
	return nil
}

// Toggle flips between Running and Paused.
func (s *Scheduler) Toggle() error {
	if s.state == Paused {
		return s.Resume()
	}
	return s.Pause()
}

// Restart re-anchors the deadline after the world is reset. A stopped or
// running scheduler ends up Running with a tick due now; a paused one stays
// paused from this instant.
func (s *Scheduler) Restart() {
	wasPaused := s.state == Paused
	s.state = Stopped
	_ = s.Start()
	if wasPaused {
		_ = s.Pause()
	}
}

// Advance runs every tick whose deadline has passed, bounded by
// MaxStepsPerWake ant steps. When the cap is hit the deadline is resynced to
// one interval from now instead of bursting to catch up. It returns how long
// to wait before the next call, or Idle when not running.
func (s *Scheduler) Advance() (wait time.Duration, ticks int) {
	if s.state != Running {
		return Idle, 0
	}
	now := s.clock.Now()
	steps := 0
	for !now.Before(s.next) && steps < MaxStepsPerWake {
		steps += max(s.tick(), 1)
		ticks++
		s.next = s.next.Add(s.interval)
	}
	if steps >= MaxStepsPerWake {
		s.next = s.clock.Now().Add(s.interval)
		s.log.Debug("scheduler overloaded, deadline resynced", "ticks", ticks, "steps", steps)
	}
	return max(s.next.Sub(s.clock.Now()), 0), ticks
}
