package turmite

import (
	"turmites/internal/core"
	"turmites/internal/rules"
)

// SimulationState owns everything a running simulation mutates.
type SimulationState struct {
	Grid  *core.SparseGrid
	Rules rules.Table
	Ants  []Ant
	Dirty *core.Invalidation

	Ticks  uint64
	Steps  uint64
	Writes uint64
}

// NewState returns an empty world using the shared table t.
func NewState(t rules.Table) *SimulationState {
	return &SimulationState{
		Grid:  core.NewSparseGrid(),
		Rules: t,
		Dirty: core.NewInvalidation(),
	}
}

// Reset clears the grid and counters, installs ants and requests a full
// repaint.
func (s *SimulationState) Reset(ants []Ant) {
	s.Grid.Clear()
	s.Ants = ants
	s.Ticks, s.Steps, s.Writes = 0, 0, 0
	s.Dirty.MarkAll()
}

// HaltedCount returns how many ants are in the halt state.
func (s *SimulationState) HaltedCount() int {
	n := 0
	for i := range s.Ants {
		if s.Ants[i].Halted() {
			n++
		}
	}
	return n
}

// Positions returns a copy of the ant positions in population order.
func (s *SimulationState) Positions() []core.Point {
	out := make([]core.Point, len(s.Ants))
	for i := range s.Ants {
		out[i] = s.Ants[i].Pos
	}
	return out
}
