package turmite

import (
	"turmites/internal/core"
	"turmites/internal/rules"
	pcore "turmites/pkg/core"
)

// Engine applies rule transitions to ants. It only holds the random source
// used by RandomAbsolute moves.
type Engine struct {
	rng *pcore.RNG
}

// NewEngine returns an engine drawing random headings from rng.
func NewEngine(rng *pcore.RNG) *Engine {
	if rng == nil {
		rng = pcore.NewRNG(0)
	}
	return &Engine{rng: rng}
}

// Step advances a single ant: write, turn, change state, then move along the
// new heading unless the move is Stay. It reports whether the cell under the
// ant changed color. Halted ants are left untouched.
func (e *Engine) Step(grid *core.SparseGrid, dirty *core.Invalidation, a *Ant, global rules.Table) bool {
	if a.Halted() {
		return false
	}
	color := grid.Get(a.Pos.X, a.Pos.Y)
	table := global
	if a.Rules != nil {
		table = a.Rules
	}
	rule := table.Lookup(a.State, color)

	changed := rule.WriteColor != color
	if changed {
		grid.Set(a.Pos.X, a.Pos.Y, rule.WriteColor)
		if dirty != nil {
			dirty.Mark(a.Pos)
		}
	}
	a.Heading = a.Heading.Turn(rule.Move, e.rng)
	a.State = rule.NextState
	if rule.Move != rules.Stay {
		a.Pos = a.Pos.Add(a.Heading.Vector())
	}
	return changed
}

// Tick steps every ant once in slice order. Later ants see writes made by
// earlier ones in the same tick. The ant cells before and after the step are
// marked so markers redraw. It returns the number of ants visited.
func (e *Engine) Tick(s *SimulationState) int {
	for i := range s.Ants {
		a := &s.Ants[i]
		s.Dirty.Mark(a.Pos)
		if e.Step(s.Grid, s.Dirty, a, s.Rules) {
			s.Writes++
		}
		s.Dirty.Mark(a.Pos)
	}
	s.Ticks++
	s.Steps += uint64(len(s.Ants))
	return len(s.Ants)
}
