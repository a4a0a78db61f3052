package turmite

import (
	"errors"
	"fmt"

	"turmites/internal/core"
	"turmites/internal/rules"
)

// ErrInvalidAnt is returned for ants that must not join a population.
var ErrInvalidAnt = errors.New("invalid ant")

// Ant is a single turmite. A nil Rules table means the ant follows the
// shared table.
type Ant struct {
	Pos     core.Point
	Heading Heading
	State   int
	Rules   rules.Table
}

// Halted reports whether the ant reached the terminal state.
func (a *Ant) Halted() bool { return a.State == rules.HaltState }

// ValidateAnt checks a candidate ant before it is admitted.
func ValidateAnt(a Ant) error {
	if !a.Heading.Valid() {
		return fmt.Errorf("%w: heading %d out of range", ErrInvalidAnt, a.Heading)
	}
	if a.State < rules.HaltState {
		return fmt.Errorf("%w: state %d", ErrInvalidAnt, a.State)
	}
	if a.Rules != nil {
		if err := a.Rules.Validate().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAnt, err)
		}
	}
	return nil
}
