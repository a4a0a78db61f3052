package rules

import pcore "turmites/pkg/core"

// MoveOptions selects the move families random generation may draw from.
// Stay is always available.
type MoveOptions struct {
	Relative bool `yaml:"relative"`
	Absolute bool `yaml:"absolute"`
	Random   bool `yaml:"random"`
}

// DefaultMoveOptions enables relative moves only.
var DefaultMoveOptions = MoveOptions{Relative: true}

// Moves expands the options into the candidate move list.
func (o MoveOptions) Moves() []Move {
	moves := []Move{Stay}
	if o.Relative {
		moves = append(moves, Left, Right, NoTurn, UTurn)
	}
	if o.Absolute {
		moves = append(moves, North, East, South, West)
	}
	if o.Random {
		moves = append(moves, RandomAbsolute)
	}
	return moves
}

// Generate builds a table with numStates states and numColors colors, drawing
// each write color, move and next state uniformly. An empty move list falls
// back to NoTurn. Counts below one are raised to one.
func Generate(rng *pcore.RNG, numStates, numColors int, moves []Move) Table {
	numStates = max(numStates, 1)
	numColors = max(numColors, 1)
	if len(moves) == 0 {
		moves = []Move{NoTurn}
	}
	t := make(Table, numStates)
	for s := 0; s < numStates; s++ {
		row := make([]Rule, numColors)
		for c := range row {
			row[c] = Rule{
				WriteColor: rng.IntN(numColors),
				Move:       moves[rng.IntN(len(moves))],
				NextState:  rng.IntN(numStates),
			}
		}
		t[s] = row
	}
	return t
}
