package rules

import "fmt"

// Move is the heading change applied after a rule writes its color.
type Move uint8

const (
	NoTurn Move = iota
	Left
	Right
	UTurn
	Stay
	North
	East
	South
	West
	RandomAbsolute
	numMoves
)

var moveCodes = [numMoves]byte{
	NoTurn:         'N',
	Left:           'L',
	Right:          'R',
	UTurn:          'U',
	Stay:           'S',
	North:          '^',
	East:           '>',
	South:          'v',
	West:           '<',
	RandomAbsolute: '?',
}

// moveCodeList is the canonical listing used in messages and help text.
const moveCodeList = "L, R, U, N, S, ^, >, v, <, ?"

// MoveLegend is the human-readable key printed above formatted tables.
const MoveLegend = "L:Left, R:Right, U:U-Turn, N:No Turn (forward), S:Stay, ^>v<:Absolute Dirs, ?:Random"

// ParseMove decodes a single-character move code.
func ParseMove(code string) (Move, bool) {
	if len(code) != 1 {
		return 0, false
	}
	for m, c := range moveCodes {
		if c == code[0] {
			return Move(m), true
		}
	}
	return 0, false
}

// Valid reports whether m is a known move.
func (m Move) Valid() bool { return m < numMoves }

// IsAbsolute reports whether m sets the heading directly.
func (m Move) IsAbsolute() bool { return m >= North && m <= West }

// String returns the single-character code.
func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
	return string(moveCodes[m])
}

// MarshalText encodes the move as its code.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("rules: invalid move %d", uint8(m))
	}
	return []byte{moveCodes[m]}, nil
}

// UnmarshalText decodes a move code.
func (m *Move) UnmarshalText(b []byte) error {
	mv, ok := ParseMove(string(b))
	if !ok {
		return fmt.Errorf("rules: unknown move %q", b)
	}
	*m = mv
	return nil
}
