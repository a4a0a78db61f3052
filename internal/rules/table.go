package rules

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// HaltState is the terminal state. An ant in this state never acts again.
const HaltState = -1

// Rule is the transition for one (state, color) pair.
type Rule struct {
	WriteColor int  `json:"writeColor"`
	Move       Move `json:"move"`
	NextState  int  `json:"nextState"`
}

// Table maps a state to its rules, indexed by the color read.
type Table map[int][]Rule

// Langton returns the classic two-color Langton's ant table.
func Langton() Table {
	return Table{
		0: {
			{WriteColor: 1, Move: Right, NextState: 0},
			{WriteColor: 0, Move: Left, NextState: 0},
		},
	}
}

// Lookup resolves the rule for (state, color). A missing entry falls back to
// the state's color-0 rule, and a missing state yields an identity rule that
// rewrites the same color, keeps the heading and moves to state 0.
func (t Table) Lookup(state, color int) Rule {
	if row, ok := t[state]; ok {
		if color >= 0 && color < len(row) {
			return row[color]
		}
		if len(row) > 0 {
			return row[0]
		}
	}
	return Rule{WriteColor: color, Move: NoTurn, NextState: 0}
}

// NumStates returns the number of defined states.
func (t Table) NumStates() int { return len(t) }

// NumColors returns the number of colors handled by state 0.
func (t Table) NumColors() int { return len(t[0]) }

// MaxColor returns the largest color index any rule reads or writes.
func (t Table) MaxColor() int {
	hi := 0
	for _, row := range t {
		hi = max(hi, len(row)-1)
		for _, r := range row {
			hi = max(hi, r.WriteColor)
		}
	}
	return hi
}

// States returns the defined states in ascending order.
func (t Table) States() []int {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for s, row := range t {
		out[s] = slices.Clone(row)
	}
	return out
}

// Equal reports whether a and b define the same transitions.
func Equal(a, b Table) bool {
	if len(a) != len(b) {
		return false
	}
	for s, row := range a {
		other, ok := b[s]
		if !ok || !slices.Equal(row, other) {
			return false
		}
	}
	return true
}

// MarshalJSON writes states in ascending numeric order.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range t.States() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(s)))
		buf.WriteByte(':')
		row, err := json.Marshal(t[s])
		if err != nil {
			return nil, err
		}
		buf.Write(row)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON validates the document before accepting it.
func (t *Table) UnmarshalJSON(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
