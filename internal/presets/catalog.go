package presets

import "turmites/internal/rules"

func init() {
	Register("langtons", "Langton's Ant", rules.Langton())
	Register("constructor", "Constructor", rules.Table{
		0: row("0S2", "0S2"),
		1: row("1L2", "0R1"),
		2: row("0N1", "0U2"),
	})
	Register("symmetrical", "Symmetrical", cycle("RRLLRR"))
	Register("snowflake", "Snowflake", rules.Table{
		0: row("1L1", "1R0"),
		1: row("1U1", "1U2"),
		2: row("0N2", "0U0"),
	})
	Register("archimedesSpiral", "Archimedes Spiral", cycle("LRRRRLLLRRR"))
	Register("logarithmicSpiral", "Logarithmic Spiral", cycle("RLLLLRRRLLLR"))
	Register("squareFiller", "Square Filler", cycle("LRRRRRLLR"))
	Register("simpleTuringMachine", "Simple Turing Machine", rules.Table{
		0: row("1N1", "0U0"),
		1: row("1U1", "0N0"),
	})
	// Busy beavers: each machine state is split into a right-moving and a
	// left-moving turmite state; the last state parks the ant in place.
	Register("busyBeaver3", "Busy Beaver 3", rules.Table{
		0: row("1N1", "1U5"),
		1: row("1U3", "1N1"),
		2: row("1U4", "1N6"),
		3: row("1U1", "1N5"),
		4: row("1N3", "1U1"),
		5: row("1N4", "1U6"),
		6: row("0S6", "1S6"),
	})
	Register("busyBeaver4", "Busy Beaver 4", rules.Table{
		0: row("1N1", "1U5"),
		1: row("1U4", "0U6"),
		2: row("1N8", "1U7"),
		3: row("1N3", "0N0"),
		4: row("1U1", "1N5"),
		5: row("1N4", "0N6"),
		6: row("1U8", "1N7"),
		7: row("1U3", "0U0"),
		8: row("0S8", "1S8"),
	})
	Register("busyBeaver5", "Busy Beaver 5", rules.Table{
		0:  row("1N1", "1U7"),
		1:  row("1N2", "1N1"),
		2:  row("1N3", "0U9"),
		3:  row("1U5", "1U8"),
		4:  row("1N10", "0U5"),
		5:  row("1U1", "1N7"),
		6:  row("1U2", "1U1"),
		7:  row("1U3", "0N9"),
		8:  row("1N5", "1N8"),
		9:  row("1U10", "0N5"),
		10: row("0S10", "1S10"),
	})
}

// row builds a rule list from compact "<write><move><next>" triples.
func row(specs ...string) []rules.Rule {
	out := make([]rules.Rule, len(specs))
	for i, s := range specs {
		mv, ok := rules.ParseMove(s[1:2])
		if !ok {
			panic("presets: bad move in " + s)
		}
		next := 0
		for _, d := range s[2:] {
			next = next*10 + int(d-'0')
		}
		out[i] = rules.Rule{WriteColor: int(s[0] - '0'), Move: mv, NextState: next}
	}
	return out
}

// cycle builds a single-state table where color c writes c+1 (wrapping) and
// turns by the c-th letter of turns.
func cycle(turns string) rules.Table {
	r := make([]rules.Rule, len(turns))
	for c := range turns {
		mv, _ := rules.ParseMove(turns[c : c+1])
		r[c] = rules.Rule{WriteColor: (c + 1) % len(turns), Move: mv}
	}
	return rules.Table{0: r}
}
