package turmite

import (
	"fmt"

	"turmites/internal/core"
	"turmites/internal/rules"
	pcore "turmites/pkg/core"
)

// Heading is one of the four compass directions, clockwise from North.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
	numHeadings
)

var headingVectors = [numHeadings]core.Point{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

var headingNames = [numHeadings]string{"N", "E", "S", "W"}

// Valid reports whether h is one of the four headings.
func (h Heading) Valid() bool { return h < numHeadings }

// Vector returns the unit step for h. Screen coordinates grow southwards.
func (h Heading) Vector() core.Point { return headingVectors[h%numHeadings] }

func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", uint8(h))
	}
	return headingNames[h]
}

// Turn applies m to h. RandomAbsolute draws from rng.
func (h Heading) Turn(m rules.Move, rng *pcore.RNG) Heading {
	if m.IsAbsolute() {
		return Heading(m - rules.North)
	}
	switch m {
	case rules.Left:
		return (h + numHeadings - 1) % numHeadings
	case rules.Right:
		return (h + 1) % numHeadings
	case rules.UTurn:
		return (h + 2) % numHeadings
	case rules.RandomAbsolute:
		return Heading(rng.IntN(int(numHeadings)))
	}
	return h
}
