package turmite

import (
	"fmt"
	"math"
	"strconv"

	"turmites/internal/core"
	pcore "turmites/pkg/core"
)

// Placement selects how a new population is laid out.
type Placement string

const (
	PlaceCenter Placement = "center"
	PlaceRandom Placement = "random"
	PlaceGrid   Placement = "grid"
	PlaceRow    Placement = "row"
)

// maxRandomAttempts bounds the search for a free cell in random placement.
const maxRandomAttempts = 2000

// ParsePlacement validates a placement name.
func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(s); p {
	case PlaceCenter, PlaceRandom, PlaceGrid, PlaceRow:
		return p, nil
	}
	return "", fmt.Errorf("unknown placement %q", s)
}

// HeadingMode picks the starting heading of each ant: a fixed direction or a
// uniformly random one.
type HeadingMode struct {
	Random bool
	Fixed  Heading
}

// ParseHeadingMode accepts "0".."3" or "random".
func ParseHeadingMode(s string) (HeadingMode, error) {
	if s == "random" {
		return HeadingMode{Random: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= int(numHeadings) {
		return HeadingMode{}, fmt.Errorf("unknown heading mode %q", s)
	}
	return HeadingMode{Fixed: Heading(n)}, nil
}

func (m HeadingMode) String() string {
	if m.Random {
		return "random"
	}
	return strconv.Itoa(int(m.Fixed))
}

// Pick returns the heading for the next ant.
func (m HeadingMode) Pick(rng *pcore.RNG) Heading {
	if m.Random {
		return Heading(rng.IntN(int(numHeadings)))
	}
	return m.Fixed
}

// Place lays out n starting positions inside a view of the given size. The
// view is centered on the world origin, so a single centered ant sits at
// (0, 0).
func Place(rng *pcore.RNG, mode Placement, n int, view core.Size) []core.Point {
	cols, rows := max(view.W, 1), max(view.H, 1)
	cx, cy := cols/2, rows/2
	occupied := make(map[core.Point]bool, n)
	out := make([]core.Point, 0, n)

	for i := 0; i < n; i++ {
		var x, y int
		switch mode {
		case PlaceRandom:
			for attempt := 0; attempt < maxRandomAttempts; attempt++ {
				x, y = rng.IntN(cols), rng.IntN(rows)
				if !occupied[core.Point{X: x, Y: y}] {
					break
				}
			}
		case PlaceGrid:
			ratio := float64(cols) / float64(rows)
			gc := int(math.Ceil(math.Sqrt(float64(n) * ratio)))
			gr := int(math.Ceil(float64(n) / float64(gc)))
			gc, gr = min(gc, cols), min(gr, rows)
			sx := float64(cols) / float64(gc+1)
			sy := float64(rows) / float64(gr+1)
			x = int(math.Floor(sx * float64(i%gc+1)))
			y = int(math.Floor(sy * float64(i/gc+1)))
		case PlaceRow:
			width := min(n, cols)
			lines := (n + cols - 1) / cols
			x = int(math.Floor(float64(cx)-float64(width)/2)) + i%cols
			y = int(math.Floor(float64(cy)-float64(lines)/2)) + i/cols
		default:
			cluster := int(math.Ceil(math.Sqrt(float64(n))))
			off := cluster / 2
			x = cx - off + i%cluster
			y = cy - off + i/cluster
		}
		x = min(max(x, 0), cols-1)
		y = min(max(y, 0), rows-1)
		p := core.Point{X: x, Y: y}
		occupied[p] = true
		out = append(out, core.Point{X: x - cx, Y: y - cy})
	}
	return out
}
