package outline

import (
	"github.com/janpfeifer/tilechains/internal/grid"
	"iter"
	"slices"
	"strings"
)

// Loop is a closed polygon over lattice corners. The closing vertex is not repeated: the last
// point connects back to the first implicitly.
//
// Once wound (see ResolveWinding) the solid material is on the right-hand side of each segment,
// with y growing downwards.
type Loop []grid.Point

// Segments iterates over the consecutive pairs of vertices, including the closing pair
// (last, first).
func (l Loop) Segments() iter.Seq2[grid.Point, grid.Point] {
	return func(yield func(grid.Point, grid.Point) bool) {
		n := len(l)
		for ii := range n {
			if !yield(l[ii], l[(ii+1)%n]) {
				return
			}
		}
	}
}

// SignedArea2 returns twice the signed (shoelace) area of the loop. It is exact.
//
// In y-down coordinates a loop with solid on its right has a positive area when it is the outer
// boundary of a region, and a negative one when it is the boundary of a hole.
func (l Loop) SignedArea2() (area int) {
	for a, b := range l.Segments() {
		area += a.X()*b.Y() - b.X()*a.Y()
	}
	return
}

// Area returns the unsigned area enclosed by the loop, in cells.
func (l Loop) Area() float64 {
	return float64(absInt(l.SignedArea2())) / 2
}

// IsHole returns whether a wound loop bounds a hole (non-solid area enclosed by solid cells).
func (l Loop) IsHole() bool {
	return l.SignedArea2() < 0
}

// Perimeter returns the length of the loop in grid units. Segments are assumed axis-aligned.
func (l Loop) Perimeter() (perimeter int) {
	for a, b := range l.Segments() {
		d := b.Sub(a)
		perimeter += absInt(d[0]) + absInt(d[1])
	}
	return
}

// Clone returns a copy of the loop.
func (l Loop) Clone() Loop {
	return slices.Clone(l)
}

// String returns a text representation of the loop.
func (l Loop) String() string {
	parts := make([]string, len(l))
	for ii, p := range l {
		parts[ii] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
