package outline

import (
	"github.com/janpfeifer/tilechains/internal/grid"
)

// Reduce returns the loop with the vertices inside straight runs removed: only the vertices where
// the direction changes (the corners) remain. The polygon described is the same.
//
// The loop is treated cyclically, so a start vertex in the middle of a straight run is dropped
// too, and the result is rotated to start at its top-most, then left-most, vertex. Reduce is
// idempotent. Zero-length segments are kept as direction changes.
//
// Loops with less than 3 vertices are returned unchanged (as a copy).
func Reduce(loop Loop) Loop {
	n := len(loop)
	if n < 3 {
		return loop.Clone()
	}
	reduced := make(Loop, 0, n)
	for ii, cur := range loop {
		prev, next := loop[(ii-1+n)%n], loop[(ii+1)%n]
		if !continuesStraight(cur.Sub(prev), next.Sub(cur)) {
			reduced = append(reduced, cur)
		}
	}
	return rotateToFirst(reduced)
}

// continuesStraight returns whether out points in the same direction as in.
func continuesStraight(in, out grid.Point) bool {
	if in == (grid.Point{}) || out == (grid.Point{}) {
		return false
	}
	cross := in.X()*out.Y() - in.Y()*out.X()
	dot := in.X()*out.X() + in.Y()*out.Y()
	return cross == 0 && dot > 0
}

// rotateToFirst rotates the loop so it starts at the smallest vertex in (y, x) order.
func rotateToFirst(loop Loop) Loop {
	if len(loop) == 0 {
		return loop
	}
	first := 0
	for ii, p := range loop {
		q := loop[first]
		if p.Y() < q.Y() || (p.Y() == q.Y() && p.X() < q.X()) {
			first = ii
		}
	}
	if first == 0 {
		return loop
	}
	rotated := make(Loop, 0, len(loop))
	rotated = append(rotated, loop[first:]...)
	return append(rotated, loop[:first]...)
}
