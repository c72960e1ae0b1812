package outline

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/janpfeifer/tilechains/internal/grid"
	"slices"
)

// windingSampleOffset is how far, in cells, to the right of a segment's midpoint the occupancy is
// sampled to tell the solid side of a loop.
const windingSampleOffset = 0.25

// rightSample returns the cell just to the right of the first non-degenerate segment of the loop.
// ok is false if all segments have zero length.
func rightSample(loop Loop) (cell grid.Point, ok bool) {
	for a, b := range loop.Segments() {
		pa := mgl32.Vec2{float32(a.X()), float32(a.Y())}
		pb := mgl32.Vec2{float32(b.X()), float32(b.Y())}
		segment := pb.Sub(pa)
		if segment.Len() < 1e-4 {
			continue
		}
		tangent := segment.Normalize()
		right := mgl32.Vec2{-tangent.Y(), tangent.X()}
		midpoint := pa.Add(pb).Mul(0.5)
		sample := midpoint.Add(right.Mul(windingSampleOffset))
		return grid.Point{int(math32.Floor(sample.X())), int(math32.Floor(sample.Y()))}, true
	}
	return grid.Point{}, false
}

// HasSolidOnRight returns whether the solid material lies to the right of the loop, as traversed
// in its stored order (y-down coordinates). It samples next to the first non-degenerate segment
// only: for a loop walked along a boundary every segment agrees.
//
// Degenerate loops (no segment with length) return false.
func HasSolidOnRight(loop Loop, occ grid.Occupancy) bool {
	cell, ok := rightSample(loop)
	return ok && occ.Solid(cell.X(), cell.Y())
}

// ResolveWinding reverses the loop in place if the solid is not on its right, and returns whether
// it did so. Degenerate loops are left untouched.
func ResolveWinding(loop Loop, occ grid.Occupancy) (reversed bool) {
	cell, ok := rightSample(loop)
	if !ok || occ.Solid(cell.X(), cell.Y()) {
		return false
	}
	slices.Reverse(loop)
	return true
}
