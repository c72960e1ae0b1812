package outline

import (
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/janpfeifer/tilechains/internal/grid"
)

// Side of a cell.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight

	// NumSides of a square cell.
	NumSides
)

var sideNames = [NumSides]string{"Top", "Bottom", "Left", "Right"}

// String returns the side name.
func (s Side) String() string {
	if s >= NumSides {
		return "Invalid"
	}
	return sideNames[s]
}

// sideGeometry holds, per side, the offset of the neighbouring cell and the offsets of the two
// corners of the edge shared with it, all relative to the cell index.
var sideGeometry = [NumSides]struct {
	neighbor, from, to grid.Point
}{
	SideTop:    {neighbor: grid.Point{0, -1}, from: grid.Point{0, 0}, to: grid.Point{1, 0}},
	SideBottom: {neighbor: grid.Point{0, 1}, from: grid.Point{0, 1}, to: grid.Point{1, 1}},
	SideLeft:   {neighbor: grid.Point{-1, 0}, from: grid.Point{0, 0}, to: grid.Point{0, 1}},
	SideRight:  {neighbor: grid.Point{1, 0}, from: grid.Point{1, 0}, to: grid.Point{1, 1}},
}

// Neighbor returns the cell across the given side of cell.
func (s Side) Neighbor(cell grid.Point) grid.Point {
	return cell.Add(sideGeometry[s].neighbor)
}

// Edge returns the canonical edge on the given side of cell.
func (s Side) Edge(cell grid.Point) Edge {
	return NewEdge(cell.Add(sideGeometry[s].from), cell.Add(sideGeometry[s].to))
}

// ExtractEdges returns the boundary edges of all solid cells of a width x height grid: for each
// solid cell, one edge per side whose neighbour is not solid (cells outside the grid are never
// solid, so regions touching the border are closed along it).
//
// An empty grid yields an empty set.
func ExtractEdges(width, height int, occ grid.Occupancy) EdgeSet {
	edges := generics.MakeSet[Edge]()
	for y := range height {
		for x := range width {
			if !occ.Solid(x, y) {
				continue
			}
			cell := grid.Point{x, y}
			for side := range NumSides {
				neighbor := side.Neighbor(cell)
				if !occ.Solid(neighbor.X(), neighbor.Y()) {
					edges.Insert(side.Edge(cell))
				}
			}
		}
	}
	return edges
}
