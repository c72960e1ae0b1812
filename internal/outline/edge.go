package outline

import (
	"cmp"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/janpfeifer/tilechains/internal/grid"
)

// Edge is an undirected unit segment between two lattice corners.
//
// It is stored canonically, with the smaller point (see grid.Point.Less) in A, so that the same
// segment compares and hashes identically regardless of the order it was discovered in. Always
// create it with NewEdge.
type Edge struct {
	A, B grid.Point
}

// NewEdge returns the canonical edge between p0 and p1.
// It panics if the points are not exactly one grid unit apart horizontally or vertically.
func NewEdge(p0, p1 grid.Point) Edge {
	d := p1.Sub(p0)
	if absInt(d[0])+absInt(d[1]) != 1 {
		exceptions.Panicf("outline.NewEdge(%s, %s): points must be one grid unit apart", p0, p1)
	}
	if p1.Less(p0) {
		p0, p1 = p1, p0
	}
	return Edge{A: p0, B: p1}
}

// Other returns the end of the edge opposite to p. p must be one of the edge's ends.
func (e Edge) Other(p grid.Point) grid.Point {
	if p == e.A {
		return e.B
	}
	return e.A
}

// Horizontal returns whether the edge runs along the x-axis.
func (e Edge) Horizontal() bool {
	return e.A.Y() == e.B.Y()
}

// String returns a text representation of the Edge.
func (e Edge) String() string {
	return fmt.Sprintf("%s-%s", e.A, e.B)
}

// CompareEdges orders edges lexicographically by A and then B.
func CompareEdges(e1, e2 Edge) int {
	if c := comparePoints(e1.A, e2.A); c != 0 {
		return c
	}
	return comparePoints(e1.B, e2.B)
}

func comparePoints(p1, p2 grid.Point) int {
	if c := cmp.Compare(p1.X(), p2.X()); c != 0 {
		return c
	}
	return cmp.Compare(p1.Y(), p2.Y())
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// EdgeSet is the set of boundary edges of one layer. It is scratch data: the loop walker
// consumes it.
type EdgeSet = generics.Set[Edge]

// SortedEdges returns the edges in the set ordered by CompareEdges.
func SortedEdges(edges EdgeSet) []Edge {
	return edges.SortedFunc(CompareEdges)
}

// Adjacency maps each lattice corner to the corners connected to it by a boundary edge.
//
// It is a lookup aid built once from the full edge set: it is not updated as the walker consumes
// edges, so the walker checks edge liveness against the EdgeSet itself.
type Adjacency map[grid.Point][]grid.Point

// BuildAdjacency creates the Adjacency of the given edges.
//
// Neighbours are appended in CompareEdges order, so the neighbour lists (and hence the loops
// walked from them) don't depend on map iteration order.
func BuildAdjacency(edges EdgeSet) Adjacency {
	adjacency := make(Adjacency, len(edges))
	for _, e := range SortedEdges(edges) {
		adjacency[e.A] = append(adjacency[e.A], e.B)
		adjacency[e.B] = append(adjacency[e.B], e.A)
	}
	return adjacency
}

// Degree returns the number of boundary edges incident on p.
func (adjacency Adjacency) Degree(p grid.Point) int {
	return len(adjacency[p])
}
