package outline

import (
	"github.com/janpfeifer/tilechains/internal/grid"
	"k8s.io/klog/v2"
)

// DefaultMaxLoopVertices bounds the length of a single walk, in case of malformed adjacency data.
const DefaultMaxLoopVertices = 100_000

// WalkStats counts what happened to the polylines traced by WalkLoops.
type WalkStats struct {
	// Closed walks returned as loops.
	Closed int

	// OpenChains are walks that reached a dead end before returning to their start.
	OpenChains int

	// Truncated walks exceeded the vertex limit.
	Truncated int

	// Discarded closed walks with fewer than 3 vertices.
	Discarded int

	// DroppedEdges is the number of edges consumed by open, truncated or discarded walks.
	DroppedEdges int
}

// walkState is the scratch data of WalkLoops.
type walkState struct {
	edges       EdgeSet
	adjacency   Adjacency
	maxVertices int

	// sorted holds the initial edges in CompareEdges order; nextStart is the index of the first
	// one that may still be live.
	sorted    []Edge
	nextStart int
}

// WalkLoops converts the edges into closed loops, consuming the set: on return edges is empty.
//
// adjacency must have been built from the edges before any was consumed, see BuildAdjacency.
// maxVertices limits each walk; if <= 0, DefaultMaxLoopVertices is used.
//
// Each walk starts from the smallest live edge (in CompareEdges order), traversed from A to B,
// and follows live edges until it returns to its start. Walks that dead-end (open chains) or
// exceed maxVertices are dropped. Dropping is not an error: other loops are not affected, and
// the counts are reported in WalkStats.
//
// The loops returned are not wound: see ResolveWinding.
func WalkLoops(edges EdgeSet, adjacency Adjacency, maxVertices int) (loops []Loop, stats WalkStats) {
	if maxVertices <= 0 {
		maxVertices = DefaultMaxLoopVertices
	}
	ws := &walkState{
		edges:       edges,
		adjacency:   adjacency,
		maxVertices: maxVertices,
		sorted:      SortedEdges(edges),
	}
	for len(ws.edges) > 0 {
		start, found := ws.startEdge()
		if !found {
			// Only possible if edges was modified concurrently.
			klog.Errorf("outline: %d edges left that are no longer in the initial edge set", len(ws.edges))
			break
		}
		numEdges := len(ws.edges)
		poly, closed, truncated := ws.walk(start)
		consumed := numEdges - len(ws.edges)
		switch {
		case truncated:
			stats.Truncated++
			stats.DroppedEdges += consumed
			klog.V(2).Infof("outline: walk from %s truncated after %d vertices", start, len(poly))
			continue
		case !closed:
			stats.OpenChains++
			stats.DroppedEdges += consumed
			klog.V(2).Infof("outline: open chain from %s dropped: dead end at %s after %d vertices",
				start.A, poly[len(poly)-1], len(poly))
			continue
		}

		// Closed: the last vertex repeats the first.
		poly = poly[:len(poly)-1]
		if len(poly) < 3 {
			stats.Discarded++
			stats.DroppedEdges += consumed
			continue
		}
		stats.Closed++
		loops = append(loops, poly)
	}
	return
}

// startEdge returns the smallest edge still in the set.
func (ws *walkState) startEdge() (Edge, bool) {
	for ; ws.nextStart < len(ws.sorted); ws.nextStart++ {
		if e := ws.sorted[ws.nextStart]; ws.edges.Has(e) {
			return e, true
		}
	}
	return Edge{}, false
}

// walk follows live edges from start.A through start.B until it comes back to start.A, removing
// every edge it traverses.
//
// The returned polyline repeats start.A at the end if closed.
func (ws *walkState) walk(start Edge) (poly Loop, closed, truncated bool) {
	first, prev, cur := start.A, start.A, start.B
	ws.edges.Remove(start)
	poly = Loop{first, cur}
	for cur != first {
		next, found := ws.nextVertex(prev, cur)
		if !found {
			return poly, false, false
		}
		ws.edges.Remove(NewEdge(cur, next))
		prev, cur = cur, next
		poly = append(poly, cur)
		if cur != first && len(poly) > ws.maxVertices {
			return poly, false, true
		}
	}
	return poly, true, false
}

// Preference of a candidate step, relative to the current heading: lower is preferred.
const (
	turnRight = iota
	turnLeft
	goStraight
	turnOther
)

// nextVertex picks the next vertex after cur, arriving from prev: a neighbour other than prev
// whose edge with cur is still live.
//
// At regular boundary vertices there is exactly one such candidate. Where two regions touch
// diagonally (a lattice point with 4 boundary edges), the right turn is preferred over the left
// turn, and either over going straight: turning keeps the solid on the same side of the loop.
// Remaining ties go to the first candidate in adjacency order.
func (ws *walkState) nextVertex(prev, cur grid.Point) (next grid.Point, found bool) {
	heading := cur.Sub(prev)
	bestRank := turnOther + 1
	for _, candidate := range ws.adjacency[cur] {
		if candidate == prev || !ws.edges.Has(NewEdge(cur, candidate)) {
			continue
		}
		rank := turnRank(heading, candidate.Sub(cur))
		if rank < bestRank {
			next, bestRank, found = candidate, rank, true
		}
	}
	return
}

// turnRank classifies the step in relation to the heading, both unit vectors in y-down
// coordinates: the right-hand side of heading (hx, hy) is (-hy, hx).
func turnRank(heading, step grid.Point) int {
	hx, hy := heading.X(), heading.Y()
	switch step {
	case grid.Point{-hy, hx}:
		return turnRight
	case grid.Point{hy, -hx}:
		return turnLeft
	case heading:
		return goStraight
	}
	return turnOther
}
