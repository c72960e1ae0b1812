// Package outline traces the boundaries between solid and non-solid cells of a tile grid into
// closed polygons, suitable to build one-sided collision chains.
//
// The pipeline, run by Tracer.Trace, is:
//
//  1. ExtractEdges: one unit edge for each side of a solid cell facing a non-solid cell.
//  2. WalkLoops: chain the edges into closed loops.
//  3. ResolveWinding: orient each loop so that the solid is on its right.
//  4. Reduce: keep only the corners of each loop.
//
// All coordinates are lattice corners in cell units, y-down.
package outline

import (
	"fmt"
	"github.com/janpfeifer/tilechains/internal/grid"
	"k8s.io/klog/v2"
)

// Tracer extracts the reduced, wound boundary loops of grids. Create it with New, and change
// its exported fields before calling Trace.
type Tracer struct {
	// MaxLoopVertices bounds the vertices of a single walk, see WalkLoops.
	MaxLoopVertices int
}

// New creates a Tracer with default settings.
func New() *Tracer {
	return &Tracer{MaxLoopVertices: DefaultMaxLoopVertices}
}

// Stats about one call to Trace.
type Stats struct {
	BoundaryEdges int

	// Loops returned, of which Holes bound non-solid areas inside a solid region.
	Loops, Holes int

	// Reversed is the number of loops whose winding had to be flipped.
	Reversed int

	// OpenChains, Truncated and Discarded walks were dropped, see WalkStats.
	OpenChains, Truncated, Discarded int
	DroppedEdges                     int

	// WalkedVertices and ReducedVertices count vertices before and after reduction.
	WalkedVertices, ReducedVertices int
}

// Dropped returns whether any geometry was dropped.
func (s Stats) Dropped() bool {
	return s.OpenChains+s.Truncated+s.Discarded > 0
}

// String returns a one-line summary.
func (s Stats) String() string {
	str := fmt.Sprintf("%d edges -> %d loops (%d holes), %d -> %d vertices",
		s.BoundaryEdges, s.Loops, s.Holes, s.WalkedVertices, s.ReducedVertices)
	if s.Dropped() {
		str += fmt.Sprintf(", dropped %d open / %d truncated / %d short walks (%d edges)",
			s.OpenChains, s.Truncated, s.Discarded, s.DroppedEdges)
	}
	return str
}

// Result of tracing one grid.
type Result struct {
	// Loops are reduced and wound with the solid on their right.
	Loops []Loop
	Stats Stats
}

// Trace returns the boundary loops of the solid cells of the width x height grid given by occ.
//
// It doesn't fail: walks that don't close are dropped and counted in Result.Stats.
func (t *Tracer) Trace(width, height int, occ grid.Occupancy) *Result {
	edges := ExtractEdges(width, height, occ)
	r := &Result{Stats: Stats{BoundaryEdges: len(edges)}}
	if len(edges) == 0 {
		return r
	}
	adjacency := BuildAdjacency(edges)
	walked, walkStats := WalkLoops(edges, adjacency, t.MaxLoopVertices)
	r.Stats.OpenChains = walkStats.OpenChains
	r.Stats.Truncated = walkStats.Truncated
	r.Stats.Discarded = walkStats.Discarded
	r.Stats.DroppedEdges = walkStats.DroppedEdges

	r.Loops = make([]Loop, 0, len(walked))
	for _, loop := range walked {
		r.Stats.WalkedVertices += len(loop)
		if ResolveWinding(loop, occ) {
			r.Stats.Reversed++
		}
		reduced := Reduce(loop)
		if len(reduced) < 3 {
			r.Stats.Discarded++
			continue
		}
		if reduced.IsHole() {
			r.Stats.Holes++
		}
		r.Stats.ReducedVertices += len(reduced)
		r.Loops = append(r.Loops, reduced)
	}
	r.Stats.Loops = len(r.Loops)

	if r.Stats.Dropped() {
		klog.Warningf("outline: %dx%d grid: %s", width, height, r.Stats)
	} else {
		klog.V(1).Infof("outline: %dx%d grid: %s", width, height, r.Stats)
	}
	return r
}

// Trace is a shortcut to New().Trace(width, height, occ).Loops.
func Trace(width, height int, occ grid.Occupancy) []Loop {
	return New().Trace(width, height, occ).Loops
}
