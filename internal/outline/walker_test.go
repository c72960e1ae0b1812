package outline

import (
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/janpfeifer/tilechains/internal/grid"
	"github.com/janpfeifer/tilechains/internal/grid/gridtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewEdge(t *testing.T) {
	e := NewEdge(grid.Point{1, 0}, grid.Point{0, 0})
	assert.Equal(t, Edge{A: grid.Point{0, 0}, B: grid.Point{1, 0}}, e)
	assert.Equal(t, e, NewEdge(grid.Point{0, 0}, grid.Point{1, 0}))
	assert.True(t, e.Horizontal())
	assert.Equal(t, grid.Point{1, 0}, e.Other(grid.Point{0, 0}))
	assert.Equal(t, grid.Point{0, 0}, e.Other(grid.Point{1, 0}))
	assert.Equal(t, "(0, 0)-(1, 0)", e.String())

	vertical := NewEdge(grid.Point{3, 5}, grid.Point{3, 4})
	assert.Equal(t, grid.Point{3, 4}, vertical.A)
	assert.False(t, vertical.Horizontal())

	assert.Panics(t, func() { NewEdge(grid.Point{0, 0}, grid.Point{0, 0}) })
	assert.Panics(t, func() { NewEdge(grid.Point{0, 0}, grid.Point{1, 1}) })
	assert.Panics(t, func() { NewEdge(grid.Point{0, 0}, grid.Point{0, 2}) })
}

func TestExtractEdges(t *testing.T) {
	// Single cell: its 4 sides.
	g := gridtest.Cells(3, 3, grid.Point{1, 1})
	edges := ExtractEdges(g.Width(), g.Height(), g)
	want := generics.SetWith(
		SideTop.Edge(grid.Point{1, 1}),
		SideBottom.Edge(grid.Point{1, 1}),
		SideLeft.Edge(grid.Point{1, 1}),
		SideRight.Edge(grid.Point{1, 1}),
	)
	assert.Equal(t, want, edges)
	assert.True(t, edges.Has(NewEdge(grid.Point{1, 1}, grid.Point{2, 1})))
	assert.True(t, edges.Has(NewEdge(grid.Point{1, 2}, grid.Point{2, 2})))
	assert.True(t, edges.Has(NewEdge(grid.Point{1, 1}, grid.Point{1, 2})))
	assert.True(t, edges.Has(NewEdge(grid.Point{2, 1}, grid.Point{2, 2})))

	// Two adjacent cells don't have an edge between them.
	g = gridtest.MustParse("##")
	edges = ExtractEdges(g.Width(), g.Height(), g)
	assert.Len(t, edges, 6)
	assert.False(t, edges.Has(NewEdge(grid.Point{1, 0}, grid.Point{1, 1})))

	// Empty grid.
	assert.Empty(t, ExtractEdges(5, 5, grid.New(5, 5)))

	assert.Equal(t, "Left", SideLeft.String())
	assert.Equal(t, grid.Point{2, 1}, SideRight.Neighbor(grid.Point{1, 1}))
}

func TestBuildAdjacency(t *testing.T) {
	g := gridtest.Cells(2, 2, grid.Point{0, 0})
	adjacency := BuildAdjacency(ExtractEdges(2, 2, g))
	assert.Len(t, adjacency, 4)
	assert.Equal(t, []grid.Point{{0, 1}, {1, 0}}, adjacency[grid.Point{0, 0}])
	assert.Equal(t, 2, adjacency.Degree(grid.Point{1, 1}))
	assert.Equal(t, 0, adjacency.Degree(grid.Point{2, 2}))

	// Diagonal pinch: the shared corner has 4 neighbours.
	g = gridtest.MustParse("#.", ".#")
	adjacency = BuildAdjacency(ExtractEdges(2, 2, g))
	assert.Equal(t, 4, adjacency.Degree(grid.Point{1, 1}))
}

// loopEdges returns the edges traversed by a closed loop.
func loopEdges(loop Loop) EdgeSet {
	edges := generics.MakeSet[Edge]()
	for a, b := range loop.Segments() {
		edges.Insert(NewEdge(a, b))
	}
	return edges
}

func TestWalkLoopsCoverage(t *testing.T) {
	g := gridtest.MustParse(
		"##....#",
		"##.##.#",
		"...##..",
		"#.....#",
		"#.###.#",
		"#.#.#..",
		"..###..",
	)
	edges := ExtractEdges(g.Width(), g.Height(), g)
	original := edges.Clone()
	loops, stats := WalkLoops(edges, BuildAdjacency(edges), 0)
	assert.Empty(t, edges, "WalkLoops must consume the edge set")
	assert.Equal(t, WalkStats{Closed: len(loops)}, stats)

	covered := generics.MakeSet[Edge]()
	numSegments := 0
	for _, loop := range loops {
		for a, b := range loop.Segments() {
			d := b.Sub(a)
			require.Equal(t, 1, absInt(d.X())+absInt(d.Y()), "loop %s not made of unit steps", loop)
		}
		covered.Insert(loopEdges(loop).SortedFunc(CompareEdges)...)
		numSegments += len(loop)
	}
	assert.True(t, original.Equal(covered))
	assert.Equal(t, len(original), numSegments, "each edge must be used exactly once")
}

func TestWalkLoopsClosure(t *testing.T) {
	// A region without holes is a single loop as long as its perimeter.
	g := gridtest.MustParse(
		".###.",
		"####.",
		".####",
		"..#..",
	)
	edges := ExtractEdges(g.Width(), g.Height(), g)
	numEdges := len(edges)
	loops, stats := WalkLoops(edges, BuildAdjacency(edges), 0)
	require.Len(t, loops, 1)
	assert.Equal(t, 1, stats.Closed)
	assert.Equal(t, numEdges, len(loops[0]))
	assert.Equal(t, numEdges, loops[0].Perimeter())
	assert.NotEqual(t, loops[0][0], loops[0][len(loops[0])-1], "closing vertex must not be repeated")
}

func TestWalkLoopsOpenChain(t *testing.T) {
	// Two edges that don't close: dropped, not an error.
	edges := generics.SetWith(
		NewEdge(grid.Point{0, 0}, grid.Point{1, 0}),
		NewEdge(grid.Point{1, 0}, grid.Point{1, 1}),
	)

	// Plus an independent closed square.
	square := generics.SetWith(
		NewEdge(grid.Point{5, 5}, grid.Point{6, 5}),
		NewEdge(grid.Point{6, 5}, grid.Point{6, 6}),
		NewEdge(grid.Point{6, 6}, grid.Point{5, 6}),
		NewEdge(grid.Point{5, 6}, grid.Point{5, 5}),
	)
	for e := range square {
		edges.Insert(e)
	}
	loops, stats := WalkLoops(edges, BuildAdjacency(edges), 0)
	require.Len(t, loops, 1)
	assert.Equal(t, Loop{{5, 5}, {5, 6}, {6, 6}, {6, 5}}, loops[0])
	assert.Equal(t, WalkStats{Closed: 1, OpenChains: 1, DroppedEdges: 2}, stats)
	assert.Empty(t, edges)
}

func TestWalkLoopsTruncated(t *testing.T) {
	g := gridtest.Filled(3, 3)
	edges := ExtractEdges(3, 3, g)
	require.Len(t, edges, 12)
	loops, stats := WalkLoops(edges, BuildAdjacency(edges), 5)
	assert.Empty(t, loops)
	// Both halves of the square are truncated, and what is left is an open chain.
	assert.Equal(t, WalkStats{Truncated: 2, OpenChains: 1, DroppedEdges: 12}, stats)
	assert.Empty(t, edges)

	// The same walk with enough room closes.
	edges = ExtractEdges(3, 3, g)
	loops, stats = WalkLoops(edges, BuildAdjacency(edges), 12)
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 12)
	assert.Equal(t, 0, stats.Truncated)
}

func TestTurnRank(t *testing.T) {
	east := grid.Point{1, 0}
	assert.Equal(t, turnRight, turnRank(east, grid.Point{0, 1}))
	assert.Equal(t, turnLeft, turnRank(east, grid.Point{0, -1}))
	assert.Equal(t, goStraight, turnRank(east, east))
	assert.Equal(t, turnOther, turnRank(east, grid.Point{-1, 0}))

	north := grid.Point{0, -1}
	assert.Equal(t, turnRight, turnRank(north, grid.Point{1, 0}))
	assert.Equal(t, turnLeft, turnRank(north, grid.Point{-1, 0}))
}
