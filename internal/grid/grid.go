// Package grid holds the integer lattice types shared by the outline tracer and its
// collaborators: lattice points, the occupancy oracle and a dense boolean grid.
//
// Coordinates are "y-down": x grows to the right and y grows downwards, as in tile maps.
// A cell (x, y) covers the square with corners (x, y) and (x+1, y+1).
package grid

import (
	"fmt"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

// Point is an integer lattice coordinate: either a cell index or a cell corner, depending
// on context.
type Point [2]int

// X coordinate of the point.
func (p Point) X() int {
	return p[0]
}

// Y coordinate of the point.
func (p Point) Y() int {
	return p[1]
}

// Add returns p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{p[0] + p2[0], p[1] + p2[1]}
}

// Sub returns p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{p[0] - p2[0], p[1] - p2[1]}
}

// Less orders points lexicographically, by x first and then y.
func (p Point) Less(p2 Point) bool {
	if p[0] != p2[0] {
		return p[0] < p2[0]
	}
	return p[1] < p2[1]
}

// String returns a text representation of Point.
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p[0], p[1])
}

// SortPoints sorts according to y first and then x, the reading order of a tile map.
func SortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i][1] != points[j][1] {
			return points[i][1] < points[j][1]
		}
		return points[i][0] < points[j][0]
	})
}

// Occupancy is the oracle that classifies cells as solid.
//
// Implementations must be total: any (x, y), including coordinates outside the grid, is a valid
// query, and cells outside the grid are never solid.
type Occupancy interface {
	Solid(x, y int) bool
}

// OccupancyFunc adapts a plain function to Occupancy.
type OccupancyFunc func(x, y int) bool

// Solid implements Occupancy.
func (fn OccupancyFunc) Solid(x, y int) bool {
	return fn(x, y)
}

// Bounded wraps a predicate defined only inside [0, width) x [0, height), so that queries
// outside the grid return false without reaching fn.
func Bounded(width, height int, fn OccupancyFunc) Occupancy {
	return OccupancyFunc(func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return fn(x, y)
	})
}

// Grid is a dense width x height boolean occupancy map. It implements Occupancy.
type Grid struct {
	width, height int
	cells         []bool
}

// New creates an empty (all non-solid) grid.
func New(width, height int) *Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Grid{width: width, height: height, cells: make([]bool, width*height)}
}

// Width of the grid in cells.
func (g *Grid) Width() int { return g.width }

// Height of the grid in cells.
func (g *Grid) Height() int { return g.height }

// InBounds returns whether the cell (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Solid implements Occupancy.
func (g *Grid) Solid(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x]
}

// Set marks cell (x, y) as solid or not. Cells outside the grid are ignored.
func (g *Grid) Set(x, y int, solid bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = solid
}

// Count returns the number of solid cells.
func (g *Grid) Count() (count int) {
	for _, solid := range g.cells {
		if solid {
			count++
		}
	}
	return
}

// FromOccupancy samples occ over [0, width) x [0, height) into a new Grid.
func FromOccupancy(width, height int, occ Occupancy) *Grid {
	g := New(width, height)
	for y := range g.height {
		for x := range g.width {
			g.cells[y*g.width+x] = occ.Solid(x, y)
		}
	}
	return g
}

// Parse builds a grid from rows of text: '#' (or 'X') marks a solid cell and '.' (or ' ') an
// empty one. All rows must have the same length.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	width := len(rows[0])
	g := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("grid row %d has %d cells, expected %d (%q)", y, len(row), width, row)
		}
		for x, c := range row {
			switch c {
			case '#', 'X':
				g.cells[y*width+x] = true
			case '.', ' ':
			default:
				return nil, errors.Errorf("grid row %d: invalid cell %q at column %d", y, c, x)
			}
		}
	}
	return g, nil
}

// String renders the grid in the format accepted by Parse, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := range g.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.width {
			if g.cells[y*g.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
