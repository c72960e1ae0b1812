// Package gridtest provides helper functions to create tests using occupancy grids.
package gridtest

import (
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tilechains/internal/grid"
)

// MustParse builds a grid from ASCII art (see grid.Parse), panicking on malformed input.
func MustParse(rows ...string) *grid.Grid {
	return must.M1(grid.Parse(rows...))
}

// Filled returns a width x height grid with every cell solid.
func Filled(width, height int) *grid.Grid {
	g := grid.New(width, height)
	for y := range height {
		for x := range width {
			g.Set(x, y, true)
		}
	}
	return g
}

// Cells returns a width x height grid with only the given cells solid.
func Cells(width, height int, cells ...grid.Point) *grid.Grid {
	g := grid.New(width, height)
	for _, cell := range cells {
		g.Set(cell.X(), cell.Y(), true)
	}
	return g
}
