// Package cli implements a terminal debug overlay for the traced layers: cells, boundary edges and
// chain corners drawn on a character lattice.
package cli

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/tilechains/internal/build"
	"github.com/janpfeifer/tilechains/internal/grid"
	"github.com/janpfeifer/tilechains/internal/outline"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
)

// glyph of one position of the character lattice.
//
// A layer of W x H cells is drawn as (2W+1) x (2H+1) characters: cells are at odd (column, row),
// cell corners at even ones, and the edges between two corners in between.
type glyph uint8

const (
	glyphBlank glyph = iota
	glyphEmpty
	glyphSolid
	glyphHorizontal
	glyphVertical
	glyphCorner
	glyphHoleCorner
)

var glyphRunes = [...]rune{
	glyphBlank:      ' ',
	glyphEmpty:      '.',
	glyphSolid:      '#',
	glyphHorizontal: '-',
	glyphVertical:   '|',
	glyphCorner:     '+',
	glyphHoleCorner: 'o',
}

var glyphStyles = [...]lipgloss.Style{
	glyphBlank:      lipgloss.NewStyle(),
	glyphEmpty:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	glyphSolid:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	glyphHorizontal: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	glyphVertical:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	glyphCorner:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	glyphHoleCorner: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
}

var titleStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("13")).
	Foreground(lipgloss.Color("0")).
	Padding(0, 2)

// displayWidth of s, ignoring color/control sequences.
func displayWidth(s string) int {
	return lipgloss.Width(s)
}

// printCentered prints the block of text centered in the terminal, if out is one.
func printCentered(out io.Writer, block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	indent := 0
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		terminalWidth, _, _ := term.GetSize(int(f.Fd()))
		blockWidth := 0
		for _, line := range lines {
			blockWidth = max(blockWidth, displayWidth(line))
		}
		indent = max((terminalWidth-blockWidth)/2, 0)
	}
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(out)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// UI prints traced layers to a terminal.
type UI struct {
	color bool
	out   io.Writer
}

// New creates a UI that writes to stdout. If color is false, no escape sequences are written.
func New(color bool) *UI {
	return &UI{color: color, out: os.Stdout}
}

// SetOutput changes where the UI writes to.
func (ui *UI) SetOutput(out io.Writer) *UI {
	ui.out = out
	return ui
}

// RenderLayer draws the cells of the width x height layer given by occ, and the given loops on top.
// Loop corners are drawn as "+", or "o" for holes.
func (ui *UI) RenderLayer(width, height int, occ grid.Occupancy, loops []outline.Loop) string {
	cols, rows := 2*width+1, 2*height+1
	lattice := make([][]glyph, rows)
	for row := range lattice {
		lattice[row] = make([]glyph, cols)
	}
	set := func(col, row int, g glyph) {
		if col >= 0 && row >= 0 && col < cols && row < rows {
			lattice[row][col] = g
		}
	}
	for y := range height {
		for x := range width {
			g := glyphEmpty
			if occ.Solid(x, y) {
				g = glyphSolid
			}
			set(2*x+1, 2*y+1, g)
		}
	}
	for _, loop := range loops {
		corner := glyphCorner
		if loop.IsHole() {
			corner = glyphHoleCorner
		}
		for a, b := range loop.Segments() {
			step := grid.Point{sign(b.X() - a.X()), sign(b.Y() - a.Y())}
			if step.X() != 0 && step.Y() != 0 {
				// Not axis aligned: only corners are drawn.
				set(2*a.X(), 2*a.Y(), corner)
				continue
			}
			edge := glyphHorizontal
			if step.X() == 0 {
				edge = glyphVertical
			}
			for p := a; p != b; p = p.Add(step) {
				next := p.Add(step)
				set(p.X()+next.X(), p.Y()+next.Y(), edge)
				if next != b {
					set(2*next.X(), 2*next.Y(), edge)
				}
			}
			set(2*a.X(), 2*a.Y(), corner)
		}
	}

	var sb strings.Builder
	for row, line := range lattice {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, g := range line {
			sb.WriteString(ui.glyphString(g))
		}
	}
	return sb.String()
}

func (ui *UI) glyphString(g glyph) string {
	s := string(glyphRunes[g])
	if !ui.color || g == glyphBlank {
		return s
	}
	return glyphStyles[g].Render(s)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// PrintLayer prints the title and the rendered layer, centered.
func (ui *UI) PrintLayer(title string, width, height int, occ grid.Occupancy, loops []outline.Loop) {
	if ui.color {
		title = titleStyle.Render(title)
	}
	printCentered(ui.out, title)
	_, _ = fmt.Fprintln(ui.out)
	printCentered(ui.out, ui.RenderLayer(width, height, occ, loops))
	_, _ = fmt.Fprintln(ui.out)
}

// PrintResult prints the summary of a level build, and optionally each layer's overlay.
func (ui *UI) PrintResult(r *build.Result, categories []string, overlay bool) {
	summary := r.String()
	if ui.color && r.Dropped() {
		summary = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(summary)
	}
	_, _ = fmt.Fprint(ui.out, summary)
	if !overlay {
		return
	}
	_, _ = fmt.Fprintln(ui.out)
	for _, lr := range r.Layers {
		title := fmt.Sprintf("%s / %s", r.Level, lr.Layer.Name)
		ui.PrintLayer(title, lr.Layer.Width, lr.Layer.Height, lr.Layer.Occupancy(categories), lr.Loops)
	}
}
