package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/SamuelWFerguson/tsp-genetic-algorithm-solver/internal/geom"
)

// Display draws a tour onto a character grid
type Display struct {
	cols   int
	rows   int
	points []geom.Point

	minX, minY   float64
	spanX, spanY float64
}

// NewDisplay creates a display scaled to the bounding box of points
func NewDisplay(cols, rows int, points []geom.Point) *Display {
	d := &Display{cols: max(cols, 2), rows: max(rows, 2), points: points}
	if len(points) == 0 {
		return d
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	d.minX, d.minY = minX, minY
	d.spanX, d.spanY = maxX-minX, maxY-minY
	return d
}

// cell maps a point to its grid column and row
func (d *Display) cell(p geom.Point) (int, int) {
	col, row := 0, 0
	if d.spanX > 0 {
		col = int(math.Round((p.X - d.minX) / d.spanX * float64(d.cols-1)))
	}
	if d.spanY > 0 {
		row = int(math.Round((p.Y - d.minY) / d.spanY * float64(d.rows-1)))
	}
	return col, row
}

// Grid draws unvisited points as '·' and the visited prefix of order as
// 'o' joined by '*' edges. The first stop is 'S' and the latest one '@'.
// Row 0 is the bottom of the bounding box.
func (d *Display) Grid(order []int) [][]rune {
	grid := make([][]rune, d.rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", d.cols))
	}

	for _, p := range d.points {
		c, r := d.cell(p)
		grid[r][c] = '·'
	}

	for i := 1; i < len(order); i++ {
		d.line(grid, d.points[order[i-1]], d.points[order[i]])
	}
	if len(order) == len(d.points) && len(order) > 2 {
		d.line(grid, d.points[order[len(order)-1]], d.points[order[0]])
	}

	for _, idx := range order {
		c, r := d.cell(d.points[idx])
		grid[r][c] = 'o'
	}
	if len(order) > 0 {
		c, r := d.cell(d.points[order[len(order)-1]])
		grid[r][c] = '@'
		c, r = d.cell(d.points[order[0]])
		grid[r][c] = 'S'
	}
	return grid
}

// Status describes how far along order the display is
func (d *Display) Status(order []int) string {
	cost := 0.0
	for i := 1; i < len(order); i++ {
		cost += geom.Distance(d.points[order[i-1]], d.points[order[i]])
	}
	return fmt.Sprintf("Stops: %d/%d | Open path: %.2f", len(order), len(d.points), cost)
}

// Render writes the grid for order inside a border, followed by a status line
func (d *Display) Render(w io.Writer, order []int) {
	grid := d.Grid(order)

	fmt.Fprintln(w, "┌"+strings.Repeat("─", d.cols)+"┐")
	for y := d.rows - 1; y >= 0; y-- {
		fmt.Fprintln(w, "│"+string(grid[y])+"│")
	}
	fmt.Fprintln(w, "└"+strings.Repeat("─", d.cols)+"┘")

	if len(order) > 0 {
		fmt.Fprintf(w, "  %s\n", d.Status(order))
	}
}

// line plots the cells between a and b by sampling along the segment
func (d *Display) line(grid [][]rune, a, b geom.Point) {
	c0, r0 := d.cell(a)
	c1, r1 := d.cell(b)
	steps := max(abs(c1-c0), abs(r1-r0))
	for s := 1; s < steps; s++ {
		t := float64(s) / float64(steps)
		c := c0 + int(math.Round(t*float64(c1-c0)))
		r := r0 + int(math.Round(t*float64(r1-r0)))
		if grid[r][c] == ' ' {
			grid[r][c] = '*'
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
