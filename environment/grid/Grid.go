// Package grid implements the static occupancy grid of a maze along
// with positions and the four cardinal directions of movement.
package grid

import (
	"fmt"
	"strings"
)

// Cell values of a Grid
const (
	Open = 0
	Wall = 1
)

// Position is a (row, column) coordinate in a Grid
type Position struct {
	Row, Col int
}

// Add returns the position one cell away from p in direction d
func (p Position) Add(d Direction) Position {
	return p.Step(d, 1)
}

// Step returns the position n cells away from p in direction d
func (p Position) Step(d Direction, n int) Position {
	dRow, dCol := d.Delta()
	return Position{Row: p.Row + n*dRow, Col: p.Col + n*dCol}
}

// Sub returns the offset of p relative to q
func (p Position) Sub(q Position) Position {
	return Position{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance between two positions
func Manhattan(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Grid is an immutable two dimensional occupancy grid. Cells are either
// Open or Wall. The start of a maze is always at (1, 1) and the goal at
// (rows-2, cols-2).
type Grid struct {
	cells []uint8
	rows  int
	cols  int
}

// New returns a new Grid from a rectangular slice of 0/1 cells. The
// argument is copied.
func New(cells [][]int) (*Grid, error) {
	rows := len(cells)
	if rows < 3 {
		return nil, fmt.Errorf("new: grid must have at least 3 rows, got %d",
			rows)
	}
	cols := len(cells[0])
	if cols < 3 {
		return nil, fmt.Errorf("new: grid must have at least 3 columns, "+
			"got %d", cols)
	}

	g := &Grid{
		cells: make([]uint8, rows*cols),
		rows:  rows,
		cols:  cols,
	}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("new: row %d has %d columns, want %d", r,
				len(row), cols)
		}
		for c, v := range row {
			if v != Open && v != Wall {
				return nil, fmt.Errorf("new: cell (%d, %d) has value %d, "+
					"want 0 or 1", r, c, v)
			}
			g.cells[r*cols+c] = uint8(v)
		}
	}

	if !g.IsOpen(g.Start()) {
		return nil, fmt.Errorf("new: start %v is a wall", g.Start())
	}
	if !g.IsOpen(g.Goal()) {
		return nil, fmt.Errorf("new: goal %v is a wall", g.Goal())
	}
	return g, nil
}

// NewOpen returns a rows x cols grid with a wall border and an open
// interior
func NewOpen(rows, cols int) (*Grid, error) {
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
		for c := range cells[r] {
			if r == 0 || c == 0 || r == rows-1 || c == cols-1 {
				cells[r][c] = Wall
			}
		}
	}
	return New(cells)
}

// Dims returns the number of rows and columns in the grid
func (g *Grid) Dims() (int, int) {
	return g.rows, g.cols
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int { return g.cols }

// Size returns the total number of cells in the grid
func (g *Grid) Size() int { return g.rows * g.cols }

// InBounds returns whether p lies inside the grid
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// InArena returns whether p lies inside the grid's border walls
func (g *Grid) InArena(p Position) bool {
	return p.Row >= 1 && p.Row <= g.rows-2 && p.Col >= 1 && p.Col <= g.cols-2
}

// IsOpen returns whether p is in bounds and not a wall
func (g *Grid) IsOpen(p Position) bool {
	return g.InBounds(p) && g.cells[p.Row*g.cols+p.Col] == Open
}

// At returns the value of the cell at p. Out of bounds cells are walls.
func (g *Grid) At(p Position) int {
	if !g.InBounds(p) {
		return Wall
	}
	return int(g.cells[p.Row*g.cols+p.Col])
}

// Start returns the starting position
func (g *Grid) Start() Position {
	return Position{Row: 1, Col: 1}
}

// Goal returns the goal position
func (g *Grid) Goal() Position {
	return Position{Row: g.rows - 2, Col: g.cols - 2}
}

// Key returns a stable integer key for p, unique within the grid
func (g *Grid) Key(p Position) int {
	return p.Row*g.cols + p.Col
}

// PositionOf is the inverse of Key
func (g *Grid) PositionOf(key int) Position {
	return Position{Row: key / g.cols, Col: key % g.cols}
}

// OpenCells returns all open cells in row-major order
func (g *Grid) OpenCells() []Position {
	open := make([]Position, 0, len(g.cells))
	for i, v := range g.cells {
		if v == Open {
			open = append(open, g.PositionOf(i))
		}
	}
	return open
}

// Cells returns a copy of the grid as a slice of rows
func (g *Grid) Cells() [][]int {
	cells := make([][]int, g.rows)
	for r := range cells {
		cells[r] = make([]int, g.cols)
		for c := range cells[r] {
			cells[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return cells
}

func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p := Position{r, c}
			switch {
			case p == g.Start():
				b.WriteByte('S')
			case p == g.Goal():
				b.WriteByte('G')
			case g.cells[r*g.cols+c] == Wall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
