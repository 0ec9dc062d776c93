// Package generator generates perfect mazes as 0/1 grids from the
// room graphs linked by gomaze.
//
// Generated grids have odd dimensions and a wall border. Cells with two
// odd coordinates are rooms; the cells between them are walls that may
// be carved out. The start (1, 1) and goal (rows-2, cols-2) are always
// rooms, and every room is reachable from every other.
package generator

import (
	"fmt"

	"github.com/samuelfneumann/gomaze"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// MinSize is the smallest number of rows or columns of a generated maze
const MinSize = 5

// Algorithm names a maze generation algorithm
type Algorithm string

const (
	WilsonAlgorithm       Algorithm = "Wilson"
	BacktrackingAlgorithm Algorithm = "Backtracking"
	AldousBroderAlgorithm Algorithm = "AldousBroder"
	BinaryTreeAlgorithm   Algorithm = "BinaryTree"
)

// Valid reports whether a names a known algorithm. The zero Algorithm
// is valid and selects Wilson's algorithm.
func (a Algorithm) Valid() bool {
	_, err := a.Initer(0)
	return err == nil
}

// Initer returns the gomaze.Initer running a, seeded with seed
func (a Algorithm) Initer(seed int64) (gomaze.Initer, error) {
	switch a {
	case "", WilsonAlgorithm:
		return gomaze.NewWilson(seed), nil

	case BacktrackingAlgorithm:
		return gomaze.NewBacktracking(seed), nil

	case AldousBroderAlgorithm:
		return gomaze.NewAldousBroder(seed), nil

	case BinaryTreeAlgorithm:
		return gomaze.NewBinaryTree(seed), nil
	}
	return nil, fmt.Errorf("initer: no such algorithm %q", string(a))
}

// Generate generates a rows x cols maze with algorithm a. The seed of
// the algorithm is drawn from rng.
func Generate(a Algorithm, rows, cols int, rng *rand.Rand) (*grid.Grid,
	error) {
	init, err := a.Initer(int64(rng.Uint64() >> 1))
	if err != nil {
		return nil, fmt.Errorf("generate: %v", err)
	}
	return FromIniter(rows, cols, init)
}

// Wilson generates a uniform spanning tree maze with Wilson's algorithm:
// loop-erased random walks from unvisited rooms are grafted onto the
// maze until every room has been visited.
func Wilson(rows, cols int, rng *rand.Rand) (*grid.Grid, error) {
	return Generate(WilsonAlgorithm, rows, cols, rng)
}

// FromIniter carves a rows x cols maze out of a room grid linked by
// init. Room (r, c) of the gomaze grid becomes cell (2r+1, 2c+1), and a
// link between two rooms opens the wall cell between them.
func FromIniter(rows, cols int, init gomaze.Initer) (*grid.Grid, error) {
	if rows < MinSize || cols < MinSize {
		return nil, fmt.Errorf("fromIniter: maze must be at least %dx%d, "+
			"got %dx%d", MinSize, MinSize, rows, cols)
	}
	if rows%2 == 0 || cols%2 == 0 {
		return nil, fmt.Errorf("fromIniter: maze dimensions must be odd, "+
			"got %dx%d", rows, cols)
	}

	rooms := gomaze.NewGrid((rows-1)/2, (cols-1)/2)
	if err := init.Init(rooms); err != nil {
		return nil, fmt.Errorf("fromIniter: could not link rooms: %v", err)
	}

	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
		for c := range cells[r] {
			cells[r][c] = grid.Wall
		}
	}

	for _, room := range rooms.Cells() {
		r, c := 2*room.Row()+1, 2*room.Col()+1
		cells[r][c] = grid.Open
		if room.CanMoveEast() {
			cells[r][c+1] = grid.Open
		}
		if room.CanMoveSouth() {
			cells[r+1][c] = grid.Open
		}
	}

	return grid.New(cells)
}

// Dimensions returns the odd maze size used for a procedural level,
// growing by two cells every other level from base
func Dimensions(base, level int) int {
	size := base + 2*(level/2)
	if size%2 == 0 {
		size++
	}
	if size < MinSize {
		size = MinSize
	}
	return size
}

// Braid carves n random interior walls that separate two rooms, adding
// loops to a perfect maze. It returns a new grid.
func Braid(g *grid.Grid, n int, rng *rand.Rand) (*grid.Grid, error) {
	cells := g.Cells()

	var candidates []grid.Position
	for r := 1; r < g.Rows()-1; r++ {
		for c := 1; c < g.Cols()-1; c++ {
			p := grid.Position{Row: r, Col: c}
			if g.IsOpen(p) {
				continue
			}
			horizontal := g.IsOpen(p.Add(grid.Left)) && g.IsOpen(p.Add(grid.Right))
			vertical := g.IsOpen(p.Add(grid.Up)) && g.IsOpen(p.Add(grid.Down))
			if horizontal != vertical {
				candidates = append(candidates, p)
			}
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for i := 0; i < n && i < len(candidates); i++ {
		p := candidates[i]
		cells[p.Row][p.Col] = grid.Open
	}
	return grid.New(cells)
}
