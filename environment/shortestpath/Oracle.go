// Package shortestpath finds shortest routes through a static maze grid
// using A* search over a gonum graph of its open cells.
package shortestpath

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// ErrNoPath is returned when the goal cannot be reached from the start
var ErrNoPath = errors.New("no path")

// Oracle answers shortest path queries on a single grid. The graph of
// the grid is built once and reused across queries.
type Oracle struct {
	grid  *grid.Grid
	graph *simple.UndirectedGraph
}

// New builds an Oracle for g
func New(g *grid.Grid) *Oracle {
	ug := simple.NewUndirectedGraph()

	open := g.OpenCells()
	for _, p := range open {
		ug.AddNode(simple.Node(g.Key(p)))
	}
	for _, p := range open {
		for _, d := range []grid.Direction{grid.Down, grid.Right} {
			q := p.Add(d)
			if g.IsOpen(q) {
				ug.SetEdge(ug.NewEdge(simple.Node(g.Key(p)),
					simple.Node(g.Key(q))))
			}
		}
	}

	return &Oracle{grid: g, graph: ug}
}

// Find returns the cells of a shortest route from start to goal, both
// included. If goal cannot be reached ErrNoPath is returned.
func (o *Oracle) Find(start, goal grid.Position) ([]grid.Position, error) {
	if !o.grid.IsOpen(start) || !o.grid.IsOpen(goal) {
		return nil, fmt.Errorf("find: %v -> %v: %w", start, goal, ErrNoPath)
	}
	if start == goal {
		return []grid.Position{start}, nil
	}

	s := simple.Node(o.grid.Key(start))
	t := simple.Node(o.grid.Key(goal))

	heuristic := func(x, y graph.Node) float64 {
		return float64(grid.Manhattan(o.grid.PositionOf(int(x.ID())),
			o.grid.PositionOf(int(y.ID()))))
	}
	shortest, _ := path.AStar(s, t, o.graph, heuristic)

	nodes, _ := shortest.To(t.ID())
	if len(nodes) == 0 {
		return nil, fmt.Errorf("find: %v -> %v: %w", start, goal, ErrNoPath)
	}

	route := make([]grid.Position, len(nodes))
	for i, n := range nodes {
		route[i] = o.grid.PositionOf(int(n.ID()))
	}
	return route, nil
}

// Find is a convenience wrapper building a one-off Oracle for g
func Find(g *grid.Grid, start, goal grid.Position) ([]grid.Position, error) {
	return New(g).Find(start, goal)
}
