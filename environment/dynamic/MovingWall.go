// Package dynamic implements the elements of a maze that change over
// time: moving walls, rotating sections, hazards, items and scripted
// opponents. Elements are advanced one tick at a time by Elements.Tick.
package dynamic

import (
	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// MovingWall is a bar of Length cells which slides one cell along
// Direction every Speed ticks. The bar lies along the axis of its
// direction of travel, extending Down or Right from Position. If a move
// would take any part of the bar outside the arena, the wall reverses
// direction instead of moving.
type MovingWall struct {
	Position     grid.Position
	Direction    grid.Direction
	Speed        int
	Length       int
	LastMoveTick int
}

// footprintAt returns the cells covered by a wall anchored at p
func (w *MovingWall) footprintAt(p grid.Position) []grid.Position {
	extend := grid.Right
	if w.Direction.Vertical() {
		extend = grid.Down
	}

	cells := make([]grid.Position, w.Length)
	for i := range cells {
		cells[i] = p.Step(extend, i)
	}
	return cells
}

// Footprint returns the cells currently covered by the wall
func (w *MovingWall) Footprint() []grid.Position {
	return w.footprintAt(w.Position)
}

// Covers returns whether the wall currently covers p
func (w *MovingWall) Covers(p grid.Position) bool {
	for _, c := range w.Footprint() {
		if c == p {
			return true
		}
	}
	return false
}

// Tick advances the wall to the given tick. It returns whether the wall
// moved.
func (w *MovingWall) Tick(g *grid.Grid, tick int) bool {
	if w.Speed <= 0 || tick-w.LastMoveTick < w.Speed {
		return false
	}
	w.LastMoveTick = tick

	next := w.Position.Add(w.Direction)
	for _, c := range w.footprintAt(next) {
		if !g.InArena(c) {
			w.Direction = w.Direction.Opposite()
			return false
		}
	}
	w.Position = next
	return true
}
