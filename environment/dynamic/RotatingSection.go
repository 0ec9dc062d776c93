package dynamic

import (
	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// armOrder gives the direction of a rotating section's arm for each
// quarter turn
var armOrder = [4]grid.Direction{grid.Right, grid.Down, grid.Left, grid.Up}

// RotatingSection is a pivot with a single arm of Radius cells which
// turns 90 degrees clockwise every RotationSpeed ticks. Angle is kept in
// degrees in [0, 360).
type RotatingSection struct {
	Center         grid.Position
	Radius         int
	RotationSpeed  int
	Angle          int
	LastRotateTick int
}

// Arm returns the direction the arm currently points in
func (r *RotatingSection) Arm() grid.Direction {
	return armOrder[(r.Angle/90)%4]
}

// Footprint returns the cells covered by the section inside the arena
// of g
func (r *RotatingSection) Footprint(g *grid.Grid) []grid.Position {
	cells := make([]grid.Position, 0, r.Radius+1)
	if g.InArena(r.Center) {
		cells = append(cells, r.Center)
	}

	arm := r.Arm()
	for i := 1; i <= r.Radius; i++ {
		c := r.Center.Step(arm, i)
		if g.InArena(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Covers returns whether the section currently covers p
func (r *RotatingSection) Covers(g *grid.Grid, p grid.Position) bool {
	for _, c := range r.Footprint(g) {
		if c == p {
			return true
		}
	}
	return false
}

// Tick advances the section to the given tick. It returns whether the
// section rotated.
func (r *RotatingSection) Tick(tick int) bool {
	if r.RotationSpeed <= 0 || tick-r.LastRotateTick < r.RotationSpeed {
		return false
	}
	r.LastRotateTick = tick
	r.Angle = (r.Angle + 90) % 360
	return true
}
