package planner

import (
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/reward"
)

// MazeModel is a Model of a maze over the cells of its grid. Dynamic
// elements are frozen at the tick the model is created on, so a
// MazeModel should only be used for a single decision.
type MazeModel struct {
	view     environment.View
	goal     grid.Position
	extended bool
}

// NewMazeModel returns a MazeModel of the maze seen through view. The
// extended action set is searched over only if extended is true.
func NewMazeModel(view environment.View, extended bool) MazeModel {
	return MazeModel{
		view:     view,
		goal:     view.Grid().Goal(),
		extended: extended,
	}
}

// Actions implements the Model interface
func (m MazeModel) Actions(p grid.Position) []action.Action {
	if p == m.goal {
		return nil
	}
	return m.view.ValidActions(p, m.extended)
}

// Step implements the Model interface. Rewards are the step cost and
// distance shaping terms, plus the win reward on reaching the goal.
func (m MazeModel) Step(p grid.Position, a action.Action) (grid.Position,
	float64, bool) {
	d, ok := a.Direction()
	if !ok {
		return p, reward.StepCost, false
	}

	next := p.Step(d, a.Distance())
	r := reward.StepCost + reward.Distance(grid.Manhattan(p, m.goal),
		grid.Manhattan(next, m.goal))
	if next == m.goal {
		return next, r + reward.WinReward, true
	}
	return next, r, false
}

// Evaluate implements the Model interface
func (m MazeModel) Evaluate(p grid.Position) float64 {
	return -reward.DistanceScale * float64(grid.Manhattan(p, m.goal))
}
