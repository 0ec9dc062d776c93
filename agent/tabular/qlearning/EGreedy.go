package qlearning

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/planner"
	"github.com/samuelfneumann/mazelearn/scheduler"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// DefaultAction is selected when no action is valid
const DefaultAction = action.Up

// Scorer scores taking action a from cell p when exploiting, given the
// action's value q
type Scorer func(p grid.Position, a action.Action, q float64) float64

// EGreedy implements an ε-greedy policy over the valid cardinal moves
// of a cell, using the action values of a Table
type EGreedy struct {
	table    *Table
	view     environment.View
	schedule *scheduler.Scheduler

	// score ranks actions when exploiting, defaulting to their values
	score Scorer

	planning *agent.Planning
	rng      *rand.Rand
	source   rand.Source

	eval bool
}

// NewEGreedy constructs a new EGreedy policy. If planning is not nil,
// every action is chosen by a lookahead search instead.
func NewEGreedy(table *Table, view environment.View,
	schedule *scheduler.Scheduler, planning *agent.Planning,
	seed uint64) *EGreedy {
	source := rand.NewSource(seed)

	return &EGreedy{
		table:    table,
		view:     view,
		schedule: schedule,
		planning: planning,
		rng:      rand.New(rand.NewSource(seed + 1)),
		source:   source,
	}
}

// SetScorer sets the function used to rank actions when exploiting
func (e *EGreedy) SetScorer(s Scorer) {
	e.score = s
}

// SelectAction selects an action from an ε-greedy policy. In
// evaluation mode the greedy action is always selected.
func (e *EGreedy) SelectAction(_ ts.TimeStep) action.Action {
	pos := e.view.Agent().Position
	valid := e.view.ValidActions(pos, false)
	if len(valid) == 0 {
		return DefaultAction
	}

	if e.planning != nil {
		model := planner.NewMazeModel(e.view, false)
		a, _ := planner.Search[grid.Position](model, pos,
			e.planning.Options(DefaultAction, e.rng))
		return a
	}

	greedy := e.Greedy(pos, valid)
	if e.eval || e.Epsilon() == 0 {
		return valid[greedy]
	}

	// Calculate the ε probability of choosing any valid action at
	// random and adjust the probability of the greedy action
	epsilon := e.Epsilon()
	prob := epsilon / float64(len(valid))
	actionProbabilities := make([]float64, len(valid))
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}
	actionProbabilities[greedy] += 1.0 - epsilon

	dist := distuv.NewCategorical(actionProbabilities, e.source)
	return valid[int(dist.Rand())]
}

// Greedy returns the index in valid of the highest scoring action from
// cell p. Ties are broken by the order of valid.
func (e *EGreedy) Greedy(p grid.Position, valid []action.Action) int {
	values := e.table.Values(e.view.Grid().Key(p))

	best := 0
	var bestScore float64
	for i, a := range valid {
		score := values[a]
		if e.score != nil {
			score = e.score(p, a, score)
		}
		if i == 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Epsilon returns the current exploration rate
func (e *EGreedy) Epsilon() float64 {
	return e.schedule.Epsilon()
}

// SetEpsilon overrides the current exploration rate
func (e *EGreedy) SetEpsilon(epsilon float64) {
	e.schedule.SetEpsilon(epsilon)
}

// Eval sets the policy to evaluation mode
func (e *EGreedy) Eval() { e.eval = true }

// Train sets the policy to training mode
func (e *EGreedy) Train() { e.eval = false }

// IsEval indicates whether the policy is in evaluation mode
func (e *EGreedy) IsEval() bool { return e.eval }
