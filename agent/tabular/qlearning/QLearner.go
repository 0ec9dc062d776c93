package qlearning

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// QLearner implements the update functionality for the tabular
// Q-Learning algorithm.
type QLearner struct {
	table *Table
	view  environment.View

	state     int
	action    action.Action
	nextState int
	nextValid []action.Action
	nextStep  ts.TimeStep
	pending   bool

	learningRate float64
	discount     float64
}

// NewQLearner creates a new QLearner which updates table from the
// transitions it observes in the maze seen through view
func NewQLearner(table *Table, view environment.View, learningRate,
	discount float64) *QLearner {
	return &QLearner{
		table:        table,
		view:         view,
		learningRate: learningRate,
		discount:     discount,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	q.nextState = q.key()
	q.nextStep = t
	q.pending = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearner) Observe(a action.Action, nextStep ts.TimeStep) error {
	if a < 0 || int(a) >= action.Cardinal {
		return fmt.Errorf("observe: tabular learners only support cardinal "+
			"moves, got %v", a)
	}

	q.state = q.nextState
	q.action = a
	q.nextStep = nextStep

	pos := q.view.Agent().Position
	q.nextState = q.key()
	q.nextValid = q.view.ValidActions(pos, false)
	q.pending = true
	return nil
}

// Step updates the action value of the last observed transition. Step
// does nothing if no transition has been observed since the last call.
func (q *QLearner) Step() error {
	if !q.pending {
		return nil
	}
	q.pending = false

	target := q.table.Target(q.nextStep.Reward, q.nextState, q.nextValid,
		q.nextStep.Last(), q.discount)
	q.table.Update(q.state, q.action, target, q.learningRate)
	return nil
}

// Discard forgets the last observed transition without learning from
// it
func (q *QLearner) Discard() {
	q.pending = false
}

// key returns the table key of the agent's current cell
func (q *QLearner) key() int {
	return q.view.Grid().Key(q.view.Agent().Position)
}

// LearningRate returns the learning rate of the learner
func (q *QLearner) LearningRate() float64 {
	return q.learningRate
}

// Discount returns the discount factor of the learner
func (q *QLearner) Discount() float64 {
	return q.discount
}

// Resync forgets the last observed transition and treats the agent's
// current cell as the next state to learn from. Resync is needed when
// the agent moved without the learner observing it.
func (q *QLearner) Resync() {
	q.pending = false
	q.nextState = q.key()
}
