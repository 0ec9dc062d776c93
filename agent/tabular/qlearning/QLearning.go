// Package qlearning implements the tabular Q-Learning algorithm over
// the cells of a maze
package qlearning

import (
	"log"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/scheduler"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Strategy is the strategy label reported by a QLearning agent
const Strategy = "q-learning"

// QLearning implements the tabular Q-Learning algorithm
type QLearning struct {
	*QLearner
	*EGreedy

	view     environment.View
	table    *Table
	schedule *scheduler.Scheduler
	recorder agent.Recorder

	last          ts.TimeStep
	episodeReturn float64
}

// New creates a new QLearning agent acting in the maze seen through
// view
func New(view environment.View, learningRate, discount float64,
	schedule *scheduler.Scheduler, planning *agent.Planning,
	seed uint64) *QLearning {
	table := NewTable()

	return &QLearning{
		QLearner: NewQLearner(table, view, learningRate, discount),
		EGreedy:  NewEGreedy(table, view, schedule, planning, seed),
		view:     view,
		table:    table,
		schedule: schedule,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearning) ObserveFirst(t ts.TimeStep) error {
	q.episodeReturn = 0
	q.last = t
	return q.QLearner.ObserveFirst(t)
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearning) Observe(a action.Action, nextStep ts.TimeStep) error {
	q.ObserveOutcome(nextStep)
	return q.QLearner.Observe(a, nextStep)
}

// ObserveOutcome records the reward and outcome of nextStep without
// learning from it
func (q *QLearning) ObserveOutcome(nextStep ts.TimeStep) {
	q.episodeReturn += nextStep.Reward
	q.last = nextStep
}

// Step updates the action values. No updates are made in evaluation
// mode.
func (q *QLearning) Step() error {
	if q.IsEval() {
		q.Discard()
		return nil
	}
	return q.QLearner.Step()
}

// EndEpisode records the result of the episode and decays the
// exploration rate
func (q *QLearning) EndEpisode() {
	won := q.last.Won()
	moves := q.view.Agent().Moves
	q.recorder.Record(won, moves, q.episodeReturn)

	if !q.IsEval() {
		q.schedule.EndEpisode(scheduler.Result{
			Won:    won,
			Moves:  moves,
			Reward: q.episodeReturn,
		})
	}
}

// Stats returns a snapshot of the agent's training statistics
func (q *QLearning) Stats() agent.Snapshot {
	s := agent.Snapshot{
		Epsilon:   q.Epsilon(),
		Gamma:     q.Discount(),
		TableSize: q.table.Len(),
		Strategy:  Strategy,
	}
	q.recorder.Fill(&s)
	return s
}

// ResetStats forgets all statistics and learned action values
func (q *QLearning) ResetStats() {
	q.recorder.Reset()
	q.table.Clear()
}

// Table returns the agent's action value table
func (q *QLearning) Table() *Table {
	return q.table
}

// Recorder returns the agent's episode recorder
func (q *QLearning) Recorder() *agent.Recorder {
	return &q.recorder
}

// Schedule returns the agent's exploration rate scheduler
func (q *QLearning) Schedule() *scheduler.Scheduler {
	return q.schedule
}

// SetLogger sets the logger the exploration schedule reports to
func (q *QLearning) SetLogger(l *log.Logger) {
	q.schedule.SetLogger(l)
}

// LastStep returns the last timestep observed
func (q *QLearning) LastStep() ts.TimeStep {
	return q.last
}

// Return returns the return accumulated so far in the episode
func (q *QLearning) Return() float64 {
	return q.episodeReturn
}
