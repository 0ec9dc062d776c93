package qlearning

import (
	"math"

	"github.com/samuelfneumann/mazelearn/environment/action"
)

// Values are the action values of the cardinal moves in a single cell
type Values [action.Cardinal]float64

// Table is a sparse table of action values keyed by cell. Cells that
// have never been updated have all action values 0.
type Table struct {
	values map[int]Values
}

// NewTable returns a new, empty Table
func NewTable() *Table {
	return &Table{values: make(map[int]Values)}
}

// Values returns the action values of cell key
func (t *Table) Values(key int) Values {
	return t.values[key]
}

// At returns the value of action a in cell key
func (t *Table) At(key int, a action.Action) float64 {
	return t.values[key][a]
}

// Set sets the value of action a in cell key
func (t *Table) Set(key int, a action.Action, v float64) {
	values := t.values[key]
	values[a] = v
	t.values[key] = values
}

// Max returns the maximum value over the valid actions of cell key, or
// 0 if there are no valid actions
func (t *Table) Max(key int, valid []action.Action) float64 {
	if len(valid) == 0 {
		return 0
	}
	values := t.values[key]
	max := math.Inf(-1)
	for _, a := range valid {
		max = math.Max(max, values[a])
	}
	return max
}

// Len returns the number of cells in the table
func (t *Table) Len() int {
	return len(t.values)
}

// Clear removes all cells from the table
func (t *Table) Clear() {
	t.values = make(map[int]Values)
}

// Target returns the Q-learning target for receiving reward r and
// moving to cell next. The bootstrap term is 0 if next is terminal or
// has no valid actions.
func (t *Table) Target(r float64, next int, nextValid []action.Action,
	terminal bool, discount float64) float64 {
	if terminal {
		return r
	}
	return r + discount*t.Max(next, nextValid)
}

// Update performs the Q-learning update of action a in cell s towards
// target and returns the new action value
func (t *Table) Update(s int, a action.Action, target,
	learningRate float64) float64 {
	q := t.At(s, a)
	q += learningRate * (target - q)
	t.Set(s, a, q)
	return q
}
