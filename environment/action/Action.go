// Package action defines the discrete actions an agent may take in a
// maze. The first four actions are the cardinal moves, which form the
// whole action space of the tabular agents. The remaining actions are
// only used by agents with the extended action set.
package action

import (
	"fmt"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// Action is a discrete action
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	DashUp
	DashDown
	DashLeft
	DashRight
	JumpUp
	JumpDown
	JumpLeft
	JumpRight
	Wait
	Rest
	UseItem
)

const (
	// Cardinal is the number of cardinal move actions
	Cardinal = 4

	// Count is the number of actions in the extended action set
	Count = 15
)

// Kind is the category of an Action
type Kind int

const (
	Move Kind = iota
	Dash
	Jump
	Hold
	Recover
	Consume
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Dash:
		return "dash"
	case Jump:
		return "jump"
	case Hold:
		return "wait"
	case Recover:
		return "rest"
	case Consume:
		return "use_item"
	}
	return "unknown"
}

// Valid returns whether a is in the extended action set
func (a Action) Valid() bool {
	return a >= 0 && a < Count
}

// Kind returns the category of the action
func (a Action) Kind() Kind {
	switch {
	case a < DashUp:
		return Move
	case a < JumpUp:
		return Dash
	case a < Wait:
		return Jump
	case a == Wait:
		return Hold
	case a == Rest:
		return Recover
	default:
		return Consume
	}
}

// Direction returns the direction the action moves in. The second
// return value is false for actions that do not move the agent.
func (a Action) Direction() (grid.Direction, bool) {
	switch a.Kind() {
	case Move, Dash, Jump:
		return grid.Direction(int(a) % Cardinal), true
	}
	return grid.Up, false
}

// Distance returns the number of cells the action moves the agent
func (a Action) Distance() int {
	switch a.Kind() {
	case Move, Jump:
		return 1
	case Dash:
		return 2
	}
	return 0
}

// Opposite returns the move undoing a, or false if a does not move
func (a Action) Opposite() (Action, bool) {
	d, ok := a.Direction()
	if !ok {
		return a, false
	}
	return FromDirection(d.Opposite()), true
}

// FromDirection returns the cardinal move in direction d
func FromDirection(d grid.Direction) Action {
	return Action(d)
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	d, ok := a.Direction()
	if !ok {
		return a.Kind().String()
	}
	return fmt.Sprintf("%v_%v", a.Kind(), d)
}

// Cardinals returns the cardinal move actions
func Cardinals() []Action {
	return []Action{Up, Down, Left, Right}
}

// All returns every action of the extended action set
func All() []Action {
	all := make([]Action, Count)
	for i := range all {
		all[i] = Action(i)
	}
	return all
}
