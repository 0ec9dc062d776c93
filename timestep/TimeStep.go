// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// Outcome is the result of an episode as seen on a single timestep
type Outcome int

const (
	Ongoing Outcome = iota
	Win
	Depleted
	Timeout
	OpponentWon
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Depleted:
		return "depleted"
	case Timeout:
		return "timeout"
	case OpponentWon:
		return "opponent-won"
	default:
		return "ongoing"
	}
}

// Terminal returns whether the outcome ends an episode
func (o Outcome) Terminal() bool {
	return o != Ongoing
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	stepType StepType
	Reward   float64
	Discount float64
	Number   int
	Outcome  Outcome

	// Events raised by the environment while producing this timestep
	Events []Event
}

func New(t StepType, r, d float64, n int) TimeStep {
	return TimeStep{stepType: t, Reward: r, Discount: d, Number: n}
}

// StepType returns the type of the TimeStep
func (t *TimeStep) StepType() StepType {
	return t.stepType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// SetLast marks the TimeStep as the last in its episode
func (t *TimeStep) SetLast() {
	t.stepType = Last
}

// Won returns whether the TimeStep ends an episode with a win
func (t *TimeStep) Won() bool {
	return t.Outcome == Win
}

// Has returns whether an event of kind k was raised on the TimeStep
func (t *TimeStep) Has(k EventKind) bool {
	for _, e := range t.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  Outcome: %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Discount, t.Number,
		t.Outcome)
}
