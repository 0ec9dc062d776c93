package environment

import (
	"github.com/samuelfneumann/mazelearn/timestep"
)

// FunctionEnder ends an episode whenever a function returns true
type FunctionEnder struct {
	end     func() bool
	outcome timestep.Outcome
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// the given outcome when f returns true.
func NewFunctionEnder(f func() bool, outcome timestep.Outcome) Ender {
	return &FunctionEnder{f, outcome}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will mark the timestep as the last and set its
// Outcome.
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if f.end() {
		t.SetLast()
		t.Outcome = f.outcome
		return true
	}
	return false
}

// FirstEnder ends an episode with the first of a list of Enders that
// ends it. Earlier Enders take precedence.
type FirstEnder []Ender

// End implements the Ender interface
func (f FirstEnder) End(t *timestep.TimeStep) bool {
	for _, e := range f {
		if e.End(t) {
			return true
		}
	}
	return false
}
