// Package environment outlines the interfaces and structs needed to
// implement maze environments
package environment

import (
	"github.com/samuelfneumann/mazelearn/agentstate"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/timestep"
)

// Ender determines when episodes end
type Ender interface {
	// End reports whether the episode should end on t. If so, End
	// marks t as the last timestep and records its outcome.
	End(t *timestep.TimeStep) bool
}

// View is the read-only view of a maze that agents use to decide on
// actions. The values returned may change between timesteps, so agents
// should not cache them across calls.
type View interface {
	Grid() *grid.Grid
	Mode() mode.Mode
	Agent() *agentstate.Agent
	Elements() *dynamic.Elements
	MoveLimit() int

	// IsValidMove reports whether action a can be executed from p
	IsValidMove(p grid.Position, a action.Action) bool

	// ValidActions returns the actions that can be executed from p. The
	// extended action set is considered only if extended is true.
	ValidActions(p grid.Position, extended bool) []action.Action
}

// Environment implements a simulated environment with a View that
// agents can inspect
type Environment interface {
	View
	Reset() timestep.TimeStep // Resets between episodes
	Step(a action.Action) (timestep.TimeStep, bool)
	LastTimeStep() timestep.TimeStep
}
