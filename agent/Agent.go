// Package agent defines an agent interface
package agent

import (
	"log"

	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns values, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
type Agent interface {
	Learner
	Policy

	// Stats returns a snapshot of the agent's training statistics
	Stats() Snapshot

	// ResetStats forgets all statistics and learned values
	ResetStats()
}

// Learner implements a learning algorithm that defines how values are
// updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(a action.Action, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode records the result of the episode that just finished
	// and updates the exploration rate
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should share the same values so that any changes
// the learner makes are reflected in the actions the Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) action.Action
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// EpsilonGreedy is a Policy whose exploration rate can be inspected and
// overridden
type EpsilonGreedy interface {
	Policy
	SetEpsilon(float64)
	Epsilon() float64
}

// Logging is an Agent which reports its progress to a logger
type Logging interface {
	SetLogger(*log.Logger)
}
