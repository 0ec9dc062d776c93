package tracker

import (
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/timestep"
)

// registeredTracker tracks the most recent TimeStep of a registered
// Environment instead of the TimeStep it is given. The Save() method
// is that of the embedded Tracker.
//
// This is useful when a Tracker is attached to an experiment after it
// has started, or when the TimeSteps passed around by the caller have
// been modified (for example when an evaluation pass strips rewards).
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register returns a Tracker that tracks data from env only, saving
// it with t.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered Environment. The argument is ignored.
func (r *registeredTracker) Track(timestep.TimeStep) {
	r.Tracker.Track(r.env.LastTimeStep())
}
