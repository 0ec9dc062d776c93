package trackers

import (
	"github.com/samuelfneumann/mazelearn/experiment/tracker"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	episodes
	filename string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{episodes: newEpisodes(), filename: filename}
}

// Track tracks the rewards seen on a timestep. When a new episode
// starts, this method will automatically detect this and start
// accumulating the rewards for this new episode separately from the
// rewards seen on previous episodes.
func (r *Return) Track(step ts.TimeStep) {
	r.track(step)
}

// Returns returns the returns of all finished episodes
func (r *Return) Returns() []float64 {
	return append([]float64(nil), r.returns...)
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	return tracker.SaveData(r.filename, r.returns)
}
