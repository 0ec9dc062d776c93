package experiment

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/samuelfneumann/mazelearn/agent"
	env "github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/experiment/tracker"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// LogEvery is the number of episodes between progress log lines
const LogEvery = 50

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent

	maxSteps     uint
	currentSteps uint
	maxEpisodes  int
	episodes     int

	trackers []tracker.Tracker
	id       uuid.UUID
	logger   *log.Logger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The experiment ends once steps
// timesteps or episodes episodes have been run, whichever comes first.
// A limit of 0 is no limit. The t parameter is a slice of
// tracker.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint, episodes int,
	t ...tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		maxSteps:    steps,
		maxEpisodes: episodes,
		trackers:    t,
		id:          uuid.New(),
		logger:      log.New(io.Discard, "", 0),
	}
}

// SetLogger sets the logger that experiment progress is reported to
func (o *Online) SetLogger(l *log.Logger) {
	o.logger = l
}

// ID returns the unique ID of this run
func (o *Online) ID() uuid.UUID {
	return o.id
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Episodes returns the number of finished episodes
func (o *Online) Episodes() int {
	return o.episodes
}

// Steps returns the number of timesteps run
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Done returns whether the step or episode limit has been reached
func (o *Online) Done() bool {
	return (o.maxSteps > 0 && o.currentSteps >= o.maxSteps) ||
		(o.maxEpisodes > 0 && o.episodes >= o.maxEpisodes)
}

// RunEpisode runs a single episode of the experiment. An episode cut
// short by the step limit is not reported to the agent as finished.
func (o *Online) RunEpisode() (bool, error) {
	step := o.Environment.Reset()
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	for !step.Last() && (o.maxSteps == 0 || o.currentSteps < o.maxSteps) {
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _ = o.Environment.Step(action)

		o.track(step)

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
	}

	if step.Last() {
		o.Agent.EndEpisode()
		o.episodes++
		if o.episodes%LogEvery == 0 {
			o.logger.Printf("run %v: %v", o.id, o.Agent.Stats())
		}
	}

	return o.Done(), nil
}

// Run runs the entire experiment
func (o *Online) Run() error {
	for ended := o.Done(); !ended; {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
