// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment/maze"
	"github.com/samuelfneumann/mazelearn/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to Trackers, which cache
// the data they need in RAM until Save() writes it to disk. The Run()
// method runs episodes until the experiment's step or episode limit is
// reached. The RunEpisode() method runs a single episode.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the experiment is done

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// ID uniquely identifies a run of the experiment
	ID() uuid.UUID
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. Configs are JSON
// serializable.
type Config struct {
	Type
	MaxSteps    uint
	MaxEpisodes int

	EnvConf   maze.Config
	AgentConf agent.TypedConfig
}

// Validate returns an error describing whether or not the configuration
// is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.MaxSteps == 0 && c.MaxEpisodes <= 0 {
		return fmt.Errorf("validate: one of MaxSteps or MaxEpisodes " +
			"must be > 0")
	}
	if c.MaxEpisodes < 0 {
		return fmt.Errorf("validate: MaxEpisodes must be >= 0")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.AgentConf.Config == nil {
		return fmt.Errorf("validate: no agent configuration")
	}
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// CreateExp creates the experiment described by the Config. The
// environment and agent are seeded with seed, and logger (which may be
// nil) receives the progress of the environment, agent and experiment.
func (c Config) CreateExp(seed uint64, logger *log.Logger,
	t ...tracker.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}

	var opts []maze.Option
	if logger != nil {
		opts = append(opts, maze.WithLogger(logger))
	}
	env, _, err := c.EnvConf.Create(seed, opts...)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %v",
			err)
	}

	a, err := c.AgentConf.CreateAgent(env, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}
	if l, ok := a.(agent.Logging); ok && logger != nil {
		l.SetLogger(logger)
	}

	o := NewOnline(env, a, c.MaxSteps, c.MaxEpisodes, t...)
	if logger != nil {
		o.SetLogger(logger)
	}
	return o, nil
}
