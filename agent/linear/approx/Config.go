package approx

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/expreplay"
	"github.com/samuelfneumann/mazelearn/scheduler"
)

func init() {
	agent.Register(agent.LinearApprox, Config{})
}

const (
	DefaultDiscount   = 0.99
	DefaultBatchSize  = 32
	DefaultCapacity   = 10000
	DefaultTrainEvery = 4
)

// defaults are the learning rate and exploration schedule used in a
// game mode when a Config leaves them unset
type defaults struct {
	learningRate float64
	epsilon      float64
	decay        float64
}

// modeDefaults are the defaults of each mode. Fog has the highest
// learning rate, the steepest decay and the largest initial ε.
var modeDefaults = [mode.Count]defaults{
	mode.Static:               {0.01, 0.95, 0.995},
	mode.MovingObstacles:      {0.01, 0.9, 0.993},
	mode.Competitive:          {0.01, 0.8, 0.99},
	mode.Survival:             {0.01, 0.9, 0.99},
	mode.Procedural:           {0.01, 0.95, 0.995},
	mode.PartialObservability: {0.02, 1.0, 0.98},
}

// Config implements a configuration for a linear Q-Learning agent.
// Zero valued fields take the defaults of the game mode. Under partial
// observability the learning rate and exploration schedule are always
// those of the mode.
type Config struct {
	LearningRate float64 `json:",omitempty"`
	Discount     float64 `json:",omitempty"`

	// SampleMethod selects how batches are drawn from the replay
	// buffer, uniformly at random if empty
	SampleMethod expreplay.SelectorType `json:",omitempty"`
	BatchSize    int                    `json:",omitempty"`
	Capacity     int                    `json:",omitempty"`
	TrainEvery   int                    `json:",omitempty"`

	Exploration *agent.Exploration `json:",omitempty"`
	Planning    *agent.Planning    `json:",omitempty"`
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.LearningRate < 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in [0, 1]")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]")
	}
	if c.BatchSize < 0 || c.Capacity < 0 || c.TrainEvery < 0 {
		return fmt.Errorf("validate: batch size, capacity and train " +
			"frequency must be >= 0")
	}
	if c.withDefaults().BatchSize > c.withDefaults().Capacity {
		return fmt.Errorf("validate: cannot have batch size (%v) > "+
			"capacity (%v)", c.withDefaults().BatchSize,
			c.withDefaults().Capacity)
	}
	if _, err := expreplay.CreateSelector(c.SampleMethod, 1, 0); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if err := c.Exploration.Validate(); err != nil {
		return err
	}
	return c.Planning.Validate()
}

// withDefaults returns a copy of c with its zero valued replay and
// discount fields filled in
func (c Config) withDefaults() Config {
	if c.Discount == 0 {
		c.Discount = DefaultDiscount
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.TrainEvery == 0 {
		c.TrainEvery = DefaultTrainEvery
	}
	return c
}

// CreateAgent creates a new Approx agent based on the configuration
func (c Config) CreateAgent(view environment.View,
	seed uint64) (agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}
	c = c.withDefaults()
	m := view.Mode()
	d := modeDefaults[m]

	if m.HasFog() && (c.LearningRate != 0 || c.Exploration != nil) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring learning rate and "+
			"exploration overrides in mode %v\n", m)
		c.LearningRate = 0
		c.Exploration = nil
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.learningRate
	}

	var schedule *scheduler.Scheduler
	if c.Exploration == nil {
		schedule = scheduler.New(scheduler.Schedule{
			Start: d.epsilon,
			End:   scheduler.ModeDefaults(m).Min,
			Decay: d.decay,
		})
	} else {
		var err error
		schedule, err = c.Exploration.Scheduler(m)
		if err != nil {
			return nil, fmt.Errorf("createAgent: %v", err)
		}
	}

	buffer, err := expreplay.Config{
		SampleMethod: c.SampleMethod,
		BatchSize:    c.BatchSize,
		MaxCapacity:  c.Capacity,
	}.Create(FeatureSize(m), seed+3)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	a, err := New(view, c.LearningRate, c.Discount, buffer, schedule,
		c.TrainEvery, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}
	a.SetPlanning(c.Planning)
	return a, nil
}

// Type returns the type of agent the Config creates
func (c Config) Type() agent.Type {
	return agent.LinearApprox
}
