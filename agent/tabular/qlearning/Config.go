package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment"
)

func init() {
	agent.Register(agent.TabularQ, Config{})
}

// Config implements a configuration for a tabular QLearning agent
type Config struct {
	LearningRate float64
	Discount     float64

	Exploration *agent.Exploration `json:",omitempty"`
	Planning    *agent.Planning    `json:",omitempty"`
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in (0, 1]")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]")
	}
	if err := c.Exploration.Validate(); err != nil {
		return err
	}
	return c.Planning.Validate()
}

// CreateAgent creates a new QLearning agent based on the configuration
func (c Config) CreateAgent(view environment.View,
	seed uint64) (agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	schedule, err := c.Exploration.Scheduler(view.Mode())
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	return New(view, c.LearningRate, c.Discount, schedule, c.Planning,
		seed), nil
}

// Type returns the type of agent the Config creates
func (c Config) Type() agent.Type {
	return agent.TabularQ
}
