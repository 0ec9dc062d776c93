package hybrid

import (
	"fmt"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mazelearn/environment"
)

func init() {
	agent.Register(agent.Hybrid, Config{})
}

// Config implements a configuration for a Hybrid agent
type Config struct {
	qlearning.Config

	// LargeMaze is the number of cells above which mazes are always
	// solved by pathfinding. Zero selects DefaultLargeMaze.
	LargeMaze int
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.LargeMaze < 0 {
		return fmt.Errorf("validate: large maze threshold must be >= 0")
	}
	return c.Config.Validate()
}

// CreateAgent creates a new Hybrid agent based on the configuration
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
		c.LargeMaze, seed), nil
}

// Type returns the type of agent the Config creates
func (c Config) Type() agent.Type {
	return agent.Hybrid
}
