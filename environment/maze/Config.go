package maze

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/agentstate"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/generator"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// DefaultViewRadius is the radius of the square window an agent sees
// around itself
const DefaultViewRadius = 2

// Config implements a specific configuration of a maze environment.
// Configs are JSON serializable.
type Config struct {
	Mode mode.Mode

	// Rows and Cols give the size of generated mazes. Procedural mazes
	// grow from this size as the level increases.
	Rows int
	Cols int

	// Algorithm generates the maze. The zero value selects Wilson's
	// algorithm.
	Algorithm generator.Algorithm `json:",omitempty"`

	// Braid is the number of extra walls carved out of generated mazes
	// to create loops
	Braid int

	// MoveLimit is the number of ticks after which an episode times
	// out. Zero selects 4 * rows * cols.
	MoveLimit int

	// ViewRadius is the radius of the agent's view. Zero selects
	// DefaultViewRadius.
	ViewRadius int

	// Spawn overrides the default elements of the mode
	Spawn *dynamic.SpawnConfig `json:",omitempty"`

	// MaxResources overrides agentstate.DefaultMax
	MaxResources *agentstate.Resources `json:",omitempty"`
}

// Validate returns an error describing whether or not the configuration
// is valid
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("validate: invalid mode %v", c.Mode)
	}
	if c.Rows < generator.MinSize || c.Cols < generator.MinSize {
		return fmt.Errorf("validate: maze must be at least %dx%d, got %dx%d",
			generator.MinSize, generator.MinSize, c.Rows, c.Cols)
	}
	if c.Rows%2 == 0 || c.Cols%2 == 0 {
		return fmt.Errorf("validate: maze dimensions must be odd, got %dx%d",
			c.Rows, c.Cols)
	}
	if !c.Algorithm.Valid() {
		return fmt.Errorf("validate: no such maze algorithm %q",
			string(c.Algorithm))
	}
	if c.MoveLimit < 0 {
		return fmt.Errorf("validate: move limit must be >= 0")
	}
	if c.ViewRadius < 0 {
		return fmt.Errorf("validate: view radius must be >= 0")
	}
	if c.Braid < 0 {
		return fmt.Errorf("validate: braid must be >= 0")
	}
	if r := c.MaxResources; r != nil &&
		(r.Health <= 0 || r.Energy <= 0 || r.Oxygen <= 0) {
		return fmt.Errorf("validate: maximum resources must be > 0")
	}
	return nil
}

// Create returns a maze on a generated grid as described by the Config,
// as well as its first timestep
func (c Config) Create(seed uint64, opts ...Option) (*Maze, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	gen := Generator(func(rows, cols int, rng *rand.Rand) (*grid.Grid, error) {
		g, err := generator.Generate(c.Algorithm, rows, cols, rng)
		if err != nil || c.Braid == 0 {
			return g, err
		}
		return generator.Braid(g, c.Braid, rng)
	})

	rng := rand.New(rand.NewSource(seed))
	g, err := gen(c.Rows, c.Cols, rng)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: could not generate "+
			"maze: %v", err)
	}

	return New(g, c, seed, append([]Option{WithGenerator(gen)}, opts...)...)
}

// moveLimit returns the move limit for a grid of the given size
func (c Config) moveLimit(rows, cols int) int {
	if c.MoveLimit > 0 {
		return c.MoveLimit
	}
	return 4 * rows * cols
}

func (c Config) viewRadius() int {
	if c.ViewRadius > 0 {
		return c.ViewRadius
	}
	return DefaultViewRadius
}

func (c Config) maxResources() agentstate.Resources {
	if c.MaxResources != nil {
		return *c.MaxResources
	}
	return agentstate.DefaultMax
}

// spawn returns the elements to place for the given level
func (c Config) spawn(level int) dynamic.SpawnConfig {
	if c.Spawn != nil {
		return *c.Spawn
	}
	return DefaultSpawn(c.Mode, level)
}

// DefaultSpawn returns the default elements of a mode. Only procedural
// mazes depend on the level: every level adds obstacles and hazards and
// makes them faster.
func DefaultSpawn(m mode.Mode, level int) dynamic.SpawnConfig {
	switch m {
	case mode.MovingObstacles:
		return dynamic.SpawnConfig{
			MovingWalls:      3,
			RotatingSections: 2,
			WallSpeed:        2,
			RotationSpeed:    4,
		}

	case mode.Competitive:
		return dynamic.SpawnConfig{
			Collectibles: 4,
			Opponents:    1,
			ItemCooldown: 30,
		}

	case mode.Survival:
		return dynamic.SpawnConfig{
			Hazards:      4,
			Food:         3,
			EnergyCells:  2,
			Keys:         1,
			HazardDamage: 10,
			ItemCooldown: 40,
		}

	case mode.Procedural:
		return dynamic.SpawnConfig{
			MovingWalls:      1 + level,
			RotatingSections: level / 2,
			Hazards:          1 + level,
			Keys:             1,
			WallSpeed:        max(1, 4-level/2),
			RotationSpeed:    max(2, 6-level/2),
			HazardDamage:     5 + float64(level),
		}
	}
	return dynamic.SpawnConfig{}
}
