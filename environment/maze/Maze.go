// Package maze implements the maze environment: a static grid, the
// dynamic elements placed on it, the state of the agent walking it and
// the reward shaping applied to each of its moves.
package maze

import (
	"fmt"
	"io"
	"log"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/agentstate"
	env "github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/generator"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/environment/reward"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Resource costs and recoveries of actions
const (
	OxygenDrain     = 0.2 // per tick, survival only
	MoveEnergy      = 0.5 // per move, survival only
	DashEnergy      = 3.0
	JumpEnergy      = 2.0
	WaitRecovery    = 0.5
	RestRecovery    = 5.0
	CollisionDamage = 5.0

	// Picked up food and energy cells are consumed at once when the
	// matching resource is below this fraction of its maximum, and
	// stored otherwise
	AutoConsumeLevel = 0.5
)

// Generator generates the grid of a new maze
type Generator func(rows, cols int, rng *rand.Rand) (*grid.Grid, error)

// Option configures a Maze
type Option func(*Maze)

// WithGenerator sets the generator used to regenerate procedural mazes
// when they are reset
func WithGenerator(g Generator) Option {
	return func(m *Maze) {
		m.generate = g
	}
}

// WithLogger sets the logger of the Maze
func WithLogger(l *log.Logger) Option {
	return func(m *Maze) {
		m.logger = l
	}
}

// Maze is a maze environment. It implements environment.Environment.
type Maze struct {
	config Config
	grid   *grid.Grid
	agent  *agentstate.Agent
	elems  *dynamic.Elements

	rng      *rand.Rand
	generate Generator
	logger   *log.Logger

	ender     env.Ender
	stepLimit env.StepLimit
	level     int

	currentStep ts.TimeStep
}

// New creates a new maze on grid g and returns it along with its first
// timestep
func New(g *grid.Grid, c Config, seed uint64, opts ...Option) (*Maze,
	ts.TimeStep, error) {
	if g == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: nil grid")
	}
	if !c.Mode.Valid() {
		return nil, ts.TimeStep{}, fmt.Errorf("new: invalid mode %v", c.Mode)
	}

	m := &Maze{
		config: c,
		grid:   g,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.agent = agentstate.New(g.Start(), g.Goal(), c.maxResources())
	step := m.Reset()
	return m, step, nil
}

// Reset starts a new episode. Procedural mazes with a generator are
// regenerated at a size that depends on the current level.
func (m *Maze) Reset() ts.TimeStep {
	if m.config.Mode == mode.Procedural && m.generate != nil {
		rows := generator.Dimensions(m.config.Rows, m.level)
		cols := generator.Dimensions(m.config.Cols, m.level)
		g, err := m.generate(rows, cols, m.rng)
		if err != nil {
			m.logger.Printf("reset: could not regenerate level %d, keeping "+
				"previous grid: %v", m.level, err)
		} else {
			m.grid = g
		}
	}

	rows, cols := m.grid.Dims()
	m.stepLimit = env.NewStepLimit(m.config.moveLimit(rows, cols))
	m.elems = dynamic.Spawn(m.grid, m.config.spawn(m.level), m.rng)
	m.agent.Reset(m.grid.Start(), m.grid.Goal())
	m.agent.Discover(m.grid, m.config.viewRadius())

	m.ender = env.FirstEnder{
		env.NewFunctionEnder(m.atGoal, ts.Win),
		env.NewFunctionEnder(m.agent.Depleted, ts.Depleted),
		m.stepLimit,
	}

	m.currentStep = ts.New(ts.First, 0, 1, 0)
	return m.currentStep
}

func (m *Maze) atGoal() bool {
	return m.agent.Position == m.grid.Goal()
}

// Step takes one action in the maze and returns the resulting timestep
// and whether it is the last of the episode. Actions that cannot be
// executed leave the agent in place and raise an Invalid event.
func (m *Maze) Step(a action.Action) (ts.TimeStep, bool) {
	prev := m.agent.Position
	nearBefore := m.elems.NearObstacle(prev)
	moved := m.apply(a)

	var events []ts.Event
	if !moved.ok {
		events = append(events, ts.Event{Kind: ts.Invalid, Value: 1,
			Cell: prev})
	}
	if m.config.Mode.DrainsResources() {
		drain := agentstate.Resources{Oxygen: -OxygenDrain}
		if m.agent.Position != prev {
			drain.Energy = -MoveEnergy
		}
		m.agent.Adjust(drain)
	}

	for _, e := range m.elems.Tick(m.agent.Position) {
		if m.handle(e, moved.jumped) {
			events = append(events, e)
		}
	}

	if nearBefore && m.agent.Position != prev &&
		!containsKind(events, ts.Collision) {
		events = append(events, ts.Event{Kind: ts.Adapted, Value: 1,
			Cell: m.agent.Position})
	}

	found := m.agent.Discover(m.grid, m.config.viewRadius())
	if m.config.Mode.HasFog() {
		for _, p := range found {
			events = append(events, ts.Event{Kind: ts.Discovered, Value: 1,
				Cell: p})
		}
	}
	m.agent.Advance(m.grid.Goal())

	step := ts.New(ts.Mid, 0, 1, m.currentStep.Number+1)
	step.Events = events
	if containsKind(events, ts.OpponentGoal) && !m.atGoal() {
		step.SetLast()
		step.Outcome = ts.OpponentWon
	} else {
		m.ender.End(&step)
	}
	if step.Last() {
		step.Discount = 0
	}

	step.Reward = reward.Score(reward.Transition{
		Mode:       m.config.Mode,
		Before:     prev,
		After:      m.agent.Position,
		Goal:       m.grid.Goal(),
		Stagnation: m.agent.Stagnation,
		Resources:  m.agent.Normalized(),
		Frontier:   m.frontier(),
		Events:     events,
		Outcome:    step.Outcome,
		Moves:      m.agent.Moves,
		MoveLimit:  m.stepLimit.Limit(),
	})
	m.agent.Score += step.Reward

	if step.Won() {
		m.level++
		m.logger.Printf("won after %d moves, level %d", m.agent.Moves,
			m.level)
	}

	m.currentStep = step
	return step, step.Last()
}

// applied describes the result of executing an action
type applied struct {
	ok     bool
	jumped bool
}

// apply executes the agent's action
func (m *Maze) apply(a action.Action) applied {
	p := m.agent.Position
	if !m.IsValidMove(p, a) {
		m.agent.Act(a)
		return applied{}
	}
	m.agent.Act(a)

	switch a.Kind() {
	case action.Move, action.Dash, action.Jump:
		d, _ := a.Direction()
		m.agent.MoveTo(p.Step(d, a.Distance()))
		switch a.Kind() {
		case action.Dash:
			m.agent.Adjust(agentstate.Resources{Energy: -DashEnergy})
		case action.Jump:
			m.agent.Adjust(agentstate.Resources{Energy: -JumpEnergy})
			return applied{ok: true, jumped: true}
		}

	case action.Hold:
		m.agent.Adjust(agentstate.Resources{Energy: WaitRecovery})

	case action.Recover:
		m.agent.Adjust(agentstate.Resources{Energy: RestRecovery})

	case action.Consume:
		it, _ := m.agent.UseLast()
		m.consume(it)
	}
	return applied{ok: true}
}

// consume applies the effect of an item
func (m *Maze) consume(it agentstate.Item) {
	switch it.Kind {
	case dynamic.Food:
		m.agent.Adjust(agentstate.Resources{Health: it.Value})
	case dynamic.EnergyCell:
		m.agent.Adjust(agentstate.Resources{Energy: it.Value})
	case dynamic.Key:
		m.agent.Abilities.Put(agentstate.KeyAbility)
	}
}

// handle applies the effect of an element event on the agent. It
// returns whether the event should be reported.
func (m *Maze) handle(e ts.Event, jumped bool) bool {
	switch e.Kind {
	case ts.Hazard:
		if jumped {
			return false
		}
		m.agent.Adjust(agentstate.Resources{Health: -e.Value})

	case ts.Collision:
		m.agent.Adjust(agentstate.Resources{Health: -CollisionDamage})

	case ts.Food, ts.Energy:
		kind := dynamic.Food
		level := m.agent.Normalized().Health
		if e.Kind == ts.Energy {
			kind = dynamic.EnergyCell
			level = m.agent.Normalized().Energy
		}
		it := agentstate.Item{Kind: kind, Value: e.Value}
		if level < AutoConsumeLevel {
			m.consume(it)
		} else {
			m.agent.Store(it)
		}

	case ts.Key:
		m.agent.Store(agentstate.Item{Kind: dynamic.Key, Value: e.Value})
		m.agent.Abilities.Put(agentstate.KeyAbility)
	}
	return true
}

// frontier counts the undiscovered open cells just outside the agent's
// view
func (m *Maze) frontier() int {
	r := m.config.viewRadius() + 1
	p := m.agent.Position
	count := 0
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			if abs(dr) != r && abs(dc) != r {
				continue
			}
			q := grid.Position{Row: p.Row + dr, Col: p.Col + dc}
			if m.grid.IsOpen(q) && !m.agent.Discovered.Has(q) {
				count++
			}
		}
	}
	return count
}

// IsValidMove reports whether action a can be executed from p. Moves
// and dashes need every cell on their way to be open and free of
// dynamic elements. Jumps may land on a moving wall. Dashes and jumps
// need enough energy, and using an item needs a non-empty inventory.
func (m *Maze) IsValidMove(p grid.Position, a action.Action) bool {
	if !a.Valid() {
		return false
	}

	switch a.Kind() {
	case action.Move:
		d, _ := a.Direction()
		return m.passable(p.Add(d))

	case action.Dash:
		d, _ := a.Direction()
		return m.agent.Resources.Energy >= DashEnergy &&
			m.passable(p.Add(d)) && m.passable(p.Step(d, 2))

	case action.Jump:
		d, _ := a.Direction()
		q := p.Add(d)
		return m.agent.Resources.Energy >= JumpEnergy && m.grid.IsOpen(q) &&
			!m.elems.SectionAt(q) && !m.elems.OpponentAt(q)

	case action.Consume:
		return len(m.agent.Inventory) > 0
	}
	return true
}

func (m *Maze) passable(p grid.Position) bool {
	return m.grid.IsOpen(p) && !m.elems.IsBlocked(p)
}

// ValidActions returns the actions that can be executed from p, in
// action order
func (m *Maze) ValidActions(p grid.Position, extended bool) []action.Action {
	candidates := action.Cardinals()
	if extended {
		candidates = action.All()
	}

	valid := make([]action.Action, 0, len(candidates))
	for _, a := range candidates {
		if m.IsValidMove(p, a) {
			valid = append(valid, a)
		}
	}
	return valid
}

// LastTimeStep returns the most recent timestep
func (m *Maze) LastTimeStep() ts.TimeStep {
	return m.currentStep
}

// Grid returns the current grid
func (m *Maze) Grid() *grid.Grid { return m.grid }

// Mode returns the game mode
func (m *Maze) Mode() mode.Mode { return m.config.Mode }

// Agent returns the agent's state
func (m *Maze) Agent() *agentstate.Agent { return m.agent }

// Elements returns the dynamic elements of the current episode
func (m *Maze) Elements() *dynamic.Elements { return m.elems }

// MoveLimit returns the number of ticks after which episodes time out
func (m *Maze) MoveLimit() int { return m.stepLimit.Limit() }

// Level returns the current procedural level
func (m *Maze) Level() int { return m.level }

func (m *Maze) String() string {
	return fmt.Sprintf("Maze | Mode: %v  |  Size: %dx%d  |  Level: %d",
		m.config.Mode, m.grid.Rows(), m.grid.Cols(), m.level)
}

func containsKind(events []ts.Event, k ts.EventKind) bool {
	return ts.Count(events, k) > 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
