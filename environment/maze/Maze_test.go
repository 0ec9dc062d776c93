package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/generator"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/environment/reward"
	"github.com/samuelfneumann/mazelearn/environment/shortestpath"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

var empty = &dynamic.SpawnConfig{}

func newOpen(t *testing.T, size int, c Config) *Maze {
	t.Helper()
	g, err := grid.NewOpen(size, size)
	require.NoError(t, err)

	if c.Spawn == nil {
		c.Spawn = empty
	}
	m, step, err := New(g, c, 1)
	require.NoError(t, err)
	require.True(t, step.First())
	return m
}

func TestIsValidMoveWithMovingWall(t *testing.T) {
	m := newOpen(t, 5, Config{Mode: mode.MovingObstacles})
	start := m.Grid().Start()

	assert.False(t, m.IsValidMove(start, action.Up))
	assert.False(t, m.IsValidMove(start, action.Left))
	assert.True(t, m.IsValidMove(start, action.Right))
	assert.True(t, m.IsValidMove(start, action.Down))

	m.Elements().Walls = append(m.Elements().Walls, &dynamic.MovingWall{
		Position:  grid.Position{Row: 1, Col: 2},
		Direction: grid.Down,
		Speed:     100,
		Length:    1,
	})

	assert.False(t, m.IsValidMove(start, action.Right))
	assert.False(t, m.IsValidMove(start, action.DashRight))
	assert.True(t, m.IsValidMove(start, action.JumpRight))
	assert.True(t, m.IsValidMove(start, action.DashDown))
	assert.Equal(t, []action.Action{action.Down},
		m.ValidActions(start, false))
}

func TestReachGoal(t *testing.T) {
	m := newOpen(t, 5, Config{Mode: mode.Static})

	var step ts.TimeStep
	var last bool
	for _, a := range []action.Action{action.Right, action.Right,
		action.Down, action.Down} {
		require.False(t, last)
		step, last = m.Step(a)
	}

	assert.True(t, last)
	assert.Equal(t, ts.Win, step.Outcome)
	assert.Equal(t, 4, step.Number)
	assert.Equal(t, 0.0, step.Discount)
	assert.InDelta(t, reward.Terminal(ts.Win, 4, 100), step.Reward, 1e-9)
	assert.Equal(t, 1, m.Level())
}

func TestInvalidMoveKeepsEpisodeGoing(t *testing.T) {
	m := newOpen(t, 5, Config{Mode: mode.Static, MoveLimit: 3})

	step, last := m.Step(action.Up)
	assert.False(t, last)
	assert.True(t, step.Has(ts.Invalid))
	assert.Equal(t, m.Grid().Start(), m.Agent().Position)
	assert.Less(t, step.Reward, 0.0)

	m.Step(action.Up)
	step, last = m.Step(action.Up)
	assert.True(t, last)
	assert.Equal(t, ts.Timeout, step.Outcome)
	assert.Equal(t, reward.TimeoutPenalty, step.Reward)
}

func TestSurvivalDrain(t *testing.T) {
	m := newOpen(t, 5, Config{Mode: mode.Survival})

	m.Step(action.Wait)
	assert.InDelta(t, 100-OxygenDrain, m.Agent().Resources.Oxygen, 1e-9)

	m.Step(action.Right)
	assert.InDelta(t, 100-MoveEnergy, m.Agent().Resources.Energy, 1e-9)
}

func TestJumpAvoidsHazard(t *testing.T) {
	m := newOpen(t, 7, Config{Mode: mode.Survival})
	m.Elements().Hazards = append(m.Elements().Hazards, &dynamic.Hazard{
		Cell:       grid.Position{Row: 1, Col: 2},
		Damage:     10,
		Activation: dynamic.AlwaysOn{},
	})

	m.Step(action.JumpRight)
	assert.Equal(t, grid.Position{Row: 1, Col: 2}, m.Agent().Position)
	assert.Equal(t, 100.0, m.Agent().Resources.Health)

	m.Step(action.Right)
	step, _ := m.Step(action.Left)
	assert.True(t, step.Has(ts.Hazard))
	assert.Equal(t, 90.0, m.Agent().Resources.Health)
}

func TestItems(t *testing.T) {
	m := newOpen(t, 7, Config{Mode: mode.Survival})
	m.Elements().Items = append(m.Elements().Items,
		&dynamic.Item{Kind: dynamic.Key, Cell: grid.Position{Row: 1, Col: 2},
			Value: 1, Available: true},
		&dynamic.Item{Kind: dynamic.Food, Cell: grid.Position{Row: 1, Col: 3},
			Value: 20, Available: true},
	)

	step, _ := m.Step(action.Right)
	assert.True(t, step.Has(ts.Key))
	assert.True(t, m.Agent().Abilities.Has("key"))

	// Health is full, so the food is stored
	step, _ = m.Step(action.Right)
	assert.True(t, step.Has(ts.Food))
	assert.Len(t, m.Agent().Inventory, 2)

	assert.True(t, m.IsValidMove(m.Agent().Position, action.UseItem))
	m.Step(action.UseItem)
	assert.Len(t, m.Agent().Inventory, 1)
}

func TestOpponentWins(t *testing.T) {
	m := newOpen(t, 5, Config{Mode: mode.Competitive})
	m.Elements().Opponents = append(m.Elements().Opponents,
		dynamic.NewOpponent(grid.Position{Row: 2, Col: 3}))

	_, last := m.Step(action.Wait)
	require.False(t, last)

	step, last := m.Step(action.Wait)
	assert.True(t, last)
	assert.Equal(t, ts.OpponentWon, step.Outcome)
	assert.Equal(t, reward.OpponentPenalty, step.Reward)
}

func TestFogDiscovery(t *testing.T) {
	m := newOpen(t, 9, Config{Mode: mode.PartialObservability})
	assert.Equal(t, 16, m.Agent().Discovered.Size())

	step, _ := m.Step(action.Right)
	assert.Equal(t, 3, ts.Count(step.Events, ts.Discovered))
}

func TestProceduralLevels(t *testing.T) {
	c := Config{Mode: mode.Procedural, Rows: 7, Cols: 7, Spawn: empty}
	m, _, err := c.Create(3)
	require.NoError(t, err)

	solve := func() {
		route, err := shortestpath.Find(m.Grid(), m.Grid().Start(),
			m.Grid().Goal())
		require.NoError(t, err)

		var step ts.TimeStep
		for i := 1; i < len(route); i++ {
			d, ok := grid.DirectionTo(route[i-1], route[i])
			require.True(t, ok)
			step, _ = m.Step(action.FromDirection(d))
		}
		require.True(t, step.Won())
	}

	solve()
	assert.Equal(t, 1, m.Level())
	m.Reset()
	assert.Equal(t, 7, m.Grid().Rows())

	solve()
	m.Reset()
	assert.Equal(t, 2, m.Level())
	assert.Equal(t, 9, m.Grid().Rows())
	assert.Equal(t, 9, m.Grid().Cols())
}

func TestConfigValidate(t *testing.T) {
	good := Config{Mode: mode.Static, Rows: 9, Cols: 11}
	assert.NoError(t, good.Validate())

	bad := []Config{
		{Mode: mode.Mode(42), Rows: 9, Cols: 9},
		{Mode: mode.Static, Rows: 3, Cols: 9},
		{Mode: mode.Static, Rows: 10, Cols: 9},
		{Mode: mode.Static, Rows: 9, Cols: 9, MoveLimit: -1},
		{Mode: mode.Static, Rows: 9, Cols: 9, Algorithm: "Prim"},
	}
	for _, c := range bad {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestCreateWithAlgorithm(t *testing.T) {
	c := Config{
		Mode:      mode.Static,
		Rows:      9,
		Cols:      9,
		Algorithm: generator.BacktrackingAlgorithm,
	}
	m, step, err := c.Create(5)
	require.NoError(t, err)
	assert.True(t, step.First())

	_, err = shortestpath.Find(m.Grid(), m.Grid().Start(), m.Grid().Goal())
	assert.NoError(t, err)
	assert.Len(t, m.Grid().OpenCells(), 2*16-1)
}
