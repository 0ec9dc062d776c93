package qlearning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/maze"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// corridor is a 5x5 maze with a single path of length 4 from the start
// to the goal
var corridor = [][]int{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 1, 1},
}

func newMaze(t *testing.T, cells [][]int) *maze.Maze {
	t.Helper()
	g, err := grid.New(cells)
	require.NoError(t, err)

	m, _, err := maze.New(g, maze.Config{
		Mode:  mode.Static,
		Spawn: &dynamic.SpawnConfig{},
	}, 1)
	require.NoError(t, err)
	return m
}

func runEpisode(t *testing.T, m *maze.Maze, a agent.Agent) ts.TimeStep {
	t.Helper()
	step := m.Reset()
	require.NoError(t, a.ObserveFirst(step))

	for !step.Last() {
		act := a.SelectAction(step)
		step, _ = m.Step(act)
		require.NoError(t, a.Observe(act, step))
		require.NoError(t, a.Step())
	}
	a.EndEpisode()
	return step
}

func TestUpdateIsPure(t *testing.T) {
	const (
		alpha  = 0.3
		gamma  = 0.9
		reward = -0.7
	)

	table := NewTable()
	table.Set(6, action.Right, 2)
	table.Set(7, action.Up, 5)
	table.Set(7, action.Down, 7)

	// Down is not valid in the next cell so it cannot be bootstrapped
	target := table.Target(reward, 7, []action.Action{action.Up, action.Left},
		false, gamma)
	assert.Equal(t, reward+gamma*5, target)

	got := table.Update(6, action.Right, target, alpha)
	assert.InDelta(t, 2+alpha*(reward+gamma*5-2), got, 1e-12)
	assert.Equal(t, got, table.At(6, action.Right))
	assert.Equal(t, 5.0, table.At(7, action.Up))

	assert.Equal(t, reward, table.Target(reward, 7, nil, false, gamma))
	assert.Equal(t, reward, table.Target(reward, 7,
		[]action.Action{action.Down}, true, gamma))
	assert.Equal(t, 0.0, table.At(100, action.Left))
	assert.Equal(t, 2, table.Len())
}

func TestGreedyRolloutOnCorridor(t *testing.T) {
	m := newMaze(t, corridor)

	config := Config{
		LearningRate: 0.5,
		Discount:     0.9,
		Exploration:  &agent.Exploration{Start: 0, End: 0, Horizon: 1},
	}
	a, err := config.CreateAgent(m, 1)
	require.NoError(t, err)
	q := a.(*QLearning)

	for i := 0; i < 50; i++ {
		runEpisode(t, m, q)
		require.Equal(t, 0.0, q.Epsilon())
	}

	q.Eval()
	last := runEpisode(t, m, q)
	assert.True(t, last.Won())
	assert.Equal(t, grid.Manhattan(m.Grid().Start(), m.Grid().Goal()),
		m.Agent().Moves)

	stats := q.Stats()
	assert.Equal(t, 51, stats.Episodes)
	assert.Equal(t, Strategy, stats.Strategy)
	assert.Equal(t, 0.9, stats.Gamma)
	assert.Greater(t, stats.TableSize, 0)

	q.ResetStats()
	assert.Equal(t, 0, q.Stats().Episodes)
	assert.Equal(t, 0, q.Table().Len())
}

func TestEvalDoesNotLearn(t *testing.T) {
	m := newMaze(t, corridor)
	a, err := Config{LearningRate: 0.5, Discount: 0.9}.CreateAgent(m, 3)
	require.NoError(t, err)
	a.Eval()
	runEpisode(t, m, a)
	assert.Equal(t, 0, a.(*QLearning).Table().Len())
	assert.Equal(t, 1, a.Stats().Episodes)
}

func TestNoValidAction(t *testing.T) {
	m := newMaze(t, [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{1, 1, 1, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	a, err := Config{LearningRate: 0.1, Discount: 0.9}.CreateAgent(m, 1)
	require.NoError(t, err)

	step := m.Reset()
	require.NoError(t, a.ObserveFirst(step))
	assert.Equal(t, DefaultAction, a.SelectAction(step))
}

func TestEpsilonGreedyChoosesValid(t *testing.T) {
	m := newMaze(t, corridor)
	a, err := Config{
		LearningRate: 0.1,
		Discount:     0.9,
		Exploration:  &agent.Exploration{Start: 1, End: 1},
	}.CreateAgent(m, 7)
	require.NoError(t, err)

	step := m.Reset()
	require.NoError(t, a.ObserveFirst(step))
	for i := 0; i < 100; i++ {
		assert.Equal(t, action.Right, a.SelectAction(step))
	}
}

func TestPlannerDelegation(t *testing.T) {
	m := newMaze(t, corridor)
	a, err := Config{
		LearningRate: 0.1,
		Discount:     0.9,
		Planning:     &agent.Planning{Budget: time.Millisecond, MaxDepth: 6},
	}.CreateAgent(m, 7)
	require.NoError(t, err)

	last := runEpisode(t, m, a)
	assert.True(t, last.Won())
}

func TestConfig(t *testing.T) {
	config := Config{
		LearningRate: 0.1,
		Discount:     0.95,
		Exploration:  &agent.Exploration{Start: 1, End: 0.05, Horizon: 200},
	}
	require.NoError(t, config.Validate())

	data, err := json.Marshal(agent.NewTypedConfig(config))
	require.NoError(t, err)

	var typed agent.TypedConfig
	require.NoError(t, json.Unmarshal(data, &typed))
	assert.Equal(t, agent.TabularQ, typed.Type)
	assert.Equal(t, config, typed.Config)

	assert.Error(t, Config{LearningRate: 0, Discount: 0.9}.Validate())
	assert.Error(t, Config{LearningRate: 0.1, Discount: 1.5}.Validate())
	assert.Error(t, Config{
		LearningRate: 0.1,
		Discount:     0.9,
		Exploration:  &agent.Exploration{Start: 0.1, End: 0.5},
	}.Validate())
	assert.Error(t, Config{
		LearningRate: 0.1,
		Discount:     0.9,
		Planning:     &agent.Planning{},
	}.Validate())
}
