package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/generator"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/maze"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/environment/shortestpath"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

var corridor = [][]int{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 1, 1},
}

func newMaze(t *testing.T, g *grid.Grid) *maze.Maze {
	t.Helper()
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

func TestLargeMazeUsesPathfinding(t *testing.T) {
	g, err := generator.Wilson(31, 31, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	require.Greater(t, g.Size(), DefaultLargeMaze)
	m := newMaze(t, g)

	a, err := Config{Config: qlearning.Config{
		LearningRate: 0.1,
		Discount:     0.9,
	}}.CreateAgent(m, 1)
	require.NoError(t, err)

	step := m.Reset()
	require.NoError(t, a.ObserveFirst(step))
	act := a.SelectAction(step)
	assert.Equal(t, Pathfinding, a.Stats().Strategy)

	route, err := shortestpath.Find(g, g.Start(), g.Goal())
	require.NoError(t, err)
	assert.Equal(t, route, a.(*Hybrid).Path())

	step, _ = m.Step(act)
	require.NoError(t, a.Observe(act, step))
	require.NoError(t, a.Step())
	assert.Equal(t, route[1], m.Agent().Position)

	// Following the rest of the route reaches the goal in as many moves
	for !step.Last() {
		act = a.SelectAction(step)
		step, _ = m.Step(act)
		require.NoError(t, a.Observe(act, step))
		require.NoError(t, a.Step())
	}
	assert.True(t, step.Won())
	assert.Equal(t, len(route)-1, m.Agent().Moves)
	assert.Equal(t, 0, a.Stats().TableSize)
}

func TestSwitchOnSuccess(t *testing.T) {
	g, err := grid.New(corridor)
	require.NoError(t, err)
	m := newMaze(t, g)

	a, err := Config{Config: qlearning.Config{
		LearningRate: 0.5,
		Discount:     0.9,
		Exploration:  &agent.Exploration{Start: 0, End: 0, Horizon: 1},
	}}.CreateAgent(m, 1)
	require.NoError(t, err)
	h := a.(*Hybrid)

	for i := 0; i < MinEpisodes; i++ {
		last := runEpisode(t, m, h)
		require.True(t, last.Won(), "episode %d", i)
		assert.Equal(t, qlearning.Strategy, h.Strategy())
	}

	table := h.Table()
	before := make(map[int]qlearning.Values)
	for _, p := range g.OpenCells() {
		before[g.Key(p)] = table.Values(g.Key(p))
	}

	last := runEpisode(t, m, h)
	assert.True(t, last.Won())
	assert.Equal(t, Pathfinding, h.Stats().Strategy)
	assert.Equal(t, 4, m.Agent().Moves)
	for _, p := range g.OpenCells() {
		assert.Equal(t, before[g.Key(p)], table.Values(g.Key(p)))
	}
}

func TestNoPathHoldsPosition(t *testing.T) {
	g, err := grid.New([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{1, 1, 1, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)
	m := newMaze(t, g)

	a, err := Config{
		Config:    qlearning.Config{LearningRate: 0.1, Discount: 0.9},
		LargeMaze: 1,
	}.CreateAgent(m, 1)
	require.NoError(t, err)

	step := m.Reset()
	require.NoError(t, a.ObserveFirst(step))
	for i := 0; i < 3; i++ {
		act := a.SelectAction(step)
		assert.Equal(t, action.Wait, act)
		step, _ = m.Step(act)
		require.NoError(t, a.Observe(act, step))
		require.NoError(t, a.Step())
	}
	assert.Equal(t, g.Start(), m.Agent().Position)
	assert.Nil(t, a.(*Hybrid).Path())
}

func TestScore(t *testing.T) {
	g, err := grid.NewOpen(7, 7)
	require.NoError(t, err)
	m := newMaze(t, g)

	h := New(m, 0.1, 0.9, nil, nil, 0, 1)
	step := m.Reset()
	require.NoError(t, h.ObserveFirst(step))

	start := g.Start()
	assert.Equal(t, NoveltyBonus+1, h.score(start, action.Right, 1))

	step, _ = m.Step(action.Right)
	require.NoError(t, h.Observe(action.Right, step))

	// Moving back is both a reversal and onto a visited cell
	pos := m.Agent().Position
	assert.Equal(t, 1-ReversalPenalty, h.score(pos, action.Left, 1))
	assert.Equal(t, NoveltyBonus+1, h.score(pos, action.Down, 1))
}
