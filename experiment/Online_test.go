package experiment_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/agent/tabular/hybrid"
	"github.com/samuelfneumann/mazelearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/maze"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/experiment"
	"github.com/samuelfneumann/mazelearn/experiment/trackers"
)

var corridor = [][]int{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 0, 1},
	{1, 1, 1, 1, 1},
}

func newCorridor(t *testing.T) (*maze.Maze, agent.Agent) {
	t.Helper()
	g, err := grid.New(corridor)
	require.NoError(t, err)
	m, _, err := maze.New(g, maze.Config{
		Mode:  mode.Static,
		Spawn: &dynamic.SpawnConfig{},
	}, 1)
	require.NoError(t, err)

	a, err := qlearning.Config{
		LearningRate: 0.5,
		Discount:     0.9,
		Exploration:  &agent.Exploration{Start: 0.1, End: 0, Horizon: 10},
	}.CreateAgent(m, 1)
	require.NoError(t, err)
	return m, a
}

func TestEpisodeAccounting(t *testing.T) {
	m, a := newCorridor(t)
	returns := trackers.NewReturn("")
	lengths := trackers.NewEpisodeLength("")

	exp := experiment.NewOnline(m, a, 0, 5, returns, lengths)
	require.NoError(t, exp.Run())

	assert.Equal(t, 5, exp.Episodes())
	assert.True(t, exp.Done())
	assert.Equal(t, 5, a.Stats().Episodes)
	assert.Len(t, returns.Returns(), 5)
	assert.Len(t, lengths.Lengths(), 5)

	total := 0.0
	for _, l := range lengths.Lengths() {
		assert.GreaterOrEqual(t, l, 4.0)
		total += l
	}
	assert.Equal(t, uint(total), exp.Steps())
}

func TestStepLimitCutsEpisode(t *testing.T) {
	m, a := newCorridor(t)
	returns := trackers.NewReturn("")

	exp := experiment.NewOnline(m, a, 3, 0, returns)
	done, err := exp.RunEpisode()
	require.NoError(t, err)

	assert.True(t, done)
	assert.Equal(t, uint(3), exp.Steps())
	assert.Equal(t, 0, exp.Episodes())
	assert.Equal(t, 0, a.Stats().Episodes)
	assert.Empty(t, returns.Returns())
}

func TestRunIDsAreUnique(t *testing.T) {
	m, a := newCorridor(t)
	first := experiment.NewOnline(m, a, 1, 0)
	second := experiment.NewOnline(m, a, 1, 0)
	assert.NotEqual(t, first.ID(), second.ID())
}

func newConfig() experiment.Config {
	return experiment.Config{
		Type:        experiment.OnlineExp,
		MaxEpisodes: 2,
		EnvConf:     maze.Config{Mode: mode.Static, Rows: 7, Cols: 7},
		AgentConf: agent.NewTypedConfig(hybrid.Config{
			Config:    qlearning.Config{LearningRate: 0.1, Discount: 0.9},
			LargeMaze: 1,
		}),
	}
}

func TestCreateExp(t *testing.T) {
	exp, err := newConfig().CreateExp(1, nil)
	require.NoError(t, err)
	require.NoError(t, exp.Run())
	assert.Equal(t, 2, exp.Episodes())
	assert.Equal(t, hybrid.Pathfinding, exp.Stats().Strategy)
}

func TestConfig(t *testing.T) {
	config := newConfig()
	data, err := json.Marshal(config)
	require.NoError(t, err)

	var decoded experiment.Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, config, decoded)
	assert.NoError(t, decoded.Validate())

	bad := newConfig()
	bad.MaxEpisodes = 0
	assert.Error(t, bad.Validate())

	bad = newConfig()
	bad.Type = "Offline"
	assert.Error(t, bad.Validate())

	bad = newConfig()
	bad.EnvConf.Rows = 6
	assert.Error(t, bad.Validate())

	bad = newConfig()
	bad.AgentConf = agent.TypedConfig{}
	assert.Error(t, bad.Validate())
}
