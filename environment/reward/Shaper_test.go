package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samuelfneumann/mazelearn/agentstate"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

var full = agentstate.Resources{Health: 1, Energy: 1, Oxygen: 1}

func base(m mode.Mode) Transition {
	return Transition{
		Mode:      m,
		Before:    grid.Position{Row: 1, Col: 1},
		After:     grid.Position{Row: 1, Col: 2},
		Goal:      grid.Position{Row: 5, Col: 5},
		Resources: full,
		MoveLimit: 100,
		Moves:     1,
	}
}

func TestEveryModeHasBlock(t *testing.T) {
	for _, m := range mode.All() {
		assert.NotNil(t, blocks[m], "mode %v", m)
	}
}

func TestDistanceSign(t *testing.T) {
	assert.Greater(t, Distance(5, 4), 0.0)
	assert.Less(t, Distance(4, 5), 0.0)
	assert.Equal(t, 0.0, Distance(3, 3))
	assert.Greater(t, Distance(1, 0), Distance(9, 8))
}

func TestStagnation(t *testing.T) {
	assert.Equal(t, 0.0, Stagnation(StagnationThreshold))
	assert.Less(t, Stagnation(StagnationThreshold+5),
		Stagnation(StagnationThreshold+1))
	assert.Equal(t, -MaxStagnation, Stagnation(10000))
}

// Terminal rewards must dominate everything the shaper can add, whatever
// events happened on the tick
func TestTerminalDominance(t *testing.T) {
	noisy := []ts.Event{
		{Kind: ts.Hazard}, {Kind: ts.Hazard}, {Kind: ts.Collision},
		{Kind: ts.Blocked}, {Kind: ts.Invalid}, {Kind: ts.Key},
		{Kind: ts.Discovered}, {Kind: ts.Collectible},
	}

	for _, m := range mode.All() {
		for _, moves := range []int{1, 50, 100, 1000} {
			tr := base(m)
			tr.Events = noisy
			tr.Stagnation = 500
			tr.Moves = moves
			tr.Resources = agentstate.Resources{}

			tr.Outcome = ts.Win
			assert.GreaterOrEqual(t, Score(tr), 100.0, "%v win", m)

			for _, o := range []ts.Outcome{ts.Depleted, ts.Timeout,
				ts.OpponentWon} {
				tr.Outcome = o
				assert.LessOrEqual(t, Score(tr), -50.0, "%v %v", m, o)
			}
		}
	}
}

func TestEfficiencyBonus(t *testing.T) {
	assert.InDelta(t, 145.0, Terminal(ts.Win, 10, 100), 1e-9)
	assert.Equal(t, 100.0, Terminal(ts.Win, 100, 100))
	assert.Equal(t, 100.0, Terminal(ts.Win, 150, 100))
}

func TestModeBlocks(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		tr := base(mode.Static)
		assert.InDelta(t, StepCost+Distance(8, 7), Score(tr), 1e-9)
	})

	t.Run("fog", func(t *testing.T) {
		tr := base(mode.PartialObservability)
		plain := Score(tr)
		tr.Events = []ts.Event{{Kind: ts.Discovered}, {Kind: ts.Discovered}}
		tr.Frontier = 3
		assert.InDelta(t, plain+2*DiscoveryBonus+3*FrontierBonus, Score(tr),
			1e-9)
	})

	t.Run("survival", func(t *testing.T) {
		tr := base(mode.Survival)
		plain := Score(tr)
		tr.Events = []ts.Event{{Kind: ts.Food}}
		assert.InDelta(t, plain+FoodBonus, Score(tr), 1e-9)

		tr.Events = nil
		tr.Resources = agentstate.Resources{Health: 1, Energy: 1, Oxygen: 0.1}
		assert.Less(t, Score(tr), plain)
	})

	t.Run("competitive", func(t *testing.T) {
		tr := base(mode.Competitive)
		plain := Score(tr)
		tr.Events = []ts.Event{{Kind: ts.Collectible}, {Kind: ts.Blocked}}
		assert.InDelta(t, plain+CollectibleBonus+BlockedPenalty, Score(tr),
			1e-9)
	})

	t.Run("moving", func(t *testing.T) {
		tr := base(mode.MovingObstacles)
		plain := Score(tr)
		tr.Events = []ts.Event{{Kind: ts.Collision}}
		assert.InDelta(t, plain+CollisionPenalty, Score(tr), 1e-9)
	})

	t.Run("procedural", func(t *testing.T) {
		tr := base(mode.Procedural)
		plain := Score(tr)
		tr.Events = []ts.Event{{Kind: ts.Hazard}, {Kind: ts.Adapted}}
		assert.InDelta(t, plain+HazardPenalty+AdaptationBonus, Score(tr),
			1e-9)
	})

	t.Run("invalid", func(t *testing.T) {
		tr := base(mode.Static)
		tr.After = tr.Before
		tr.Events = []ts.Event{{Kind: ts.Invalid}}
		assert.InDelta(t, StepCost+InvalidPenalty, Score(tr), 1e-9)
	})
}
