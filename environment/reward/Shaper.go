// Package reward implements reward shaping for maze transitions.
//
// A single function, Score, turns a transition into a scalar reward.
// The shaped reward is the sum of a step cost, a distance term, a
// stagnation penalty, an invalid move penalty and a mode specific block.
// Terminal transitions ignore all of these and are scored by outcome
// alone, so that winning is always worth at least WinReward and dying or
// timing out always costs at least TimeoutPenalty.
package reward

import (
	"math"

	"github.com/samuelfneumann/mazelearn/agentstate"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

const (
	StepCost            = -0.1
	DistanceScale       = 1.0
	StagnationThreshold = 10
	StagnationRate      = 0.1
	MaxStagnation       = 2.0
	InvalidPenalty      = -1.0

	WinReward         = 100.0
	EfficiencyBonus   = 50.0
	DepletionPenalty  = -100.0
	TimeoutPenalty    = -50.0
	OpponentPenalty   = -75.0
	LowResourceLevel  = 0.3
	LowResourceWeight = 10.0
)

// Mode block constants
const (
	DiscoveryBonus   = 2.0
	FrontierBonus    = 0.2
	FoodBonus        = 5.0
	EnergyBonus      = 3.0
	KeyBonus         = 10.0
	HazardPenalty    = -5.0
	CollectibleBonus = 8.0
	BlockedPenalty   = -3.0
	StolenPenalty    = -2.0
	CollisionPenalty = -5.0
	AdaptationBonus  = 2.0
)

// Transition is everything the shaper needs to know about a single
// tick
type Transition struct {
	Mode   mode.Mode
	Before grid.Position
	After  grid.Position
	Goal   grid.Position

	Stagnation int
	Resources  agentstate.Resources // normalized, after the tick
	Frontier   int                  // undiscovered open cells next to After
	Events     []ts.Event

	Outcome   ts.Outcome
	Moves     int
	MoveLimit int
}

// blocks holds the mode specific reward block of each mode
var blocks = [mode.Count]func(Transition) float64{
	mode.Static:               func(Transition) float64 { return 0 },
	mode.MovingObstacles:      movingBlock,
	mode.Competitive:          competitiveBlock,
	mode.PartialObservability: fogBlock,
	mode.Survival:             survivalBlock,
	mode.Procedural: func(t Transition) float64 {
		return movingBlock(t) + hazardTerm(t)
	},
}

// Score returns the reward for a transition
func Score(t Transition) float64 {
	if t.Outcome.Terminal() {
		return Terminal(t.Outcome, t.Moves, t.MoveLimit)
	}

	r := StepCost
	r += Distance(grid.Manhattan(t.Before, t.Goal), grid.Manhattan(t.After,
		t.Goal))
	r += Stagnation(t.Stagnation)
	r += InvalidPenalty * float64(ts.Count(t.Events, ts.Invalid))

	if t.Mode.Valid() {
		r += blocks[t.Mode](t)
	}
	return r
}

// Terminal returns the reward of an episode ending with outcome o after
// the given number of moves
func Terminal(o ts.Outcome, moves, limit int) float64 {
	switch o {
	case ts.Win:
		bonus := 0.0
		if limit > 0 {
			bonus = math.Max(0, EfficiencyBonus*(1-float64(moves)/float64(limit)))
		}
		return WinReward + bonus
	case ts.Depleted:
		return DepletionPenalty
	case ts.Timeout:
		return TimeoutPenalty
	case ts.OpponentWon:
		return OpponentPenalty
	}
	return 0
}

// Distance returns the shaping term for moving from a cell at Manhattan
// distance before from the goal to one at distance after. Progress is
// worth more close to the goal.
func Distance(before, after int) float64 {
	delta := float64(before - after)
	return DistanceScale * delta * (1 + 1/(1+float64(after)))
}

// Stagnation returns the penalty for having made no progress for the
// given number of ticks
func Stagnation(ticks int) float64 {
	if ticks <= StagnationThreshold {
		return 0
	}
	return -math.Min(MaxStagnation, StagnationRate*float64(ticks-
		StagnationThreshold))
}

func fogBlock(t Transition) float64 {
	return DiscoveryBonus*float64(ts.Count(t.Events, ts.Discovered)) +
		FrontierBonus*float64(t.Frontier)
}

func survivalBlock(t Transition) float64 {
	r := FoodBonus*float64(ts.Count(t.Events, ts.Food)) +
		EnergyBonus*float64(ts.Count(t.Events, ts.Energy)) +
		KeyBonus*float64(ts.Count(t.Events, ts.Key)) +
		hazardTerm(t)

	lowest := math.Min(t.Resources.Health, math.Min(t.Resources.Energy,
		t.Resources.Oxygen))
	if lowest < LowResourceLevel {
		r -= LowResourceWeight * (LowResourceLevel - lowest)
	}
	return r
}

func competitiveBlock(t Transition) float64 {
	return CollectibleBonus*float64(ts.Count(t.Events, ts.Collectible)) +
		BlockedPenalty*float64(ts.Count(t.Events, ts.Blocked)) +
		StolenPenalty*float64(ts.Count(t.Events, ts.OpponentPickup))
}

func movingBlock(t Transition) float64 {
	return CollisionPenalty*float64(ts.Count(t.Events, ts.Collision)) +
		AdaptationBonus*float64(ts.Count(t.Events, ts.Adapted))
}

func hazardTerm(t Transition) float64 {
	return HazardPenalty * float64(ts.Count(t.Events, ts.Hazard))
}
