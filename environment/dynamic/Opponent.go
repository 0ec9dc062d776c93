package dynamic

import (
	"golang.org/x/exp/rand"

	"github.com/google/uuid"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// Greedy is the only opponent strategy: move to reduce the Manhattan
// distance to the goal, falling back to a random free move when stuck
const Greedy = "greedy"

// opponentPeriod is the number of ticks between opponent moves
const opponentPeriod = 2

// Opponent is a scripted rival racing the agent to the goal
type Opponent struct {
	ID       uuid.UUID
	Position grid.Position
	Strategy string
	Health   float64
	Score    float64
}

// NewOpponent returns a new greedy opponent at p
func NewOpponent(p grid.Position) *Opponent {
	return &Opponent{
		ID:       uuid.New(),
		Position: p,
		Strategy: Greedy,
		Health:   100,
	}
}

// move is the result of an opponent's decision on a tick
type move struct {
	to      grid.Position
	moved   bool
	blocked bool // wanted to move into the learner's cell
}

// decide picks the opponent's next cell. The free function reports
// whether a cell can be entered, ignoring the learner; learner is the
// learner's cell, which opponents never enter.
func (o *Opponent) decide(goal, learner grid.Position, free func(grid.Position) bool,
	rng *rand.Rand) move {
	dist := grid.Manhattan(o.Position, goal)

	var improving, other []grid.Position
	blocked := false
	for _, i := range rng.Perm(len(grid.Directions)) {
		next := o.Position.Add(grid.Directions[i])
		if !free(next) {
			continue
		}
		if next == learner {
			if grid.Manhattan(next, goal) < dist {
				blocked = true
			}
			continue
		}

		if grid.Manhattan(next, goal) < dist {
			improving = append(improving, next)
		} else {
			other = append(other, next)
		}
	}

	switch {
	case len(improving) > 0:
		return move{to: improving[0], moved: true, blocked: blocked}
	case len(other) > 0:
		return move{to: other[0], moved: true, blocked: blocked}
	default:
		return move{to: o.Position, blocked: blocked}
	}
}
