package approx

import (
	"math"

	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
)

const (
	// unseenTarget and unseenNeighbour reward moving towards cells that
	// have not yet been discovered
	unseenTarget    = 20.0
	unseenNeighbour = 1.0

	// revisitWindow is the number of recent path cells checked for
	// revisits
	revisitWindow = 5

	// The exploration weight grows by weightStep, up to maxWeight, after
	// each lost episode which ended with the agent stagnating for at
	// least stagnationLimit ticks
	stagnationLimit = 20
	weightStep      = 0.05
	maxWeight       = 0.6
)

// scorer holds the parameters of the combined action scorer of a mode
type scorer struct {
	goalScale float64
	weight    float64 // initial exploration weight
	revisit   float64 // penalty per recent visit of the target cell
	random    float64 // probability of a random action when training
	explore   bool    // whether undiscovered cells are rewarded
}

// scorers are the combined scorers of each mode. Modes without a
// scorer use ε-greedy action selection over the linear head.
var scorers = [mode.Count]*scorer{
	mode.PartialObservability: {
		goalScale: 50,
		weight:    0.1,
		revisit:   -20,
		random:    0.05,
		explore:   true,
	},
	mode.Survival: {
		goalScale: 10,
		weight:    0.3,
		revisit:   -5,
		random:    0.2,
	},
	mode.Competitive: {
		goalScale: 10,
		weight:    0.3,
		revisit:   -5,
		random:    0.2,
	},
}

// target returns the cell action a leads to from pos
func target(pos grid.Position, a action.Action) grid.Position {
	d, ok := a.Direction()
	if !ok {
		return pos
	}
	return pos.Step(d, a.Distance())
}

// score returns the combined score of taking action act, using
// exploration weight w
func (l *Approx) score(s *scorer, w float64, act action.Action) float64 {
	g := l.view.Grid()
	state := l.view.Agent()
	pos := state.Position
	next := target(pos, act)

	goal := float64(grid.Manhattan(pos, g.Goal())-
		grid.Manhattan(next, g.Goal())) * s.goalScale

	explore := 0.0
	if s.explore {
		if !state.Discovered.Has(next) {
			explore += unseenTarget
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				p := grid.Position{Row: next.Row + dr, Col: next.Col + dc}
				if (dr != 0 || dc != 0) && g.InBounds(p) &&
					!state.Discovered.Has(p) {
					explore += unseenNeighbour
				}
			}
		}
	}

	revisit := float64(state.Visits(next, revisitWindow)) * s.revisit

	return goal*(1-w) + explore*w + revisit
}

// bestScored returns the index in valid of the action with the highest
// combined score. Ties are broken by the values of the linear head and
// then by order.
func (l *Approx) bestScored(s *scorer, valid []action.Action,
	values []float64) int {
	best := 0
	bestScore := math.Inf(-1)
	for i, a := range valid {
		score := l.score(s, l.weight, a)
		if score > bestScore ||
			(score == bestScore && values[a] > values[valid[best]]) {
			best, bestScore = i, score
		}
	}
	return best
}
