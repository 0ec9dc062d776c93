// Package hybrid implements an agent which learns with tabular
// Q-Learning on small or unsolved mazes and switches to replaying a
// shortest path once the maze is large or the agent is reliably
// succeeding.
package hybrid

import (
	"errors"
	"io"
	"log"

	"github.com/zyedidia/generic/mapset"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/shortestpath"
	"github.com/samuelfneumann/mazelearn/scheduler"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

const (
	// Pathfinding is the strategy label of an agent replaying a
	// shortest path
	Pathfinding = "pathfinding"

	// DefaultLargeMaze is the number of cells above which a maze is
	// always solved by pathfinding
	DefaultLargeMaze = 625

	// The agent switches to pathfinding once more than SuccessThreshold
	// of the last SuccessWindow episodes were won, with at least
	// MinEpisodes episodes played, while ε is below EpsilonThreshold
	SuccessWindow    = 20
	MinEpisodes      = 10
	SuccessThreshold = 0.8
	EpsilonThreshold = 0.1

	NoveltyBonus    = 0.5
	ReversalPenalty = 0.3
)

// Hybrid is a tabular Q-Learning agent which may abandon learning for
// pathfinding. Whether to learn or to follow a path is decided again on
// every action request.
type Hybrid struct {
	*qlearning.QLearning

	view      environment.View
	largeMaze int
	searching bool

	// visited holds the cells the agent has been on this episode
	visited mapset.Set[grid.Position]

	// The path cached for the current episode
	oracle     *shortestpath.Oracle
	oracleGrid *grid.Grid
	path       []grid.Position
	cached     bool

	logger *log.Logger
}

// New creates a new Hybrid agent acting in the maze seen through view.
// Mazes with more than largeMaze cells are always solved by
// pathfinding.
func New(view environment.View, learningRate, discount float64,
	schedule *scheduler.Scheduler, planning *agent.Planning,
	largeMaze int, seed uint64) *Hybrid {
	if largeMaze <= 0 {
		largeMaze = DefaultLargeMaze
	}

	h := &Hybrid{
		QLearning: qlearning.New(view, learningRate, discount, schedule,
			planning, seed),
		view:      view,
		largeMaze: largeMaze,
		visited:   mapset.New[grid.Position](),
		logger:    log.New(io.Discard, "", 0),
	}
	h.SetScorer(h.score)
	return h
}

// SetLogger sets the logger used to report changes of strategy and
// exploration rate
func (h *Hybrid) SetLogger(l *log.Logger) {
	h.logger = l
	h.QLearning.SetLogger(l)
}

// Strategy returns the label of the strategy last used to select an
// action
func (h *Hybrid) Strategy() string {
	return label(h.searching)
}

func label(searching bool) string {
	if searching {
		return Pathfinding
	}
	return qlearning.Strategy
}

// ObserveFirst observes and records the first episodic timestep
func (h *Hybrid) ObserveFirst(t ts.TimeStep) error {
	h.visited.Clear()
	h.visited.Put(h.view.Agent().Position)
	h.path = nil
	h.cached = false
	return h.QLearning.ObserveFirst(t)
}

// Observe observes and records any timestep other than the first
// timestep
func (h *Hybrid) Observe(a action.Action, nextStep ts.TimeStep) error {
	h.visited.Put(h.view.Agent().Position)

	if a < 0 || int(a) >= action.Cardinal {
		// Holding position while following a path is not learned from
		h.ObserveOutcome(nextStep)
		h.Resync()
		return nil
	}
	return h.QLearning.Observe(a, nextStep)
}

// Step updates the action values, unless the agent is following a path
func (h *Hybrid) Step() error {
	if h.searching {
		h.Discard()
		return nil
	}
	return h.QLearning.Step()
}

// EndEpisode records the result of the episode and decays the
// exploration rate. Exploration decays twice as fast on large mazes.
func (h *Hybrid) EndEpisode() {
	h.QLearning.EndEpisode()
	if h.large() && !h.IsEval() {
		h.Schedule().Step()
	}
}

// Stats returns a snapshot of the agent's training statistics
func (h *Hybrid) Stats() agent.Snapshot {
	s := h.QLearning.Stats()
	s.Strategy = h.Strategy()
	return s
}

// SelectAction selects an action by following the cached shortest
// path if pathfinding, otherwise by Q-Learning
func (h *Hybrid) SelectAction(t ts.TimeStep) action.Action {
	searching := h.shouldSearch()
	if searching != h.searching {
		h.logger.Printf("hybrid: switching to %v after %d episodes",
			label(searching), h.Recorder().Episodes())
	}
	h.searching = searching

	if h.searching {
		return h.follow()
	}
	return h.QLearning.SelectAction(t)
}

// large returns whether the current maze is large enough to always be
// solved by pathfinding
func (h *Hybrid) large() bool {
	return h.view.Grid().Size() > h.largeMaze
}

// shouldSearch returns whether the agent should follow a path
func (h *Hybrid) shouldSearch() bool {
	if h.large() {
		return true
	}
	rate, n := h.Recorder().RecentWinRate(SuccessWindow)
	return n >= MinEpisodes && rate > SuccessThreshold &&
		h.Epsilon() < EpsilonThreshold
}

// follow returns the action moving the agent to the next cell of the
// cached path, computing the path if needed. If there is no path the
// agent holds its position.
func (h *Hybrid) follow() action.Action {
	pos := h.view.Agent().Position
	g := h.view.Grid()

	next, ok := h.next(pos)
	if !ok {
		if h.cached && h.path == nil {
			return action.Wait
		}
		h.route(g, pos)
		if next, ok = h.next(pos); !ok {
			return action.Wait
		}
	}

	d, ok := grid.DirectionTo(pos, next)
	if !ok {
		return action.Wait
	}
	a := action.FromDirection(d)
	if !h.view.IsValidMove(pos, a) {
		return action.Wait
	}
	return a
}

// route computes and caches the path from pos to the goal
func (h *Hybrid) route(g *grid.Grid, pos grid.Position) {
	if h.oracle == nil || h.oracleGrid != g {
		h.oracle = shortestpath.New(g)
		h.oracleGrid = g
	}

	h.cached = true
	path, err := h.oracle.Find(pos, g.Goal())
	if err != nil {
		if !errors.Is(err, shortestpath.ErrNoPath) {
			h.logger.Printf("hybrid: %v", err)
		}
		h.path = nil
		return
	}
	h.path = path
}

// next returns the cell following pos on the cached path
func (h *Hybrid) next(pos grid.Position) (grid.Position, bool) {
	for i, p := range h.path {
		if p == pos && i+1 < len(h.path) {
			return h.path[i+1], true
		}
	}
	return pos, false
}

// Path returns the path cached for the current episode
func (h *Hybrid) Path() []grid.Position {
	return h.path
}

// score ranks actions when exploiting: unvisited cells get a bonus and
// undoing the previous move a penalty
func (h *Hybrid) score(p grid.Position, a action.Action, q float64) float64 {
	d, _ := a.Direction()
	if !h.visited.Has(p.Add(d)) {
		q += NoveltyBonus
	}

	state := h.view.Agent()
	if opp, ok := state.LastAction.Opposite(); ok && state.HasActed &&
		opp == a {
		q -= ReversalPenalty
	}
	return q
}
