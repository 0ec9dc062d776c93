// Package planner implements a time-boxed UCB1 lookahead search over a
// generic discrete model. A Search keeps visit counts and returns only
// for the duration of a single call.
package planner

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/action"
)

const (
	// DefaultMaxDepth is used when Options.MaxDepth is not positive
	DefaultMaxDepth = 30

	// DefaultC is used when Options.C is nil
	DefaultC = math.Sqrt2
)

// Model is a model of an environment that can be searched over
type Model[S comparable] interface {
	// Actions returns the valid actions in a state
	Actions(s S) []action.Action

	// Step returns the state reached, the reward received and whether
	// the state reached is terminal when taking action a in state s
	Step(s S, a action.Action) (S, float64, bool)

	// Evaluate returns a heuristic value of a leaf state
	Evaluate(s S) float64
}

// Options configures a single search
type Options struct {
	// C is the UCB1 exploration constant. A C of zero selects actions
	// purely by their mean return.
	C *float64

	// TimeBudget is the wall-clock time a search may take. At least one
	// simulation is always run.
	TimeBudget time.Duration

	// MaxIterations bounds the number of simulations if positive
	MaxIterations int

	// MaxDepth is the maximum depth of a simulation
	MaxDepth int

	// Default is returned when the root state has no valid actions
	Default action.Action

	Rand *rand.Rand
}

func fillDefaults(o Options) Options {
	if o.C == nil {
		c := DefaultC
		o.C = &c
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return o
}

// Stats describes a finished search
type Stats struct {
	Iterations int
	RootVisits int
	BestVisits int
	BestMean   float64
}

func (s Stats) String() string {
	return fmt.Sprintf("iter=%d, rootN=%d, bestN=%d, bestQ=%.6f",
		s.Iterations, s.RootVisits, s.BestVisits, s.BestMean)
}

// edge is a (state, action) pair
type edge[S comparable] struct {
	state  S
	action action.Action
}

// tree holds the statistics of a single search
type tree[S comparable] struct {
	model    Model[S]
	c        float64
	maxDepth int
	rng      *rand.Rand

	visits       map[S]int
	actionVisits map[edge[S]]int
	returns      map[edge[S]]float64
}

// Search runs simulations from root until the time budget elapses and
// returns the root action with the highest mean return. Ties are broken
// by the order of the actions returned by the model. If the root has no
// valid actions, opts.Default is returned.
func Search[S comparable](model Model[S], root S, opts Options) (
	action.Action, Stats) {
	cfg := fillDefaults(opts)

	actions := model.Actions(root)
	if len(actions) == 0 {
		return cfg.Default, Stats{}
	}

	t := &tree[S]{
		model:        model,
		c:            *cfg.C,
		maxDepth:     cfg.MaxDepth,
		rng:          cfg.Rand,
		visits:       make(map[S]int),
		actionVisits: make(map[edge[S]]int),
		returns:      make(map[edge[S]]float64),
	}

	deadline := time.Now().Add(cfg.TimeBudget)
	iters := 0
	for {
		t.simulate(root, 0)
		iters++

		if time.Now().After(deadline) {
			break
		}
		if cfg.MaxIterations > 0 && iters >= cfg.MaxIterations {
			break
		}
	}

	best, n, q := t.bestAction(root, actions)
	return best, Stats{
		Iterations: iters,
		RootVisits: t.visits[root],
		BestVisits: n,
		BestMean:   q,
	}
}

// simulate runs a single simulation from s at depth and returns the
// return observed
func (t *tree[S]) simulate(s S, depth int) float64 {
	if depth >= t.maxDepth {
		return t.model.Evaluate(s)
	}
	actions := t.model.Actions(s)
	if len(actions) == 0 {
		return t.model.Evaluate(s)
	}

	var a action.Action
	expand := t.visits[s] == 0
	if expand {
		a = actions[t.rng.Intn(len(actions))]
	} else {
		a = t.selectUCB(s, actions)
	}

	next, reward, terminal := t.model.Step(s, a)
	g := reward
	if !terminal {
		if expand {
			g += t.rollout(next, depth+1)
		} else {
			g += t.simulate(next, depth+1)
		}
	}

	t.backprop(s, a, g)
	return g
}

// rollout follows the uniform random policy from s until the maximum
// depth or a terminal state
func (t *tree[S]) rollout(s S, depth int) float64 {
	g := 0.0
	for ; depth < t.maxDepth; depth++ {
		actions := t.model.Actions(s)
		if len(actions) == 0 {
			return g + t.model.Evaluate(s)
		}

		a := actions[t.rng.Intn(len(actions))]
		next, reward, terminal := t.model.Step(s, a)
		g += reward
		if terminal {
			return g
		}
		s = next
	}
	return g + t.model.Evaluate(s)
}

func (t *tree[S]) backprop(s S, a action.Action, g float64) {
	e := edge[S]{s, a}
	t.visits[s]++
	t.actionVisits[e]++
	t.returns[e] += g
}

func (t *tree[S]) mean(e edge[S]) (float64, int) {
	n := t.actionVisits[e]
	if n == 0 {
		return 0, 0
	}
	return t.returns[e] / float64(n), n
}

// selectUCB returns the action maximizing the UCB1 score in s
func (t *tree[S]) selectUCB(s S, actions []action.Action) action.Action {
	lnN := math.Log(float64(t.visits[s] + 1))

	best := math.Inf(-1)
	bestAct := actions[0]
	for _, a := range actions {
		q, n := t.mean(edge[S]{s, a})
		score := q + t.c*math.Sqrt(lnN/float64(1+n))
		if score > best {
			best = score
			bestAct = a
		}
	}
	return bestAct
}

// bestAction returns the visited root action with the highest mean
// return along with its visit count and mean
func (t *tree[S]) bestAction(root S, actions []action.Action) (
	action.Action, int, float64) {
	best := math.Inf(-1)
	bestAct, bestN := actions[0], 0
	for _, a := range actions {
		q, n := t.mean(edge[S]{root, a})
		if n == 0 {
			continue
		}
		if q > best {
			best, bestAct, bestN = q, a, n
		}
	}
	if bestN == 0 {
		return bestAct, 0, 0
	}
	return bestAct, bestN, best
}
