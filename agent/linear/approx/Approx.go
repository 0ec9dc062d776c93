// Package approx implements Q-Learning with a linear action-value
// function, experience replay and the full action set of the maze.
//
// States are described by fixed-length feature vectors (see Features).
// In the fog, survival and competitive modes actions are chosen by a
// combined scorer which trades off progress towards the goal against
// exploration and revisiting cells; in the remaining modes actions are
// chosen ε-greedily with respect to the linear head.
package approx

import (
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/mazelearn/agent"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/expreplay"
	"github.com/samuelfneumann/mazelearn/planner"
	"github.com/samuelfneumann/mazelearn/scheduler"
	ts "github.com/samuelfneumann/mazelearn/timestep"
	"github.com/samuelfneumann/mazelearn/utils/matutils"
)

// DefaultAction is selected when no action is valid
const DefaultAction = action.Wait

// Strategy labels
const (
	EpsilonGreedy = "linear"
	Combined      = "combined"
)

// Approx implements Q-Learning with linear function approximation
type Approx struct {
	view     environment.View
	head     *Head
	buffer   expreplay.ExperienceReplayer
	schedule *scheduler.Scheduler

	learningRate float64
	discount     float64
	trainEvery   int

	// scorer is the combined scorer of the mode, or nil if actions are
	// chosen ε-greedily
	scorer *scorer
	weight float64

	// planning replaces action selection with a lookahead search over
	// the extended action set if not nil
	planning *agent.Planning

	rng    *rand.Rand
	source rand.Source
	seed   uint64
	eval   bool

	state       []float64
	steps       int
	lastTrained int
	loss        float64

	recorder      agent.Recorder
	last          ts.TimeStep
	episodeReturn float64

	logger *log.Logger
}

// New creates a new Approx agent acting in the maze seen through view
func New(view environment.View, learningRate, discount float64,
	buffer expreplay.ExperienceReplayer, schedule *scheduler.Scheduler,
	trainEvery int, seed uint64) (*Approx, error) {
	features := FeatureSize(view.Mode())
	if trainEvery <= 0 {
		return nil, fmt.Errorf("new: trainEvery must be > 0")
	}

	a := &Approx{
		view:         view,
		head:         NewHead(features, action.Count, rand.NewSource(seed)),
		buffer:       buffer,
		schedule:     schedule,
		learningRate: learningRate,
		discount:     discount,
		trainEvery:   trainEvery,
		scorer:       scorers[view.Mode()],
		rng:          rand.New(rand.NewSource(seed + 1)),
		source:       rand.NewSource(seed + 2),
		seed:         seed,
		logger:       log.New(io.Discard, "", 0),
	}
	if a.scorer != nil {
		a.weight = a.scorer.weight
	}
	return a, nil
}

// SetLogger sets the logger used to report training progress
func (l *Approx) SetLogger(logger *log.Logger) {
	l.logger = logger
	l.schedule.SetLogger(logger)
}

// SetPlanning sets the lookahead search used to select actions. A nil
// planning restores the agent's own action selection.
func (l *Approx) SetPlanning(p *agent.Planning) {
	l.planning = p
}

// SelectAction selects an action from the extended action set
func (l *Approx) SelectAction(_ ts.TimeStep) action.Action {
	pos := l.view.Agent().Position
	valid := l.view.ValidActions(pos, true)
	if len(valid) == 0 {
		return DefaultAction
	}

	if l.planning != nil {
		model := planner.NewMazeModel(l.view, true)
		a, _ := planner.Search[grid.Position](model, pos,
			l.planning.Options(DefaultAction, l.rng))
		return a
	}

	values := l.head.Predict(Features(l.view))

	if l.scorer != nil {
		if !l.eval && l.rng.Float64() < l.scorer.random {
			return valid[l.rng.Intn(len(valid))]
		}
		return valid[l.bestScored(l.scorer, valid, values.RawVector().Data)]
	}

	indices := make([]int, len(valid))
	for i, a := range valid {
		indices[i] = int(a)
	}
	greedy := matutils.MaxVecOver(values, indices)
	if l.eval || l.Epsilon() == 0 {
		return valid[greedy]
	}

	epsilon := l.Epsilon()
	prob := epsilon / float64(len(valid))
	actionProbabilities := make([]float64, len(valid))
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}
	actionProbabilities[greedy] += 1.0 - epsilon

	dist := distuv.NewCategorical(actionProbabilities, l.source)
	return valid[int(dist.Rand())]
}

// state0 returns the features of the current state, computing them if
// they have not been observed yet
func (l *Approx) state0() []float64 {
	if l.state == nil {
		l.state = Features(l.view)
	}
	return l.state
}

// ObserveFirst observes and records the first episodic timestep
func (l *Approx) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	l.state = Features(l.view)
	l.last = t
	l.episodeReturn = 0
	return nil
}

// Observe observes and records any timestep other than the first
// timestep. In training mode the transition is added to the replay
// buffer.
func (l *Approx) Observe(a action.Action, nextStep ts.TimeStep) error {
	if !a.Valid() {
		return fmt.Errorf("observe: invalid action %v", a)
	}
	l.episodeReturn += nextStep.Reward
	l.last = nextStep

	next := Features(l.view)
	state := l.state0()
	l.state = next
	if l.eval {
		return nil
	}

	err := l.buffer.Add(expreplay.Record{
		State:    state,
		Action:   int(a),
		Reward:   nextStep.Reward,
		Next:     next,
		Terminal: nextStep.Last(),
	})
	if err != nil {
		return fmt.Errorf("observe: %v", err)
	}
	l.steps++
	return nil
}

// Step trains the linear head on a batch of replayed experience every
// trainEvery observed transitions
func (l *Approx) Step() error {
	if l.eval || l.steps == 0 || l.steps%l.trainEvery != 0 ||
		l.steps == l.lastTrained {
		return nil
	}
	l.lastTrained = l.steps

	if _, err := l.Learn(); err != nil {
		return fmt.Errorf("step: %v", err)
	}
	return nil
}

// Learn updates the linear head on a single batch sampled from the
// replay buffer and decays ε. Training is skipped while the buffer
// holds less than one batch. The mean squared TD error of the batch is
// returned.
func (l *Approx) Learn() (float64, error) {
	batch, err := l.buffer.Sample()
	if expreplay.IsInsufficientSamples(err) || expreplay.IsEmptyBuffer(err) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("learn: %v", err)
	}

	loss := 0.0
	for i := 0; i < batch.Len(); i++ {
		target := batch.Rewards[i]
		if !batch.Terminal[i] {
			target += l.discount * l.head.Max(batch.NextState(i))
		}
		tdError := l.head.Update(batch.State(i), batch.Actions[i], target,
			l.learningRate)
		loss += tdError * tdError
	}
	l.loss = loss / float64(batch.Len())

	l.schedule.Step()
	return l.loss, nil
}

// EndEpisode records the result of the episode. Lost episodes which
// ended in long stagnation increase the weight given to exploration by
// the combined scorer.
func (l *Approx) EndEpisode() {
	state := l.view.Agent()
	won := l.last.Won()
	l.recorder.Record(won, state.Moves, l.episodeReturn)

	if l.eval {
		return
	}
	if l.scorer != nil && !won && state.Stagnation >= stagnationLimit &&
		l.weight < maxWeight {
		l.weight += weightStep
		if l.weight > maxWeight {
			l.weight = maxWeight
		}
		l.logger.Printf("approx: stagnated for %d ticks, exploration "+
			"weight now %.2f", state.Stagnation, l.weight)
	}
	if l.schedule.AutoTuned() {
		l.schedule.EndEpisode(scheduler.Result{
			Won:    won,
			Moves:  state.Moves,
			Reward: l.episodeReturn,
		})
	}
}

// Stats returns a snapshot of the agent's training statistics
func (l *Approx) Stats() agent.Snapshot {
	s := agent.Snapshot{
		Epsilon:    l.Epsilon(),
		Gamma:      l.discount,
		BufferSize: l.buffer.Capacity(),
		Loss:       l.loss,
		Strategy:   l.Strategy(),
	}
	l.recorder.Fill(&s)
	return s
}

// ResetStats forgets all statistics, replayed experience and learned
// weights
func (l *Approx) ResetStats() {
	l.recorder.Reset()
	l.buffer.Clear()
	actions, features := l.head.Dims()
	l.head = NewHead(features, actions, rand.NewSource(l.seed))
	l.steps, l.lastTrained, l.loss = 0, 0, 0
	if l.scorer != nil {
		l.weight = l.scorer.weight
	}
}

// Strategy returns the label of the action selection strategy
func (l *Approx) Strategy() string {
	if l.scorer != nil {
		return Combined
	}
	return EpsilonGreedy
}

// Head returns the agent's linear action-value function
func (l *Approx) Head() *Head {
	return l.head
}

// Buffer returns the agent's replay buffer
func (l *Approx) Buffer() expreplay.ExperienceReplayer {
	return l.buffer
}

// ExplorationWeight returns the weight the combined scorer gives to
// exploration
func (l *Approx) ExplorationWeight() float64 {
	return l.weight
}

// LearningRate returns the learning rate of the agent
func (l *Approx) LearningRate() float64 {
	return l.learningRate
}

// Epsilon returns the current exploration rate
func (l *Approx) Epsilon() float64 {
	return l.schedule.Epsilon()
}

// SetEpsilon overrides the current exploration rate
func (l *Approx) SetEpsilon(e float64) {
	l.schedule.SetEpsilon(e)
}

// Eval sets the agent to evaluation mode
func (l *Approx) Eval() { l.eval = true }

// Train sets the agent to training mode
func (l *Approx) Train() { l.eval = false }

// IsEval indicates whether the agent is in evaluation mode
func (l *Approx) IsEval() bool { return l.eval }
