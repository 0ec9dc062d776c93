// Package trackers implements Trackers of episode data in an experiment
package trackers

import (
	"fmt"
	"os"

	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// episodes accumulates per-episode data from sequential TimeSteps.
// Episodes which do not finish are never recorded.
type episodes struct {
	lastTimeStep  int
	currentReturn float64

	returns []float64
	lengths []float64
	wins    []float64
}

func newEpisodes() episodes {
	return episodes{lastTimeStep: -1}
}

// track tracks the reward seen on a timestep, recording the episode
// once its last timestep is seen. If step does not follow the
// previously tracked timestep, the partial episode is dropped.
func (e *episodes) track(step ts.TimeStep) {
	if e.lastTimeStep+1 != step.Number {
		fmt.Fprintf(os.Stderr, "Warning: last two timesteps tracked are "+
			"not sequential: timestep %v --> timestep %v were tracked, "+
			"dropping episode\n", e.lastTimeStep, step.Number)
		e.currentReturn = 0
		e.lastTimeStep = -1
		if !step.First() {
			return
		}
	}

	e.currentReturn += step.Reward
	e.lastTimeStep = step.Number
	if !step.Last() {
		return
	}

	e.returns = append(e.returns, e.currentReturn)
	e.lengths = append(e.lengths, float64(step.Number))
	won := 0.0
	if step.Won() {
		won = 1.0
	}
	e.wins = append(e.wins, won)

	e.currentReturn = 0
	e.lastTimeStep = -1
}

// rollingMean returns the mean of each window of at most n values
// ending at each index of data
func rollingMean(data []float64, n int) []float64 {
	out := make([]float64, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= n {
			sum -= data[i-n]
		}
		out[i] = sum / float64(min(i+1, n))
	}
	return out
}
