// Package scheduler implements exploration rate schedules for
// ε-greedy agents: a static exponential decay derived from a start
// rate, an end rate and a horizon, and an optional auto-tuner which
// adjusts the decay from a rolling window of recent episode results.
package scheduler

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/utils/floatutils"
)

const (
	// MinDecay and MaxDecay bound every decay rate
	MinDecay = 0.90
	MaxDecay = 0.9999

	// fallbackEnd replaces an end rate of zero when deriving the decay
	fallbackEnd = 0.01
)

// Schedule is an exponential decay of ε from Start towards End over
// Horizon episodes
type Schedule struct {
	Start   float64
	End     float64
	Horizon int
	Decay   float64
}

// NewSchedule returns the Schedule decaying from start to end over
// horizon episodes. The decay is (end/start)^(1/horizon), using 0.01 in
// place of an end of zero, clamped to [MinDecay, MaxDecay].
func NewSchedule(start, end float64, horizon int) (Schedule, error) {
	if end < 0 || end > start || start > 1 {
		return Schedule{}, fmt.Errorf("newSchedule: need 0 <= end <= start "+
			"<= 1, got start=%v end=%v", start, end)
	}
	if horizon <= 0 {
		return Schedule{}, fmt.Errorf("newSchedule: horizon must be > 0, "+
			"got %d", horizon)
	}

	return Schedule{
		Start:   start,
		End:     end,
		Horizon: horizon,
		Decay:   decayFor(start, end, horizon),
	}, nil
}

func decayFor(start, end float64, horizon int) float64 {
	if start <= 0 {
		return MaxDecay
	}
	target := end
	if target <= 0 {
		target = fallbackEnd
	}
	decay := math.Pow(target/start, 1/float64(horizon))
	return floatutils.Clip(decay, MinDecay, MaxDecay)
}

// Defaults holds the starting exploration rate, decay and floor of a
// game mode
type Defaults struct {
	Epsilon float64
	Decay   float64
	Min     float64
}

// modeDefaults seeds the schedule of each mode
var modeDefaults = [mode.Count]Defaults{
	mode.Static:               {Epsilon: 1.0, Decay: 0.995, Min: 0.01},
	mode.MovingObstacles:      {Epsilon: 0.9, Decay: 0.993, Min: 0.05},
	mode.Competitive:          {Epsilon: 0.8, Decay: 0.99, Min: 0.05},
	mode.PartialObservability: {Epsilon: 1.0, Decay: 0.98, Min: 0.1},
	mode.Survival:             {Epsilon: 0.9, Decay: 0.99, Min: 0.05},
	mode.Procedural:           {Epsilon: 1.0, Decay: 0.995, Min: 0.05},
}

// ModeDefaults returns the default exploration parameters of m
func ModeDefaults(m mode.Mode) Defaults {
	if !m.Valid() {
		return modeDefaults[mode.Static]
	}
	return modeDefaults[m]
}

// Schedule returns the defaults as a Schedule
func (d Defaults) Schedule() Schedule {
	return Schedule{Start: d.Epsilon, End: d.Min, Decay: d.Decay}
}

// margin is how much ε is raised by when a mode's agent keeps failing
var margin = [mode.Count]float64{
	mode.Static:               0.1,
	mode.MovingObstacles:      0.1,
	mode.Competitive:          0.1,
	mode.PartialObservability: 0.2,
	mode.Survival:             0.1,
	mode.Procedural:           0.1,
}
