package agent

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/planner"
	"github.com/samuelfneumann/mazelearn/scheduler"
)

// Exploration configures the exploration rate schedule of an ε-greedy
// agent. A nil *Exploration selects the defaults of the game mode.
type Exploration struct {
	Start float64
	End   float64

	// Horizon is the number of episodes over which ε decays from Start
	// to End. Zero uses the default decay rate of the game mode.
	Horizon int

	AutoTune bool
	Window   int
}

// Validate returns an error describing whether or not the
// configuration is valid
func (e *Exploration) Validate() error {
	if e == nil {
		return nil
	}
	if e.End < 0 || e.End > e.Start || e.Start > 1 {
		return fmt.Errorf("validate: need 0 <= end <= start <= 1, got "+
			"start=%v end=%v", e.Start, e.End)
	}
	if e.Horizon < 0 {
		return fmt.Errorf("validate: horizon must be >= 0")
	}
	if e.Window < 0 {
		return fmt.Errorf("validate: window must be >= 0")
	}
	return nil
}

// Scheduler returns a new Scheduler following the configuration in
// game mode m
func (e *Exploration) Scheduler(m mode.Mode) (*scheduler.Scheduler, error) {
	if e == nil {
		return scheduler.ForMode(m), nil
	}

	var opts []scheduler.Option
	if e.AutoTune {
		opts = append(opts, scheduler.WithAutoTune(m, e.Window))
	}

	if e.Horizon == 0 {
		s := scheduler.Schedule{
			Start: e.Start,
			End:   e.End,
			Decay: scheduler.ModeDefaults(m).Decay,
		}
		return scheduler.New(s, opts...), nil
	}

	s, err := scheduler.NewSchedule(e.Start, e.End, e.Horizon)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %v", err)
	}
	return scheduler.New(s, opts...), nil
}

// Planning configures the lookahead search an agent may use in place
// of its own action selection
type Planning struct {
	Budget   time.Duration
	MaxDepth int

	// C is the UCB1 exploration constant, planner.DefaultC if nil
	C *float64 `json:",omitempty"`
}

// Validate returns an error describing whether or not the
// configuration is valid
func (p *Planning) Validate() error {
	if p == nil {
		return nil
	}
	if p.Budget <= 0 {
		return fmt.Errorf("validate: planning budget must be > 0")
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("validate: planning depth must be >= 0")
	}
	if p.C != nil && *p.C < 0 {
		return fmt.Errorf("validate: exploration constant must be >= 0")
	}
	return nil
}

// Options returns the search options of the configuration
func (p *Planning) Options(def action.Action,
	rng *rand.Rand) planner.Options {
	return planner.Options{
		C:          p.C,
		TimeBudget: p.Budget,
		MaxDepth:   p.MaxDepth,
		Default:    def,
		Rand:       rng,
	}
}
