package dynamic

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// Activation decides whether a hazard is active on a tick
type Activation interface {
	Active(tick int) bool
}

// AlwaysOn is an Activation that is always active
type AlwaysOn struct{}

// Active implements the Activation interface
func (AlwaysOn) Active(int) bool { return true }

// Periodic is an Activation that is active for the first Window ticks
// of every Period ticks
type Periodic struct {
	Period int
	Window int
}

// Active implements the Activation interface
func (p Periodic) Active(tick int) bool {
	if p.Period <= 0 {
		return true
	}
	return tick%p.Period < p.Window
}

// Probabilistic is an Activation that is active on each tick
// independently with a fixed probability
type Probabilistic struct {
	dist distuv.Bernoulli
}

// NewProbabilistic returns a new Probabilistic activation that is
// active with probability p on each tick
func NewProbabilistic(p float64, src rand.Source) *Probabilistic {
	return &Probabilistic{dist: distuv.Bernoulli{P: p, Src: src}}
}

// Active implements the Activation interface
func (p *Probabilistic) Active(int) bool {
	return p.dist.Rand() == 1
}

// Hazard is a trap cell which damages the agent while active
type Hazard struct {
	Cell       grid.Position
	Damage     float64
	Activation Activation
	active     bool
}

// IsActive returns whether the hazard was active on the last tick
func (h *Hazard) IsActive() bool {
	return h.active
}

// Tick advances the hazard to the given tick
func (h *Hazard) Tick(tick int) {
	h.active = h.Activation.Active(tick)
}
