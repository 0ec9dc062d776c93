// Package agentstate implements the mutable per-episode record of an
// agent in a maze: where it is, where it has been, what it carries and
// how much health, energy and oxygen it has left. Learned parameters
// never live here; they belong to the agent's policy.
package agentstate

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samuelfneumann/mazelearn/environment/action"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/utils/floatutils"
)

// KeyAbility is granted by using a key
const KeyAbility = "key"

// Resources are the bounded quantities an agent must keep above zero
type Resources struct {
	Health float64
	Energy float64
	Oxygen float64
}

// DefaultMax are the default resource maxima
var DefaultMax = Resources{Health: 100, Energy: 100, Oxygen: 100}

// Item is an entry of an agent's inventory
type Item struct {
	Kind  dynamic.ItemKind
	Value float64
}

// Agent is the state of an agent during a single episode
type Agent struct {
	Position grid.Position
	Path     []grid.Position
	Moves    int

	Resources Resources
	Max       Resources

	Inventory  []Item
	Discovered mapset.Set[grid.Position]
	Abilities  mapset.Set[string]

	// Stagnation counts the ticks since BestDistance last improved
	Stagnation   int
	BestDistance int

	Score      float64
	LastAction action.Action
	HasActed   bool
	TimeAlive  int
}

// New returns a new Agent placed on start
func New(start, goal grid.Position, max Resources) *Agent {
	a := &Agent{Max: max}
	a.Reset(start, goal)
	return a
}

// Reset returns the agent to start with full resources and empty
// history
func (a *Agent) Reset(start, goal grid.Position) {
	a.Position = start
	a.Path = []grid.Position{start}
	a.Moves = 0
	a.Resources = a.Max
	a.Inventory = nil
	a.Discovered = mapset.New[grid.Position]()
	a.Abilities = mapset.New[string]()
	a.Stagnation = 0
	a.BestDistance = grid.Manhattan(start, goal)
	a.Score = 0
	a.LastAction = action.Up
	a.HasActed = false
	a.TimeAlive = 0
}

// MoveTo moves the agent to p, recording the move in its path
func (a *Agent) MoveTo(p grid.Position) {
	a.Position = p
	a.Path = append(a.Path, p)
	a.Moves++
}

// Act records that act was taken on this tick
func (a *Agent) Act(act action.Action) {
	a.LastAction = act
	a.HasActed = true
}

// Advance ends a tick, updating the time alive and the stagnation
// counter with respect to goal
func (a *Agent) Advance(goal grid.Position) {
	a.TimeAlive++

	if d := grid.Manhattan(a.Position, goal); d < a.BestDistance {
		a.BestDistance = d
		a.Stagnation = 0
	} else {
		a.Stagnation++
	}
}

// Adjust adds delta to the agent's resources, clipping each resource
// to [0, max]
func (a *Agent) Adjust(delta Resources) {
	a.Resources.Health = floatutils.Clip(a.Resources.Health+delta.Health, 0,
		a.Max.Health)
	a.Resources.Energy = floatutils.Clip(a.Resources.Energy+delta.Energy, 0,
		a.Max.Energy)
	a.Resources.Oxygen = floatutils.Clip(a.Resources.Oxygen+delta.Oxygen, 0,
		a.Max.Oxygen)
}

// Depleted returns whether the agent has run out of health or oxygen
func (a *Agent) Depleted() bool {
	return a.Resources.Health <= 0 || a.Resources.Oxygen <= 0
}

// Normalized returns the agent's resources as fractions of their maxima
func (a *Agent) Normalized() Resources {
	frac := func(v, max float64) float64 {
		if max <= 0 {
			return 0
		}
		return v / max
	}
	return Resources{
		Health: frac(a.Resources.Health, a.Max.Health),
		Energy: frac(a.Resources.Energy, a.Max.Energy),
		Oxygen: frac(a.Resources.Oxygen, a.Max.Oxygen),
	}
}

// Store adds an item to the end of the inventory
func (a *Agent) Store(it Item) {
	a.Inventory = append(a.Inventory, it)
}

// UseLast removes and returns the last inventory entry
func (a *Agent) UseLast() (Item, bool) {
	n := len(a.Inventory)
	if n == 0 {
		return Item{}, false
	}
	it := a.Inventory[n-1]
	a.Inventory = a.Inventory[:n-1]
	return it, true
}

// Holds returns whether the inventory contains an item of kind k
func (a *Agent) Holds(k dynamic.ItemKind) bool {
	for _, it := range a.Inventory {
		if it.Kind == k {
			return true
		}
	}
	return false
}

// Discover marks every open cell within radius of the agent (in the
// Chebyshev sense) as discovered and returns the newly discovered cells
func (a *Agent) Discover(g *grid.Grid, radius int) []grid.Position {
	var found []grid.Position
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			p := grid.Position{Row: a.Position.Row + dr, Col: a.Position.Col + dc}
			if !g.InBounds(p) || a.Discovered.Has(p) {
				continue
			}
			a.Discovered.Put(p)
			if g.IsOpen(p) {
				found = append(found, p)
			}
		}
	}
	return found
}

// Recent returns up to the last n positions of the agent's path, oldest
// first
func (a *Agent) Recent(n int) []grid.Position {
	if len(a.Path) <= n {
		return a.Path
	}
	return a.Path[len(a.Path)-n:]
}

// Visits returns how many times p appears in the last n cells of the
// path
func (a *Agent) Visits(p grid.Position, n int) int {
	count := 0
	for _, q := range a.Recent(n) {
		if q == p {
			count++
		}
	}
	return count
}
