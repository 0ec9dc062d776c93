package dynamic

import (
	"github.com/samuelfneumann/mazelearn/environment/grid"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// ItemKind is the kind of a collectible item
type ItemKind int

const (
	Food ItemKind = iota
	EnergyCell
	Key
	Collectible
)

func (k ItemKind) String() string {
	switch k {
	case Food:
		return "food"
	case EnergyCell:
		return "energy"
	case Key:
		return "key"
	default:
		return "collectible"
	}
}

// Event returns the kind of event raised when the item is picked up
func (k ItemKind) Event() ts.EventKind {
	switch k {
	case Food:
		return ts.Food
	case EnergyCell:
		return ts.Energy
	case Key:
		return ts.Key
	default:
		return ts.Collectible
	}
}

// Item is an item lying in the maze. Once picked up it respawns in the
// same cell Cooldown ticks later. Items with a non-positive Cooldown
// never respawn.
type Item struct {
	Kind           ItemKind
	Cell           grid.Position
	Value          float64
	Cooldown       int
	LastPickupTick int
	Available      bool
}

// Tick advances the item to the given tick, respawning it if its
// cooldown has elapsed
func (i *Item) Tick(tick int) {
	if !i.Available && i.Cooldown > 0 && tick-i.LastPickupTick >= i.Cooldown {
		i.Available = true
	}
}

// Pickup removes the item from the maze at the given tick. It returns
// false if the item was not available.
func (i *Item) Pickup(tick int) bool {
	if !i.Available {
		return false
	}
	i.Available = false
	i.LastPickupTick = tick
	return true
}
