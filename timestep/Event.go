package timestep

import (
	"fmt"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

// EventKind is the kind of an Event raised during a timestep
type EventKind int

const (
	// Blocked: an opponent tried to move into the agent's cell
	Blocked EventKind = iota

	// Collision: a moving obstacle swept over the agent's cell
	Collision

	// Adapted: the agent moved past a cell a moving obstacle occupied
	// on the previous tick
	Adapted

	// Hazard: the agent stood on an active hazard
	Hazard

	// Food, Energy, Key and Collectible: the agent picked up an item
	Food
	Energy
	Key
	Collectible

	// Discovered: a cell was revealed for the first time
	Discovered

	// Invalid: the agent attempted an action that could not be executed
	Invalid

	// OpponentGoal: an opponent reached the goal
	OpponentGoal

	// OpponentPickup: an opponent picked up a collectible
	OpponentPickup
)

var eventNames = [...]string{
	Blocked:        "blocked",
	Collision:      "collision",
	Adapted:        "adapted",
	Hazard:         "hazard",
	Food:           "food",
	Energy:         "energy",
	Key:            "key",
	Collectible:    "collectible",
	Discovered:     "discovered",
	Invalid:        "invalid",
	OpponentGoal:   "opponent-goal",
	OpponentPickup: "opponent-pickup",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// Event is something that happened to the agent, or around it, on a
// timestep. Value holds the magnitude of the event, e.g. the damage of
// a hazard or the value of an item.
type Event struct {
	Kind  EventKind
	Value float64
	Cell  grid.Position
}

func (e Event) String() string {
	return fmt.Sprintf("%v@%v(%.2f)", e.Kind, e.Cell, e.Value)
}

// Count returns the number of events of kind k
func Count(events []Event, k EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Sum returns the summed value of all events of kind k
func Sum(events []Event, k EventKind) float64 {
	sum := 0.0
	for _, e := range events {
		if e.Kind == k {
			sum += e.Value
		}
	}
	return sum
}
