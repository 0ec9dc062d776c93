package dynamic

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/grid"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

// Kind is the kind of a dynamic element
type Kind int

const (
	WallKind Kind = iota
	SectionKind
	HazardKind
	ItemKindElement
	OpponentKind
)

// Sighting describes a cell occupied by a dynamic element, as an agent
// would observe it
type Sighting struct {
	Kind     Kind
	Cell     grid.Position
	Velocity grid.Position // cells per tick along rows and columns
}

// Elements holds all dynamic elements of a maze and advances them in
// lockstep
type Elements struct {
	Walls     []*MovingWall
	Sections  []*RotatingSection
	Hazards   []*Hazard
	Items     []*Item
	Opponents []*Opponent

	grid *grid.Grid
	rng  *rand.Rand
	tick int
}

// NewElements returns an empty set of elements for grid g
func NewElements(g *grid.Grid, rng *rand.Rand) *Elements {
	return &Elements{grid: g, rng: rng}
}

// Ticks returns the number of ticks elapsed
func (e *Elements) Ticks() int {
	return e.tick
}

// Tick advances every element by one tick. The learner argument is the
// agent's cell after its move on this tick. Tick returns the events the
// elements raised against the agent.
func (e *Elements) Tick(learner grid.Position) []ts.Event {
	e.tick++
	var events []ts.Event

	for _, w := range e.Walls {
		if w.Tick(e.grid, e.tick) && w.Covers(learner) {
			events = append(events, ts.Event{Kind: ts.Collision, Value: 1,
				Cell: learner})
		}
	}
	for _, s := range e.Sections {
		if s.Tick(e.tick) && s.Covers(e.grid, learner) {
			events = append(events, ts.Event{Kind: ts.Collision, Value: 1,
				Cell: learner})
		}
	}

	for _, h := range e.Hazards {
		h.Tick(e.tick)
		if h.IsActive() && h.Cell == learner {
			events = append(events, ts.Event{Kind: ts.Hazard, Value: h.Damage,
				Cell: learner})
		}
	}

	for _, i := range e.Items {
		i.Tick(e.tick)
		if i.Cell == learner && i.Pickup(e.tick) {
			events = append(events, ts.Event{Kind: i.Kind.Event(),
				Value: i.Value, Cell: learner})
		}
	}

	if e.tick%opponentPeriod == 0 {
		events = append(events, e.moveOpponents(learner)...)
	}

	return events
}

// moveOpponents moves every opponent once
func (e *Elements) moveOpponents(learner grid.Position) []ts.Event {
	var events []ts.Event
	goal := e.grid.Goal()

	for _, o := range e.Opponents {
		if o.Position == goal {
			continue
		}

		self := o
		free := func(p grid.Position) bool {
			if !e.grid.IsOpen(p) || e.coveredByObstacle(p) {
				return false
			}
			for _, other := range e.Opponents {
				if other != self && other.Position == p {
					return false
				}
			}
			return true
		}

		m := o.decide(goal, learner, free, e.rng)
		if m.blocked {
			events = append(events, ts.Event{Kind: ts.Blocked, Value: 1,
				Cell: learner})
		}
		if !m.moved {
			continue
		}
		o.Position = m.to

		for _, i := range e.Items {
			if i.Kind == Collectible && i.Cell == o.Position &&
				i.Pickup(e.tick) {
				o.Score += i.Value
				events = append(events, ts.Event{Kind: ts.OpponentPickup,
					Value: i.Value, Cell: o.Position})
			}
		}
		if o.Position == goal {
			events = append(events, ts.Event{Kind: ts.OpponentGoal,
				Value: o.Score, Cell: goal})
		}
	}
	return events
}

// coveredByObstacle returns whether a moving wall or rotating section
// covers p
func (e *Elements) coveredByObstacle(p grid.Position) bool {
	return e.MovingWallAt(p) || e.SectionAt(p)
}

// MovingWallAt returns whether a moving wall covers p
func (e *Elements) MovingWallAt(p grid.Position) bool {
	for _, w := range e.Walls {
		if w.Covers(p) {
			return true
		}
	}
	return false
}

// SectionAt returns whether a rotating section covers p
func (e *Elements) SectionAt(p grid.Position) bool {
	for _, s := range e.Sections {
		if s.Covers(e.grid, p) {
			return true
		}
	}
	return false
}

// OpponentAt returns whether an opponent stands on p
func (e *Elements) OpponentAt(p grid.Position) bool {
	for _, o := range e.Opponents {
		if o.Position == p {
			return true
		}
	}
	return false
}

// IsBlocked returns whether a dynamic element prevents entering p
func (e *Elements) IsBlocked(p grid.Position) bool {
	return e.coveredByObstacle(p) || e.OpponentAt(p)
}

// ActiveHazardAt returns the active hazard on p, if any
func (e *Elements) ActiveHazardAt(p grid.Position) (*Hazard, bool) {
	for _, h := range e.Hazards {
		if h.Cell == p && h.IsActive() {
			return h, true
		}
	}
	return nil, false
}

// NearObstacle returns whether a moving wall or rotating section covers
// a cell adjacent to p
func (e *Elements) NearObstacle(p grid.Position) bool {
	for _, d := range grid.Directions {
		if e.coveredByObstacle(p.Add(d)) {
			return true
		}
	}
	return false
}

// Sightings returns every cell currently occupied by a dynamic element.
// Unavailable items and inactive hazards are omitted.
func (e *Elements) Sightings() []Sighting {
	var out []Sighting
	for _, w := range e.Walls {
		dRow, dCol := w.Direction.Delta()
		v := grid.Position{Row: dRow, Col: dCol}
		for _, c := range w.Footprint() {
			out = append(out, Sighting{Kind: WallKind, Cell: c, Velocity: v})
		}
	}
	for _, s := range e.Sections {
		for _, c := range s.Footprint(e.grid) {
			out = append(out, Sighting{Kind: SectionKind, Cell: c})
		}
	}
	for _, h := range e.Hazards {
		if h.IsActive() {
			out = append(out, Sighting{Kind: HazardKind, Cell: h.Cell})
		}
	}
	for _, i := range e.Items {
		if i.Available {
			out = append(out, Sighting{Kind: ItemKindElement, Cell: i.Cell})
		}
	}
	for _, o := range e.Opponents {
		out = append(out, Sighting{Kind: OpponentKind, Cell: o.Position})
	}
	return out
}
