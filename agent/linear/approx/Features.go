package approx

import (
	"math"
	"sort"

	"github.com/samuelfneumann/mazelearn/agentstate"
	"github.com/samuelfneumann/mazelearn/environment"
	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/mode"
	"github.com/samuelfneumann/mazelearn/utils/floatutils"
)

const (
	// ViewRadius is the radius of the local view around the agent
	ViewRadius = 2

	// HistoryLength is the number of previous cells in a feature vector
	HistoryLength = 4

	stagnationScale = 50.0

	outOfBounds = -1.0
	unknown     = 0.5
	blocked     = 1.0

	// Number of features in each block of the feature vector
	positionFeatures  = 2
	resourceFeatures  = 3
	viewFeatures      = (2*ViewRadius + 1) * (2*ViewRadius + 1)
	goalFeatures      = 3
	inventoryFeatures = 4
	timeFeatures      = 2
	elementFeatures   = 4
	historyFeatures   = 2 * HistoryLength
)

// elementSlots is the number of nearby dynamic elements described by the
// feature vector of each mode
var elementSlots = [mode.Count]int{
	mode.Static:               0,
	mode.MovingObstacles:      4,
	mode.Competitive:          3,
	mode.PartialObservability: 0,
	mode.Survival:             4,
	mode.Procedural:           4,
}

// FeatureSize returns the length of the feature vectors of mode m
func FeatureSize(m mode.Mode) int {
	return positionFeatures + resourceFeatures + viewFeatures +
		goalFeatures + inventoryFeatures + timeFeatures +
		elementFeatures*elementSlots[m] + historyFeatures
}

// Features returns the feature vector of the agent's current state in
// the maze seen through view. Its length is FeatureSize(view.Mode()).
func Features(view environment.View) []float64 {
	g := view.Grid()
	state := view.Agent()
	m := view.Mode()
	rows, cols := float64(g.Rows()), float64(g.Cols())
	pos := state.Position

	features := make([]float64, 0, FeatureSize(m))

	features = append(features, float64(pos.Row)/(rows-1),
		float64(pos.Col)/(cols-1))

	r := state.Normalized()
	features = append(features, r.Health, r.Energy, r.Oxygen)

	features = append(features, localView(view, pos)...)

	goal := g.Goal()
	dist := grid.Manhattan(pos, goal)
	if dist == 0 {
		features = append(features, 0, 0, 0)
	} else {
		features = append(features,
			float64(goal.Row-pos.Row)/float64(dist),
			float64(goal.Col-pos.Col)/float64(dist),
			float64(dist)/(rows+cols))
	}

	features = append(features,
		indicator(state.Holds(dynamic.Food)),
		indicator(state.Holds(dynamic.EnergyCell)),
		indicator(state.Holds(dynamic.Key)),
		indicator(state.Abilities.Has(agentstate.KeyAbility)))

	limit := math.Max(1, float64(view.MoveLimit()))
	features = append(features,
		floatutils.Clip(float64(state.TimeAlive)/limit, 0, 1),
		floatutils.Clip(float64(state.Stagnation)/stagnationScale, 0, 1))

	features = append(features, nearest(view.Elements(), pos,
		elementSlots[m], rows, cols)...)

	features = append(features, history(state, rows, cols)...)

	return features
}

// localView returns the square window of cells around pos, row by row
func localView(view environment.View, pos grid.Position) []float64 {
	g := view.Grid()
	state := view.Agent()
	fog := view.Mode().HasFog()
	elems := view.Elements()

	cells := make([]float64, 0, viewFeatures)
	for dr := -ViewRadius; dr <= ViewRadius; dr++ {
		for dc := -ViewRadius; dc <= ViewRadius; dc++ {
			p := grid.Position{Row: pos.Row + dr, Col: pos.Col + dc}
			switch {
			case !g.InBounds(p):
				cells = append(cells, outOfBounds)
			case fog && !state.Discovered.Has(p):
				cells = append(cells, unknown)
			case !g.IsOpen(p) || elems.IsBlocked(p):
				cells = append(cells, blocked)
			default:
				cells = append(cells, 0)
			}
		}
	}
	return cells
}

// nearest describes the n dynamic elements closest to pos by their
// relative position and velocity, padded with zeros
func nearest(elems *dynamic.Elements, pos grid.Position, n int, rows,
	cols float64) []float64 {
	out := make([]float64, elementFeatures*n)
	if n == 0 {
		return out
	}

	sightings := elems.Sightings()
	sort.SliceStable(sightings, func(i, j int) bool {
		return grid.Manhattan(pos, sightings[i].Cell) <
			grid.Manhattan(pos, sightings[j].Cell)
	})

	for i := 0; i < n && i < len(sightings); i++ {
		s := sightings[i]
		rel := s.Cell.Sub(pos)
		out[i*elementFeatures] = float64(rel.Row) / rows
		out[i*elementFeatures+1] = float64(rel.Col) / cols
		out[i*elementFeatures+2] = float64(s.Velocity.Row)
		out[i*elementFeatures+3] = float64(s.Velocity.Col)
	}
	return out
}

// history returns the positions of the agent's previous cells relative
// to its current cell, most recent first, padded with zeros
func history(state *agentstate.Agent, rows, cols float64) []float64 {
	out := make([]float64, historyFeatures)
	path := state.Path
	for i := 0; i < HistoryLength; i++ {
		j := len(path) - 2 - i
		if j < 0 {
			break
		}
		rel := path[j].Sub(state.Position)
		out[2*i] = float64(rel.Row) / rows
		out[2*i+1] = float64(rel.Col) / cols
	}
	return out
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
