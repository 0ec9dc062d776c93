package agentstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mazelearn/environment/dynamic"
	"github.com/samuelfneumann/mazelearn/environment/grid"
)

func TestResourcesClipped(t *testing.T) {
	a := New(grid.Position{Row: 1, Col: 1}, grid.Position{Row: 3, Col: 3},
		DefaultMax)

	a.Adjust(Resources{Health: 50})
	assert.Equal(t, 100.0, a.Resources.Health)

	a.Adjust(Resources{Health: -250, Oxygen: -10})
	assert.Equal(t, 0.0, a.Resources.Health)
	assert.Equal(t, 90.0, a.Resources.Oxygen)
	assert.True(t, a.Depleted())

	a.Reset(grid.Position{Row: 1, Col: 1}, grid.Position{Row: 3, Col: 3})
	assert.False(t, a.Depleted())
	assert.Equal(t, DefaultMax, a.Resources)
}

func TestStagnation(t *testing.T) {
	goal := grid.Position{Row: 3, Col: 3}
	a := New(grid.Position{Row: 1, Col: 1}, goal, DefaultMax)
	assert.Equal(t, 4, a.BestDistance)

	a.MoveTo(grid.Position{Row: 1, Col: 2})
	a.Advance(goal)
	assert.Equal(t, 0, a.Stagnation)
	assert.Equal(t, 3, a.BestDistance)

	a.MoveTo(grid.Position{Row: 1, Col: 1})
	a.Advance(goal)
	a.MoveTo(grid.Position{Row: 1, Col: 2})
	a.Advance(goal)
	assert.Equal(t, 2, a.Stagnation)
	assert.Equal(t, 3, a.Moves)
	assert.Equal(t, 3, a.TimeAlive)
	assert.Equal(t, 2, a.Visits(grid.Position{Row: 1, Col: 2}, 5))
}

func TestInventory(t *testing.T) {
	a := New(grid.Position{Row: 1, Col: 1}, grid.Position{Row: 3, Col: 3},
		DefaultMax)

	_, ok := a.UseLast()
	assert.False(t, ok)

	a.Store(Item{Kind: dynamic.Food, Value: 20})
	a.Store(Item{Kind: dynamic.Key, Value: 1})
	assert.True(t, a.Holds(dynamic.Key))

	it, ok := a.UseLast()
	require.True(t, ok)
	assert.Equal(t, dynamic.Key, it.Kind)
	assert.False(t, a.Holds(dynamic.Key))
	assert.Len(t, a.Inventory, 1)
}

func TestDiscover(t *testing.T) {
	g, err := grid.NewOpen(9, 9)
	require.NoError(t, err)

	a := New(g.Start(), g.Goal(), DefaultMax)
	found := a.Discover(g, 2)

	// From (1, 1) the 5x5 window covers rows and columns -1..3; the
	// open cells are rows and columns 1..3
	assert.Len(t, found, 9)
	assert.Empty(t, a.Discover(g, 2))

	a.MoveTo(grid.Position{Row: 1, Col: 2})
	assert.Len(t, a.Discover(g, 2), 3)
}
