package shortestpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

func TestFindOpen(t *testing.T) {
	g, err := grid.NewOpen(5, 5)
	require.NoError(t, err)

	route, err := Find(g, g.Start(), g.Goal())
	require.NoError(t, err)
	assert.Len(t, route, 5)
	assert.Equal(t, g.Start(), route[0])
	assert.Equal(t, g.Goal(), route[len(route)-1])

	for i := 1; i < len(route); i++ {
		assert.Equal(t, 1, grid.Manhattan(route[i-1], route[i]))
	}
}

func TestFindCorridor(t *testing.T) {
	g, err := grid.New([][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1},
	})
	require.NoError(t, err)

	route, err := Find(g, g.Start(), g.Goal())
	require.NoError(t, err)
	assert.Len(t, route, 17)
}

func TestNoPath(t *testing.T) {
	g, err := grid.New([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{1, 1, 1, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)

	_, err = Find(g, g.Start(), g.Goal())
	assert.True(t, errors.Is(err, ErrNoPath))

	_, err = Find(g, g.Start(), grid.Position{Row: 2, Col: 2})
	assert.True(t, errors.Is(err, ErrNoPath))
}

func TestSameCell(t *testing.T) {
	g, err := grid.NewOpen(5, 5)
	require.NoError(t, err)

	route, err := Find(g, g.Goal(), g.Goal())
	require.NoError(t, err)
	assert.Equal(t, []grid.Position{g.Goal()}, route)
}
