package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g, err := New([][]int{
			{1, 1, 1, 1, 1},
			{1, 0, 0, 0, 1},
			{1, 1, 1, 0, 1},
			{1, 0, 0, 0, 1},
			{1, 1, 1, 1, 1},
		})
		require.NoError(t, err)

		rows, cols := g.Dims()
		assert.Equal(t, 5, rows)
		assert.Equal(t, 5, cols)
		assert.Equal(t, Position{1, 1}, g.Start())
		assert.Equal(t, Position{3, 3}, g.Goal())
		assert.True(t, g.IsOpen(Position{1, 2}))
		assert.False(t, g.IsOpen(Position{2, 1}))
		assert.False(t, g.IsOpen(Position{-1, 0}))
		assert.Len(t, g.OpenCells(), 8)
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := New([][]int{{1, 1, 1}, {1, 0}, {1, 1, 1}})
		assert.Error(t, err)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := New([][]int{{1, 1, 1}, {1, 2, 1}, {1, 1, 1}})
		assert.Error(t, err)
	})

	t.Run("walled start", func(t *testing.T) {
		_, err := New([][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
		assert.Error(t, err)
	})
}

func TestKey(t *testing.T) {
	g, err := NewOpen(7, 9)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for r := 0; r < 7; r++ {
		for c := 0; c < 9; c++ {
			p := Position{r, c}
			k := g.Key(p)
			assert.False(t, seen[k], "duplicate key for %v", p)
			seen[k] = true
			assert.Equal(t, p, g.PositionOf(k))
		}
	}
}

func TestDirections(t *testing.T) {
	origin := Position{5, 5}
	assert.Equal(t, Position{4, 5}, origin.Add(Up))
	assert.Equal(t, Position{6, 5}, origin.Add(Down))
	assert.Equal(t, Position{5, 4}, origin.Add(Left))
	assert.Equal(t, Position{5, 6}, origin.Add(Right))
	assert.Equal(t, Position{5, 7}, origin.Step(Right, 2))

	for _, d := range Directions {
		assert.Equal(t, origin, origin.Add(d).Add(d.Opposite()))
		got, ok := DirectionTo(origin, origin.Add(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := DirectionTo(origin, origin.Step(Up, 2))
	assert.False(t, ok)
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, Manhattan(Position{1, 1}, Position{1, 1}))
	assert.Equal(t, 4, Manhattan(Position{1, 1}, Position{3, 3}))
	assert.Equal(t, 7, Manhattan(Position{4, 0}, Position{1, 4}))
}
