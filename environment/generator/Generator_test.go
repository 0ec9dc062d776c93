package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/samuelfneumann/gomaze"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mazelearn/environment/grid"
	"github.com/samuelfneumann/mazelearn/environment/shortestpath"
)

func TestWilsonContract(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, err := Wilson(11, 15, rng)
		require.NoError(t, err)

		rows, cols := g.Dims()
		assert.Equal(t, 11, rows)
		assert.Equal(t, 15, cols)
		assert.True(t, g.IsOpen(g.Start()))
		assert.True(t, g.IsOpen(g.Goal()))

		// A perfect maze over R rooms opens exactly R-1 walls
		rooms := 5 * 7
		open := g.OpenCells()
		assert.Len(t, open, 2*rooms-1)

		for r := 0; r < rows; r++ {
			assert.False(t, g.IsOpen(grid.Position{Row: r, Col: 0}))
			assert.False(t, g.IsOpen(grid.Position{Row: r, Col: cols - 1}))
		}

		oracle := shortestpath.New(g)
		for _, p := range open {
			_, err := oracle.Find(g.Start(), p)
			assert.NoError(t, err, "seed %d: %v unreachable", seed, p)
		}
	}
}

func TestAlgorithmsPerfect(t *testing.T) {
	algorithms := []Algorithm{
		WilsonAlgorithm,
		BacktrackingAlgorithm,
		AldousBroderAlgorithm,
		BinaryTreeAlgorithm,
	}
	for _, a := range algorithms {
		g, err := Generate(a, 9, 13, rand.New(rand.NewSource(4)))
		require.NoError(t, err, a)

		open := g.OpenCells()
		assert.Len(t, open, 2*4*6-1, a)

		oracle := shortestpath.New(g)
		_, err = oracle.Find(g.Start(), g.Goal())
		assert.NoError(t, err, a)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate("", 11, 11, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := Generate(WilsonAlgorithm, 11, 11, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
}

func TestUnknownAlgorithm(t *testing.T) {
	assert.False(t, Algorithm("Kruskal").Valid())
	assert.True(t, Algorithm("").Valid())

	_, err := Generate("Kruskal", 9, 9, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestFromIniterCarvesLinks(t *testing.T) {
	// The binary tree with a north-west bias links every room on the top
	// row westwards, so the corridor along row 1 is fully open
	init, err := gomaze.NewBinaryTreeWithBias(1, gomaze.NW)
	require.NoError(t, err)

	g, err := FromIniter(7, 11, init)
	require.NoError(t, err)
	for c := 1; c < 10; c++ {
		assert.True(t, g.IsOpen(grid.Position{Row: 1, Col: c}), "col %d", c)
	}
	assert.Len(t, g.OpenCells(), 2*3*5-1)
}

func TestWilsonRejectsBadDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Wilson(3, 9, rng)
	assert.Error(t, err)

	_, err = Wilson(10, 9, rng)
	assert.Error(t, err)
}

func TestBraid(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g, err := Wilson(15, 15, rng)
	require.NoError(t, err)

	braided, err := Braid(g, 5, rng)
	require.NoError(t, err)
	assert.Len(t, braided.OpenCells(), len(g.OpenCells())+5)
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, 11, Dimensions(11, 0))
	assert.Equal(t, 11, Dimensions(11, 1))
	assert.Equal(t, 13, Dimensions(11, 2))
	assert.Equal(t, 9, Dimensions(8, 0))
	assert.Equal(t, MinSize, Dimensions(1, 0))
}
