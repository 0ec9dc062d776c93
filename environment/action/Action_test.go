package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samuelfneumann/mazelearn/environment/grid"
)

func TestKinds(t *testing.T) {
	counts := make(map[Kind]int)
	for _, a := range All() {
		counts[a.Kind()]++
	}

	assert.Equal(t, 4, counts[Move])
	assert.Equal(t, 4, counts[Dash])
	assert.Equal(t, 4, counts[Jump])
	assert.Equal(t, 1, counts[Hold])
	assert.Equal(t, 1, counts[Recover])
	assert.Equal(t, 1, counts[Consume])
}

func TestCardinalsMatchDirections(t *testing.T) {
	for i, a := range Cardinals() {
		d, ok := a.Direction()
		assert.True(t, ok)
		assert.Equal(t, grid.Directions[i], d)
		assert.Equal(t, a, FromDirection(d))
	}
}

func TestDirectionAndDistance(t *testing.T) {
	d, ok := DashLeft.Direction()
	assert.True(t, ok)
	assert.Equal(t, grid.Left, d)
	assert.Equal(t, 2, DashLeft.Distance())

	d, ok = JumpDown.Direction()
	assert.True(t, ok)
	assert.Equal(t, grid.Down, d)
	assert.Equal(t, 1, JumpDown.Distance())

	_, ok = Rest.Direction()
	assert.False(t, ok)
	assert.Equal(t, 0, Wait.Distance())

	opp, ok := DashUp.Opposite()
	assert.True(t, ok)
	assert.Equal(t, Down, opp)
}

func TestString(t *testing.T) {
	assert.Equal(t, "move_Up", Up.String())
	assert.Equal(t, "jump_Right", JumpRight.String())
	assert.Equal(t, "use_item", UseItem.String())
}
