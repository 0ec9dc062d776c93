package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samuelfneumann/mazelearn/environment"
	ts "github.com/samuelfneumann/mazelearn/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := environment.NewStepLimit(3)
	assert.Equal(t, 3, limit.Limit())

	step := ts.New(ts.Mid, 0, 1, 2)
	assert.False(t, limit.End(&step))
	assert.False(t, step.Last())

	step = ts.New(ts.Mid, 0, 1, 3)
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.Outcome)
}

func TestFirstEnderPrecedence(t *testing.T) {
	won, depleted := false, false
	ender := environment.FirstEnder{
		environment.NewFunctionEnder(func() bool { return won }, ts.Win),
		environment.NewFunctionEnder(func() bool { return depleted },
			ts.Depleted),
		environment.NewStepLimit(10),
	}

	step := ts.New(ts.Mid, 0, 1, 1)
	assert.False(t, ender.End(&step))

	won, depleted = true, true
	step = ts.New(ts.Mid, 0, 1, 10)
	assert.True(t, ender.End(&step))
	assert.Equal(t, ts.Win, step.Outcome)

	won = false
	step = ts.New(ts.Mid, 0, 1, 10)
	assert.True(t, ender.End(&step))
	assert.Equal(t, ts.Depleted, step.Outcome)
}
