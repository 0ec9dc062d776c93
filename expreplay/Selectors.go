package expreplay

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// SelectorType determines how batches are drawn from a buffer
type SelectorType string

const (
	// Uniform selects records uniformly randomly with replacement
	Uniform SelectorType = "Uniform"

	// Fifo selects the oldest records in the buffer
	Fifo SelectorType = "Fifo"
)

// CreateSelector returns a new Selector of type t which selects
// batchSize records at a time
func CreateSelector(t SelectorType, batchSize int, seed uint64) (Selector,
	error) {
	switch t {
	case Uniform, "":
		return NewUniformSelector(batchSize, seed), nil

	case Fifo:
		return NewFifoSelector(batchSize), nil
	}
	return nil, fmt.Errorf("createSelector: unknown selector type %q", t)
}

// Selector implements functionality for choosing which records should
// be sampled from an experience replay buffer
type Selector interface {
	// choose selects the slots at which data should be sampled from
	// the experience replay buffer
	choose(c *fifoCache) []int

	// BatchSize returns the number of elements that will be selected
	BatchSize() int
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly with replacement
type uniformSelector struct {
	samples int
	rng     *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly, with replacement, from an experience replay buffer
func NewUniformSelector(samples int, seed uint64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{samples: samples, rng: rng}
}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (u *uniformSelector) BatchSize() int {
	return u.samples
}

// choose selects a number of slots at which to draw data from the
// buffer
func (u *uniformSelector) choose(c *fifoCache) []int {
	selected := make([]int, u.BatchSize())
	slots := c.sampleFrom()

	for i := range selected {
		selected[i] = slots[u.rng.Intn(len(slots))]
	}

	return selected
}

// fifoSelector is a Selector which selects the oldest data from an
// experience replay buffer
type fifoSelector struct {
	samples int
}

// NewFifoSelector returns a new Selector which draws the oldest records
// from an experience replay buffer
func NewFifoSelector(samples int) Selector {
	return &fifoSelector{samples: samples}
}

// BatchSize gets the number of samples in a batch drawn from the buffer
func (f *fifoSelector) BatchSize() int {
	return f.samples
}

// choose selects the slots of the oldest records in the buffer
func (f *fifoSelector) choose(c *fifoCache) []int {
	n := f.BatchSize()
	if c.Capacity() < n {
		n = c.Capacity()
	}
	return c.insertOrder(n)
}
