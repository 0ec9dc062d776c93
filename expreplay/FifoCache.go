package expreplay

import (
	"fmt"
)

// fifoCache implements a concrete ExperienceReplayer where records are
// evicted from the buffer in a FiFo manner, one at a time, as new
// records are added to a full buffer.
//
// Records are stored in flat caches indexed by slot. Slots are filled
// in order and wrap around once the buffer is full, so the slot at
// currentInUsePos always holds the oldest record of a full buffer.
type fifoCache struct {
	stateCache    []float64
	actionCache   []int
	rewardCache   []float64
	terminalCache []bool
	nextCache     []float64

	indices         []int
	currentInUsePos int
	isFull          bool

	// Outlines how data is sampled
	sampler Selector

	maxCapacity int
	featureSize int
}

// newFifoCache returns a new fifoCache which samples batches using
// sampler and holds at most maxCapacity records
func newFifoCache(sampler Selector, maxCapacity,
	featureSize int) *fifoCache {
	indices := make([]int, maxCapacity)
	for i := 0; i < maxCapacity; i++ {
		indices[i] = i
	}

	return &fifoCache{
		stateCache:    make([]float64, maxCapacity*featureSize),
		actionCache:   make([]int, maxCapacity),
		rewardCache:   make([]float64, maxCapacity),
		terminalCache: make([]bool, maxCapacity),
		nextCache:     make([]float64, maxCapacity*featureSize),

		indices: indices,
		sampler: sampler,

		maxCapacity: maxCapacity,
		featureSize: featureSize,
	}
}

// String returns the string representation of the fifoCache
func (c *fifoCache) String() string {
	return fmt.Sprintf("fifoCache{size: %d/%d, order: %v}", c.Capacity(),
		c.MaxCapacity(), c.insertOrder(c.Capacity()))
}

// BatchSize returns the number of samples sampled using Sample()
func (c *fifoCache) BatchSize() int {
	return c.sampler.BatchSize()
}

// insertOrder returns the slots of the first n records that were added
// to the buffer and have not been evicted, oldest first
func (c *fifoCache) insertOrder(n int) []int {
	if !c.isFull {
		return c.indices[:c.currentInUsePos][:n]
	}

	order := make([]int, 0, c.maxCapacity)
	order = append(order, c.indices[c.currentInUsePos:]...)
	order = append(order, c.indices[:c.currentInUsePos]...)

	return order[:n]
}

// sampleFrom returns the slots which can be sampled from
func (c *fifoCache) sampleFrom() []int {
	if !c.isFull {
		return c.indices[:c.currentInUsePos]
	}
	return c.indices
}

// Sample samples and returns a batch of records from the buffer
func (c *fifoCache) Sample() (Batch, error) {
	if c.Capacity() == 0 {
		return Batch{}, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}
	if c.Capacity() < c.BatchSize() {
		return Batch{}, &ExpReplayError{Op: "sample",
			Err: errInsufficientSamples}
	}

	indices := c.sampler.choose(c)
	batch := Batch{
		States:      make([]float64, len(indices)*c.featureSize),
		Actions:     make([]int, len(indices)),
		Rewards:     make([]float64, len(indices)),
		Next:        make([]float64, len(indices)*c.featureSize),
		Terminal:    make([]bool, len(indices)),
		FeatureSize: c.featureSize,
	}

	for i, index := range indices {
		batchStart := i * c.featureSize
		expStart := index * c.featureSize

		copyInto(batch.States, batchStart,
			c.stateCache[expStart:expStart+c.featureSize])
		copyInto(batch.Next, batchStart,
			c.nextCache[expStart:expStart+c.featureSize])

		batch.Actions[i] = c.actionCache[index]
		batch.Rewards[i] = c.rewardCache[index]
		batch.Terminal[i] = c.terminalCache[index]
	}

	return batch, nil
}

// Capacity returns the current number of records in the fifoCache
func (c *fifoCache) Capacity() int {
	if c.isFull {
		return c.MaxCapacity()
	}
	return c.currentInUsePos
}

// MaxCapacity returns the maximum number of records allowed in the
// fifoCache
func (c *fifoCache) MaxCapacity() int {
	return c.maxCapacity
}

// Add adds a record to the fifoCache, overwriting the oldest record if
// the cache is full
func (c *fifoCache) Add(r Record) error {
	if len(r.State) != c.featureSize || len(r.Next) != c.featureSize {
		return fmt.Errorf("add: invalid feature size \n\twant(%v)\n\t"+
			"have(%v, %v)", c.featureSize, len(r.State), len(r.Next))
	}

	index := c.currentInUsePos
	stateInd := index * c.featureSize
	copyInto(c.stateCache, stateInd, r.State)
	copyInto(c.nextCache, stateInd, r.Next)

	c.actionCache[index] = r.Action
	c.rewardCache[index] = r.Reward
	c.terminalCache[index] = r.Terminal

	if !c.isFull && index+1 == c.MaxCapacity() {
		c.isFull = true
	}
	c.currentInUsePos = (c.currentInUsePos + 1) % c.MaxCapacity()
	return nil
}

// Records returns copies of the records in the buffer, oldest first
func (c *fifoCache) Records() []Record {
	order := c.insertOrder(c.Capacity())
	records := make([]Record, len(order))
	for i, index := range order {
		start := index * c.featureSize
		state := make([]float64, c.featureSize)
		next := make([]float64, c.featureSize)
		copy(state, c.stateCache[start:start+c.featureSize])
		copy(next, c.nextCache[start:start+c.featureSize])

		records[i] = Record{
			State:    state,
			Action:   c.actionCache[index],
			Reward:   c.rewardCache[index],
			Next:     next,
			Terminal: c.terminalCache[index],
		}
	}
	return records
}

// Clear removes all records from the fifoCache
func (c *fifoCache) Clear() {
	c.currentInUsePos = 0
	c.isFull = false
}
