// Package expreplay implements capacity-bounded experience replay
// buffers. Records are evicted oldest first once a buffer is full and
// batches are drawn from the buffer by a Selector.
package expreplay

import (
	"fmt"
	"os"
)

// Record is a single transition stored in a replay buffer
type Record struct {
	State    []float64
	Action   int
	Reward   float64
	Next     []float64
	Terminal bool
}

// Batch is a batch of records sampled from a replay buffer. States and
// next states are stored row-major, one row per record.
type Batch struct {
	States   []float64
	Actions  []int
	Rewards  []float64
	Next     []float64
	Terminal []bool

	FeatureSize int
}

// Len returns the number of records in the batch
func (b Batch) Len() int {
	return len(b.Actions)
}

// State returns the i-th state of the batch
func (b Batch) State(i int) []float64 {
	return b.States[i*b.FeatureSize : (i+1)*b.FeatureSize]
}

// NextState returns the i-th next state of the batch
func (b Batch) NextState(i int) []float64 {
	return b.Next[i*b.FeatureSize : (i+1)*b.FeatureSize]
}

// ExperienceReplayer implements an experience replay buffer
type ExperienceReplayer interface {
	// Add adds a record to the buffer, evicting the oldest record if
	// the buffer is full
	Add(r Record) error

	// Sample samples a batch of records from the buffer
	Sample() (Batch, error)

	// Capacity returns the current number of records in the buffer
	Capacity() int

	// MaxCapacity returns the maximum number of records in the buffer
	MaxCapacity() int

	// BatchSize returns the number of records returned by Sample()
	BatchSize() int

	// Records returns the records in the buffer, oldest first
	Records() []Record

	// Clear removes all records from the buffer
	Clear()
}

// Config implements a specific configuration of an ExperienceReplayer
type Config struct {
	SampleMethod SelectorType
	BatchSize    int
	MaxCapacity  int
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.MaxCapacity < 1 {
		return fmt.Errorf("validate: max capacity must be >= 1")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be >= 1")
	}
	if c.BatchSize > c.MaxCapacity {
		return fmt.Errorf("validate: cannot have batch size (%v) > max "+
			"buffer capacity (%v)", c.BatchSize, c.MaxCapacity)
	}
	return nil
}

// Create creates and returns the ExperienceReplayer with the specified
// Config for states of featureSize features
func (c Config) Create(featureSize int, seed uint64) (ExperienceReplayer,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}
	sampler, err := CreateSelector(c.SampleMethod, c.BatchSize, seed)
	if err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}
	return New(sampler, c.MaxCapacity, featureSize)
}

// New creates and returns a new ExperienceReplayer holding at most
// maxCapacity records of featureSize features. The sampler determines
// how batches are drawn from the buffer.
func New(sampler Selector, maxCapacity, featureSize int) (ExperienceReplayer,
	error) {
	if maxCapacity < 1 {
		return nil, fmt.Errorf("new: maxCapacity must be >= 1")
	}
	if featureSize < 1 {
		return nil, fmt.Errorf("new: featureSize must be >= 1")
	}
	if maxCapacity < sampler.BatchSize() {
		return nil, fmt.Errorf("new: cannot have batch size(%v) > max "+
			"buffer capacity (%v)", sampler.BatchSize(), maxCapacity)
	}

	if maxCapacity == 1 {
		if sampler.BatchSize() > 1 {
			msg := "new: using online sampler, ignoring batch size > 1"
			fmt.Fprintln(os.Stderr, msg)
		}
		return newOnline(featureSize), nil
	}

	return newFifoCache(sampler, maxCapacity, featureSize), nil
}

// copyInto copies src into dest starting at index start
func copyInto(dest []float64, start int, src []float64) {
	copy(dest[start:start+len(src)], src)
}
