package expreplay

import "fmt"

// onlineCache implements an experience replay buffer for sampling
// completely online.
//
// A buffer with a maximum capacity of 1 reduces to online learning on
// the most recent record, which the onlineCache stores directly.
type onlineCache struct {
	featureSize int
	record      Record
	filled      bool
}

// newOnline returns a new online replay buffer
func newOnline(featureSize int) ExperienceReplayer {
	return &onlineCache{featureSize: featureSize}
}

func (o *onlineCache) Add(r Record) error {
	if len(r.State) != o.featureSize || len(r.Next) != o.featureSize {
		return fmt.Errorf("add: invalid feature size \n\twant(%v)\n\t"+
			"have(%v, %v)", o.featureSize, len(r.State), len(r.Next))
	}

	o.record = Record{
		State:    append([]float64(nil), r.State...),
		Action:   r.Action,
		Reward:   r.Reward,
		Next:     append([]float64(nil), r.Next...),
		Terminal: r.Terminal,
	}
	o.filled = true
	return nil
}

// Sample returns the most recent record as a batch of one
func (o *onlineCache) Sample() (Batch, error) {
	if !o.filled {
		return Batch{}, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}
	return Batch{
		States:      append([]float64(nil), o.record.State...),
		Actions:     []int{o.record.Action},
		Rewards:     []float64{o.record.Reward},
		Next:        append([]float64(nil), o.record.Next...),
		Terminal:    []bool{o.record.Terminal},
		FeatureSize: o.featureSize,
	}, nil
}

// Capacity returns the current number of records in the cache
func (o *onlineCache) Capacity() int {
	if o.filled {
		return 1
	}
	return 0
}

// MaxCapacity returns the maximum number of records allowed in the
// cache
func (o *onlineCache) MaxCapacity() int {
	return 1
}

// BatchSize returns the number of records sampled using Sample()
func (o *onlineCache) BatchSize() int {
	return 1
}

// Records returns the stored record, if any
func (o *onlineCache) Records() []Record {
	if !o.filled {
		return nil
	}
	return []Record{o.record}
}

// Clear removes the stored record
func (o *onlineCache) Clear() {
	o.filled = false
	o.record = Record{}
}
