package expreplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(i int) Record {
	return Record{
		State:    []float64{float64(i), 0},
		Action:   i % 4,
		Reward:   float64(i),
		Next:     []float64{float64(i + 1), 0},
		Terminal: i%2 == 0,
	}
}

func TestFifoEviction(t *testing.T) {
	const capacity = 8
	for _, k := range []int{0, 1, 3, 8, 13} {
		buffer, err := New(NewUniformSelector(4, 1), capacity, 2)
		require.NoError(t, err)

		for i := 0; i < capacity+k; i++ {
			require.NoError(t, buffer.Add(record(i)))
			assert.LessOrEqual(t, buffer.Capacity(), capacity)
		}

		records := buffer.Records()
		require.Len(t, records, capacity)
		for i, r := range records {
			assert.Equal(t, record(i+k), r, "k=%d record %d", k, i)
		}
	}
}

func TestSampleInsufficient(t *testing.T) {
	buffer, err := New(NewUniformSelector(4, 1), 10, 2)
	require.NoError(t, err)

	_, err = buffer.Sample()
	assert.True(t, IsEmptyBuffer(err))

	for i := 0; i < 3; i++ {
		require.NoError(t, buffer.Add(record(i)))
	}
	_, err = buffer.Sample()
	assert.True(t, IsInsufficientSamples(err))
	assert.False(t, IsEmptyBuffer(err))

	require.NoError(t, buffer.Add(record(3)))
	batch, err := buffer.Sample()
	require.NoError(t, err)
	assert.Equal(t, 4, batch.Len())
}

func TestUniformSampleWithReplacement(t *testing.T) {
	buffer, err := New(NewUniformSelector(64, 7), 4, 2)
	require.Error(t, err)

	buffer, err = New(NewUniformSelector(2, 7), 4, 2)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		require.NoError(t, buffer.Add(record(i)))
	}

	// Only the 4 newest records may be drawn
	for n := 0; n < 100; n++ {
		batch, err := buffer.Sample()
		require.NoError(t, err)
		for i := 0; i < batch.Len(); i++ {
			id := int(batch.State(i)[0])
			assert.True(t, id >= 2 && id <= 5, "sampled evicted record %d", id)
			assert.Equal(t, float64(id), batch.Rewards[i])
			assert.Equal(t, float64(id+1), batch.NextState(i)[0])
			assert.Equal(t, id%4, batch.Actions[i])
			assert.Equal(t, id%2 == 0, batch.Terminal[i])
		}
	}
}

func TestFifoSelector(t *testing.T) {
	buffer, err := New(NewFifoSelector(2), 3, 2)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Add(record(i)))
	}

	batch, err := buffer.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, batch.Rewards)
}

func TestOnline(t *testing.T) {
	buffer, err := Config{BatchSize: 1, MaxCapacity: 1}.Create(2, 1)
	require.NoError(t, err)

	_, err = buffer.Sample()
	assert.True(t, IsEmptyBuffer(err))

	require.NoError(t, buffer.Add(record(1)))
	require.NoError(t, buffer.Add(record(2)))
	batch, err := buffer.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, batch.Rewards)
	assert.Equal(t, 1, buffer.Capacity())

	buffer.Clear()
	assert.Equal(t, 0, buffer.Capacity())
}

func TestAddWrongSize(t *testing.T) {
	buffer, err := New(NewUniformSelector(1, 1), 4, 3)
	require.NoError(t, err)
	assert.Error(t, buffer.Add(record(0)))
	assert.Equal(t, 0, buffer.Capacity())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{BatchSize: 32, MaxCapacity: 1000}.Validate())
	assert.Error(t, Config{BatchSize: 0, MaxCapacity: 10}.Validate())
	assert.Error(t, Config{BatchSize: 11, MaxCapacity: 10}.Validate())

	_, err := Config{SampleMethod: "Random", BatchSize: 1,
		MaxCapacity: 2}.Create(2, 1)
	assert.Error(t, err)
}
