package matutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMaxVecOver(t *testing.T) {
	values := mat.NewVecDense(5, []float64{9, 1, 3, 3, -2})

	assert.Equal(t, 1, MaxVecOver(values, []int{1, 2, 3, 4}))
	assert.Equal(t, 0, MaxVecOver(values, []int{0, 2}))
	assert.Equal(t, 0, MaxVecOver(values, []int{4}))
}
