// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MaxVecOver returns the position in indices of the index holding the
// maximum value of a vector. Only the indices in indices are
// considered, and ties go to the earliest of them.
func MaxVecOver(values mat.Vector, indices []int) int {
	best := 0
	for i, idx := range indices {
		if values.AtVec(idx) > values.AtVec(indices[best]) {
			best = i
		}
	}
	return best
}
