package approx

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/mazelearn/utils/matutils"
	"github.com/samuelfneumann/mazelearn/utils/matutils/initializers/weights"
)

// Head is a linear action-value function with one unit per action:
// Q(s, a) = w_a · s + b_a
type Head struct {
	weights *mat.Dense // (actions x features)
	bias    *mat.VecDense
}

// NewHead returns a new Head over features features and actions
// actions. Weights are drawn uniformly from ±√(6/features) and biases
// start at 0.
func NewHead(features, actions int, src rand.Source) *Head {
	return NewHeadWith(features, actions, weights.NewFanIn(features, src))
}

// NewHeadWith returns a new Head whose weights are set by init
func NewHeadWith(features, actions int, init weights.Initializer) *Head {
	w := mat.NewDense(actions, features, nil)
	init.Initialize(w)

	return &Head{weights: w, bias: mat.NewVecDense(actions, nil)}
}

// Dims returns the number of actions and features of the head
func (h *Head) Dims() (actions, features int) {
	return h.weights.Dims()
}

// Predict returns the action values of state
func (h *Head) Predict(state []float64) *mat.VecDense {
	actions, _ := h.weights.Dims()
	values := mat.NewVecDense(actions, nil)
	values.MulVec(h.weights, mat.NewVecDense(len(state), state))
	values.AddVec(values, h.bias)
	return values
}

// Value returns the value of action a in state
func (h *Head) Value(state []float64, a int) float64 {
	row := h.weights.RowView(a)
	return mat.Dot(row, mat.NewVecDense(len(state), state)) + h.bias.AtVec(a)
}

// Max returns the maximum action value in state
func (h *Head) Max(state []float64) float64 {
	return mat.Max(h.Predict(state))
}

// Update performs a single semi-gradient step moving the value of
// action a in state towards target and returns the TD error before the
// step
func (h *Head) Update(state []float64, a int, target,
	learningRate float64) float64 {
	tdError := target - h.Value(state, a)

	// Construct the scaling factor of the gradient
	scale := learningRate * tdError

	// Perform gradient descent: ∇weights = scale * state
	row := h.weights.RowView(a)
	newWeights := mat.NewVecDense(row.Len(), nil)
	newWeights.AddScaledVec(row, scale, mat.NewVecDense(len(state), state))
	h.weights.SetRow(a, newWeights.RawVector().Data)
	h.bias.SetVec(a, h.bias.AtVec(a)+scale)

	return tdError
}

// Bias returns the bias of action a
func (h *Head) Bias(a int) float64 {
	return h.bias.AtVec(a)
}

// Weights returns a copy of the weights of the head
func (h *Head) Weights() *mat.Dense {
	return mat.DenseCopyOf(h.weights)
}

func (h *Head) String() string {
	return matutils.Format(h.weights) + "\n" + matutils.Format(h.bias)
}
