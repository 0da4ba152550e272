package nn

import (
	"gonum.org/v1/gonum/floats"
)

// Neuron is a scalar unit: a weighted sum of its inputs plus a bias, with
// one mutable scalar of state.
//
// The weight vector length is fixed at construction. State starts at zero,
// is written only by UpdateState (called from Layer.ForwardWithState) and
// cleared by ResetState.
type Neuron struct {
	weights []float64
	bias    float64
	state   float64
}

// NewNeuron creates a neuron accepting inputs values, with weights and bias
// drawn uniformly from [-1, 1).
func NewNeuron(inputs int) *Neuron {
	params := Uniform(inputs + 1)
	return &Neuron{
		weights: params[:inputs:inputs],
		bias:    params[inputs],
	}
}

// NewNeuronWithWeights creates a neuron with the given weights and bias.
//
// The weight slice is copied; later changes to the caller's slice do not
// affect the neuron.
func NewNeuronWithWeights(weights []float64, bias float64) *Neuron {
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Neuron{
		weights: w,
		bias:    bias,
	}
}

// Forward computes sum(weights[i] * inputs[i]) + bias.
//
// Only the overlapping prefix of weights and inputs contributes: a shorter
// or longer input is truncated silently. Use CheckInputs first when a
// mismatch must be treated as an error. State is neither read nor written.
func (n *Neuron) Forward(inputs []float64) float64 {
	k := min(len(n.weights), len(inputs))
	return floats.Dot(n.weights[:k], inputs[:k]) + n.bias
}

// CheckInputs returns a *DimensionError if inputs does not have exactly
// InputWidth values.
func (n *Neuron) CheckInputs(inputs []float64) error {
	if len(inputs) != len(n.weights) {
		return &DimensionError{Layer: -1, Neuron: -1, Want: len(n.weights), Got: len(inputs)}
	}
	return nil
}

// UpdateState overwrites the neuron state.
func (n *Neuron) UpdateState(state float64) {
	n.state = state
}

// ResetState sets the state back to zero.
func (n *Neuron) ResetState() {
	n.state = 0
}

// State returns the current state.
func (n *Neuron) State() float64 {
	return n.state
}

// Bias returns the bias term.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// Weights returns a copy of the weight vector.
func (n *Neuron) Weights() []float64 {
	w := make([]float64, len(n.weights))
	copy(w, n.weights)
	return w
}

// InputWidth returns the number of weights.
func (n *Neuron) InputWidth() int {
	return len(n.weights)
}
