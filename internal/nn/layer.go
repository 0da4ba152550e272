package nn

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/parallel"
)

// Layer is an ordered collection of neurons sharing one input width.
//
// Every neuron sees the same input vector and contributes one output value,
// so the output length always equals the neuron count. Neurons never
// influence each other within a call, which lets wide layers evaluate them
// concurrently; see SetParallel.
//
// Example:
//
//	layer := nn.NewLayerWithNeurons(
//	    nn.NewNeuronWithWeights([]float64{0.5, 0.1, -0.2}, 0.0),
//	    nn.NewNeuronWithWeights([]float64{0.3, -0.1, 0.4}, 0.1),
//	)
//	out := layer.ForwardWithState([]float64{1, 1, 1}) // [0.4 0.7]
type Layer struct {
	neurons []*Neuron
	par     parallel.Config
}

// NewLayer creates a layer of numNeurons randomly initialized neurons, each
// accepting numInputs values.
func NewLayer(numNeurons, numInputs int) *Layer {
	neurons := make([]*Neuron, numNeurons)
	for i := range neurons {
		neurons[i] = NewNeuron(numInputs)
	}
	return NewLayerWithNeurons(neurons...)
}

// NewLayerWithNeurons creates a layer owning the given neurons.
//
// The layer takes ownership: the neurons must not be shared with another
// layer, or stateful passes through one would leak into the other.
func NewLayerWithNeurons(neurons ...*Neuron) *Layer {
	return &Layer{
		neurons: neurons,
		par:     parallel.DefaultConfig(),
	}
}

// SetParallel replaces the fan-out configuration used by Forward and
// ForwardWithState. Parallel and sequential evaluation give identical output.
func (l *Layer) SetParallel(cfg parallel.Config) {
	l.par = cfg
}

// Forward evaluates every neuron against inputs without touching state.
func (l *Layer) Forward(inputs []float64) []float64 {
	out := make([]float64, len(l.neurons))
	parallel.For(len(l.neurons), func(j int) {
		out[j] = l.neurons[j].Forward(inputs)
	}, l.par)
	return out
}

// ForwardWithState evaluates every neuron, adds its previous state to the
// stateless output and stores the sum as the new state.
//
// The returned values are the new states, in neuron order.
func (l *Layer) ForwardWithState(inputs []float64) []float64 {
	out := make([]float64, len(l.neurons))
	parallel.For(len(l.neurons), func(j int) {
		n := l.neurons[j]
		// Read the previous state before it is overwritten.
		v := n.Forward(inputs) + n.State()
		n.UpdateState(v)
		out[j] = v
	}, l.par)
	return out
}

// ResetStates zeroes the state of every neuron.
func (l *Layer) ResetStates() {
	for _, n := range l.neurons {
		n.ResetState()
	}
}

// CheckInputs returns a *DimensionError for the first neuron whose weight
// vector length differs from len(inputs).
func (l *Layer) CheckInputs(inputs []float64) error {
	for j, n := range l.neurons {
		if n.InputWidth() != len(inputs) {
			return &DimensionError{Layer: -1, Neuron: j, Want: n.InputWidth(), Got: len(inputs)}
		}
	}
	return nil
}

// validate checks that the layer is non-empty and that all neurons agree on
// the input width.
func (l *Layer) validate() error {
	if len(l.neurons) == 0 {
		return ErrEmptyLayer
	}
	want := l.neurons[0].InputWidth()
	for j, n := range l.neurons[1:] {
		if n.InputWidth() != want {
			return fmt.Errorf("neuron %d has %d weights, neuron 0 has %d", j+1, n.InputWidth(), want)
		}
	}
	return nil
}

// Len returns the number of neurons, which is also the output width.
func (l *Layer) Len() int {
	return len(l.neurons)
}

// InputWidth returns the input width of the first neuron, or 0 for an
// empty layer.
func (l *Layer) InputWidth() int {
	if len(l.neurons) == 0 {
		return 0
	}
	return l.neurons[0].InputWidth()
}

// Neuron returns the neuron at the given index.
//
// Panics if index is out of bounds.
func (l *Layer) Neuron(index int) *Neuron {
	if index < 0 || index >= len(l.neurons) {
		panic("Layer.Neuron: index out of bounds")
	}
	return l.neurons[index]
}

// States returns a snapshot of every neuron's state.
func (l *Layer) States() []float64 {
	states := make([]float64, len(l.neurons))
	for j, n := range l.neurons {
		states[j] = n.State()
	}
	return states
}
