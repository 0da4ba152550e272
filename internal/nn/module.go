// Package nn implements the neuron, layer and network types of seqnet.
//
// The computation graph is an owned tree:
//   - Neuron: weight vector, bias and one scalar of mutable state
//   - Layer: neurons sharing an input width, one output per neuron
//   - Network: layers stacked so each layer's output feeds the next
//
// Every type offers a stateless Forward. Layer and Network additionally
// offer stateful evaluation (ForwardWithState, ForwardSequence, Step) in
// which each neuron adds its previous output to its current one, a minimal
// recurrence. There is no training: weights are fixed after construction.
package nn

// Module is the part of the API shared by Layer and Network.
//
// Both map one input vector to one output vector and own neuron state that
// can be cleared as a unit.
type Module interface {
	// Forward computes the output for inputs without touching state.
	Forward(inputs []float64) []float64

	// ResetStates zeroes every neuron state owned by the module.
	ResetStates()
}

var (
	_ Module = (*Layer)(nil)
	_ Module = (*Network)(nil)
)
