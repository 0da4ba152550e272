package nn

import (
	"errors"
	"fmt"
)

// Network is an ordered stack of layers.
//
// Layer i's output feeds layer i+1's input. The network exclusively owns its
// layers, which exclusively own their neurons; the only mutable part of the
// tree is neuron state, advanced by ForwardSequence and Step and cleared by
// ResetStates.
//
// Two evaluation modes are offered:
//   - Forward: stateless, one vector in, one vector out
//   - ForwardSequence / Step: stateful, each step adds the previous step's
//     output of every neuron to its current output
//
// State is never reset implicitly. Two ForwardSequence calls behave like one
// call over the concatenated sequence; call ResetStates between logically
// distinct sequences.
//
// A Network is not safe for concurrent use.
type Network struct {
	layers []*Layer
}

// NewNetwork creates a network from layer widths.
//
// widths[0] is the input width; every following entry adds one layer with
// that many neurons, each accepting the previous width. NewNetwork(3, 5, 2)
// builds two layers: 5 neurons of 3 inputs, then 2 neurons of 5 inputs.
// Weights and biases are drawn uniformly from [-1, 1).
func NewNetwork(widths ...int) (*Network, error) {
	if len(widths) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewWidths, len(widths))
	}
	for i, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("%w: widths[%d] = %d", ErrInvalidWidth, i, w)
		}
	}

	layers := make([]*Layer, 0, len(widths)-1)
	for i := 0; i < len(widths)-1; i++ {
		layers = append(layers, NewLayer(widths[i+1], widths[i]))
	}
	return &Network{layers: layers}, nil
}

// NewNetworkWithLayers creates a network from pre-built layers.
//
// The adjacent width invariant is not checked here; call Validate when the
// layers come from an untrusted source.
func NewNetworkWithLayers(layers ...*Layer) *Network {
	return &Network{layers: layers}
}

// Validate checks that every layer is non-empty, that the neurons of each
// layer agree on their input width and that each layer's neuron count
// equals the next layer's input width.
func (n *Network) Validate() error {
	if len(n.layers) == 0 {
		return errors.New("network has no layers")
	}
	for i, l := range n.layers {
		if err := l.validate(); err != nil {
			return &ShapeError{Layer: i, Details: err.Error()}
		}
		if i+1 < len(n.layers) && l.Len() != n.layers[i+1].InputWidth() {
			return &ShapeError{
				Layer: i,
				Details: fmt.Sprintf("outputs %d values but layer %d expects %d",
					l.Len(), i+1, n.layers[i+1].InputWidth()),
			}
		}
	}
	return nil
}

// Forward runs inputs through every layer without reading or writing state.
func (n *Network) Forward(inputs []float64) []float64 {
	out := inputs
	for _, l := range n.layers {
		out = l.Forward(out)
	}
	return out
}

// ForwardSequence runs each element of seq, in order, through every layer
// with ForwardWithState and collects the last layer's output per element.
//
// Within one element, layer i's output is layer i+1's input. State carries
// from one element to the next and from this call to the next.
func (n *Network) ForwardSequence(seq [][]float64) [][]float64 {
	outputs := make([][]float64, 0, len(seq))
	for _, inputs := range seq {
		outputs = append(outputs, n.Step(inputs))
	}
	return outputs
}

// Step advances the network by one stateful time step.
//
// Step(x) is equivalent to ForwardSequence([][]float64{x})[0].
func (n *Network) Step(inputs []float64) []float64 {
	out := inputs
	for _, l := range n.layers {
		out = l.ForwardWithState(out)
	}
	return out
}

// ForwardChecked is Forward with an input width check.
//
// A *DimensionError is returned when len(inputs) differs from InputWidth.
func (n *Network) ForwardChecked(inputs []float64) ([]float64, error) {
	if err := n.checkInputs(inputs); err != nil {
		return nil, err
	}
	return n.Forward(inputs), nil
}

// StepChecked is Step with an input width check. State is left untouched
// when the check fails.
func (n *Network) StepChecked(inputs []float64) ([]float64, error) {
	if err := n.checkInputs(inputs); err != nil {
		return nil, err
	}
	return n.Step(inputs), nil
}

func (n *Network) checkInputs(inputs []float64) error {
	if len(n.layers) == 0 {
		return nil
	}
	if err := n.layers[0].CheckInputs(inputs); err != nil {
		var dimErr *DimensionError
		if errors.As(err, &dimErr) {
			dimErr.Layer = 0
		}
		return err
	}
	return nil
}

// ResetStates zeroes the state of every neuron in every layer.
func (n *Network) ResetStates() {
	for _, l := range n.layers {
		l.ResetStates()
	}
}

// Layers returns the number of layers.
func (n *Network) Layers() int {
	return len(n.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) *Layer {
	if index < 0 || index >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	return n.layers[index]
}

// InputWidth returns the input width of the first layer.
func (n *Network) InputWidth() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].InputWidth()
}

// OutputWidth returns the neuron count of the last layer.
func (n *Network) OutputWidth() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].Len()
}

// States returns a snapshot of the neuron states, one slice per layer.
func (n *Network) States() [][]float64 {
	states := make([][]float64, len(n.layers))
	for i, l := range n.layers {
		states[i] = l.States()
	}
	return states
}
