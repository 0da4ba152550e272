// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neurons, layers and networks with optional scalar
// state carried between inputs.
//
// # Overview
//
// This package contains:
//   - Neuron: weighted sum plus bias, with one scalar of state
//   - Layer: neurons sharing an input width
//   - Network: layers stacked with matching widths
//
// # Basic Usage
//
//	import "github.com/born-ml/seqnet/nn"
//
//	func main() {
//	    network, err := nn.NewNetwork(3, 5, 2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Stateless pass
//	    output := network.Forward([]float64{0.5, -0.1, 0.3})
//	}
//
// # Fixed Weights
//
//	layer := nn.NewLayerWithNeurons(
//	    nn.NewNeuronWithWeights([]float64{0.5, 0.1, -0.2}, 0.0),
//	    nn.NewNeuronWithWeights([]float64{0.3, -0.1, 0.4}, 0.1),
//	)
//	network := nn.NewNetworkWithLayers(layer)
//
// # Stateful Sequences
//
// ForwardSequence adds each neuron's previous output to its current one:
//
//	out := network.ForwardSequence([][]float64{{1, 1, 1}, {1, 1, 1}})
//	// out: [[0.4 0.7] [0.8 1.4]]
//
// State survives between calls. Reset it between unrelated sequences:
//
//	network.ResetStates()
//
// # Input Width
//
// Forward, ForwardSequence and Step multiply only the overlapping prefix of
// inputs and weights. ForwardChecked and StepChecked return a
// *DimensionError instead:
//
//	out, err := network.ForwardChecked(inputs)
//	var dimErr *nn.DimensionError
//	if errors.As(err, &dimErr) {
//	    // wrong width
//	}
package nn
