// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/seqnet/internal/nn"
)

// Module is the interface shared by Layer and Network.
type Module = nn.Module

// Neuron is a scalar unit with weights, bias and state.
type Neuron = nn.Neuron

// NewNeuron creates a neuron with uniform random weights and bias in [-1, 1).
func NewNeuron(inputs int) *Neuron {
	return nn.NewNeuron(inputs)
}

// NewNeuronWithWeights creates a neuron with the given weights and bias.
//
// Example:
//
//	n := nn.NewNeuronWithWeights([]float64{0.5, -0.5, 0.5}, 0)
//	n.Forward([]float64{1, 2, 3}) // 1.0
func NewNeuronWithWeights(weights []float64, bias float64) *Neuron {
	return nn.NewNeuronWithWeights(weights, bias)
}

// Layer is an ordered collection of neurons sharing an input width.
type Layer = nn.Layer

// NewLayer creates a layer of randomly initialized neurons.
func NewLayer(numNeurons, numInputs int) *Layer {
	return nn.NewLayer(numNeurons, numInputs)
}

// NewLayerWithNeurons creates a layer owning the given neurons.
func NewLayerWithNeurons(neurons ...*Neuron) *Layer {
	return nn.NewLayerWithNeurons(neurons...)
}

// Network is an ordered stack of layers.
type Network = nn.Network

// NewNetwork creates a randomly initialized network from layer widths.
//
// Example:
//
//	network, err := nn.NewNetwork(3, 5, 2) // 2 layers: 5 neurons, then 2
func NewNetwork(widths ...int) (*Network, error) {
	return nn.NewNetwork(widths...)
}

// NewNetworkWithLayers creates a network from pre-built layers without
// checking adjacent widths; see Network.Validate.
func NewNetworkWithLayers(layers ...*Layer) *Network {
	return nn.NewNetworkWithLayers(layers...)
}

// Errors

// DimensionError reports an input of the wrong width.
type DimensionError = nn.DimensionError

// ShapeError reports adjacent layers with mismatched widths.
type ShapeError = nn.ShapeError

// Construction errors.
var (
	ErrTooFewWidths = nn.ErrTooFewWidths
	ErrInvalidWidth = nn.ErrInvalidWidth
	ErrEmptyLayer   = nn.ErrEmptyLayer
)
