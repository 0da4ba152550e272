package config

import (
	"fmt"

	"github.com/born-ml/seqnet/internal/nn"
)

// BuildNetwork constructs the network described by n.
//
// Explicit layers are validated for adjacent widths before they are
// returned, so a bad file fails at startup rather than on the first message.
func BuildNetwork(n NetworkConfig) (*nn.Network, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if len(n.Layers) == 0 {
		return nn.NewNetwork(n.Widths...)
	}

	layers := make([]*nn.Layer, len(n.Layers))
	for i, lc := range n.Layers {
		neurons := make([]*nn.Neuron, len(lc.Neurons))
		for j, nc := range lc.Neurons {
			neurons[j] = nn.NewNeuronWithWeights(nc.Weights, nc.Bias)
		}
		layers[i] = nn.NewLayerWithNeurons(neurons...)
	}

	network := nn.NewNetworkWithLayers(layers...)
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("network.layers: %w", err)
	}
	return network, nil
}
