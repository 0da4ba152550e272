package nn

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// initRange bounds the uniform distribution used for random weights and biases.
const initRange = 1.0

// Uniform returns n values drawn from U(-1, 1).
//
// Used for both weights and bias of a randomly initialized neuron.
// The draw uses the global math/rand source, so results differ between
// processes; construct neurons with NewNeuronWithWeights for fixed values.
func Uniform(n int) []float64 {
	dist := distuv.Uniform{
		Min: -initRange,
		Max: initRange,
	}

	data := make([]float64, n)
	for i := range data {
		data[i] = dist.Rand()
	}
	return data
}
