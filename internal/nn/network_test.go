package nn_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/seqnet/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func fixedNetwork() *nn.Network {
	return nn.NewNetworkWithLayers(fixedLayer())
}

func TestNetwork_Creation(t *testing.T) {
	network, err := nn.NewNetwork(3, 5, 2)
	require.NoError(t, err)

	require.Equal(t, 2, network.Layers())
	assert.Equal(t, 5, network.Layer(0).Len())
	assert.Equal(t, 2, network.Layer(1).Len())
	assert.Equal(t, 3, network.InputWidth())
	assert.Equal(t, 2, network.OutputWidth())
	require.NoError(t, network.Validate())
}

func TestNetwork_CreationErrors(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		want   error
	}{
		{"none", nil, nn.ErrTooFewWidths},
		{"single", []int{3}, nn.ErrTooFewWidths},
		{"zero", []int{3, 0, 2}, nn.ErrInvalidWidth},
		{"negative", []int{-1, 2}, nn.ErrInvalidWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network, err := nn.NewNetwork(tt.widths...)
			assert.Nil(t, network)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNetwork_Forward(t *testing.T) {
	network, err := nn.NewNetwork(3, 5, 2)
	require.NoError(t, err)

	out := network.Forward([]float64{0.5, -0.1, 0.3})

	assert.Len(t, out, 2)
	for _, states := range network.States() {
		for _, s := range states {
			assert.Zero(t, s)
		}
	}
}

func TestNetwork_ForwardComposesLayers(t *testing.T) {
	l1 := nn.NewLayerWithNeurons(
		nn.NewNeuronWithWeights([]float64{1, 0}, 0),
		nn.NewNeuronWithWeights([]float64{0, 1}, 1),
	)
	l2 := nn.NewLayerWithNeurons(nn.NewNeuronWithWeights([]float64{2, 3}, -1))
	network := nn.NewNetworkWithLayers(l1, l2)

	// l1: [1, 3]; l2: 2*1 + 3*3 - 1 = 10
	assert.InDeltaSlice(t, []float64{10}, network.Forward([]float64{1, 2}), 1e-12)
}

func TestNetwork_FixedWeightForwardSequence(t *testing.T) {
	network := fixedNetwork()

	inputs := [][]float64{{1, 1, 1}, {1, 1, 1}}
	got := network.ForwardSequence(inputs)

	want := [][]float64{{0.4, 0.7}, {0.8, 1.4}}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, floats.EqualApprox(want[i], got[i], 1e-12), "step %d: got %v, want %v", i, got[i], want[i])
	}
}

func TestNetwork_ForwardSequenceMultiLayer(t *testing.T) {
	l1 := nn.NewLayerWithNeurons(nn.NewNeuronWithWeights([]float64{1}, 0))
	l2 := nn.NewLayerWithNeurons(nn.NewNeuronWithWeights([]float64{1}, 0))
	network := nn.NewNetworkWithLayers(l1, l2)

	// t0: l1 = 1, l2 = 1
	// t1: l1 = 1 + 1 = 2, l2 = 2 + 1 = 3
	// t2: l1 = 1 + 2 = 3, l2 = 3 + 3 = 6
	got := network.ForwardSequence([][]float64{{1}, {1}, {1}})

	assert.Equal(t, [][]float64{{1}, {3}, {6}}, got)
}

func TestNetwork_StateCarriesAcrossCalls(t *testing.T) {
	network := fixedNetwork()
	seq := [][]float64{{1, 1, 1}}

	first := network.ForwardSequence(seq)
	second := network.ForwardSequence(seq)

	assert.InDeltaSlice(t, []float64{0.4, 0.7}, first[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.8, 1.4}, second[0], 1e-12)
}

func TestNetwork_ResetStatesReproducesFreshNetwork(t *testing.T) {
	seq := [][]float64{{1, 1, 1}, {0.5, -2, 3}, {1, 0, -1}}

	network := fixedNetwork()
	network.ForwardSequence(seq)
	network.ResetStates()
	rerun := network.ForwardSequence(seq)

	fresh := fixedNetwork().ForwardSequence(seq)

	require.Len(t, rerun, len(fresh))
	for i := range fresh {
		for j := range fresh[i] {
			assert.Equal(t, math.Float64bits(fresh[i][j]), math.Float64bits(rerun[i][j]))
		}
	}
}

func TestNetwork_Determinism(t *testing.T) {
	network, err := nn.NewNetwork(3, 4, 2)
	require.NoError(t, err)
	inputs := []float64{0.5, -0.1, 0.3}

	first := network.Forward(inputs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, network.Forward(inputs))
	}

	seq := [][]float64{inputs, inputs}
	network.ResetStates()
	a := network.ForwardSequence(seq)
	network.ResetStates()
	b := network.ForwardSequence(seq)
	assert.Equal(t, a, b)
}

func TestNetwork_StepMatchesForwardSequence(t *testing.T) {
	a := fixedNetwork()
	b := fixedNetwork()
	seq := [][]float64{{1, 1, 1}, {2, 0, 1}}

	want := a.ForwardSequence(seq)
	for i, x := range seq {
		assert.Equal(t, want[i], b.Step(x))
	}
}

func TestNetwork_ForwardChecked(t *testing.T) {
	network := fixedNetwork()

	out, err := network.ForwardChecked([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = network.ForwardChecked([]float64{1, 1})
	var dimErr *nn.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 0, dimErr.Layer)
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)
}

func TestNetwork_StepCheckedLeavesStateOnError(t *testing.T) {
	network := fixedNetwork()
	_, err := network.StepChecked([]float64{1, 1, 1})
	require.NoError(t, err)
	before := network.States()

	_, err = network.StepChecked([]float64{1, 1, 1, 1})
	require.Error(t, err)
	assert.Equal(t, before, network.States())
}

func TestNetwork_Validate(t *testing.T) {
	good := nn.NewNetworkWithLayers(nn.NewLayer(4, 3), nn.NewLayer(2, 4))
	require.NoError(t, good.Validate())

	bad := nn.NewNetworkWithLayers(nn.NewLayer(4, 3), nn.NewLayer(2, 5))
	var shapeErr *nn.ShapeError
	require.True(t, errors.As(bad.Validate(), &shapeErr))
	assert.Equal(t, 0, shapeErr.Layer)

	ragged := nn.NewNetworkWithLayers(nn.NewLayerWithNeurons(
		nn.NewNeuronWithWeights([]float64{1, 2}, 0),
		nn.NewNeuronWithWeights([]float64{1}, 0),
	))
	require.True(t, errors.As(ragged.Validate(), &shapeErr))

	empty := nn.NewNetworkWithLayers(nn.NewLayerWithNeurons())
	require.True(t, errors.As(empty.Validate(), &shapeErr))
	assert.Contains(t, shapeErr.Error(), nn.ErrEmptyLayer.Error())

	assert.Error(t, nn.NewNetworkWithLayers().Validate())
}
