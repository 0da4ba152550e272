package nn

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrTooFewWidths = errors.New("network needs at least an input and an output width")
	ErrInvalidWidth = errors.New("layer width must be positive")
	ErrEmptyLayer   = errors.New("layer has no neurons")
)

// DimensionError reports an input vector whose length differs from the
// weight vector it is multiplied with.
//
// Forward never returns it: the unchecked path multiplies the overlapping
// prefix only. It is produced by CheckInputs and the *Checked forward variants.
type DimensionError struct {
	Layer  int // Layer index, -1 when raised by a standalone neuron
	Neuron int // Neuron index within the layer, -1 when the whole layer is checked
	Want   int // Expected input width
	Got    int // Actual input length
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	switch {
	case e.Layer >= 0 && e.Neuron >= 0:
		return fmt.Sprintf("dimension mismatch: layer %d neuron %d: want %d inputs, got %d",
			e.Layer, e.Neuron, e.Want, e.Got)
	case e.Layer >= 0:
		return fmt.Sprintf("dimension mismatch: layer %d: want %d inputs, got %d", e.Layer, e.Want, e.Got)
	default:
		return fmt.Sprintf("dimension mismatch: want %d inputs, got %d", e.Want, e.Got)
	}
}

// ShapeError reports two adjacent layers whose widths do not line up, or a
// layer whose neurons disagree on the input width.
type ShapeError struct {
	Layer   int    // Index of the offending layer
	Details string // What did not match
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: layer %d: %s", e.Layer, e.Details)
}
