package tensor

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
)

// DenseWeights holds fully-connected weights as an (In, Out) matrix with one
// bias per output neuron. It is immutable once built.
type DenseWeights struct {
	in      int
	out     int
	weights []fixed.Value // row-major (In, Out)
	bias    Vector
}

// NewDenseWeights creates dense weights from an (In, Out) row-major matrix.
// Both slices are copied.
func NewDenseWeights(weights []fixed.Value, bias Vector, in, out int) (*DenseWeights, error) {
	shape := Shape{in, out}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(weights) != shape.NumElements() {
		return nil, countMismatch(fmt.Sprintf("dense weights %s", shape), shape.NumElements(), len(weights))
	}
	if len(bias) != out {
		return nil, countMismatch("dense bias", out, len(bias))
	}

	w := make([]fixed.Value, len(weights))
	copy(w, weights)
	return &DenseWeights{in: in, out: out, weights: w, bias: bias.Clone()}, nil
}

// DenseFromOI builds dense weights from the weight-file layout (Out, In),
// transposing it to (In, Out).
func DenseFromOI(flat []fixed.Value, bias Vector, out, in int) (*DenseWeights, error) {
	shape := Shape{out, in}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(flat) != shape.NumElements() {
		return nil, countMismatch(fmt.Sprintf("dense file (Out,In)=%s", shape), shape.NumElements(), len(flat))
	}

	transposed := make([]fixed.Value, len(flat))
	for j := 0; j < out; j++ {
		for i := 0; i < in; i++ {
			transposed[i*out+j] = flat[j*in+i]
		}
	}
	return NewDenseWeights(transposed, bias, in, out)
}

// ZeroDense returns all-zero dense weights and biases.
func ZeroDense(in, out int) (*DenseWeights, error) {
	return NewDenseWeights(make([]fixed.Value, in*out), make(Vector, out), in, out)
}

// In returns the number of input features.
func (d *DenseWeights) In() int { return d.in }

// Out returns the number of output features.
func (d *DenseWeights) Out() int { return d.out }

// Shape returns (In, Out).
func (d *DenseWeights) Shape() Shape { return Shape{d.in, d.out} }

// At returns weight (i, j): input feature i to output neuron j.
func (d *DenseWeights) At(i, j int) fixed.Value {
	return d.weights[i*d.out+j]
}

// Column returns the In weights feeding output neuron j.
func (d *DenseWeights) Column(j int) []fixed.Value {
	col := make([]fixed.Value, d.in)
	for i := range col {
		col[i] = d.weights[i*d.out+j]
	}
	return col
}

// Bias returns the bias of output neuron j.
func (d *DenseWeights) Bias(j int) fixed.Value {
	return d.bias[j]
}
