package tensor

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
)

// FilterBank holds convolution weights in (K, K, InChannels, OutChannels)
// order together with one bias per output channel.
//
// A FilterBank is immutable once built and may be shared read-only across
// goroutines and pipeline runs.
type FilterBank struct {
	kernel      int
	inChannels  int
	outChannels int
	weights     []fixed.Value
	bias        Vector
}

// NewFilterBank creates a filter bank from weights already in (K, K, C, M)
// order. Both slices are copied.
func NewFilterBank(weights []fixed.Value, bias Vector, kernel, inChannels, outChannels int) (*FilterBank, error) {
	shape := Shape{kernel, kernel, inChannels, outChannels}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(weights) != shape.NumElements() {
		return nil, countMismatch(fmt.Sprintf("filter bank %s", shape), shape.NumElements(), len(weights))
	}
	if len(bias) != outChannels {
		return nil, countMismatch("filter bias", outChannels, len(bias))
	}

	w := make([]fixed.Value, len(weights))
	copy(w, weights)
	return &FilterBank{
		kernel:      kernel,
		inChannels:  inChannels,
		outChannels: outChannels,
		weights:     w,
		bias:        bias.Clone(),
	}, nil
}

// FilterBankFromOIKK builds a filter bank from the weight-file layout
// (OutChannels, InChannels, K, K), transposing it to (K, K, InChannels,
// OutChannels).
func FilterBankFromOIKK(flat []fixed.Value, bias Vector, outChannels, inChannels, kernel int) (*FilterBank, error) {
	shape := Shape{outChannels, inChannels, kernel, kernel}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(flat) != shape.NumElements() {
		return nil, countMismatch(fmt.Sprintf("filter file (O,I,K,K)=%s", shape), shape.NumElements(), len(flat))
	}

	kkio := make([]fixed.Value, len(flat))
	src := 0
	for m := 0; m < outChannels; m++ {
		for c := 0; c < inChannels; c++ {
			for i := 0; i < kernel; i++ {
				for j := 0; j < kernel; j++ {
					kkio[((i*kernel+j)*inChannels+c)*outChannels+m] = flat[src]
					src++
				}
			}
		}
	}
	return NewFilterBank(kkio, bias, kernel, inChannels, outChannels)
}

// ZeroFilterBank returns an all-zero filter bank with zero biases.
func ZeroFilterBank(kernel, inChannels, outChannels int) (*FilterBank, error) {
	n := Shape{kernel, kernel, inChannels, outChannels}.NumElements()
	return NewFilterBank(make([]fixed.Value, n), make(Vector, outChannels), kernel, inChannels, outChannels)
}

// Kernel returns the spatial kernel size K.
func (f *FilterBank) Kernel() int { return f.kernel }

// InChannels returns C.
func (f *FilterBank) InChannels() int { return f.inChannels }

// OutChannels returns M.
func (f *FilterBank) OutChannels() int { return f.outChannels }

// Shape returns (K, K, C, M).
func (f *FilterBank) Shape() Shape {
	return Shape{f.kernel, f.kernel, f.inChannels, f.outChannels}
}

// At returns weight (i, j, c, m).
func (f *FilterBank) At(i, j, c, m int) fixed.Value {
	return f.weights[((i*f.kernel+j)*f.inChannels+c)*f.outChannels+m]
}

// Bias returns the bias of output channel m.
func (f *FilterBank) Bias(m int) fixed.Value {
	return f.bias[m]
}

// Kernels returns the weights of output channel m as a K*K*C slice in
// (i, j, c) order, matching the layout of an HWC input window.
func (f *FilterBank) Kernels(m int) []fixed.Value {
	out := make([]fixed.Value, 0, f.kernel*f.kernel*f.inChannels)
	for idx := m; idx < len(f.weights); idx += f.outChannels {
		out = append(out, f.weights[idx])
	}
	return out
}
