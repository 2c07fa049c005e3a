package nn

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Conv2DBackend is an interface for backends that support convolution.
type Conv2DBackend interface {
	Conv2D(input *tensor.Tensor3D, filters *tensor.FilterBank, stride int) (*tensor.Tensor3D, error)
}

// Conv2D is a convolution stage with a fixed filter bank and stride.
//
// Input shape:  [H, W, C]
// Output shape: [(H-K)/stride+1, (W-K)/stride+1, M]
type Conv2D struct {
	named
	filters *tensor.FilterBank
	stride  int
	backend Conv2DBackend
}

// NewConv2D creates a convolution stage.
func NewConv2D(name string, filters *tensor.FilterBank, stride int, backend Conv2DBackend) *Conv2D {
	return &Conv2D{named: named{name}, filters: filters, stride: stride, backend: backend}
}

// Kind implements Module.
func (c *Conv2D) Kind() topology.Kind { return topology.KindConv }

// Filters returns the filter bank.
func (c *Conv2D) Filters() *tensor.FilterBank { return c.filters }

// Stride returns the stride.
func (c *Conv2D) Stride() int { return c.stride }

// Forward performs the convolution.
func (c *Conv2D) Forward(input Activation) (Activation, error) {
	x, err := input.requireTensor(c.name)
	if err != nil {
		return Activation{}, err
	}
	out, err := c.backend.Conv2D(x, c.filters, c.stride)
	if err != nil {
		return Activation{}, fmt.Errorf("%s: %w", c.name, err)
	}
	return TensorActivation(out), nil
}
