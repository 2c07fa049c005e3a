package nn

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// PadBackend is an interface for backends that support zero padding.
type PadBackend interface {
	Pad(input *tensor.Tensor3D, amount int) (*tensor.Tensor3D, error)
}

// Padding is a zero-padding stage.
type Padding struct {
	named
	amount  int
	backend PadBackend
}

// NewPadding creates a padding stage.
func NewPadding(name string, amount int, backend PadBackend) *Padding {
	return &Padding{named: named{name}, amount: amount, backend: backend}
}

// Kind implements Module.
func (p *Padding) Kind() topology.Kind { return topology.KindPad }

// Amount returns the border width.
func (p *Padding) Amount() int { return p.amount }

// Forward pads the feature map.
func (p *Padding) Forward(input Activation) (Activation, error) {
	x, err := input.requireTensor(p.name)
	if err != nil {
		return Activation{}, err
	}
	out, err := p.backend.Pad(x, p.amount)
	if err != nil {
		return Activation{}, fmt.Errorf("%s: %w", p.name, err)
	}
	return TensorActivation(out), nil
}
