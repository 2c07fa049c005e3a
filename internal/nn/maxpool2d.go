package nn

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// MaxPool2DBackend is an interface for backends that support max pooling.
type MaxPool2DBackend interface {
	MaxPool2D(input *tensor.Tensor3D, poolSize, stride int) (*tensor.Tensor3D, error)
}

// MaxPool2D is a max pooling stage. It has no weights.
//
// Common configurations:
//   - 3x3 pool, stride=2: overlapping pooling used by AlexNet
//   - 2x2 pool, stride=2: halves the spatial dimensions
type MaxPool2D struct {
	named
	poolSize int
	stride   int
	backend  MaxPool2DBackend
}

// NewMaxPool2D creates a max pooling stage.
func NewMaxPool2D(name string, poolSize, stride int, backend MaxPool2DBackend) *MaxPool2D {
	return &MaxPool2D{named: named{name}, poolSize: poolSize, stride: stride, backend: backend}
}

// Kind implements Module.
func (m *MaxPool2D) Kind() topology.Kind { return topology.KindPool }

// PoolSize returns the window size.
func (m *MaxPool2D) PoolSize() int { return m.poolSize }

// Stride returns the stride.
func (m *MaxPool2D) Stride() int { return m.stride }

// Forward performs max pooling.
func (m *MaxPool2D) Forward(input Activation) (Activation, error) {
	x, err := input.requireTensor(m.name)
	if err != nil {
		return Activation{}, err
	}
	out, err := m.backend.MaxPool2D(x, m.poolSize, m.stride)
	if err != nil {
		return Activation{}, fmt.Errorf("%s: %w", m.name, err)
	}
	return TensorActivation(out), nil
}
