package nn

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Activation is the value flowing between stages: a feature map before
// Flatten, a vector after it. Exactly one field is set.
type Activation struct {
	Tensor *tensor.Tensor3D
	Vector tensor.Vector
}

// TensorActivation wraps a feature map.
func TensorActivation(t *tensor.Tensor3D) Activation {
	return Activation{Tensor: t}
}

// VectorActivation wraps a vector.
func VectorActivation(v tensor.Vector) Activation {
	return Activation{Vector: v}
}

// IsVector reports whether the activation holds a vector.
func (a Activation) IsVector() bool {
	return a.Tensor == nil
}

// Shape returns (H, W, C) for feature maps and (N) for vectors.
func (a Activation) Shape() tensor.Shape {
	if a.Tensor != nil {
		return a.Tensor.Shape()
	}
	return tensor.Shape{len(a.Vector)}
}

func (a Activation) requireTensor(stage string) (*tensor.Tensor3D, error) {
	if a.Tensor == nil {
		return nil, &tensor.ShapeMismatchError{
			What: stage,
			Want: "feature map",
			Got:  fmt.Sprintf("vector of %d", len(a.Vector)),
		}
	}
	return a.Tensor, nil
}

func (a Activation) requireVector(stage string) (tensor.Vector, error) {
	if a.Tensor != nil {
		return nil, &tensor.ShapeMismatchError{
			What: stage,
			Want: "vector",
			Got:  "feature map " + a.Tensor.Shape().String(),
		}
	}
	return a.Vector, nil
}

// ReLUBackend is an interface for backends that support ReLU activation.
type ReLUBackend interface {
	ReLU(*tensor.Tensor3D) *tensor.Tensor3D
	ReLUVector(tensor.Vector) tensor.Vector
}

// ReLU is a Rectified Linear Unit stage: f(x) = max(0, x), applied to
// whatever the previous stage produced.
type ReLU struct {
	named
	backend ReLUBackend
}

// NewReLU creates a ReLU stage.
func NewReLU(name string, backend ReLUBackend) *ReLU {
	return &ReLU{named: named{name}, backend: backend}
}

// Kind implements Module.
func (r *ReLU) Kind() topology.Kind { return topology.KindReLU }

// Forward applies ReLU.
func (r *ReLU) Forward(input Activation) (Activation, error) {
	if input.IsVector() {
		return VectorActivation(r.backend.ReLUVector(input.Vector)), nil
	}
	return TensorActivation(r.backend.ReLU(input.Tensor)), nil
}
