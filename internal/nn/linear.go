package nn

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// LinearBackend is an interface for backends that support dense layers.
type LinearBackend interface {
	Linear(input tensor.Vector, weights *tensor.DenseWeights) (tensor.Vector, error)
}

// Linear implements a fully connected (dense) stage.
//
// Input shape:  [In]
// Output shape: [Out]
type Linear struct {
	named
	weights *tensor.DenseWeights
	backend LinearBackend
}

// NewLinear creates a dense stage.
func NewLinear(name string, weights *tensor.DenseWeights, backend LinearBackend) *Linear {
	return &Linear{named: named{name}, weights: weights, backend: backend}
}

// Kind implements Module.
func (l *Linear) Kind() topology.Kind { return topology.KindDense }

// Weights returns the dense weights.
func (l *Linear) Weights() *tensor.DenseWeights { return l.weights }

// Forward computes the dense layer.
func (l *Linear) Forward(input Activation) (Activation, error) {
	x, err := input.requireVector(l.name)
	if err != nil {
		return Activation{}, err
	}
	out, err := l.backend.Linear(x, l.weights)
	if err != nil {
		return Activation{}, fmt.Errorf("%s: %w", l.name, err)
	}
	return VectorActivation(out), nil
}

// Flatten turns a feature map into a vector in HWC order.
type Flatten struct {
	named
}

// NewFlatten creates a flatten stage.
func NewFlatten(name string) *Flatten {
	return &Flatten{named: named{name}}
}

// Kind implements Module.
func (f *Flatten) Kind() topology.Kind { return topology.KindFlatten }

// Forward flattens the feature map.
func (f *Flatten) Forward(input Activation) (Activation, error) {
	x, err := input.requireTensor(f.name)
	if err != nil {
		return Activation{}, err
	}
	return VectorActivation(x.Flatten()), nil
}
