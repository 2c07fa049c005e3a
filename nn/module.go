// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/fixnet/internal/nn"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Module is the base interface for all pipeline stages.
type Module = nn.Module

// Backend is the set of operators the stages need.
type Backend = nn.Backend

// Activation is the value flowing between stages.
type Activation = nn.Activation

// Kind identifies the operator of a stage.
type Kind = topology.Kind

// Stage types.
type (
	Conv2D     = nn.Conv2D
	MaxPool2D  = nn.MaxPool2D
	Padding    = nn.Padding
	ReLU       = nn.ReLU
	Flatten    = nn.Flatten
	Linear     = nn.Linear
	Sequential = nn.Sequential
)

// TensorActivation wraps a feature map.
func TensorActivation(t *tensor.Tensor3D) Activation { return nn.TensorActivation(t) }

// VectorActivation wraps a vector.
func VectorActivation(v tensor.Vector) Activation { return nn.VectorActivation(v) }

// NewConv2D creates a convolution stage.
func NewConv2D(name string, filters *tensor.FilterBank, stride int, backend Backend) *Conv2D {
	return nn.NewConv2D(name, filters, stride, backend)
}

// NewMaxPool2D creates a max pooling stage.
func NewMaxPool2D(name string, poolSize, stride int, backend Backend) *MaxPool2D {
	return nn.NewMaxPool2D(name, poolSize, stride, backend)
}

// NewPadding creates a zero-padding stage.
func NewPadding(name string, amount int, backend Backend) *Padding {
	return nn.NewPadding(name, amount, backend)
}

// NewReLU creates a ReLU stage.
func NewReLU(name string, backend Backend) *ReLU {
	return nn.NewReLU(name, backend)
}

// NewFlatten creates a flatten stage.
func NewFlatten(name string) *Flatten {
	return nn.NewFlatten(name)
}

// NewLinear creates a dense stage.
func NewLinear(name string, weights *tensor.DenseWeights, backend Backend) *Linear {
	return nn.NewLinear(name, weights, backend)
}

// NewSequential chains stages.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}
