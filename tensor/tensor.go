// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{227, 227, 3} is a 227×227 feature map with three channels.
type Shape = tensor.Shape

// Tensor3D is an (H, W, C) feature map.
type Tensor3D = tensor.Tensor3D

// Vector is a flat sequence of values.
type Vector = tensor.Vector

// FilterBank holds convolution filters and biases.
type FilterBank = tensor.FilterBank

// DenseWeights holds a dense layer's weights and biases.
type DenseWeights = tensor.DenseWeights

// Error types.
type (
	ShapeMismatchError = tensor.ShapeMismatchError
	DimensionError     = tensor.DimensionError
)

// Sentinel errors.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDimension     = tensor.ErrDimension
)

// NewTensor3D creates a zero-filled feature map.
func NewTensor3D(height, width, channels int) (*Tensor3D, error) {
	return tensor.NewTensor3D(height, width, channels)
}

// FromHWC wraps HWC-ordered data.
func FromHWC(data []fixed.Value, height, width, channels int) (*Tensor3D, error) {
	return tensor.FromHWC(data, height, width, channels)
}

// FromPlanar builds a feature map from channel-planar (C, H, W) data.
func FromPlanar(data []fixed.Value, height, width, channels int) (*Tensor3D, error) {
	return tensor.FromPlanar(data, height, width, channels)
}

// NewFilterBank creates a filter bank from (K, K, C, M) weights.
func NewFilterBank(weights []fixed.Value, bias Vector, kernel, inChannels, outChannels int) (*FilterBank, error) {
	return tensor.NewFilterBank(weights, bias, kernel, inChannels, outChannels)
}

// FilterBankFromOIKK creates a filter bank from (O, I, K, K) weights.
func FilterBankFromOIKK(flat []fixed.Value, bias Vector, outChannels, inChannels, kernel int) (*FilterBank, error) {
	return tensor.FilterBankFromOIKK(flat, bias, outChannels, inChannels, kernel)
}

// NewDenseWeights creates dense weights from (In, Out) data.
func NewDenseWeights(weights []fixed.Value, bias Vector, in, out int) (*DenseWeights, error) {
	return tensor.NewDenseWeights(weights, bias, in, out)
}

// DenseFromOI creates dense weights from (Out, In) data.
func DenseFromOI(flat []fixed.Value, bias Vector, out, in int) (*DenseWeights, error) {
	return tensor.DenseFromOI(flat, bias, out, in)
}
