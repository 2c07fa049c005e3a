// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/fixnet/fixed"
	"github.com/born-ml/fixnet/tensor"
)

// TestTensor3DAPI verifies the Tensor3D alias exposes the expected API.
func TestTensor3DAPI(t *testing.T) {
	x, err := tensor.NewTensor3D(2, 3, 4)
	if err != nil {
		t.Fatalf("NewTensor3D failed: %v", err)
	}
	if !x.Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Errorf("Shape() = %v, want 2x3x4", x.Shape())
	}

	x.Set(fixed.One, 1, 2, 3)
	if got := x.At(1, 2, 3); got != fixed.One {
		t.Errorf("At(1, 2, 3) = %v, want %v", got, fixed.One)
	}
	if got := len(x.Flatten()); got != 24 {
		t.Errorf("len(Flatten()) = %d, want 24", got)
	}
}

// TestPlanarLayout verifies FromPlanar reads channel-major data.
func TestPlanarLayout(t *testing.T) {
	x, err := tensor.FromPlanar([]fixed.Value{1, 2, 3, 4}, 1, 2, 2)
	if err != nil {
		t.Fatalf("FromPlanar failed: %v", err)
	}
	if got := x.At(0, 1, 0); got != 2 {
		t.Errorf("At(0, 1, 0) = %v, want 2", got)
	}
	if got := x.At(0, 0, 1); got != 3 {
		t.Errorf("At(0, 0, 1) = %v, want 3", got)
	}
}

// TestErrors verifies the sentinel errors are matched.
func TestErrors(t *testing.T) {
	_, err := tensor.FromHWC(make([]fixed.Value, 5), 2, 2, 1)
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}

	_, err = tensor.NewTensor3D(0, 2, 1)
	if !errors.Is(err, tensor.ErrDimension) {
		t.Errorf("expected ErrDimension, got %v", err)
	}

	_, err = tensor.DenseFromOI(make([]fixed.Value, 6), tensor.Vector{0, 0}, 2, 3)
	if err != nil {
		t.Errorf("DenseFromOI failed: %v", err)
	}
}
