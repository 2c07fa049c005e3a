// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/fixnet/backend/cpu"
	"github.com/born-ml/fixnet/fixed"
	"github.com/born-ml/fixnet/nn"
	"github.com/born-ml/fixnet/tensor"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.Canonical()

	tests := []struct {
		name   string
		module nn.Module
		want   string
	}{
		{"Padding", nn.NewPadding("01_pad", 1, backend), "01_pad"},
		{"ReLU", nn.NewReLU("02_relu", backend), "02_relu"},
		{"MaxPool2D", nn.NewMaxPool2D("03_pool", 2, 2, backend), "03_pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := tensor.NewTensor3D(4, 4, 1)
			if err != nil {
				t.Fatalf("NewTensor3D failed: %v", err)
			}
			out, err := tt.module.Forward(nn.TensorActivation(x))
			if err != nil {
				t.Fatalf("Forward failed: %v", err)
			}
			if out.Tensor == nil {
				t.Error("Forward should return a feature map")
			}
			if tt.module.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", tt.module.Name(), tt.want)
			}
		})
	}
}

// TestSequentialForwardAll verifies every intermediate activation is kept.
func TestSequentialForwardAll(t *testing.T) {
	backend := cpu.Canonical()
	model := nn.NewSequential(
		nn.NewPadding("01_pad", 1, backend),
		nn.NewReLU("02_relu", backend),
		nn.NewFlatten("03_flatten"),
	)

	x, err := tensor.FromHWC([]fixed.Value{-1, 2, -3, 4}, 2, 2, 1)
	if err != nil {
		t.Fatalf("FromHWC failed: %v", err)
	}
	outs, err := model.ForwardAll(nn.TensorActivation(x))
	if err != nil {
		t.Fatalf("ForwardAll failed: %v", err)
	}
	if len(outs) != 3 {
		t.Fatalf("expected 3 outputs, got %d", len(outs))
	}
	flat := outs[2].Vector
	if len(flat) != 16 {
		t.Fatalf("expected 16 values, got %d", len(flat))
	}
	// Row 1 of the padded map is 0, 0, 2, 0 after ReLU.
	if flat[5] != 0 || flat[6] != 2 {
		t.Errorf("unexpected flattened values %v", flat)
	}
}
