// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the fixed-point pipeline stages.
//
// # Overview
//
// This package contains:
//   - Module: one named stage, Activation in, Activation out
//   - Stages: Conv2D, MaxPool2D, Padding, ReLU, Flatten, Linear
//   - Sequential: ordered stages returning every intermediate activation
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fixnet/backend/cpu"
//	    "github.com/born-ml/fixnet/nn"
//	)
//
//	func main() {
//	    backend := cpu.Canonical()
//
//	    model := nn.NewSequential(
//	        nn.NewPadding("01_pad", 1, backend),
//	        nn.NewReLU("02_relu", backend),
//	        nn.NewFlatten("03_flatten"),
//	    )
//	    outputs, err := model.ForwardAll(nn.TensorActivation(x))
//	}
package nn
