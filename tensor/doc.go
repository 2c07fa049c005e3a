// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public data model of fixnet.
//
// The package defines:
//   - Tensor3D: a feature map stored height, width, channel (HWC)
//   - Vector: a flat sequence of values
//   - FilterBank: convolution weights (K, K, InChannels, OutChannels)
//   - DenseWeights: dense-layer weights (In, Out)
//
// Example:
//
//	x, err := tensor.NewTensor3D(227, 227, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	x.Set(fixed.One, 0, 0, 0)
package tensor
