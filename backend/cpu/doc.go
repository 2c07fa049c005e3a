// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go fixed-point CPU backend.
//
// # Overview
//
// Every operator works on Q3.13 values and is bit exact:
//   - Conv2D: int32 accumulation, bias added before narrowing
//   - MaxPool2D: per-channel window maximum
//   - Pad: zero border
//   - ReLU: feature maps and vectors
//   - Linear: dense layer, productwise or shift-sum
//
// The arithmetic policy is fixed when the backend is created. Output channels
// and neurons are computed in parallel; results never depend on the number of
// workers.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fixnet/backend/cpu"
//	    "github.com/born-ml/fixnet/fixed"
//	)
//
//	func main() {
//	    backend, err := cpu.New(fixed.Legacy())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = backend
//	}
package cpu
