// Package nn implements the pipeline stages as composable modules.
//
// This package provides the building blocks chained by the pipeline:
//   - Module interface: one named stage producing one Activation
//   - Conv2D, MaxPool2D, Padding: feature-map operators
//   - ReLU: works on feature maps and vectors alike
//   - Flatten: feature map to vector in HWC order
//   - Linear: fully-connected layer
//   - Sequential: ordered container returning every intermediate activation
//
// Modules hold only immutable configuration and shared read-only weights, so
// one module value may serve concurrent forward passes.
package nn

import (
	"github.com/born-ml/fixnet/internal/topology"
)

// Module is the base interface for all pipeline stages.
type Module interface {
	// Forward computes the stage output from the previous stage's output.
	Forward(input Activation) (Activation, error)

	// Name returns the stage name, e.g. "05_conv2".
	Name() string

	// Kind returns the operator kind.
	Kind() topology.Kind
}

// Backend is the set of operators the modules need.
//
// cpu.CPUBackend implements it.
type Backend interface {
	Conv2DBackend
	MaxPool2DBackend
	PadBackend
	ReLUBackend
	LinearBackend
}

// named carries the stage name shared by every module.
type named struct {
	name string
}

func (n named) Name() string { return n.name }
