// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/fixnet/internal/backend/cpu"
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/nn"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls operator fan-out.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements nn.Backend.
var _ nn.Backend = (*Backend)(nil)

// New creates a CPU backend with the given arithmetic policy.
//
// Example:
//
//	backend, err := cpu.New(fixed.Canonical())
func New(policy fixed.Policy, opts ...Option) (*Backend, error) {
	return internalcpu.New(policy, opts...)
}

// Canonical creates a CPU backend with the canonical policy.
func Canonical(opts ...Option) *Backend {
	return internalcpu.Canonical(opts...)
}

// WithParallel sets the operator fan-out.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// DefaultParallel uses every available CPU.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// Sequential disables operator fan-out.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}
