// Package cpu implements the bit-exact Q3.13 operators on the CPU.
//
// Every operator is a pure function of its inputs: outputs are freshly
// allocated and inputs are never modified (Pad with amount 0 is the one
// documented exception, returning its input). Independent output channels or
// neurons are spread over goroutines with internal/parallel; results do not
// depend on the worker count.
package cpu

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/parallel"
)

// CPUBackend runs the fixed-point operators with one arithmetic policy.
type CPUBackend struct {
	policy   fixed.Policy
	parallel parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the fan-out configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(b *CPUBackend) { b.parallel = cfg }
}

// New creates a CPU backend using the given arithmetic policy.
func New(policy fixed.Policy, opts ...Option) (*CPUBackend, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("cpu backend: %w", err)
	}
	b := &CPUBackend{
		policy:   policy,
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Canonical creates a backend with the canonical accelerator policy.
func Canonical(opts ...Option) *CPUBackend {
	b, err := New(fixed.Canonical(), opts...)
	if err != nil {
		panic(err) // Canonical() is always valid.
	}
	return b
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Policy returns the arithmetic policy.
func (cpu *CPUBackend) Policy() fixed.Policy {
	return cpu.policy
}
