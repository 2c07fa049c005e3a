package fixed

import (
	"errors"
	"fmt"
	"strings"
)

// MultiplyPolicy is the elementwise Q3.13 multiply used by conv and dense
// operators.
type MultiplyPolicy interface {
	Mul(a, b Value) Value
	Name() string
}

// AccumulatePolicy narrows a wide accumulator back to a Value.
type AccumulatePolicy interface {
	Narrow(acc int64) Value
	Name() string
}

// BitSelect is the accelerator's bit-selection multiplier (see MulBitSelect).
type BitSelect struct{}

// Mul implements MultiplyPolicy.
func (BitSelect) Mul(a, b Value) Value { return MulBitSelect(a, b) }

// Name implements MultiplyPolicy.
func (BitSelect) Name() string { return "bit-select" }

// Shift is the shift-right-13 multiplier (see MulShift).
type Shift struct{}

// Mul implements MultiplyPolicy.
func (Shift) Mul(a, b Value) Value { return MulShift(a, b) }

// Name implements MultiplyPolicy.
func (Shift) Name() string { return "shift" }

// Saturating clamps accumulators to [-32768, 32767].
type Saturating struct{}

// Narrow implements AccumulatePolicy.
func (Saturating) Narrow(acc int64) Value { return Saturate(acc) }

// Name implements AccumulatePolicy.
func (Saturating) Name() string { return "saturate" }

// Wrapping keeps the low 16 bits of accumulators.
type Wrapping struct{}

// Narrow implements AccumulatePolicy.
func (Wrapping) Narrow(acc int64) Value { return Wrap(acc) }

// Name implements AccumulatePolicy.
func (Wrapping) Name() string { return "wrap" }

// DenseMode selects how fully-connected layers combine products.
type DenseMode int

const (
	// DenseProductwise multiplies every input/weight pair with the policy's
	// MultiplyPolicy, sums in 64 bits, adds the bias and narrows with the
	// policy's AccumulatePolicy.
	DenseProductwise DenseMode = iota
	// DenseShiftSum sums exact widened products, shifts the sum right by 13,
	// adds the bias and saturates.
	DenseShiftSum
)

// String returns the configuration name of the mode.
func (m DenseMode) String() string {
	switch m {
	case DenseProductwise:
		return "productwise"
	case DenseShiftSum:
		return "shift-sum"
	default:
		return fmt.Sprintf("DenseMode(%d)", int(m))
	}
}

// Policy bundles the arithmetic strategies of one pipeline configuration.
// A Policy is chosen once and shared by every operator of a run.
type Policy struct {
	Multiply   MultiplyPolicy
	Accumulate AccumulatePolicy
	Dense      DenseMode
}

// Policy preset names accepted by ParsePolicy.
const (
	PolicyCanonical     = "canonical"
	PolicyShiftSumDense = "shift-sum-dense"
	PolicyLegacy        = "legacy"
)

// Canonical is the full-pipeline arithmetic: bit-selection multiply,
// saturating narrowing, productwise dense layers.
func Canonical() Policy {
	return Policy{Multiply: BitSelect{}, Accumulate: Saturating{}, Dense: DenseProductwise}
}

// ShiftSumDense keeps canonical convolutions but computes dense layers as a
// shifted widened dot product.
func ShiftSumDense() Policy {
	return Policy{Multiply: BitSelect{}, Accumulate: Saturating{}, Dense: DenseShiftSum}
}

// Legacy is the standalone convolution arithmetic: shift multiply with 16-bit
// wraparound.
func Legacy() Policy {
	return Policy{Multiply: Shift{}, Accumulate: Wrapping{}, Dense: DenseProductwise}
}

// ParsePolicy resolves a preset name. The empty string selects Canonical.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyCanonical:
		return Canonical(), nil
	case PolicyShiftSumDense:
		return ShiftSumDense(), nil
	case PolicyLegacy:
		return Legacy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown arithmetic policy %q (want %s, %s or %s)",
			name, PolicyCanonical, PolicyShiftSumDense, PolicyLegacy)
	}
}

// Validate reports whether every strategy is set.
func (p Policy) Validate() error {
	if p.Multiply == nil {
		return errors.New("policy: multiply strategy is nil")
	}
	if p.Accumulate == nil {
		return errors.New("policy: accumulate strategy is nil")
	}
	if p.Dense != DenseProductwise && p.Dense != DenseShiftSum {
		return fmt.Errorf("policy: unknown dense mode %d", int(p.Dense))
	}
	return nil
}

// Preset returns the name of the preset p equals, or "custom".
func (p Policy) Preset() string {
	switch p {
	case Canonical():
		return PolicyCanonical
	case ShiftSumDense():
		return PolicyShiftSumDense
	case Legacy():
		return PolicyLegacy
	default:
		return "custom"
	}
}

// Label combines the preset name and the strategies, e.g.
// "canonical (mul=bit-select acc=saturate dense=productwise)".
func (p Policy) Label() string {
	return fmt.Sprintf("%s (%s)", p.Preset(), p)
}

// String describes the policy, e.g. "mul=bit-select acc=saturate dense=productwise".
func (p Policy) String() string {
	mul, acc := "<nil>", "<nil>"
	if p.Multiply != nil {
		mul = p.Multiply.Name()
	}
	if p.Accumulate != nil {
		acc = p.Accumulate.Name()
	}
	return fmt.Sprintf("mul=%s acc=%s dense=%s", mul, acc, p.Dense)
}
