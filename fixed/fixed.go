// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fixed provides the public Q3.13 fixed-point API of fixnet.
//
// A Value is a signed 16-bit integer read as value/8192, covering
// [-4, 4 - 2^-13]. Values travel through files as 16-character
// two's-complement bit strings.
//
// Example:
//
//	v := fixed.Quantize(0.75)
//	fmt.Println(v.Bits()) // 0001100000000000
//	p := fixed.MulBitSelect(v, v)
package fixed

import (
	"github.com/born-ml/fixnet/internal/fixed"
)

// Value is a Q3.13 fixed-point number.
type Value = fixed.Value

// Q3.13 format constants.
const (
	FracBits = fixed.FracBits
	Scale    = fixed.Scale
	MaxRaw   = fixed.MaxRaw
	MinRaw   = fixed.MinRaw
	MaxFloat = fixed.MaxFloat
	MinFloat = fixed.MinFloat
	BitWidth = fixed.BitWidth

	Zero Value = fixed.Zero
	One  Value = fixed.One
)

// Errors.
type FormatError = fixed.FormatError

// ErrFormat is matched by every FormatError.
var ErrFormat = fixed.ErrFormat

// Policy types.
type (
	Policy           = fixed.Policy
	MultiplyPolicy   = fixed.MultiplyPolicy
	AccumulatePolicy = fixed.AccumulatePolicy
	DenseMode        = fixed.DenseMode
	BitSelect        = fixed.BitSelect
	Shift            = fixed.Shift
	Saturating       = fixed.Saturating
	Wrapping         = fixed.Wrapping
)

// Dense modes.
const (
	DenseProductwise = fixed.DenseProductwise
	DenseShiftSum    = fixed.DenseShiftSum
)

// Policy preset names.
const (
	PolicyCanonical     = fixed.PolicyCanonical
	PolicyShiftSumDense = fixed.PolicyShiftSumDense
	PolicyLegacy        = fixed.PolicyLegacy
)

// Quantize converts x to Q3.13 with saturation and half-to-even rounding.
func Quantize(x float64) Value { return fixed.Quantize(x) }

// QuantizeSlice quantizes every element of xs.
func QuantizeSlice(xs []float64) []Value { return fixed.QuantizeSlice(xs) }

// Dequantize converts v to float64.
func Dequantize(v Value) float64 { return fixed.Dequantize(v) }

// DecodeBits parses a 16-character two's-complement bit string.
func DecodeBits(s string) (Value, error) { return fixed.DecodeBits(s) }

// EncodeBits returns the 16-character two's-complement bit string of v.
func EncodeBits(v Value) string { return fixed.EncodeBits(v) }

// MulBitSelect multiplies with the accelerator's bit-selection rule.
func MulBitSelect(a, b Value) Value { return fixed.MulBitSelect(a, b) }

// MulShift multiplies with an arithmetic right shift by 13.
func MulShift(a, b Value) Value { return fixed.MulShift(a, b) }

// Saturate clamps acc to the 16-bit range.
func Saturate(acc int64) Value { return fixed.Saturate(acc) }

// Wrap keeps the low 16 bits of acc.
func Wrap(acc int64) Value { return fixed.Wrap(acc) }

// Canonical returns the default policy.
func Canonical() Policy { return fixed.Canonical() }

// ShiftSumDense returns the policy with shift-sum dense layers.
func ShiftSumDense() Policy { return fixed.ShiftSumDense() }

// Legacy returns the shift-multiply, wrapping policy.
func Legacy() Policy { return fixed.Legacy() }

// ParsePolicy resolves a preset name; "" selects canonical.
func ParsePolicy(name string) (Policy, error) { return fixed.ParsePolicy(name) }
