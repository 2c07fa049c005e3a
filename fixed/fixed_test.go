// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fixed_test

import (
	"errors"
	"testing"

	"github.com/born-ml/fixnet/fixed"
)

func TestQuantizeBits(t *testing.T) {
	v := fixed.Quantize(0.75)
	if got := v.Bits(); got != "0001100000000000" {
		t.Errorf("Bits() = %s, want 0001100000000000", got)
	}
	back, err := fixed.DecodeBits(fixed.EncodeBits(v))
	if err != nil {
		t.Fatalf("DecodeBits failed: %v", err)
	}
	if back != v {
		t.Errorf("round trip = %v, want %v", back, v)
	}
	if fixed.Quantize(100) != fixed.MaxRaw {
		t.Error("Quantize should saturate at MaxRaw")
	}
}

func TestDecodeBitsError(t *testing.T) {
	_, err := fixed.DecodeBits("01")
	if !errors.Is(err, fixed.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
	var fe *fixed.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("expected *FormatError, got %T", err)
	}
}

func TestPolicies(t *testing.T) {
	for _, name := range []string{fixed.PolicyCanonical, fixed.PolicyShiftSumDense, fixed.PolicyLegacy} {
		p, err := fixed.ParsePolicy(name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) failed: %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if fixed.ShiftSumDense().Dense != fixed.DenseShiftSum {
		t.Error("ShiftSumDense should use DenseShiftSum")
	}

	// 2.5 * 2.0 = 5.0 needs three integer bits: the policies disagree.
	a, b := fixed.Quantize(2.5), fixed.Quantize(2.0)
	if fixed.MulBitSelect(a, b) == fixed.MulShift(a, b) {
		t.Error("bit-select and shift should differ when the product overflows")
	}
}
