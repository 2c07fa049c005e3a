package fixed

import (
	"math"
	"strconv"
)

// Value is a Q3.13 fixed-point number stored as a signed 16-bit integer.
type Value int16

// Q3.13 format constants.
const (
	FracBits = 13
	Scale    = 1 << FracBits

	MaxRaw = math.MaxInt16
	MinRaw = math.MinInt16

	// MaxFloat is the largest representable value, (2^15-1)/2^13.
	MaxFloat = float64(MaxRaw) / Scale
	// MinFloat is the smallest representable value, -2^15/2^13 = -4.
	MinFloat = float64(MinRaw) / Scale

	Zero Value = 0
	One  Value = Scale
)

// Quantize converts x to Q3.13.
//
// x is clamped to [MinFloat, MaxFloat] before scaling, so out-of-range inputs
// saturate and never wrap. The scaled value is rounded half-to-even, which is
// the rounding the reference model uses when producing input feature maps.
// NaN quantizes to zero.
func Quantize(x float64) Value {
	if math.IsNaN(x) {
		return Zero
	}
	x = min(max(x, MinFloat), MaxFloat)
	return Value(math.RoundToEven(x * Scale))
}

// Dequantize converts v back to a float64.
func Dequantize(v Value) float64 {
	return float64(v) / Scale
}

// Float returns the real number represented by v.
func (v Value) Float() float64 {
	return Dequantize(v)
}

// Bits returns the 16-character two's-complement encoding of v.
func (v Value) Bits() string {
	return EncodeBits(v)
}

// String formats v as its real value, e.g. "1.5".
func (v Value) String() string {
	return strconv.FormatFloat(v.Float(), 'g', -1, 64)
}

// QuantizeSlice quantizes every element of xs.
func QuantizeSlice(xs []float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Quantize(x)
	}
	return out
}
