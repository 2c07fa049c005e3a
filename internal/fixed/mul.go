package fixed

// Bit masks used by MulBitSelect on the 32-bit Q6.26 product.
const (
	productSignMask  uint32 = 0x80000000 // bit 31
	productValueMask uint32 = 0x0FFFE000 // bits 27..13
)

// MulBitSelect multiplies two Q3.13 values with the accelerator's
// bit-selection truncation.
//
// The exact product is formed in 32 bits (Q6.26) and the result is assembled
// from selected product bits:
//
//	result[15]    = product[31]
//	result[14:13] = product[27:26]
//	result[12:0]  = product[25:13]
//
// Product bits 30..28 are discarded, so magnitudes that needed them are lost
// rather than saturated. The fraction is truncated without rounding.
func MulBitSelect(a, b Value) Value {
	p := uint32(int32(a) * int32(b))
	sign := (p & productSignMask) >> 16
	val := (p & productValueMask) >> FracBits
	return Value(int16(uint16(sign | val)))
}

// MulShift multiplies two Q3.13 values with an arithmetic shift right by 13,
// keeping the low 16 bits of the shifted product.
func MulShift(a, b Value) Value {
	return Value(int16((int32(a) * int32(b)) >> FracBits))
}

// Saturate clamps a wide accumulator to the int16 range.
func Saturate(acc int64) Value {
	switch {
	case acc > MaxRaw:
		return MaxRaw
	case acc < MinRaw:
		return MinRaw
	default:
		return Value(acc)
	}
}

// Wrap narrows a wide accumulator by keeping its low 16 bits.
func Wrap(acc int64) Value {
	return Value(int16(acc))
}
