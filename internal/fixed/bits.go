package fixed

import "fmt"

// BitWidth is the number of characters in an encoded Value.
const BitWidth = 16

// DecodeBits parses a 16-character two's-complement binary string.
//
// The string is read as an unsigned 16-bit integer and bit 15 is then
// reinterpreted as the sign. Anything other than exactly sixteen '0'/'1'
// characters yields a *FormatError.
func DecodeBits(s string) (Value, error) {
	if len(s) != BitWidth {
		return 0, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("expected %d characters, got %d", BitWidth, len(s)),
		}
	}

	var u uint16
	for i := 0; i < BitWidth; i++ {
		switch s[i] {
		case '0':
			u <<= 1
		case '1':
			u = u<<1 | 1
		default:
			return 0, &FormatError{
				Input:  s,
				Reason: fmt.Sprintf("non-binary character %q at position %d", s[i], i),
			}
		}
	}
	return Value(int16(u)), nil
}

// EncodeBits returns the two's-complement encoding of v, zero-padded to 16
// characters.
func EncodeBits(v Value) string {
	var buf [BitWidth]byte
	u := uint16(v)
	for i := BitWidth - 1; i >= 0; i-- {
		buf[i] = '0' + byte(u&1)
		u >>= 1
	}
	return string(buf[:])
}
