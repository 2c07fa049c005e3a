package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulBitSelect(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"one times one", 0x2000, 0x2000, 0x2000},
		{"minus one times one", -0x2000, 0x2000, -0x2000},
		{"zero", 0, 0x2000, 0},
		{"1.5 squared", Quantize(1.5), Quantize(1.5), Quantize(2.25)},
		{"-0.5 times 0.25", Quantize(-0.5), Quantize(0.25), Quantize(-0.125)},
		// 2.0*2.0 = 4.0 needs product bit 28, which is discarded.
		{"overflow discards bit 28", Quantize(2), Quantize(2), 0},
		// 3.0*3.0 = 9.0, bits 30..28 dropped leaves 1.0.
		{"three squared", Quantize(3), Quantize(3), Quantize(1)},
		// -3.0*2.0 = -6.0 = 0xE8000000: sign kept, bit 27 set.
		{"negative overflow keeps sign", Quantize(-3), Quantize(2), Quantize(-2)},
		// Sub-LSB products truncate.
		{"lsb squared", 1, 1, 0},
		{"minus lsb", -1, 1, -1},
		{"half lsb", 0x1000, 1, 0},
		{"half times three lsb", 0x1000, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MulBitSelect(tt.a, tt.b))
		})
	}
}

func TestMulShift(t *testing.T) {
	assert.Equal(t, Value(0x2000), MulShift(0x2000, 0x2000))
	assert.Equal(t, Quantize(2.25), MulShift(Quantize(1.5), Quantize(1.5)))
	// 4.0 wraps to -4.0.
	assert.Equal(t, Value(-32768), MulShift(Quantize(2), Quantize(2)))
	// -6.0 wraps to +2.0.
	assert.Equal(t, Quantize(2), MulShift(Quantize(-3), Quantize(2)))
}

// The two rules agree whenever the product's integer part fits in two bits.
func TestMulRulesAgreeInRange(t *testing.T) {
	for a := Value(-0x2000); a <= 0x2000; a += 97 {
		for b := Value(-0x2000); b <= 0x2000; b += 89 {
			assert.Equal(t, MulShift(a, b), MulBitSelect(a, b), "a=%d b=%d", a, b)
		}
	}
}

func TestSaturateAndWrap(t *testing.T) {
	assert.Equal(t, Value(32767), Saturate(46080))
	assert.Equal(t, Value(-32768), Saturate(-40000))
	assert.Equal(t, Value(123), Saturate(123))

	assert.Equal(t, Value(-19456), Wrap(46080))
	assert.Equal(t, Value(25536), Wrap(-40000))
	assert.Equal(t, Value(123), Wrap(123))
}
