package tensor

import (
	"errors"
	"testing"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBankFromOIKK(t *testing.T) {
	const m, c, k = 3, 2, 2
	flat := seq(m * c * k * k)
	bias := Vector{10, 20, 30}

	fb, err := FilterBankFromOIKK(flat, bias, m, c, k)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2, 2, 3}, fb.Shape())

	// OIKK index of (m, c, i, j) is ((m*C + c)*K + i)*K + j.
	for mm := 0; mm < m; mm++ {
		for cc := 0; cc < c; cc++ {
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					want := fixed.Value(((mm*c+cc)*k+i)*k + j)
					assert.Equal(t, want, fb.At(i, j, cc, mm), "m=%d c=%d i=%d j=%d", mm, cc, i, j)
				}
			}
		}
	}
	assert.Equal(t, fixed.Value(20), fb.Bias(1))

	// Kernels(m) lists (i, j, c) in HWC window order.
	assert.Equal(t, []fixed.Value{8, 12, 9, 13, 10, 14, 11, 15}, fb.Kernels(1))
}

func TestFilterBank_Errors(t *testing.T) {
	_, err := FilterBankFromOIKK(seq(7), Vector{0}, 1, 2, 2)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewFilterBank(seq(16), Vector{0}, 2, 2, 2)
	assert.True(t, errors.Is(err, ErrShapeMismatch), "bias length must equal out channels")

	_, err = NewFilterBank(nil, nil, 0, 1, 1)
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestDenseFromOI(t *testing.T) {
	// (Out=2, In=3): row j holds the weights of neuron j.
	flat := []fixed.Value{1, 2, 3, 4, 5, 6}
	dw, err := DenseFromOI(flat, Vector{7, 8}, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, Shape{3, 2}, dw.Shape())
	assert.Equal(t, fixed.Value(1), dw.At(0, 0))
	assert.Equal(t, fixed.Value(4), dw.At(0, 1))
	assert.Equal(t, fixed.Value(6), dw.At(2, 1))
	assert.Equal(t, []fixed.Value{4, 5, 6}, dw.Column(1))
	assert.Equal(t, fixed.Value(8), dw.Bias(1))

	_, err = DenseFromOI(flat, Vector{7}, 2, 3)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestZeroWeights(t *testing.T) {
	fb, err := ZeroFilterBank(3, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, fixed.Zero, fb.At(2, 2, 1, 3))

	dw, err := ZeroDense(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, dw.In())
	assert.Equal(t, 2, dw.Out())
}
