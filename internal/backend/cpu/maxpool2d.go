package cpu

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/tensor"
)

// MaxPool2D performs 2D max pooling.
//
// Input shape:  [H, W, C]
// Output shape: [OH, OW, C]
//
// Where:
//
//	OH = (H - poolSize) / stride + 1
//	OW = (W - poolSize) / stride + 1
//
// Each output is the largest value in its poolSize×poolSize window, compared
// as signed integers, per channel. No padding is applied.
//
// Example (2x2 pool, stride=2, one channel):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.Tensor3D, poolSize, stride int) (*tensor.Tensor3D, error) {
	H, W, C := input.Height(), input.Width(), input.Channels()

	if poolSize <= 0 {
		return nil, &tensor.DimensionError{Op: "maxpool2d", Detail: fmt.Sprintf("invalid pool size %d", poolSize)}
	}
	if stride <= 0 {
		return nil, &tensor.DimensionError{Op: "maxpool2d", Detail: fmt.Sprintf("invalid stride %d", stride)}
	}
	if poolSize > H || poolSize > W {
		return nil, &tensor.DimensionError{
			Op:     "maxpool2d",
			Detail: fmt.Sprintf("pool size %d too large for input %dx%d", poolSize, H, W),
		}
	}

	HOut := (H-poolSize)/stride + 1
	WOut := (W-poolSize)/stride + 1
	output, err := tensor.NewTensor3D(HOut, WOut, C)
	if err != nil {
		return nil, fmt.Errorf("maxpool2d: %w", err)
	}

	in := input.Data()
	out := output.Data()

	parallel.ForGrid(C, HOut, func(c, outH int) {
		hStart := outH * stride
		for outW := 0; outW < WOut; outW++ {
			wStart := outW * stride

			maxVal := fixed.Value(fixed.MinRaw)
			for kh := 0; kh < poolSize; kh++ {
				row := ((hStart + kh) * W) * C
				for kw := 0; kw < poolSize; kw++ {
					if v := in[row+(wStart+kw)*C+c]; v > maxVal {
						maxVal = v
					}
				}
			}
			out[(outH*WOut+outW)*C+c] = maxVal
		}
	}, cpu.parallel)

	return output, nil
}
