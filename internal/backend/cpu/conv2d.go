package cpu

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/tensor"
)

// Conv2D performs a direct 2D convolution in Q3.13.
//
// Input shape:  [H, W, C]
// Filter shape: [K, K, C, M] with M biases
// Output shape: [OH, OW, M]
//
// Where:
//
//	OH = (H - K) / stride + 1
//	OW = (W - K) / stride + 1
//
// No padding is applied; use Pad first. For every output channel m and
// position (oh, ow) the K×K×C window products, each formed with the
// policy's multiplier, are summed in a 32-bit accumulator together with
// bias[m]. The accumulator is then narrowed with the policy's accumulate
// strategy (saturation for the canonical policy).
func (cpu *CPUBackend) Conv2D(input *tensor.Tensor3D, filters *tensor.FilterBank, stride int) (*tensor.Tensor3D, error) {
	H, W, C := input.Height(), input.Width(), input.Channels()
	K, M := filters.Kernel(), filters.OutChannels()

	if filters.InChannels() != C {
		return nil, &tensor.ShapeMismatchError{
			What: "conv2d input channels",
			Want: fmt.Sprintf("%d (filter bank %s)", filters.InChannels(), filters.Shape()),
			Got:  fmt.Sprintf("%d (input %s)", C, input.Shape()),
		}
	}
	if stride <= 0 {
		return nil, &tensor.DimensionError{Op: "conv2d", Detail: fmt.Sprintf("invalid stride %d", stride)}
	}
	if K > H || K > W {
		return nil, &tensor.DimensionError{
			Op:     "conv2d",
			Detail: fmt.Sprintf("kernel %d too large for input %dx%d", K, H, W),
		}
	}

	HOut := (H-K)/stride + 1
	WOut := (W-K)/stride + 1
	output, err := tensor.NewTensor3D(HOut, WOut, M)
	if err != nil {
		return nil, fmt.Errorf("conv2d: %w", err)
	}

	mul := cpu.policy.Multiply
	narrow := cpu.policy.Accumulate
	in := input.Data()
	out := output.Data()
	rowLen := K * C // One window row is contiguous in HWC.

	parallel.For(M, func(m int) {
		kernel := filters.Kernels(m) // [K, K, C] in window order
		bias := int32(filters.Bias(m))

		for oh := 0; oh < HOut; oh++ {
			hStart := oh * stride
			for ow := 0; ow < WOut; ow++ {
				wStart := ow * stride

				var acc int32
				for i := 0; i < K; i++ {
					base := ((hStart+i)*W + wStart) * C
					window := in[base : base+rowLen]
					weights := kernel[i*rowLen : (i+1)*rowLen]
					for k, x := range window {
						acc += int32(mul.Mul(x, weights[k]))
					}
				}
				acc += bias

				out[(oh*WOut+ow)*M+m] = narrow.Narrow(int64(acc))
			}
		}
	}, cpu.parallel)

	return output, nil
}
