package cpu

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
)

// Pad surrounds the spatial dimensions with amount rows and columns of zeros
// on every side. The channel dimension is untouched.
//
// Input shape:  [H, W, C]
// Output shape: [H + 2*amount, W + 2*amount, C]
//
// Pad(t, 0) returns t itself.
func (cpu *CPUBackend) Pad(input *tensor.Tensor3D, amount int) (*tensor.Tensor3D, error) {
	if amount < 0 {
		return nil, &tensor.DimensionError{Op: "pad", Detail: fmt.Sprintf("negative amount %d", amount)}
	}
	if amount == 0 {
		return input, nil
	}

	H, W, C := input.Height(), input.Width(), input.Channels()
	WOut := W + 2*amount
	output, err := tensor.NewTensor3D(H+2*amount, WOut, C)
	if err != nil {
		return nil, fmt.Errorf("pad: %w", err)
	}

	in := input.Data()
	out := output.Data()
	rowLen := W * C
	for h := 0; h < H; h++ {
		dst := ((h+amount)*WOut + amount) * C
		copy(out[dst:dst+rowLen], in[h*rowLen:(h+1)*rowLen])
	}
	return output, nil
}
