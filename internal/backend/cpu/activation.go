package cpu

import (
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

// ReLU applies max(x, 0) elementwise to a feature map.
func (cpu *CPUBackend) ReLU(input *tensor.Tensor3D) *tensor.Tensor3D {
	output := input.Clone()
	reluInPlace(output.Data())
	return output
}

// ReLUVector applies max(x, 0) elementwise to a vector.
func (cpu *CPUBackend) ReLUVector(input tensor.Vector) tensor.Vector {
	output := input.Clone()
	reluInPlace(output)
	return output
}

func reluInPlace(data []fixed.Value) {
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
}
