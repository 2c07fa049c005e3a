package cpu

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/tensor"
)

// Linear computes a fully-connected layer: out[j] = Σ_i in[i]·W[i][j] + b[j].
//
// Input shape:   [N]
// Weight shape:  [N, P] with P biases
// Output shape:  [P]
//
// Accumulation is 64-bit. With fixed.DenseProductwise every product goes
// through the policy's multiplier and the biased sum is narrowed with the
// policy's accumulate strategy. With fixed.DenseShiftSum the exact widened
// products are summed, shifted right by 13, biased and saturated.
func (cpu *CPUBackend) Linear(input tensor.Vector, weights *tensor.DenseWeights) (tensor.Vector, error) {
	if len(input) != weights.In() {
		return nil, &tensor.ShapeMismatchError{
			What: "linear input",
			Want: fmt.Sprintf("%d features (weights %s)", weights.In(), weights.Shape()),
			Got:  fmt.Sprintf("%d features", len(input)),
		}
	}

	P := weights.Out()
	output := make(tensor.Vector, P)
	dot := cpu.denseDot()

	parallel.For(P, func(j int) {
		output[j] = dot(input, weights.Column(j), weights.Bias(j))
	}, cpu.parallel)

	return output, nil
}

type dotFunc func(x, w []fixed.Value, bias fixed.Value) fixed.Value

func (cpu *CPUBackend) denseDot() dotFunc {
	mul := cpu.policy.Multiply
	narrow := cpu.policy.Accumulate

	if cpu.policy.Dense == fixed.DenseShiftSum {
		return func(x, w []fixed.Value, bias fixed.Value) fixed.Value {
			var acc int64
			for i, v := range x {
				acc += int64(v) * int64(w[i])
			}
			return fixed.Saturate(acc>>fixed.FracBits + int64(bias))
		}
	}

	return func(x, w []fixed.Value, bias fixed.Value) fixed.Value {
		var acc int64
		for i, v := range x {
			acc += int64(mul.Mul(v, w[i]))
		}
		return narrow.Narrow(acc + int64(bias))
	}
}
