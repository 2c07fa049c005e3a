package topology

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
)

// Kind identifies the operator of a stage.
type Kind int

// Stage kinds in pipeline order.
const (
	KindInput Kind = iota
	KindPad
	KindConv
	KindReLU
	KindPool
	KindFlatten
	KindDense
)

var kindNames = [...]string{"input", "padding", "conv", "relu", "maxpool", "flatten", "fc"}

// String returns the stage-name prefix of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// StageSpec is one step of the expanded plan.
type StageSpec struct {
	Index int
	Name  string // Directory-style name, e.g. "05_conv2"
	Kind  Kind
	Layer int          // Index into Conv or Dense; -1 when not layer-bound
	Shape tensor.Shape // Output shape: (H, W, C) for tensors, (N) for vectors

	// Vector is set for stages after Flatten, including ReLU on dense outputs.
	Vector bool

	// Operator parameters.
	Amount int // Pad
	Size   int // Pool window
	Stride int // Conv or Pool
}

// Plan expands the topology into its ordered stage list.
//
// Naming follows the per-image output tree of the reference model:
//
//	00_input, 01_conv1, 02_relu1, 03_maxpool1, 04_padding2, 05_conv2, ...
//	18_flatten, 19_fc1, 20_relu_fc1, 21_fc2, 22_relu_fc2, 23_fc3
//
// Conv-block suffixes count from 1; pooling stages are numbered by how many
// pools came before. A non-positive output size anywhere is a DimensionError.
func (t Topology) Plan() ([]StageSpec, error) {
	if err := t.checkLayers(); err != nil {
		return nil, err
	}

	var plan []StageSpec
	add := func(s StageSpec, label string) {
		s.Index = len(plan)
		s.Name = fmt.Sprintf("%02d_%s", s.Index, label)
		plan = append(plan, s)
	}

	h, w, c := t.Input.Height, t.Input.Width, t.Input.Channels
	add(StageSpec{Kind: KindInput, Layer: -1, Shape: tensor.Shape{h, w, c}}, "input")

	pools := 0
	for i, l := range t.Conv {
		n := i + 1
		if l.Pad > 0 {
			h, w = h+2*l.Pad, w+2*l.Pad
			add(StageSpec{Kind: KindPad, Layer: i, Amount: l.Pad, Shape: tensor.Shape{h, w, c}},
				fmt.Sprintf("padding%d", n))
		}

		if l.Kernel > h || l.Kernel > w {
			return nil, &tensor.DimensionError{
				Op:     l.Name,
				Detail: fmt.Sprintf("kernel %d larger than input %dx%d", l.Kernel, h, w),
			}
		}
		h, w, c = (h-l.Kernel)/l.Stride+1, (w-l.Kernel)/l.Stride+1, l.Filters
		add(StageSpec{Kind: KindConv, Layer: i, Stride: l.Stride, Shape: tensor.Shape{h, w, c}}, l.Name)
		add(StageSpec{Kind: KindReLU, Layer: i, Shape: tensor.Shape{h, w, c}}, fmt.Sprintf("relu%d", n))

		if l.Pool != nil {
			if l.Pool.Size > h || l.Pool.Size > w {
				return nil, &tensor.DimensionError{
					Op:     l.Name,
					Detail: fmt.Sprintf("pool window %d larger than input %dx%d", l.Pool.Size, h, w),
				}
			}
			h, w = (h-l.Pool.Size)/l.Pool.Stride+1, (w-l.Pool.Size)/l.Pool.Stride+1
			pools++
			add(StageSpec{Kind: KindPool, Layer: i, Size: l.Pool.Size, Stride: l.Pool.Stride, Shape: tensor.Shape{h, w, c}},
				fmt.Sprintf("maxpool%d", pools))
		}
	}

	flat := h * w * c
	add(StageSpec{Kind: KindFlatten, Layer: -1, Vector: true, Shape: tensor.Shape{flat}}, "flatten")

	for i, l := range t.Dense {
		add(StageSpec{Kind: KindDense, Layer: i, Vector: true, Shape: tensor.Shape{l.Out}}, l.Name)
		if l.ReLU {
			add(StageSpec{Kind: KindReLU, Layer: i, Vector: true, Shape: tensor.Shape{l.Out}},
				"relu_"+l.Name)
		}
	}

	return plan, nil
}
