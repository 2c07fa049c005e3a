// Package topology describes the layer structure of a fixed-point CNN as an
// explicit, immutable configuration value.
//
// A Topology is a chain of convolution blocks (Pad? → Conv → ReLU → Pool?)
// followed by dense blocks (Dense → ReLU?). Plan expands it into the ordered
// stage list executed by the pipeline and checks every intermediate shape
// before any compute happens.
package topology

import (
	"errors"
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
)

// Dims is a (Height, Width, Channels) feature-map size.
type Dims struct {
	Height   int `yaml:"height"`
	Width    int `yaml:"width"`
	Channels int `yaml:"channels"`
}

// Shape returns the dims as a tensor shape.
func (d Dims) Shape() tensor.Shape {
	return tensor.Shape{d.Height, d.Width, d.Channels}
}

// Pool configures a max-pooling stage.
type Pool struct {
	Size   int `yaml:"size"`
	Stride int `yaml:"stride"`
}

// ConvLayer configures one convolution block.
type ConvLayer struct {
	Name       string `yaml:"name"`
	WeightStem string `yaml:"weight_stem"` // File stem in the weights directory; defaults to Name.
	Filters    int    `yaml:"filters"`
	Kernel     int    `yaml:"kernel"`
	Stride     int    `yaml:"stride"`
	Pad        int    `yaml:"pad"`
	Pool       *Pool  `yaml:"pool,omitempty"`
}

// Stem returns the weight file stem.
func (l ConvLayer) Stem() string {
	if l.WeightStem != "" {
		return l.WeightStem
	}
	return l.Name
}

// DenseLayer configures one fully-connected block.
type DenseLayer struct {
	Name       string `yaml:"name"`
	WeightStem string `yaml:"weight_stem"`
	Out        int    `yaml:"out"`
	ReLU       bool   `yaml:"relu"`
}

// Stem returns the weight file stem.
func (l DenseLayer) Stem() string {
	if l.WeightStem != "" {
		return l.WeightStem
	}
	return l.Name
}

// Topology is the full network description.
type Topology struct {
	Name  string       `yaml:"name"`
	Input Dims         `yaml:"input"`
	Conv  []ConvLayer  `yaml:"conv"`
	Dense []DenseLayer `yaml:"dense"`
}

// AlexNet returns the five-convolution, three-dense AlexNet topology with a
// 227×227×3 input and a 1000-class output.
func AlexNet() Topology {
	pool := func() *Pool { return &Pool{Size: 3, Stride: 2} }
	return Topology{
		Name:  "alexnet",
		Input: Dims{Height: 227, Width: 227, Channels: 3},
		Conv: []ConvLayer{
			{Name: "conv1", Filters: 64, Kernel: 11, Stride: 4, Pad: 0, Pool: pool()},
			{Name: "conv2", Filters: 192, Kernel: 5, Stride: 1, Pad: 2, Pool: pool()},
			{Name: "conv3", Filters: 384, Kernel: 3, Stride: 1, Pad: 1},
			{Name: "conv4", Filters: 256, Kernel: 3, Stride: 1, Pad: 1},
			{Name: "conv5", Filters: 256, Kernel: 3, Stride: 1, Pad: 1, Pool: pool()},
		},
		Dense: []DenseLayer{
			{Name: "fc1", WeightStem: "fc_layer_1", Out: 4096, ReLU: true},
			{Name: "fc2", WeightStem: "fc_layer_2", Out: 4096, ReLU: true},
			{Name: "fc3", WeightStem: "fc_layer_3", Out: 1000},
		},
	}
}

// Clone returns a deep copy.
func (t Topology) Clone() Topology {
	out := t
	out.Conv = make([]ConvLayer, len(t.Conv))
	for i, l := range t.Conv {
		if l.Pool != nil {
			p := *l.Pool
			l.Pool = &p
		}
		out.Conv[i] = l
	}
	out.Dense = append([]DenseLayer(nil), t.Dense...)
	return out
}

// Validate checks the topology and every derived shape.
func (t Topology) Validate() error {
	_, err := t.Plan()
	return err
}

// ConvInput returns the input channel count of conv layer i.
func (t Topology) ConvInput(i int) int {
	if i == 0 {
		return t.Input.Channels
	}
	return t.Conv[i-1].Filters
}

// FlatFeatures returns the length of the flattened feature vector feeding the
// first dense layer.
func (t Topology) FlatFeatures() (int, error) {
	plan, err := t.Plan()
	if err != nil {
		return 0, err
	}
	for _, s := range plan {
		if s.Kind == KindFlatten {
			return s.Shape.NumElements(), nil
		}
	}
	return 0, errors.New("topology: plan has no flatten stage")
}

// DenseInput returns the input feature count of dense layer i given the
// flattened feature count.
func (t Topology) DenseInput(i, flat int) int {
	if i == 0 {
		return flat
	}
	return t.Dense[i-1].Out
}

// Scores returns the length of the final score vector.
func (t Topology) Scores() int {
	if len(t.Dense) == 0 {
		return 0
	}
	return t.Dense[len(t.Dense)-1].Out
}

func (t Topology) checkLayers() error {
	if err := t.Input.Shape().Validate(); err != nil {
		return fmt.Errorf("topology %q: input: %w", t.Name, err)
	}
	if len(t.Conv) == 0 {
		return fmt.Errorf("topology %q: at least one conv layer is required", t.Name)
	}
	if len(t.Dense) == 0 {
		return fmt.Errorf("topology %q: at least one dense layer is required", t.Name)
	}

	seen := make(map[string]bool)
	for i, l := range t.Conv {
		if l.Name == "" {
			return fmt.Errorf("topology %q: conv layer %d has no name", t.Name, i)
		}
		if seen[l.Name] {
			return fmt.Errorf("topology %q: duplicate layer name %q", t.Name, l.Name)
		}
		seen[l.Name] = true
		if l.Filters <= 0 || l.Kernel <= 0 || l.Stride <= 0 || l.Pad < 0 {
			return &tensor.DimensionError{
				Op:     l.Name,
				Detail: fmt.Sprintf("filters=%d kernel=%d stride=%d pad=%d", l.Filters, l.Kernel, l.Stride, l.Pad),
			}
		}
		if l.Pool != nil && (l.Pool.Size <= 0 || l.Pool.Stride <= 0) {
			return &tensor.DimensionError{
				Op:     l.Name,
				Detail: fmt.Sprintf("pool size=%d stride=%d", l.Pool.Size, l.Pool.Stride),
			}
		}
	}
	for i, l := range t.Dense {
		if l.Name == "" {
			return fmt.Errorf("topology %q: dense layer %d has no name", t.Name, i)
		}
		if seen[l.Name] {
			return fmt.Errorf("topology %q: duplicate layer name %q", t.Name, l.Name)
		}
		seen[l.Name] = true
		if l.Out <= 0 {
			return &tensor.DimensionError{Op: l.Name, Detail: fmt.Sprintf("out=%d", l.Out)}
		}
	}
	return nil
}
