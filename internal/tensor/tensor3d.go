package tensor

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/fixed"
)

// Tensor3D is a (Height, Width, Channels) feature map of Q3.13 values stored
// in HWC row-major order: element (h, w, c) lives at (h*W + w)*C + c.
type Tensor3D struct {
	height   int
	width    int
	channels int
	data     []fixed.Value
}

// NewTensor3D creates a zero-filled tensor.
func NewTensor3D(height, width, channels int) (*Tensor3D, error) {
	shape := Shape{height, width, channels}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor3D{
		height:   height,
		width:    width,
		channels: channels,
		data:     make([]fixed.Value, shape.NumElements()),
	}, nil
}

// FromHWC creates a tensor from data already in HWC order.
// The slice is copied.
func FromHWC(data []fixed.Value, height, width, channels int) (*Tensor3D, error) {
	t, err := NewTensor3D(height, width, channels)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, countMismatch(fmt.Sprintf("tensor %s", t.Shape()), len(t.data), len(data))
	}
	copy(t.data, data)
	return t, nil
}

// FromPlanar creates a tensor from channel-planar (C, H, W) data, the order
// used by stage and input files.
func FromPlanar(data []fixed.Value, height, width, channels int) (*Tensor3D, error) {
	t, err := NewTensor3D(height, width, channels)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, countMismatch(fmt.Sprintf("planar tensor %s", t.Shape()), len(t.data), len(data))
	}

	plane := height * width
	for c := 0; c < channels; c++ {
		src := data[c*plane : (c+1)*plane]
		for i, v := range src {
			t.data[i*channels+c] = v
		}
	}
	return t, nil
}

// Shape returns (Height, Width, Channels).
func (t *Tensor3D) Shape() Shape {
	return Shape{t.height, t.width, t.channels}
}

// Height returns the number of rows.
func (t *Tensor3D) Height() int { return t.height }

// Width returns the number of columns.
func (t *Tensor3D) Width() int { return t.width }

// Channels returns the number of channels.
func (t *Tensor3D) Channels() int { return t.channels }

// NumElements returns H*W*C.
func (t *Tensor3D) NumElements() int { return len(t.data) }

// Data returns the HWC backing slice.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor3D) Data() []fixed.Value {
	return t.data
}

// Index returns the flat HWC offset of (h, w, c).
func (t *Tensor3D) Index(h, w, c int) int {
	return (h*t.width+w)*t.channels + c
}

// At returns the element at (h, w, c).
// Panics if indices are out of bounds.
func (t *Tensor3D) At(h, w, c int) fixed.Value {
	t.checkBounds(h, w, c)
	return t.data[t.Index(h, w, c)]
}

// Set sets the element at (h, w, c).
// Panics if indices are out of bounds.
func (t *Tensor3D) Set(v fixed.Value, h, w, c int) {
	t.checkBounds(h, w, c)
	t.data[t.Index(h, w, c)] = v
}

func (t *Tensor3D) checkBounds(h, w, c int) {
	if h < 0 || h >= t.height || w < 0 || w >= t.width || c < 0 || c >= t.channels {
		panic(fmt.Sprintf("index (%d,%d,%d) out of bounds for tensor %s", h, w, c, t.Shape()))
	}
}

// Channel returns a copy of channel c as an H*W row-major plane.
func (t *Tensor3D) Channel(c int) []fixed.Value {
	if c < 0 || c >= t.channels {
		panic(fmt.Sprintf("channel %d out of range [0,%d)", c, t.channels))
	}
	plane := make([]fixed.Value, t.height*t.width)
	for i := range plane {
		plane[i] = t.data[i*t.channels+c]
	}
	return plane
}

// Planar returns the tensor in channel-planar (C, H, W) order.
func (t *Tensor3D) Planar() []fixed.Value {
	out := make([]fixed.Value, 0, len(t.data))
	for c := 0; c < t.channels; c++ {
		out = append(out, t.Channel(c)...)
	}
	return out
}

// Flatten returns the HWC data as a Vector. This is the order the dense
// layers consume.
func (t *Tensor3D) Flatten() Vector {
	return Vector(t.data).Clone()
}

// Clone returns a deep copy.
func (t *Tensor3D) Clone() *Tensor3D {
	data := make([]fixed.Value, len(t.data))
	copy(data, t.data)
	return &Tensor3D{height: t.height, width: t.width, channels: t.channels, data: data}
}

// Equal reports whether both tensors have the same shape and bit patterns.
func (t *Tensor3D) Equal(other *Tensor3D) bool {
	if other == nil || !t.Shape().Equal(other.Shape()) {
		return false
	}
	return Vector(t.data).Equal(other.data)
}
