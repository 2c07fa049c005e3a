package tensor

import "github.com/born-ml/fixnet/internal/fixed"

// Vector is a flat sequence of Q3.13 values used for flattened feature maps,
// dense activations and biases.
type Vector []fixed.Value

// Len returns the number of elements.
func (v Vector) Len() int { return len(v) }

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Equal reports whether both vectors hold the same bit patterns.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}
