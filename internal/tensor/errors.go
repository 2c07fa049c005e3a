package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrDimension     = errors.New("invalid dimensions")
)

// ShapeMismatchError reports an element count or dimension that does not
// match what the consumer declared.
type ShapeMismatchError struct {
	What string // What was being checked (e.g. "conv1 filter", "ifmap")
	Want string
	Got  string
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %s: want %s, got %s", e.What, e.Want, e.Got)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// DimensionError reports window parameters that produce a non-positive
// output size.
type DimensionError struct {
	Op     string // Operator name (e.g. "conv2d", "maxpool2d")
	Detail string
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: invalid dimensions: %s", e.Op, e.Detail)
}

// Is reports whether target is ErrDimension.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimension
}

func countMismatch(what string, want, got int) error {
	return &ShapeMismatchError{What: what, Want: fmt.Sprintf("%d elements", want), Got: fmt.Sprintf("%d elements", got)}
}
