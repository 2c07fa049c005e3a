package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
	ErrValueCount       = errors.New("unexpected number of values")
)

// FileError attaches a path to a read or write failure.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error { return e.Err }

// CountError reports a file holding the wrong number of values.
type CountError struct {
	Want int
	Got  int
}

// Error implements the error interface.
func (e *CountError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d", ErrValueCount, e.Want, e.Got)
}

// Is reports whether target is ErrValueCount.
func (e *CountError) Is(target error) bool {
	return target == ErrValueCount
}
