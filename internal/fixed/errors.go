package fixed

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("malformed fixed-point bit string")

// FormatError describes a bit string that is not exactly 16 binary digits.
type FormatError struct {
	Line   int    // 1-based line number, 0 when not read from a file
	Input  string // Offending text
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format: line %d: %q: %s", e.Line, e.Input, e.Reason)
	}
	return fmt.Sprintf("format: %q: %s", e.Input, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
