package serialization

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

// ReadValues decodes one value per non-blank line.
//
// Surrounding whitespace (including '\r') is trimmed. A malformed line yields
// a *fixed.FormatError carrying its 1-based line number.
func ReadValues(r io.Reader) ([]fixed.Value, error) {
	var vals []fixed.Value
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := fixed.DecodeBits(text)
		if err != nil {
			var fe *fixed.FormatError
			if errors.As(err, &fe) {
				fe.Line = line
			}
			return nil, err
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vals, nil
}

// ReadValuesFile reads every value of the file at path.
func ReadValuesFile(path string) ([]fixed.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	vals, err := ReadValues(f)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return vals, nil
}

// ReadCount reads the file at path and checks it holds exactly n values.
func ReadCount(path string, n int) ([]fixed.Value, error) {
	vals, err := ReadValuesFile(path)
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, &FileError{Op: "read", Path: path, Err: &CountError{Want: n, Got: len(vals)}}
	}
	return vals, nil
}

// ReadTensorFile reads a channel-planar feature map of the given shape.
func ReadTensorFile(path string, height, width, channels int) (*tensor.Tensor3D, error) {
	vals, err := ReadCount(path, height*width*channels)
	if err != nil {
		return nil, err
	}
	return tensor.FromPlanar(vals, height, width, channels)
}

// ReadVectorFile reads a vector of n values.
func ReadVectorFile(path string, n int) (tensor.Vector, error) {
	vals, err := ReadCount(path, n)
	if err != nil {
		return nil, err
	}
	return tensor.Vector(vals), nil
}

// ParseFloats reads decimal numbers separated by whitespace or commas.
// Lines starting with '#' are comments.
func ParseFloats(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
