package serialization

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

// WriteValues encodes one value per line.
func WriteValues(w io.Writer, vals []fixed.Value) error {
	var line [fixed.BitWidth + 1]byte
	line[fixed.BitWidth] = '\n'
	for _, v := range vals {
		copy(line[:], fixed.EncodeBits(v))
		if _, err := w.Write(line[:]); err != nil {
			return err
		}
	}
	return nil
}

// WriteValuesFile writes vals to path, creating parent directories.
func WriteValuesFile(path string, vals []fixed.Value) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Op: "write", Path: path, Err: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WriteValues(bw, vals); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteTensorFile writes t channel planar.
func WriteTensorFile(path string, t *tensor.Tensor3D) error {
	return WriteValuesFile(path, t.Planar())
}

// WriteVectorFile writes v in index order.
func WriteVectorFile(path string, v tensor.Vector) error {
	return WriteValuesFile(path, v)
}
