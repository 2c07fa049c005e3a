// Package segment cuts an input feature map into overlapping horizontal
// tiles sized for the accelerator's input buffer.
package segment

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
)

// Config sets the tile height and the rows shared by neighbouring tiles.
type Config struct {
	RowsPerSegment int `yaml:"rows_per_segment"`
	Overlap        int `yaml:"overlap"`
}

// DefaultConfig returns 35-row tiles overlapping by 7 rows.
func DefaultConfig() Config {
	return Config{RowsPerSegment: 35, Overlap: 7}
}

// Validate checks that tiles advance.
func (c Config) Validate() error {
	if c.RowsPerSegment <= 0 || c.Overlap < 0 || c.Overlap >= c.RowsPerSegment {
		return &tensor.DimensionError{
			Op:     "segment",
			Detail: fmt.Sprintf("rows_per_segment=%d overlap=%d", c.RowsPerSegment, c.Overlap),
		}
	}
	return nil
}

// Starts returns the first row of every tile. Tiles step by
// RowsPerSegment-Overlap until one reaches the last row.
func (c Config) Starts(totalRows int) []int {
	starts := []int{0}
	step := c.RowsPerSegment - c.Overlap
	for last := 0; last+c.RowsPerSegment < totalRows; {
		last += step
		starts = append(starts, last)
	}
	return starts
}

// Segment cuts t into RowsPerSegment-high tiles. Rows past the bottom of t
// are zero.
func Segment(t *tensor.Tensor3D, cfg Config) ([]*tensor.Tensor3D, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, c := t.Width(), t.Channels()
	rowLen := w * c
	src := t.Data()

	var out []*tensor.Tensor3D
	for _, start := range cfg.Starts(t.Height()) {
		tile, err := tensor.NewTensor3D(cfg.RowsPerSegment, w, c)
		if err != nil {
			return nil, err
		}
		dst := tile.Data()
		for r := 0; r < cfg.RowsPerSegment && start+r < t.Height(); r++ {
			copy(dst[r*rowLen:(r+1)*rowLen], src[(start+r)*rowLen:(start+r+1)*rowLen])
		}
		out = append(out, tile)
	}
	return out, nil
}

// FileName returns the 1-based tile file name.
func FileName(i int) string {
	return fmt.Sprintf("segment_%d.txt", i+1)
}
