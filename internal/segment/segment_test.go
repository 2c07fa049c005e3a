package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

func TestStarts_Default(t *testing.T) {
	assert.Equal(t, []int{0, 28, 56, 84, 112, 140, 168, 196}, DefaultConfig().Starts(227))
	assert.Equal(t, []int{0}, DefaultConfig().Starts(35))
	assert.Equal(t, []int{0, 28}, DefaultConfig().Starts(36))
	assert.Equal(t, []int{0}, DefaultConfig().Starts(10))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	for _, cfg := range []Config{{0, 0}, {5, 5}, {5, -1}} {
		assert.ErrorIs(t, cfg.Validate(), tensor.ErrDimension, "%+v", cfg)
	}
}

func TestSegment_RowsAndPadding(t *testing.T) {
	// 5 rows x 2 cols x 2 channels, value = row*10 + col + 100*channel.
	x, err := tensor.NewTensor3D(5, 2, 2)
	require.NoError(t, err)
	for h := 0; h < 5; h++ {
		for w := 0; w < 2; w++ {
			for c := 0; c < 2; c++ {
				x.Set(fixed.Value(h*10+w+100*c), h, w, c)
			}
		}
	}

	tiles, err := Segment(x, Config{RowsPerSegment: 3, Overlap: 1})
	require.NoError(t, err)
	require.Len(t, tiles, 2) // starts 0, 2

	first := tiles[0]
	assert.True(t, first.Shape().Equal(tensor.Shape{3, 2, 2}))
	assert.Equal(t, fixed.Value(21), first.At(2, 1, 0))

	second := tiles[1]
	assert.Equal(t, fixed.Value(20), second.At(0, 0, 0))
	assert.Equal(t, fixed.Value(141), second.At(2, 1, 1))

	// Planar layout concatenates whole channels.
	assert.Equal(t, []fixed.Value{20, 21, 30, 31, 40, 41, 120, 121, 130, 131, 140, 141}, second.Planar())

	tiles, err = Segment(x, Config{RowsPerSegment: 4, Overlap: 0})
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	last := tiles[1]
	assert.Equal(t, fixed.Value(40), last.At(0, 0, 0))
	for h := 1; h < 4; h++ {
		assert.Equal(t, fixed.Zero, last.At(h, 1, 1), "row %d past the bottom", h)
	}
}

func TestSegment_InvalidConfig(t *testing.T) {
	x, err := tensor.NewTensor3D(4, 4, 1)
	require.NoError(t, err)
	_, err = Segment(x, Config{RowsPerSegment: 2, Overlap: 2})
	assert.ErrorIs(t, err, tensor.ErrDimension)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "segment_1.txt", FileName(0))
	assert.Equal(t, "segment_8.txt", FileName(7))
}
