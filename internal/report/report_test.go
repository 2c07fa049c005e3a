package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
)

const classIndex = `{"0": ["n01440764", "tench"], "1": ["n01443537", "goldfish"], "2": ["n01484850", "great_white_shark"]}`

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels(strings.NewReader(classIndex))
	require.NoError(t, err)
	assert.Len(t, labels, 3)
	assert.Equal(t, "Great White Shark", labels.Name(2))
	assert.Equal(t, "Unknown Class", labels.Name(999))

	_, err = ParseLabels(strings.NewReader(`{"x": ["a"]}`))
	assert.Error(t, err)
	_, err = ParseLabels(strings.NewReader(`{"0": []}`))
	assert.Error(t, err)
	_, err = ParseLabels(strings.NewReader(`{"0": ["n01440764"]}`))
	assert.Error(t, err)
	_, err = ParseLabels(strings.NewReader(`[`))
	assert.Error(t, err)
}

func TestLabelsName_TitleCase(t *testing.T) {
	labels := Labels{
		0: "jack-o'-lantern",
		1: "African_elephant",
		2: "CD_player",
		3: "3D_glasses",
	}
	assert.Equal(t, "Jack-O'-Lantern", labels.Name(0))
	assert.Equal(t, "African Elephant", labels.Name(1))
	assert.Equal(t, "Cd Player", labels.Name(2))
	assert.Equal(t, "3D Glasses", labels.Name(3))
}

func TestRankAndWrite(t *testing.T) {
	labels, err := ParseLabels(strings.NewReader(classIndex))
	require.NoError(t, err)

	scores := tensor.Vector{fixed.Quantize(0.5), fixed.Quantize(-1), fixed.Quantize(1.25)}
	ranked := Rank(scores, 2, labels)
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].Index)
	assert.Equal(t, 1.25, ranked[0].Score)
	assert.Equal(t, int16(10240), ranked[0].Raw)
	assert.Equal(t, "Tench", ranked[1].Label)
	assert.Equal(t, 2, ranked[1].Rank)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "cat", ranked))
	out := buf.String()
	assert.Contains(t, out, "top 2 predictions for cat")
	assert.Contains(t, out, " 1. Great White Shark")
	assert.Contains(t, out, "score=1.250000 raw=10240")
}
