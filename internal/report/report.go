// Package report turns score vectors into labelled, human-readable
// predictions.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/tensor"
)

// Labels maps class indices to display names.
type Labels map[int]string

// LoadLabels reads a class index JSON file of the form
// {"0": ["n01440764", "tench"], ...}.
func LoadLabels(path string) (Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	defer f.Close()
	return ParseLabels(f)
}

// ParseLabels decodes a class index JSON document. The second element of each
// entry is the display name.
func ParseLabels(r io.Reader) (Labels, error) {
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	labels := make(Labels, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("labels: key %q: %w", k, err)
		}
		if len(v) < 2 {
			return nil, fmt.Errorf("labels: key %q has no name", k)
		}
		labels[idx] = v[1]
	}
	return labels, nil
}

// Name returns the display name of class idx in title case, with
// underscores replaced by spaces ("great_white_shark" is "Great White Shark").
func (l Labels) Name(idx int) string {
	name, ok := l[idx]
	if !ok {
		return "Unknown Class"
	}
	return titleCase(strings.ReplaceAll(name, "_", " "))
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && prevLetter:
			r = unicode.ToLower(r)
		case isLetter:
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLetter = isLetter
	}
	return b.String()
}

// Ranked is one labelled prediction.
type Ranked struct {
	Rank  int
	Index int
	Label string
	Raw   int16
	Score float64
}

// Rank returns the top k labelled predictions.
func Rank(scores tensor.Vector, k int, labels Labels) []Ranked {
	preds := pipeline.TopK(scores, k)
	out := make([]Ranked, len(preds))
	for i, p := range preds {
		out[i] = Ranked{
			Rank:  i + 1,
			Index: p.Index,
			Label: labels.Name(p.Index),
			Raw:   int16(p.Score),
			Score: p.Score.Float(),
		}
	}
	return out
}

// Write prints ranked predictions, one per line.
func Write(w io.Writer, input string, ranked []Ranked) error {
	if _, err := fmt.Fprintf(w, "top %d predictions for %s\n", len(ranked), input); err != nil {
		return err
	}
	for _, r := range ranked {
		_, err := fmt.Fprintf(w, "%2d. %-32s index=%-4d score=%.6f raw=%d\n", r.Rank, r.Label, r.Index, r.Score, r.Raw)
		if err != nil {
			return err
		}
	}
	return nil
}
