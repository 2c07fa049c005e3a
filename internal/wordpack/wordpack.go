// Package wordpack converts between 64-bit memory words and the 16-bit
// values they carry.
//
// A 64-bit word is written most significant bit first. Word 0 is its least
// significant 16 bits, so splitting "A-B-C-D" yields D, C, B, A.
package wordpack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/fixnet/internal/fixed"
)

// WordWidth is the width of a packed word in bits.
const WordWidth = 64

// Lanes is the number of 16-bit values per word.
const Lanes = WordWidth / fixed.BitWidth

var zeroLane = strings.Repeat("0", fixed.BitWidth)

// Split64 splits a 64-bit binary word into four 16-bit words, least
// significant first. Dashes are ignored.
func Split64(word string) ([Lanes]string, error) {
	var out [Lanes]string
	w := strings.ReplaceAll(strings.TrimSpace(word), "-", "")
	if len(w) != WordWidth {
		return out, &fixed.FormatError{
			Input:  word,
			Reason: fmt.Sprintf("expected %d bits, got %d", WordWidth, len(w)),
		}
	}
	if i := strings.IndexFunc(w, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		return out, &fixed.FormatError{
			Input:  word,
			Reason: fmt.Sprintf("non-binary character %q", w[i]),
		}
	}
	for i := 0; i < Lanes; i++ {
		lo := WordWidth - (i+1)*fixed.BitWidth
		out[i] = w[lo : lo+fixed.BitWidth]
	}
	return out, nil
}

// Merge64 joins four 16-bit words, least significant first, into one 64-bit
// word.
func Merge64(words [Lanes]string) (string, error) {
	var b strings.Builder
	b.Grow(WordWidth)
	for i := Lanes - 1; i >= 0; i-- {
		if _, err := fixed.DecodeBits(words[i]); err != nil {
			return "", err
		}
		b.WriteString(words[i])
	}
	return b.String(), nil
}

// SplitLines splits every non-blank line into four 16-bit lines.
func SplitLines(lines []string) ([]string, error) {
	out := make([]string, 0, Lanes*len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		words, err := Split64(line)
		if err != nil {
			var fe *fixed.FormatError
			if errors.As(err, &fe) {
				fe.Line = i + 1
			}
			return nil, err
		}
		out = append(out, words[:]...)
	}
	return out, nil
}

// MergeLines merges consecutive groups of four 16-bit lines into 64-bit
// lines. The input is padded with zero words up to a multiple of four; the
// number of padding words is returned.
func MergeLines(lines []string) (merged []string, padding int, err error) {
	var words []string
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		if _, err := fixed.DecodeBits(l); err != nil {
			var fe *fixed.FormatError
			if errors.As(err, &fe) {
				fe.Line = i + 1
			}
			return nil, 0, err
		}
		words = append(words, l)
	}
	if r := len(words) % Lanes; r != 0 {
		padding = Lanes - r
		for i := 0; i < padding; i++ {
			words = append(words, zeroLane)
		}
	}

	merged = make([]string, 0, len(words)/Lanes)
	for i := 0; i < len(words); i += Lanes {
		var group [Lanes]string
		copy(group[:], words[i:i+Lanes])
		w, err := Merge64(group)
		if err != nil {
			return nil, 0, err
		}
		merged = append(merged, w)
	}
	return merged, padding, nil
}
