// Package compare checks two bit-text files, or two stage trees, line by
// line and reports every differing line.
package compare

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/born-ml/fixnet/internal/fixed"
)

// Missing stands in for a line past the end of the shorter file.
const Missing = "<missing>"

// Mismatch is one differing line.
type Mismatch struct {
	Line  int // 1-based
	Left  string
	Right string
}

// Values decodes both sides. ok is false when either side is not a valid
// bit string, including Missing.
func (m Mismatch) Values() (left, right fixed.Value, ok bool) {
	l, err := fixed.DecodeBits(m.Left)
	if err != nil {
		return 0, 0, false
	}
	r, err := fixed.DecodeBits(m.Right)
	if err != nil {
		return 0, 0, false
	}
	return l, r, true
}

// Report is the result of comparing two files.
type Report struct {
	LeftName   string
	RightName  string
	LeftLines  int
	RightLines int
	Mismatches []Mismatch

	left, right []string
}

// Equal reports whether the files matched line for line.
func (r *Report) Equal() bool { return len(r.Mismatches) == 0 }

// MaxDelta returns the largest absolute raw difference over mismatches
// that decode on both sides.
func (r *Report) MaxDelta() int {
	maxDelta := 0
	for _, m := range r.Mismatches {
		l, rv, ok := m.Values()
		if !ok {
			continue
		}
		d := int(l) - int(rv)
		if d < 0 {
			d = -d
		}
		maxDelta = max(maxDelta, d)
	}
	return maxDelta
}

// Format writes the report in the line-by-line style:
//
//	Line 3:
//	  File1: 0000000000000001
//	  File2: <missing>
func (r *Report) Format(w io.Writer) error {
	for _, m := range r.Mismatches {
		if _, err := fmt.Fprintf(w, "Line %d:\n  File1: %s\n  File2: %s\n\n", m.Line, m.Left, m.Right); err != nil {
			return err
		}
	}
	var err error
	if r.Equal() {
		_, err = fmt.Fprintln(w, "All lines matched.")
	} else {
		_, err = fmt.Fprintf(w, "Total mismatched lines: %d\n", len(r.Mismatches))
	}
	return err
}

// Unified renders the comparison as a unified diff with the given number of
// context lines.
func (r *Report) Unified(context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(r.left),
		B:        withNewlines(r.right),
		FromFile: r.LeftName,
		ToFile:   r.RightName,
		Context:  context,
	})
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}

// Compare reads both inputs fully and compares them line by line.
// Line terminators are not part of the compared text.
func Compare(a, b io.Reader) (*Report, error) {
	left, err := readLines(a)
	if err != nil {
		return nil, err
	}
	right, err := readLines(b)
	if err != nil {
		return nil, err
	}
	return compareLines(left, right), nil
}

// CompareFiles compares the files at pathA and pathB.
func CompareFiles(pathA, pathB string) (*Report, error) {
	fa, err := os.Open(pathA)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	defer fa.Close()
	fb, err := os.Open(pathB)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	defer fb.Close()

	r, err := Compare(fa, fb)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	r.LeftName, r.RightName = pathA, pathB
	return r, nil
}

func compareLines(left, right []string) *Report {
	r := &Report{
		LeftName:   "a",
		RightName:  "b",
		LeftLines:  len(left),
		RightLines: len(right),
		left:       left,
		right:      right,
	}
	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		l, rt := Missing, Missing
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			rt = right[i]
		}
		if l != rt {
			r.Mismatches = append(r.Mismatches, Mismatch{Line: i + 1, Left: l, Right: rt})
		}
	}
	return r
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
