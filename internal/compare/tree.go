package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var stagePrefix = regexp.MustCompile(`^\d+_`)

// optionalStages are stage keys that only one kind of tree writes. The
// reference tree has no flatten stage; flatten is a reordering of the last
// pool stage, which is compared anyway.
var optionalStages = map[string]bool{
	"flatten": true,
}

// StageKey is the stage directory name without its numeric prefix and
// without a trailing "_output", so "23_fc3" and "22_fc3_output" pair up.
func StageKey(dir string) string {
	return strings.TrimSuffix(stagePrefix.ReplaceAllString(dir, ""), "_output")
}

// StageDiff is the comparison of one stage present in either tree.
type StageDiff struct {
	Key    string
	Left   string // Stage directory in the left tree, "" if absent
	Right  string
	Report *Report // nil when the stage is missing on one side
}

// Optional reports whether the stage is one-sided and may be absent from a
// tree without counting as a divergence.
func (s StageDiff) Optional() bool {
	return s.Report == nil && optionalStages[s.Key]
}

func (s StageDiff) diverged() bool {
	if s.Optional() {
		return false
	}
	return s.Report == nil || !s.Report.Equal()
}

// TreeReport is the result of CompareTrees, ordered like the left tree.
type TreeReport struct {
	Stages []StageDiff
}

// Equal reports whether every stage exists on both sides and matched.
// Optional stages present on one side only are ignored.
func (t *TreeReport) Equal() bool {
	for _, s := range t.Stages {
		if s.diverged() {
			return false
		}
	}
	return true
}

// FirstDivergence returns the earliest stage that differs.
func (t *TreeReport) FirstDivergence() (StageDiff, bool) {
	for _, s := range t.Stages {
		if s.diverged() {
			return s, true
		}
	}
	return StageDiff{}, false
}

// CompareTrees pairs the stage directories of two output trees by StageKey
// and compares each stage's main file.
func CompareTrees(left, right string) (*TreeReport, error) {
	ls, err := stageDirs(left)
	if err != nil {
		return nil, err
	}
	rs, err := stageDirs(right)
	if err != nil {
		return nil, err
	}

	rightByKey := make(map[string]string, len(rs))
	for _, d := range rs {
		rightByKey[StageKey(d)] = d
	}

	report := &TreeReport{}
	seen := make(map[string]bool)
	for _, d := range ls {
		key := StageKey(d)
		seen[key] = true
		diff := StageDiff{Key: key, Left: d, Right: rightByKey[key]}
		if diff.Right != "" {
			diff.Report, err = compareStage(filepath.Join(left, d), filepath.Join(right, diff.Right))
			if err != nil {
				return nil, err
			}
		}
		report.Stages = append(report.Stages, diff)
	}
	for _, d := range rs {
		if key := StageKey(d); !seen[key] {
			report.Stages = append(report.Stages, StageDiff{Key: key, Right: d})
		}
	}
	return report, nil
}

func stageDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && stagePrefix.MatchString(e.Name()) {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func compareStage(a, b string) (*Report, error) {
	fa, err := mainFile(a)
	if err != nil {
		return nil, err
	}
	fb, err := mainFile(b)
	if err != nil {
		return nil, err
	}
	return CompareFiles(fa, fb)
}

// mainFile finds the stage's combined output file.
func mainFile(dir string) (string, error) {
	name := filepath.Base(dir)
	for _, candidate := range []string{name + "_all_channels.txt", name + "_output.txt"} {
		p := filepath.Join(dir, candidate)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("compare: no stage file in %s", dir)
}
