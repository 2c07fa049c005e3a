package pipeline

import (
	"sort"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// StageOutput is the result of one stage. Exactly one of Tensor and Vector is
// set.
type StageOutput struct {
	Index  int
	Name   string
	Kind   topology.Kind
	Tensor *tensor.Tensor3D
	Vector tensor.Vector
}

// IsVector reports whether the stage produced a vector.
func (s StageOutput) IsVector() bool { return s.Tensor == nil }

// Shape returns the output shape.
func (s StageOutput) Shape() tensor.Shape {
	if s.Tensor != nil {
		return s.Tensor.Shape()
	}
	return tensor.Shape{len(s.Vector)}
}

// Values returns the output in file order: channel planar for feature maps,
// as-is for vectors.
func (s StageOutput) Values() []fixed.Value {
	if s.Tensor != nil {
		return s.Tensor.Planar()
	}
	return s.Vector
}

// Result holds every stage output of one run, in pipeline order, the final
// scores and the arithmetic policy that produced them.
type Result struct {
	Stages []StageOutput
	Scores tensor.Vector
	Policy fixed.Policy
}

// Stage looks up a stage by name.
func (r *Result) Stage(name string) (StageOutput, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageOutput{}, false
}

// Prediction is one ranked class score.
type Prediction struct {
	Index int
	Score fixed.Value
}

// TopK returns the k highest scores in descending order. Equal scores rank
// the lower index first. k is clamped to len(scores).
func TopK(scores tensor.Vector, k int) []Prediction {
	if k > len(scores) {
		k = len(scores)
	}
	if k <= 0 {
		return nil
	}
	preds := make([]Prediction, len(scores))
	for i, s := range scores {
		preds[i] = Prediction{Index: i, Score: s}
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Score > preds[j].Score
	})
	return preds[:k]
}
