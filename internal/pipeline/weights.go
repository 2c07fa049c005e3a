package pipeline

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Weights holds the parameters of every layer, in topology order.
//
// Weights are read-only once built and may be shared across pipelines and
// concurrent runs.
type Weights struct {
	Conv  []*tensor.FilterBank
	Dense []*tensor.DenseWeights
}

// ZeroWeights builds all-zero weights shaped for topo.
func ZeroWeights(topo topology.Topology) (Weights, error) {
	flat, err := topo.FlatFeatures()
	if err != nil {
		return Weights{}, err
	}

	var w Weights
	for i, l := range topo.Conv {
		bank, err := tensor.ZeroFilterBank(l.Kernel, topo.ConvInput(i), l.Filters)
		if err != nil {
			return Weights{}, fmt.Errorf("%s: %w", l.Name, err)
		}
		w.Conv = append(w.Conv, bank)
	}
	for i, l := range topo.Dense {
		dense, err := tensor.ZeroDense(topo.DenseInput(i, flat), l.Out)
		if err != nil {
			return Weights{}, fmt.Errorf("%s: %w", l.Name, err)
		}
		w.Dense = append(w.Dense, dense)
	}
	return w, nil
}

// Check verifies that every layer's weights match topo.
func (w Weights) Check(topo topology.Topology) error {
	flat, err := topo.FlatFeatures()
	if err != nil {
		return err
	}

	if len(w.Conv) != len(topo.Conv) {
		return &tensor.ShapeMismatchError{
			What: "conv weights",
			Want: fmt.Sprintf("%d layers", len(topo.Conv)),
			Got:  fmt.Sprintf("%d layers", len(w.Conv)),
		}
	}
	for i, l := range topo.Conv {
		bank := w.Conv[i]
		if bank == nil {
			return fmt.Errorf("%s: missing filter bank", l.Name)
		}
		want := tensor.Shape{l.Kernel, l.Kernel, topo.ConvInput(i), l.Filters}
		if !bank.Shape().Equal(want) {
			return &tensor.ShapeMismatchError{What: l.Name + " filters", Want: want.String(), Got: bank.Shape().String()}
		}
	}

	if len(w.Dense) != len(topo.Dense) {
		return &tensor.ShapeMismatchError{
			What: "dense weights",
			Want: fmt.Sprintf("%d layers", len(topo.Dense)),
			Got:  fmt.Sprintf("%d layers", len(w.Dense)),
		}
	}
	for i, l := range topo.Dense {
		dense := w.Dense[i]
		if dense == nil {
			return fmt.Errorf("%s: missing dense weights", l.Name)
		}
		want := tensor.Shape{topo.DenseInput(i, flat), l.Out}
		if !dense.Shape().Equal(want) {
			return &tensor.ShapeMismatchError{What: l.Name + " weights", Want: want.String(), Got: dense.Shape().String()}
		}
	}
	return nil
}
