package loader

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/serialization"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// File name suffixes.
const (
	ConvFilterSuffix  = "_filter_16.txt"
	ConvBiasSuffix    = "_bias_16.txt"
	DenseWeightSuffix = "_weights.pth.txt"
	DenseBiasSuffix   = "_biases.pth.txt"
)

// LayerFiles names the two files of one layer.
type LayerFiles struct {
	Layer   string
	Weights string
	Bias    string
}

// Files lists the weight files topo expects under dir, conv layers first.
func Files(dir string, topo topology.Topology) []LayerFiles {
	files := make([]LayerFiles, 0, len(topo.Conv)+len(topo.Dense))
	for _, l := range topo.Conv {
		files = append(files, LayerFiles{
			Layer:   l.Name,
			Weights: filepath.Join(dir, l.Stem()+ConvFilterSuffix),
			Bias:    filepath.Join(dir, l.Stem()+ConvBiasSuffix),
		})
	}
	for _, l := range topo.Dense {
		files = append(files, LayerFiles{
			Layer:   l.Name,
			Weights: filepath.Join(dir, l.Stem()+DenseWeightSuffix),
			Bias:    filepath.Join(dir, l.Stem()+DenseBiasSuffix),
		})
	}
	return files
}

// Load reads every layer of topo from dir. Layers are read in parallel; any
// failure fails the whole load.
func Load(dir string, topo topology.Topology) (pipeline.Weights, error) {
	return LoadWith(dir, topo, parallel.DefaultConfig())
}

// LoadWith is Load with an explicit parallel configuration.
func LoadWith(dir string, topo topology.Topology, cfg parallel.Config) (pipeline.Weights, error) {
	flat, err := topo.FlatFeatures()
	if err != nil {
		return pipeline.Weights{}, err
	}

	files := Files(dir, topo)
	w := pipeline.Weights{
		Conv:  make([]*tensor.FilterBank, len(topo.Conv)),
		Dense: make([]*tensor.DenseWeights, len(topo.Dense)),
	}
	nConv := len(topo.Conv)

	errs := parallel.ForEach(len(files), func(i int) error {
		if i < nConv {
			l := topo.Conv[i]
			bank, err := loadConv(files[i], l.Filters, topo.ConvInput(i), l.Kernel)
			w.Conv[i] = bank
			return err
		}
		j := i - nConv
		dense, err := loadDense(files[i], topo.Dense[j].Out, topo.DenseInput(j, flat))
		w.Dense[j] = dense
		return err
	}, cfg)

	if err := errors.Join(errs...); err != nil {
		return pipeline.Weights{}, err
	}
	return w, nil
}

func loadConv(f LayerFiles, out, in, kernel int) (*tensor.FilterBank, error) {
	flat, bias, err := readPair(f)
	if err != nil {
		return nil, err
	}
	bank, err := tensor.FilterBankFromOIKK(flat, tensor.Vector(bias), out, in, kernel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Layer, err)
	}
	return bank, nil
}

func loadDense(f LayerFiles, out, in int) (*tensor.DenseWeights, error) {
	flat, bias, err := readPair(f)
	if err != nil {
		return nil, err
	}
	dense, err := tensor.DenseFromOI(flat, tensor.Vector(bias), out, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Layer, err)
	}
	return dense, nil
}

func readPair(f LayerFiles) (weights, bias []fixed.Value, err error) {
	weights, err = serialization.ReadValuesFile(f.Weights)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.Layer, err)
	}
	bias, err = serialization.ReadValuesFile(f.Bias)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.Layer, err)
	}
	return weights, bias, nil
}

// Save writes w under dir in the on-disk layouts Load reads.
func Save(dir string, topo topology.Topology, w pipeline.Weights) error {
	if err := w.Check(topo); err != nil {
		return err
	}
	files := Files(dir, topo)
	for i, bank := range w.Conv {
		if err := writePair(files[i], convOIKK(bank), biasOf(bank.OutChannels(), bank.Bias)); err != nil {
			return err
		}
	}
	for j, dense := range w.Dense {
		f := files[len(w.Conv)+j]
		if err := writePair(f, denseOI(dense), biasOf(dense.Out(), dense.Bias)); err != nil {
			return err
		}
	}
	return nil
}

func writePair(f LayerFiles, weights, bias []fixed.Value) error {
	if err := serialization.WriteValuesFile(f.Weights, weights); err != nil {
		return fmt.Errorf("%s: %w", f.Layer, err)
	}
	if err := serialization.WriteValuesFile(f.Bias, bias); err != nil {
		return fmt.Errorf("%s: %w", f.Layer, err)
	}
	return nil
}

func convOIKK(b *tensor.FilterBank) []fixed.Value {
	k, c, m := b.Kernel(), b.InChannels(), b.OutChannels()
	out := make([]fixed.Value, 0, k*k*c*m)
	for o := 0; o < m; o++ {
		for in := 0; in < c; in++ {
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					out = append(out, b.At(i, j, in, o))
				}
			}
		}
	}
	return out
}

func denseOI(d *tensor.DenseWeights) []fixed.Value {
	out := make([]fixed.Value, 0, d.In()*d.Out())
	for o := 0; o < d.Out(); o++ {
		out = append(out, d.Column(o)...)
	}
	return out
}

func biasOf(n int, at func(int) fixed.Value) []fixed.Value {
	out := make([]fixed.Value, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}
