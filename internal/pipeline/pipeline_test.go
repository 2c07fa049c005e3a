package pipeline_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fixnet/internal/backend/cpu"
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

func tinyTopology() topology.Topology {
	return topology.Topology{
		Name:  "tiny",
		Input: topology.Dims{Height: 6, Width: 6, Channels: 1},
		Conv: []topology.ConvLayer{
			{Name: "c1", Filters: 2, Kernel: 3, Stride: 1, Pool: &topology.Pool{Size: 2, Stride: 2}},
			{Name: "c2", Filters: 1, Kernel: 3, Stride: 1, Pad: 1},
		},
		Dense: []topology.DenseLayer{
			{Name: "fc1", Out: 3, ReLU: true},
			{Name: "fc2", Out: 2},
		},
	}
}

func randomValues(rng *rand.Rand, n int, spread int) []fixed.Value {
	out := make([]fixed.Value, n)
	for i := range out {
		out[i] = fixed.Value(rng.Intn(2*spread+1) - spread)
	}
	return out
}

func randomWeights(t *testing.T, rng *rand.Rand, topo topology.Topology) pipeline.Weights {
	t.Helper()
	flat, err := topo.FlatFeatures()
	require.NoError(t, err)

	var w pipeline.Weights
	for i, l := range topo.Conv {
		c := topo.ConvInput(i)
		bank, err := tensor.NewFilterBank(
			randomValues(rng, l.Kernel*l.Kernel*c*l.Filters, 6000),
			randomValues(rng, l.Filters, 2000),
			l.Kernel, c, l.Filters)
		require.NoError(t, err)
		w.Conv = append(w.Conv, bank)
	}
	for i, l := range topo.Dense {
		in := topo.DenseInput(i, flat)
		dense, err := tensor.NewDenseWeights(
			randomValues(rng, in*l.Out, 6000),
			randomValues(rng, l.Out, 2000),
			in, l.Out)
		require.NoError(t, err)
		w.Dense = append(w.Dense, dense)
	}
	return w
}

func randomInput(t *testing.T, rng *rand.Rand, d topology.Dims) *tensor.Tensor3D {
	t.Helper()
	x, err := tensor.FromHWC(randomValues(rng, d.Height*d.Width*d.Channels, 8192), d.Height, d.Width, d.Channels)
	require.NoError(t, err)
	return x
}

func TestRun_StageNamesAndShapes(t *testing.T) {
	topo := tinyTopology()
	rng := rand.New(rand.NewSource(1))

	p, err := pipeline.New(topo, randomWeights(t, rng, topo), cpu.Canonical())
	require.NoError(t, err)

	res, err := p.Run(randomInput(t, rng, topo.Input))
	require.NoError(t, err)

	names := make([]string, len(res.Stages))
	for i, s := range res.Stages {
		names[i] = s.Name
		assert.Equal(t, i, s.Index)
	}
	assert.Equal(t, []string{
		"00_input", "01_c1", "02_relu1", "03_maxpool1", "04_padding2",
		"05_c2", "06_relu2", "07_flatten", "08_fc1", "09_relu_fc1", "10_fc2",
	}, names)

	for i, spec := range p.Plan() {
		assert.True(t, res.Stages[i].Shape().Equal(spec.Shape), "stage %s", spec.Name)
		assert.Equal(t, spec.Vector, res.Stages[i].IsVector(), "stage %s", spec.Name)
	}
	assert.Len(t, res.Scores, 2)
	assert.Equal(t, res.Stages[10].Vector, res.Scores)
}

// The pipeline must equal composing the operators by hand.
func TestRun_MatchesManualComposition(t *testing.T) {
	topo := tinyTopology()
	rng := rand.New(rand.NewSource(7))
	w := randomWeights(t, rng, topo)
	input := randomInput(t, rng, topo.Input)

	for _, policy := range []fixed.Policy{fixed.Canonical(), fixed.ShiftSumDense(), fixed.Legacy()} {
		t.Run(policy.String(), func(t *testing.T) {
			b, err := cpu.New(policy)
			require.NoError(t, err)

			res, err := pipeline.RunPipeline(input, w, topo, policy)
			require.NoError(t, err)
			assert.Equal(t, policy, res.Policy)

			x, err := b.Conv2D(input, w.Conv[0], 1)
			require.NoError(t, err)
			x = b.ReLU(x)
			x, err = b.MaxPool2D(x, 2, 2)
			require.NoError(t, err)
			x, err = b.Pad(x, 1)
			require.NoError(t, err)
			x, err = b.Conv2D(x, w.Conv[1], 1)
			require.NoError(t, err)
			x = b.ReLU(x)
			v, err := b.Linear(x.Flatten(), w.Dense[0])
			require.NoError(t, err)
			v = b.ReLUVector(v)
			v, err = b.Linear(v, w.Dense[1])
			require.NoError(t, err)

			relu2, ok := res.Stage("06_relu2")
			require.True(t, ok)
			assert.True(t, x.Equal(relu2.Tensor))
			assert.Equal(t, v, res.Scores)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	topo := tinyTopology()
	rng := rand.New(rand.NewSource(3))
	w := randomWeights(t, rng, topo)
	input := randomInput(t, rng, topo.Input)

	p, err := pipeline.New(topo, w, cpu.Canonical())
	require.NoError(t, err)

	first, err := p.Run(input)
	require.NoError(t, err)
	second, err := p.Run(input)
	require.NoError(t, err)
	assert.Equal(t, first.Scores, second.Scores)

	original := input.Clone()
	_, err = p.Run(input)
	require.NoError(t, err)
	assert.True(t, original.Equal(input), "input must not be modified")
}

func TestNew_RejectsMismatchedWeights(t *testing.T) {
	topo := tinyTopology()
	w, err := pipeline.ZeroWeights(topo)
	require.NoError(t, err)

	bad := w
	bad.Conv = append([]*tensor.FilterBank(nil), w.Conv...)
	bad.Conv[1], err = tensor.ZeroFilterBank(3, 3, 1)
	require.NoError(t, err)
	_, err = pipeline.New(topo, bad, cpu.Canonical())
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	bad = w
	bad.Dense = w.Dense[:1]
	_, err = pipeline.New(topo, bad, cpu.Canonical())
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	bad = w
	bad.Dense = append([]*tensor.DenseWeights(nil), w.Dense...)
	bad.Dense[0], err = tensor.ZeroDense(5, 3)
	require.NoError(t, err)
	_, err = pipeline.New(topo, bad, cpu.Canonical())
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNew_RejectsImpossibleTopology(t *testing.T) {
	topo := tinyTopology()
	w, err := pipeline.ZeroWeights(topo)
	require.NoError(t, err)

	topo.Conv[0].Kernel = 9
	_, err = pipeline.New(topo, w, cpu.Canonical())
	assert.ErrorIs(t, err, tensor.ErrDimension)
}

func TestRun_RejectsWrongInputShape(t *testing.T) {
	topo := tinyTopology()
	w, err := pipeline.ZeroWeights(topo)
	require.NoError(t, err)
	p, err := pipeline.New(topo, w, cpu.Canonical())
	require.NoError(t, err)

	x, err := tensor.NewTensor3D(6, 6, 3)
	require.NoError(t, err)
	_, err = p.Run(x)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = p.Run(nil)
	assert.Error(t, err)
}

func TestRunPipeline_InvalidPolicy(t *testing.T) {
	topo := tinyTopology()
	w, err := pipeline.ZeroWeights(topo)
	require.NoError(t, err)
	x, err := tensor.NewTensor3D(6, 6, 1)
	require.NoError(t, err)

	_, err = pipeline.RunPipeline(x, w, topo, fixed.Policy{})
	assert.Error(t, err)
}

func TestRun_AlexNetZeroInput(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size network")
	}
	topo := topology.AlexNet()
	w, err := pipeline.ZeroWeights(topo)
	require.NoError(t, err)
	x, err := tensor.NewTensor3D(227, 227, 3)
	require.NoError(t, err)

	res, err := pipeline.RunPipeline(x, w, topo, fixed.Canonical())
	require.NoError(t, err)
	require.Len(t, res.Stages, 24)
	assert.Equal(t, "23_fc3", res.Stages[23].Name)
	require.Len(t, res.Scores, 1000)
	for _, s := range res.Scores {
		require.Equal(t, fixed.Zero, s)
	}

	conv1, ok := res.Stage("01_conv1")
	require.True(t, ok)
	assert.True(t, conv1.Shape().Equal(tensor.Shape{55, 55, 64}))
	flat, ok := res.Stage("18_flatten")
	require.True(t, ok)
	assert.Len(t, flat.Vector, 9216)
}

func TestTopK(t *testing.T) {
	scores := tensor.Vector{5, -1, 9, 5, 9, 0}

	got := pipeline.TopK(scores, 4)
	assert.Equal(t, []pipeline.Prediction{
		{Index: 2, Score: 9},
		{Index: 4, Score: 9},
		{Index: 0, Score: 5},
		{Index: 3, Score: 5},
	}, got)

	assert.Len(t, pipeline.TopK(scores, 100), 6)
	assert.Nil(t, pipeline.TopK(scores, 0))
	assert.Nil(t, pipeline.TopK(nil, 5))
}

func TestStageOutput_Values(t *testing.T) {
	x, err := tensor.FromHWC([]fixed.Value{1, 2, 3, 4}, 1, 2, 2)
	require.NoError(t, err)
	s := pipeline.StageOutput{Tensor: x}
	assert.Equal(t, []fixed.Value{1, 3, 2, 4}, s.Values())

	v := pipeline.StageOutput{Vector: tensor.Vector{7, 8}}
	assert.Equal(t, []fixed.Value{7, 8}, v.Values())

	res := &pipeline.Result{Stages: []pipeline.StageOutput{{Name: "00_input"}}}
	_, ok := res.Stage("01_conv1")
	assert.False(t, ok)
}
