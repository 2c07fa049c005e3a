// Package pipeline runs the fixed-point CNN stage by stage and exposes every
// intermediate result.
//
// A Pipeline is built once from a topology, its weights and a backend. Plan
// and weight shapes are checked in New, so Run fails only on a wrong input
// shape. Run holds no mutable state and may be called concurrently.
package pipeline

import (
	"fmt"

	"github.com/born-ml/fixnet/internal/backend/cpu"
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/nn"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Backend is what the pipeline needs from a compute backend.
type Backend interface {
	nn.Backend
	Policy() fixed.Policy
}

// Pipeline is a validated, ready-to-run network.
type Pipeline struct {
	topo    topology.Topology
	plan    []topology.StageSpec
	seq     *nn.Sequential
	weights Weights
	policy  fixed.Policy
}

// New validates topo and weights against each other and assembles the stage
// modules.
func New(topo topology.Topology, weights Weights, backend Backend) (*Pipeline, error) {
	if backend == nil {
		return nil, fmt.Errorf("pipeline: nil backend")
	}
	plan, err := topo.Plan()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := weights.Check(topo); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	seq := nn.NewSequential()
	for _, s := range plan[1:] {
		seq.Add(buildModule(s, weights, backend))
	}

	return &Pipeline{
		topo:    topo.Clone(),
		plan:    plan,
		seq:     seq,
		weights: weights,
		policy:  backend.Policy(),
	}, nil
}

func buildModule(s topology.StageSpec, w Weights, b Backend) nn.Module {
	switch s.Kind {
	case topology.KindPad:
		return nn.NewPadding(s.Name, s.Amount, b)
	case topology.KindConv:
		return nn.NewConv2D(s.Name, w.Conv[s.Layer], s.Stride, b)
	case topology.KindReLU:
		return nn.NewReLU(s.Name, b)
	case topology.KindPool:
		return nn.NewMaxPool2D(s.Name, s.Size, s.Stride, b)
	case topology.KindFlatten:
		return nn.NewFlatten(s.Name)
	case topology.KindDense:
		return nn.NewLinear(s.Name, w.Dense[s.Layer], b)
	default:
		panic(fmt.Sprintf("pipeline: unexpected stage kind %v", s.Kind))
	}
}

// RunPipeline builds a CPU pipeline for the given policy and runs it once.
func RunPipeline(input *tensor.Tensor3D, weights Weights, topo topology.Topology, policy fixed.Policy) (*Result, error) {
	backend, err := cpu.New(policy)
	if err != nil {
		return nil, err
	}
	p, err := New(topo, weights, backend)
	if err != nil {
		return nil, err
	}
	return p.Run(input)
}

// Topology returns a copy of the pipeline's topology.
func (p *Pipeline) Topology() topology.Topology { return p.topo.Clone() }

// Plan returns the ordered stage list, including the input stage.
func (p *Pipeline) Plan() []topology.StageSpec {
	return append([]topology.StageSpec(nil), p.plan...)
}

// Policy returns the arithmetic policy of the backend.
func (p *Pipeline) Policy() fixed.Policy { return p.policy }

// Weights returns the weights the pipeline was built with.
func (p *Pipeline) Weights() Weights { return p.weights }

// Run pushes one quantized input through every stage.
func (p *Pipeline) Run(input *tensor.Tensor3D) (*Result, error) {
	if input == nil {
		return nil, fmt.Errorf("pipeline: nil input")
	}
	want := p.topo.Input.Shape()
	if !input.Shape().Equal(want) {
		return nil, fmt.Errorf("pipeline: %w", &tensor.ShapeMismatchError{
			What: "input",
			Want: want.String(),
			Got:  input.Shape().String(),
		})
	}

	outs, err := p.seq.ForwardAll(nn.TensorActivation(input))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	res := &Result{Stages: make([]StageOutput, 0, len(p.plan)), Policy: p.policy}
	res.Stages = append(res.Stages, StageOutput{
		Index:  0,
		Name:   p.plan[0].Name,
		Kind:   topology.KindInput,
		Tensor: input,
	})
	for i, a := range outs {
		spec := p.plan[i+1]
		if !a.Shape().Equal(spec.Shape) {
			return nil, fmt.Errorf("pipeline: %w", &tensor.ShapeMismatchError{
				What: spec.Name,
				Want: spec.Shape.String(),
				Got:  a.Shape().String(),
			})
		}
		res.Stages = append(res.Stages, StageOutput{
			Index:  spec.Index,
			Name:   spec.Name,
			Kind:   spec.Kind,
			Tensor: a.Tensor,
			Vector: a.Vector,
		})
	}
	res.Scores = res.Stages[len(res.Stages)-1].Vector
	return res, nil
}
