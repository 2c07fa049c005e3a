// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pipeline provides the public API for running a fixed-point CNN.
//
// A Pipeline is built from a Topology, its Weights and a backend; every
// shape is checked before the first operator runs. Run returns every stage
// output in order plus the final scores.
//
// Example:
//
//	topo := pipeline.AlexNet()
//	weights, err := pipeline.LoadWeights("weights/", topo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := pipeline.RunPipeline(input, weights, topo, fixed.Canonical())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range pipeline.TopK(res.Scores, 5) {
//	    fmt.Println(p.Index, p.Score)
//	}
package pipeline

import (
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/loader"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/tensor"
	"github.com/born-ml/fixnet/internal/topology"
)

// Core types.
type (
	Pipeline    = pipeline.Pipeline
	Backend     = pipeline.Backend
	Weights     = pipeline.Weights
	Result      = pipeline.Result
	StageOutput = pipeline.StageOutput
	Prediction  = pipeline.Prediction
)

// Topology types.
type (
	Topology   = topology.Topology
	Dims       = topology.Dims
	ConvLayer  = topology.ConvLayer
	DenseLayer = topology.DenseLayer
	Pool       = topology.Pool
	StageSpec  = topology.StageSpec
	Kind       = topology.Kind
)

// Stage kinds.
const (
	KindInput   = topology.KindInput
	KindPad     = topology.KindPad
	KindConv    = topology.KindConv
	KindReLU    = topology.KindReLU
	KindPool    = topology.KindPool
	KindFlatten = topology.KindFlatten
	KindDense   = topology.KindDense
)

// AlexNet returns the 227×227×3, 1000-class AlexNet topology.
func AlexNet() Topology { return topology.AlexNet() }

// LoadTopology reads a topology from a YAML file.
func LoadTopology(path string) (Topology, error) { return topology.Load(path) }

// LoadWeights reads every layer of topo from a weight directory.
func LoadWeights(dir string, topo Topology) (Weights, error) { return loader.Load(dir, topo) }

// ZeroWeights builds all-zero weights shaped for topo.
func ZeroWeights(topo Topology) (Weights, error) { return pipeline.ZeroWeights(topo) }

// New validates topo and weights and assembles a pipeline.
func New(topo Topology, weights Weights, backend Backend) (*Pipeline, error) {
	return pipeline.New(topo, weights, backend)
}

// RunPipeline builds a CPU pipeline for policy and runs input once.
func RunPipeline(input *tensor.Tensor3D, weights Weights, topo Topology, policy fixed.Policy) (*Result, error) {
	return pipeline.RunPipeline(input, weights, topo, policy)
}

// TopK returns the k highest scores, ties broken by lower index.
func TopK(scores tensor.Vector, k int) []Prediction { return pipeline.TopK(scores, k) }
