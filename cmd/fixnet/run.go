package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/fixnet/internal/backend/cpu"
	"github.com/born-ml/fixnet/internal/batch"
	"github.com/born-ml/fixnet/internal/config"
	"github.com/born-ml/fixnet/internal/loader"
	"github.com/born-ml/fixnet/internal/output"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/report"
	"github.com/born-ml/fixnet/internal/topology"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	weightsDir := fs.String("weights", "", "Override weights directory")
	inputDir := fs.String("inputs", "", "Override input directory")
	outputDir := fs.String("out", "", "Override output directory")
	glob := fs.String("glob", "", "Override input file pattern")
	classIndex := fs.String("labels", "", "Class index JSON file")
	topoPath := fs.String("topology", "", "Topology YAML file (default: built-in AlexNet)")
	policy := fs.String("policy", "", "Arithmetic policy: canonical, shift-sum-dense or legacy")
	workers := fs.Int("workers", 0, "Inputs processed concurrently")
	opWorkers := fs.Int("op-workers", 0, "Goroutines per operator (default: GOMAXPROCS)")
	perChannel := fs.Bool("per-channel", false, "Also write one file per channel")
	topK := fs.Int("top", 0, "Predictions to print per input")
	_ = fs.Parse(args)

	cfg := &config.Config{}
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(config.Overrides{
		WeightsDir: *weightsDir,
		InputDir:   *inputDir,
		OutputDir:  *outputDir,
		InputsGlob: *glob,
		ClassIndex: *classIndex,
		Topology:   *topoPath,
		Policy:     *policy,
		Workers:    *workers,
		OpWorkers:  *opWorkers,
		PerChannel: *perChannel,
		TopK:       *topK,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	topo, err := cfg.LoadTopology()
	if err != nil {
		log.Fatalf("load topology: %v", err)
	}
	pol, err := cfg.ArithmeticPolicy()
	if err != nil {
		log.Fatalf("invalid policy: %v", err)
	}

	opCfg := parallel.DefaultConfig()
	if cfg.OpWorkers > 0 {
		opCfg = opCfg.WithWorkers(cfg.OpWorkers)
	}
	backend, err := cpu.New(pol, cpu.WithParallel(opCfg))
	if err != nil {
		log.Fatalf("backend: %v", err)
	}

	weights, err := loader.LoadWith(cfg.WeightsDir, topo, opCfg)
	if err != nil {
		log.Fatalf("load weights from %s: %v", cfg.WeightsDir, err)
	}
	log.Printf("weights=%s topology=%s policy=%q conv_layers=%d dense_layers=%d",
		cfg.WeightsDir, topo.Name, pol.Label(), len(weights.Conv), len(weights.Dense))

	p, err := pipeline.New(topo, weights, backend)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	var labels report.Labels
	if cfg.ClassIndex != "" {
		labels, err = report.LoadLabels(cfg.ClassIndex)
		if err != nil {
			log.Fatalf("load class index: %v", err)
		}
	}

	inputs, err := batch.Discover(cfg.InputDir, cfg.InputsGlob)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		log.Fatalf("no inputs matching %s in %s", cfg.InputsGlob, cfg.InputDir)
	}
	log.Printf("inputs=%d workers=%d output=%s", len(inputs), cfg.Workers, cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &batch.Runner{
		Pipeline: p,
		Writer: &output.Writer{
			Root:       cfg.OutputDir,
			PerChannel: cfg.PerChannel,
			Topology:   topo.Name,
			TopK:       cfg.TopK,
			Parallel:   opCfg,
		},
		Workers: cfg.Workers,
		Report:  os.Stdout,
		Labels:  labels,
		TopK:    cfg.TopK,
	}
	sum, err := runner.Run(ctx, inputs)
	if err != nil {
		return err
	}
	for name, err := range sum.Errors {
		log.Printf("input=%s failed: %v", name, err)
	}
	if sum.Succeeded == 0 {
		return errors.New("every input failed")
	}
	return nil
}

func planCmd(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	topoPath := fs.String("topology", "", "Topology YAML file (default: built-in AlexNet)")
	dump := fs.Bool("yaml", false, "Print the topology as YAML instead of the stage list")
	_ = fs.Parse(args)

	cfg := &config.Config{Topology: *topoPath}
	topo, err := cfg.LoadTopology()
	if err != nil {
		return err
	}
	if *dump {
		data, err := topology.Marshal(topo)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	plan, err := topo.Plan()
	if err != nil {
		return err
	}
	for _, s := range plan {
		fmt.Printf("%-14s %-8s %s\n", s.Name, s.Kind, s.Shape)
	}
	return nil
}
