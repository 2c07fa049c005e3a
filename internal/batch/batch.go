// Package batch runs a pipeline over many independent inputs.
//
// Inputs are processed concurrently. A failing input is logged, counted and
// skipped; it never affects the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/born-ml/fixnet/internal/metrics"
	"github.com/born-ml/fixnet/internal/output"
	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/report"
	"github.com/born-ml/fixnet/internal/serialization"
)

// Input is one quantized input file.
type Input struct {
	Name string // Output directory name
	Path string
}

// Discover lists the files in dir matching glob, sorted by name. Each input
// is named after its file without the extension.
func Discover(dir, glob string) ([]Input, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	sort.Strings(matches)

	var inputs []Input
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		base := filepath.Base(m)
		inputs = append(inputs, Input{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: m})
	}
	return inputs, nil
}

// Runner holds everything shared by the inputs of a batch.
type Runner struct {
	Pipeline *pipeline.Pipeline
	Writer   *output.Writer // nil skips writing stage trees
	Workers  int

	// Predictions are printed to Report when it is set.
	Report io.Writer
	Labels report.Labels
	TopK   int

	window metrics.Window
	mu     sync.Mutex
}

// Summary is the outcome of a batch.
type Summary struct {
	Succeeded int
	Failed    int
	Errors    map[string]error
	Metrics   metrics.Snapshot
}

// Run processes every input. It returns an error only when ctx is cancelled;
// per-input failures are collected in the Summary.
func (r *Runner) Run(ctx context.Context, inputs []Input) (Summary, error) {
	if r.Pipeline == nil {
		return Summary{}, errors.New("batch: pipeline is nil")
	}
	cfg := parallel.DefaultConfig().WithWorkers(max(r.Workers, 1))
	if r.Workers <= 1 {
		cfg = parallel.Sequential()
	}

	errs := parallel.ForEach(len(inputs), func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.process(inputs[i])
	}, cfg)

	sum := Summary{Errors: make(map[string]error)}
	for i, err := range errs {
		if err == nil {
			sum.Succeeded++
			continue
		}
		sum.Failed++
		sum.Errors[inputs[i].Name] = err
	}
	sum.Metrics = r.window.Snapshot()

	log.Printf("batch inputs=%d succeeded=%d failed=%d inputs_per_sec=%.2f load_ms=%.2f compute_ms=%.2f write_ms=%.2f",
		len(inputs), sum.Succeeded, sum.Failed,
		sum.Metrics.InputsPerSec, sum.Metrics.AvgLoadMS, sum.Metrics.AvgComputeMS, sum.Metrics.AvgWriteMS)

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}

func (r *Runner) process(in Input) error {
	dims := r.Pipeline.Topology().Input

	startLoad := time.Now()
	x, err := serialization.ReadTensorFile(in.Path, dims.Height, dims.Width, dims.Channels)
	if err != nil {
		return r.fail(in, "load", err)
	}
	loadTime := time.Since(startLoad)

	startCompute := time.Now()
	res, err := r.Pipeline.Run(x)
	if err != nil {
		return r.fail(in, "compute", err)
	}
	computeTime := time.Since(startCompute)

	startWrite := time.Now()
	if r.Writer != nil {
		if _, err := r.Writer.Write(in.Name, res); err != nil {
			return r.fail(in, "write", err)
		}
	}
	writeTime := time.Since(startWrite)

	r.window.Record(loadTime, computeTime, writeTime)

	top := pipeline.TopK(res.Scores, 1)
	if len(top) > 0 {
		log.Printf("input=%s stages=%d top1=%d score=%s compute_ms=%.2f",
			in.Name, len(res.Stages), top[0].Index, top[0].Score, computeTime.Seconds()*1000)
	}

	if r.Report != nil && r.TopK > 0 {
		ranked := report.Rank(res.Scores, r.TopK, r.Labels)
		r.mu.Lock()
		err := report.Write(r.Report, in.Name, ranked)
		r.mu.Unlock()
		if err != nil {
			return r.fail(in, "report", err)
		}
	}
	return nil
}

func (r *Runner) fail(in Input, phase string, err error) error {
	r.window.RecordFailure()
	log.Printf("input=%s phase=%s error=%v skipping", in.Name, phase, err)
	return fmt.Errorf("%s: %w", phase, err)
}
