package metrics

import (
	"sync"
	"time"
)

// Window accumulates per-input timing stats across a batch. It is safe for
// concurrent use.
type Window struct {
	mu      sync.Mutex
	inputs  int
	failed  int
	load    time.Duration
	compute time.Duration
	write   time.Duration
}

// Record adds the phase timings of one processed input.
func (w *Window) Record(loadTime, computeTime, writeTime time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inputs++
	w.load += loadTime
	w.compute += computeTime
	w.write += writeTime
}

// RecordFailure counts an input that could not be processed.
func (w *Window) RecordFailure() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failed++
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{Inputs: w.inputs, Failed: w.failed}
	total := w.load + w.compute + w.write
	if total > 0 {
		snap.InputsPerSec = float64(w.inputs) / total.Seconds()
	}
	if w.inputs > 0 {
		snap.AvgLoadMS = (w.load.Seconds() * 1000) / float64(w.inputs)
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.inputs)
		snap.AvgWriteMS = (w.write.Seconds() * 1000) / float64(w.inputs)
	}

	w.inputs = 0
	w.failed = 0
	w.load = 0
	w.compute = 0
	w.write = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Inputs       int
	Failed       int
	InputsPerSec float64
	AvgLoadMS    float64
	AvgComputeMS float64
	AvgWriteMS   float64
}
