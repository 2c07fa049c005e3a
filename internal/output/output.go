// Package output writes the per-input stage tree and its manifest.
//
// Layout for one input named "cat":
//
//	<root>/cat/manifest.yaml
//	<root>/cat/01_conv1/01_conv1_all_channels.txt   channel planar
//	<root>/cat/01_conv1/channel_000/output.txt      optional, one plane
//	<root>/cat/19_fc1/19_fc1_output.txt             vectors
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/fixnet/internal/parallel"
	"github.com/born-ml/fixnet/internal/pipeline"
	"github.com/born-ml/fixnet/internal/serialization"
)

// ManifestName is the manifest file name inside an input directory.
const ManifestName = "manifest.yaml"

// Writer writes stage trees under Root.
type Writer struct {
	Root       string
	PerChannel bool   // Also write channel_XXX/output.txt for feature maps
	Topology   string // Recorded in the manifest
	TopK       int    // Predictions recorded in the manifest; 0 disables
	Parallel   parallel.Config
}

// Manifest describes one written stage tree.
type Manifest struct {
	RunID       string       `yaml:"run_id"`
	Input       string       `yaml:"input"`
	Topology    string       `yaml:"topology"`
	Policy      string       `yaml:"policy"`
	Created     time.Time    `yaml:"created"`
	Stages      []StageEntry `yaml:"stages"`
	Predictions []Prediction `yaml:"predictions,omitempty"`
}

// StageEntry records one stage file.
type StageEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Shape  []int  `yaml:"shape,flow"`
	File   string `yaml:"file"` // Relative to the input directory
	SHA256 string `yaml:"sha256"`
}

// Prediction is one ranked score in the manifest.
type Prediction struct {
	Index int     `yaml:"index"`
	Bits  string  `yaml:"bits"`
	Score float64 `yaml:"score"`
}

// StageFile returns the main file of a stage relative to its input directory.
func StageFile(s pipeline.StageOutput) string {
	if s.IsVector() {
		return filepath.Join(s.Name, s.Name+"_output.txt")
	}
	return filepath.Join(s.Name, s.Name+"_all_channels.txt")
}

// ChannelFile returns the per-channel file of channel c relative to the
// input directory.
func ChannelFile(stage string, c int) string {
	return filepath.Join(stage, fmt.Sprintf("channel_%03d", c), "output.txt")
}

// Dir returns the directory an input's tree is written to.
func (w *Writer) Dir(input string) string {
	return filepath.Join(w.Root, input)
}

// Write stores every stage of res under Root/input and writes the manifest.
func (w *Writer) Write(input string, res *pipeline.Result) (*Manifest, error) {
	dir := w.Dir(input)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	m := &Manifest{
		RunID:    uuid.NewString(),
		Input:    input,
		Topology: w.Topology,
		Policy:   res.Policy.Label(),
		Created:  time.Now().UTC(),
		Stages:   make([]StageEntry, len(res.Stages)),
	}

	errs := parallel.ForEach(len(res.Stages), func(i int) error {
		entry, err := w.writeStage(dir, res.Stages[i])
		m.Stages[i] = entry
		return err
	}, w.Parallel)
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("output: %s: %w", input, err)
	}

	for _, p := range pipeline.TopK(res.Scores, w.TopK) {
		m.Predictions = append(m.Predictions, Prediction{Index: p.Index, Bits: p.Score.Bits(), Score: p.Score.Float()})
	}

	if err := WriteManifest(filepath.Join(dir, ManifestName), m); err != nil {
		return nil, err
	}
	return m, nil
}

func (w *Writer) writeStage(dir string, s pipeline.StageOutput) (StageEntry, error) {
	vals := s.Values()
	entry := StageEntry{
		Name:   s.Name,
		Kind:   s.Kind.String(),
		Shape:  s.Shape(),
		File:   StageFile(s),
		SHA256: serialization.ChecksumValues(vals),
	}
	if err := serialization.WriteValuesFile(filepath.Join(dir, entry.File), vals); err != nil {
		return entry, err
	}

	if w.PerChannel && !s.IsVector() {
		for c := 0; c < s.Tensor.Channels(); c++ {
			path := filepath.Join(dir, ChannelFile(s.Name, c))
			if err := serialization.WriteValuesFile(path, s.Tensor.Channel(c)); err != nil {
				return entry, err
			}
		}
	}
	return entry, nil
}

// WriteManifest stores m as YAML at path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("output: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("output: decode manifest %s: %w", path, err)
	}
	return &m, nil
}

// Verify recomputes every stage checksum of the tree at dir and reports the
// stages whose file no longer matches the manifest.
func Verify(dir string) ([]string, error) {
	m, err := ReadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var bad []string
	for _, s := range m.Stages {
		sum, err := serialization.ChecksumFile(filepath.Join(dir, s.File))
		if err != nil {
			return nil, err
		}
		if serialization.ValidateChecksum(sum, s.SHA256) != nil {
			bad = append(bad, s.Name)
		}
	}
	return bad, nil
}
