package topology

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a YAML topology file.
func Load(path string) (Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return Topology{}, fmt.Errorf("open topology: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return Topology{}, fmt.Errorf("topology %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML topology and validates it. Unknown keys are rejected.
//
// Example:
//
//	name: tiny
//	input: {height: 8, width: 8, channels: 1}
//	conv:
//	  - {name: conv1, filters: 2, kernel: 3, stride: 1, pad: 1, pool: {size: 2, stride: 2}}
//	dense:
//	  - {name: fc1, out: 4}
func Parse(r io.Reader) (Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Topology{}, err
	}

	var t Topology
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Topology{}, fmt.Errorf("decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// Marshal encodes t as YAML.
func Marshal(t Topology) ([]byte, error) {
	return yaml.Marshal(t)
}
