package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/phi/errors"
)

// NetworkFile is the on-disk description of a network and the subsystem to
// analyse. TOML and YAML files share the same keys:
//
//	labels = ["A", "B", "C"]
//	cm     = [[0, 0, 1], [1, 0, 1], [1, 1, 0]]
//	state  = [1, 0, 0]
//	nodes  = [0, 1, 2]   # optional, defaults to every node
type NetworkFile struct {
	Labels []string    `toml:"labels" yaml:"labels"`
	CM     [][]int     `toml:"cm" yaml:"cm"`
	TPM    [][]float64 `toml:"tpm" yaml:"tpm"`
	State  []int       `toml:"state" yaml:"state"`
	Nodes  []int       `toml:"nodes" yaml:"nodes"`
}

// LoadNetworkFile reads a .toml, .yaml or .yml network description.
func LoadNetworkFile(path string) (*NetworkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read network file %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseNetworkTOML(data)
	case ".yaml", ".yml":
		return ParseNetworkYAML(data)
	default:
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unknown network file extension %q", ext),
			"use .toml, .yaml or .yml")
	}
}

// ParseNetworkTOML decodes a TOML network description. Unknown keys are
// rejected.
func ParseNetworkTOML(data []byte) (*NetworkFile, error) {
	var f NetworkFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(err, "parse network TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.NewInvalidRequestError("unknown keys in network file: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// ParseNetworkYAML decodes a YAML network description. Unknown keys are
// rejected.
func ParseNetworkYAML(data []byte) (*NetworkFile, error) {
	var f NetworkFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "parse network YAML")
	}
	return &f, nil
}

// Network builds the described network.
func (f *NetworkFile) Network() (*Network, error) {
	return NewNetwork(f.CM, f.TPM, f.Labels)
}

// Subsystem builds the described subsystem. Nodes default to the whole
// network and state defaults to all zeros.
func (f *NetworkFile) Subsystem() (*Subsystem, error) {
	net, err := f.Network()
	if err != nil {
		return nil, err
	}
	state := f.State
	if state == nil {
		state = make([]int, net.Size())
	}
	nodes := f.Nodes
	if nodes == nil {
		nodes = net.NodeIndices()
	}
	return NewSubsystem(net, state, nodes)
}
