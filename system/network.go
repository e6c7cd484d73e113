// Package system holds the networks and subsystems a Φ search runs over,
// and the concept-style view that gives the cause and effect sides their
// own cuts.
package system

import (
	"fmt"
	"slices"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
)

// Network is an immutable description of a discrete dynamical system: a
// connectivity matrix, an optional state-by-node transition probability
// matrix, and node labels.
//
// Two networks are the same network context iff their connectivity and TPM
// are identical. Labels are presentation only.
type Network struct {
	cm     [][]int
	tpm    [][]float64
	labels []string
	digest [32]byte
}

// NewNetwork validates and copies its inputs.
//
// cm must be square with 0/1 entries; cm[i][j] == 1 means node i
// feeds node j. tpm may be nil; otherwise it needs 2^n rows of n
// probabilities. labels may be nil, in which case nodes are named n0..n{n-1}.
func NewNetwork(cm [][]int, tpm [][]float64, labels []string) (*Network, error) {
	n := len(cm)
	if n == 0 {
		return nil, errors.NewInvalidRequestError("network has no nodes")
	}
	for i, row := range cm {
		if len(row) != n {
			return nil, errors.NewInvalidRequestError("connectivity matrix is not square: row %d has %d columns, want %d", i, len(row), n)
		}
		for j, w := range row {
			if w != 0 && w != 1 {
				return nil, errors.NewInvalidRequestError("connectivity matrix entry (%d,%d) is %d, want 0 or 1", i, j, w)
			}
		}
	}

	if tpm != nil {
		if n >= 31 || len(tpm) != 1<<n {
			return nil, errors.NewInvalidRequestError("state-by-node TPM for %d nodes needs %d rows, got %d", n, 1<<min(n, 30), len(tpm))
		}
		for i, row := range tpm {
			if len(row) != n {
				return nil, errors.NewInvalidRequestError("TPM row %d has %d columns, want %d", i, len(row), n)
			}
			for j, p := range row {
				if p < 0 || p > 1 {
					return nil, errors.NewInvalidRequestError("TPM entry (%d,%d) = %v is not a probability", i, j, p)
				}
			}
		}
	}

	if labels == nil {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("n%d", i)
		}
	}
	if len(labels) != n {
		return nil, errors.NewInvalidRequestError("got %d labels for %d nodes", len(labels), n)
	}
	seen := make(map[string]bool, n)
	for _, l := range labels {
		if seen[l] {
			return nil, errors.NewInvalidRequestError("duplicate node label %q", l)
		}
		seen[l] = true
	}

	net := &Network{
		cm:     cloneMatrix(cm),
		tpm:    cloneFloatMatrix(tpm),
		labels: slices.Clone(labels),
	}
	net.digest = net.computeDigest()
	return net, nil
}

func (n *Network) computeDigest() [32]byte {
	d := models.NewDigester("network")
	d.WriteInts([]int{len(n.cm)})
	for _, row := range n.cm {
		d.WriteInts(row)
	}
	d.WriteInts([]int{len(n.tpm)})
	for _, row := range n.tpm {
		d.WriteFloats(row)
	}
	return d.Sum()
}

// Size returns the number of nodes.
func (n *Network) Size() int { return len(n.cm) }

// CM returns a copy of the connectivity matrix.
func (n *Network) CM() [][]int { return cloneMatrix(n.cm) }

// TPM returns a copy of the transition probability matrix, or nil.
func (n *Network) TPM() [][]float64 { return cloneFloatMatrix(n.tpm) }

// Labels returns a copy of the node labels.
func (n *Network) Labels() []string { return slices.Clone(n.labels) }

// NodeIndices returns 0..Size()-1.
func (n *Network) NodeIndices() []int {
	out := make([]int, n.Size())
	for i := range out {
		out[i] = i
	}
	return out
}

// Digest identifies the network context.
func (n *Network) Digest() [32]byte { return n.digest }

// Key returns the base58 digest.
func (n *Network) Key() string { return models.KeyOf(n.digest) }

// Equal reports whether n and o are the same network context.
func (n *Network) Equal(o *Network) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.digest == o.digest
}

func cloneMatrix(m [][]int) [][]int {
	if m == nil {
		return nil
	}
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

func cloneFloatMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}
