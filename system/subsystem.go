package system

import (
	"slices"
	"strings"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
)

// Subsystem is a set of nodes of a Network in a given network state, seen
// through a cut. Subsystems are immutable; WithCut returns a new value.
type Subsystem struct {
	network     *Network
	state       []int
	nodeIndices []int
	cut         models.Cut
}

// NewSubsystem builds an uncut subsystem over nodeIndices.
//
// state gives the binary state of every network node, not just the
// subsystem's. nodeIndices are sorted and must be unique and in range.
func NewSubsystem(network *Network, state []int, nodeIndices []int) (*Subsystem, error) {
	if network == nil {
		return nil, errors.NewInvalidRequestError("subsystem needs a network")
	}
	if len(state) != network.Size() {
		return nil, errors.NewInvalidRequestError("state has %d entries for a %d-node network", len(state), network.Size())
	}
	for i, s := range state {
		if s != 0 && s != 1 {
			return nil, errors.NewInvalidRequestError("state of node %d is %d, want 0 or 1", i, s)
		}
	}

	nodes := slices.Clone(nodeIndices)
	slices.Sort(nodes)
	for i, idx := range nodes {
		if idx < 0 || idx >= network.Size() {
			return nil, errors.NewInvalidRequestError("node index %d out of range for a %d-node network", idx, network.Size())
		}
		if i > 0 && nodes[i-1] == idx {
			return nil, errors.NewInvalidRequestError("node index %d listed twice", idx)
		}
	}

	return &Subsystem{
		network:     network,
		state:       slices.Clone(state),
		nodeIndices: nodes,
		cut:         models.NullCut(nodes),
	}, nil
}

// Network returns the subsystem's network.
func (s *Subsystem) Network() *Network { return s.network }

// State returns a copy of the network state.
func (s *Subsystem) State() []int { return slices.Clone(s.state) }

// NodeIndices returns a copy of the subsystem's node indices.
func (s *Subsystem) NodeIndices() []int { return slices.Clone(s.nodeIndices) }

// CutIndices returns the indices a cut of this subsystem may separate.
func (s *Subsystem) CutIndices() []int { return s.NodeIndices() }

// Len returns the number of nodes in the subsystem.
func (s *Subsystem) Len() int { return len(s.nodeIndices) }

// Cut returns the cut this subsystem is seen through.
func (s *Subsystem) Cut() models.Cut { return s.cut }

// NullCut returns the identity cut over this subsystem's nodes.
func (s *Subsystem) NullCut() models.Cut { return models.NullCut(s.nodeIndices) }

// IsCut reports whether the subsystem's cut severs anything.
func (s *Subsystem) IsCut() bool { return !s.cut.IsNull() }

// WithCut returns a copy of the subsystem seen through cut.
func (s *Subsystem) WithCut(cut models.Cut) *Subsystem {
	out := *s
	out.cut = cut
	return &out
}

// ConnectivityMatrix returns the network's connectivity matrix with this
// subsystem's cut applied.
func (s *Subsystem) ConnectivityMatrix() ([][]int, error) {
	cm, err := s.cut.ApplyCut(s.network.cm)
	if err != nil {
		return nil, errors.Wrap(err, "apply subsystem cut")
	}
	return cm, nil
}

// Equal reports whether both subsystems share network, state, nodes and cut.
func (s *Subsystem) Equal(o *Subsystem) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.network.Equal(o.network) &&
		slices.Equal(s.state, o.state) &&
		slices.Equal(s.nodeIndices, o.nodeIndices) &&
		s.cut.Equal(o.cut)
}

// Digest returns the subsystem's content digest.
func (s *Subsystem) Digest() [32]byte {
	return models.NewDigester("subsystem").
		WriteDigest(s.network.Digest()).
		WriteInts(s.state).
		WriteInts(s.nodeIndices).
		WriteDigest(s.cut.Digest()).
		Sum()
}

// Hash returns a uint64 hash consistent with Equal.
func (s *Subsystem) Hash() uint64 { return models.HashOf(s.Digest()) }

// Key returns the base58 digest.
func (s *Subsystem) Key() string { return models.KeyOf(s.Digest()) }

// String renders the subsystem with node labels, e.g. "Subsystem(A, B, C)".
func (s *Subsystem) String() string {
	names := make([]string, len(s.nodeIndices))
	for i, idx := range s.nodeIndices {
		names[i] = s.network.labels[idx]
	}
	return "Subsystem(" + strings.Join(names, ", ") + ")"
}
