package system

import (
	"slices"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
)

type networkWire struct {
	_      struct{} `cbor:",toarray"`
	CM     [][]int
	TPM    [][]float64
	Labels []string
}

// MarshalCBOR implements cbor.Marshaler.
func (n *Network) MarshalCBOR() ([]byte, error) {
	return models.Encode(networkWire{CM: n.cm, TPM: n.tpm, Labels: n.labels})
}

// UnmarshalCBOR implements cbor.Unmarshaler. The decoded network passes
// through NewNetwork's validation.
func (n *Network) UnmarshalCBOR(data []byte) error {
	var w networkWire
	if err := models.Decode(data, &w); err != nil {
		return err
	}
	decoded, err := NewNetwork(w.CM, w.TPM, w.Labels)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

type subsystemWire struct {
	_       struct{} `cbor:",toarray"`
	Network *Network
	State   []int
	Nodes   []int
	Cut     models.Cut
}

// MarshalCBOR implements cbor.Marshaler.
func (s *Subsystem) MarshalCBOR() ([]byte, error) {
	return models.Encode(subsystemWire{
		Network: s.network,
		State:   s.state,
		Nodes:   s.nodeIndices,
		Cut:     s.cut,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *Subsystem) UnmarshalCBOR(data []byte) error {
	var w subsystemWire
	if err := models.Decode(data, &w); err != nil {
		return err
	}
	decoded, err := NewSubsystem(w.Network, w.State, w.Nodes)
	if err != nil {
		return err
	}
	for _, idx := range w.Cut.Indices() {
		if !slices.Contains(decoded.nodeIndices, idx) {
			return errors.NewInvalidRequestError("decoded cut references node %d outside the subsystem", idx)
		}
	}
	*s = *decoded.WithCut(w.Cut)
	return nil
}
