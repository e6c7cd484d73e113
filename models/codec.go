package models

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/teranos/phi/errors"
)

// Values cross worker and cache boundaries as deterministic CBOR, so equal
// values always encode to identical bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes v to deterministic CBOR.
func Encode(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %T", v)
	}
	return data, nil
}

// Decode deserializes CBOR data into v.
func Decode(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %T", v)
	}
	return nil
}

type partWire struct {
	_         struct{} `cbor:",toarray"`
	Mechanism []int
	Purview   []int
}

// MarshalCBOR implements cbor.Marshaler.
func (p Part) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(partWire{Mechanism: p.mechanism, Purview: p.purview})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *Part) UnmarshalCBOR(data []byte) error {
	var w partWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = NewPart(w.Mechanism, w.Purview)
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (p Partition) MarshalCBOR() ([]byte, error) {
	parts := p.parts
	if parts == nil {
		parts = []Part{}
	}
	return encMode.Marshal(parts)
}

// UnmarshalCBOR implements cbor.Unmarshaler. The decoded parts are validated
// exactly as NewPartition validates them.
func (p *Partition) UnmarshalCBOR(data []byte) error {
	var parts []Part
	if err := decMode.Unmarshal(data, &parts); err != nil {
		return err
	}
	decoded, err := NewPartition(parts...)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

type cutWire struct {
	_         struct{} `cbor:",toarray"`
	Direction Direction
	Partition Partition
}

// MarshalCBOR implements cbor.Marshaler.
func (c Cut) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(cutWire{Direction: c.direction, Partition: c.partition})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Cut) UnmarshalCBOR(data []byte) error {
	var w cutWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Direction.Valid() {
		return errors.NewInvalidRequestError("decoded cut has unknown direction %d", w.Direction)
	}
	*c = Cut{direction: w.Direction, partition: w.Partition}
	return nil
}
