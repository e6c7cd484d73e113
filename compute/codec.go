package compute

import (
	"time"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/system"
)

type bigMipWire struct {
	_         struct{} `cbor:",toarray"`
	Phi       float64
	Subsystem *system.Subsystem
	Cut       models.Cut
	ElapsedNS int64
}

// MarshalCBOR implements cbor.Marshaler.
func (m *BigMip) MarshalCBOR() ([]byte, error) {
	return models.Encode(bigMipWire{
		Phi:       m.Phi,
		Subsystem: m.Subsystem,
		Cut:       m.Cut,
		ElapsedNS: m.Elapsed.Nanoseconds(),
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (m *BigMip) UnmarshalCBOR(data []byte) error {
	var w bigMipWire
	if err := models.Decode(data, &w); err != nil {
		return err
	}
	if w.Subsystem == nil {
		return errors.NewInvalidRequestError("decoded BigMip has no subsystem")
	}
	*m = BigMip{Phi: w.Phi, Subsystem: w.Subsystem, Cut: w.Cut, Elapsed: time.Duration(w.ElapsedNS)}
	return nil
}

type bigMipConceptStyleWire struct {
	_         struct{} `cbor:",toarray"`
	Subsystem *system.Subsystem
	MipPast   *BigMip
	MipFuture *BigMip
}

// MarshalCBOR implements cbor.Marshaler.
func (b *BigMipConceptStyle) MarshalCBOR() ([]byte, error) {
	return models.Encode(bigMipConceptStyleWire{
		Subsystem: b.Subsystem,
		MipPast:   b.MipPast,
		MipFuture: b.MipFuture,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (b *BigMipConceptStyle) UnmarshalCBOR(data []byte) error {
	var w bigMipConceptStyleWire
	if err := models.Decode(data, &w); err != nil {
		return err
	}
	if w.Subsystem == nil || w.MipPast == nil || w.MipFuture == nil {
		return errors.NewInvalidRequestError("decoded BigMipConceptStyle is incomplete")
	}
	*b = BigMipConceptStyle{Subsystem: w.Subsystem, MipPast: w.MipPast, MipFuture: w.MipFuture}
	return nil
}

// task is one candidate cut as it crosses to a worker.
type task struct {
	_         struct{} `cbor:",toarray"`
	Index     int
	Subsystem *system.Subsystem
	Direction models.Direction
	Cut       models.Cut
}
