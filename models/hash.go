package models

import (
	"encoding/binary"
	"math"

	"github.com/mr-tron/base58"
	"lukechampine.com/blake3"
)

// Digester builds a domain-separated BLAKE3 content digest.
//
// Every digest starts with a type tag, so values of different types that
// happen to share field content (a Cut and its bare Partition, say) never
// collide.
type Digester struct {
	h   *blake3.Hasher
	buf []byte
}

// NewDigester starts a digest salted with tag.
func NewDigester(tag string) *Digester {
	d := &Digester{h: blake3.New(32, nil)}
	d.WriteString(tag)
	return d
}

// WriteString writes a length-prefixed string.
func (d *Digester) WriteString(s string) *Digester {
	d.writeUvarint(uint64(len(s)))
	d.h.Write([]byte(s))
	return d
}

// WriteTag writes a single enum byte.
func (d *Digester) WriteTag(b byte) *Digester {
	d.h.Write([]byte{b})
	return d
}

// WriteInts writes a length-prefixed int sequence.
func (d *Digester) WriteInts(xs []int) *Digester {
	d.writeUvarint(uint64(len(xs)))
	for _, x := range xs {
		d.buf = binary.AppendVarint(d.buf[:0], int64(x))
		d.h.Write(d.buf)
	}
	return d
}

// WriteFloats writes a length-prefixed float sequence by bit pattern.
func (d *Digester) WriteFloats(xs []float64) *Digester {
	d.writeUvarint(uint64(len(xs)))
	for _, x := range xs {
		d.buf = binary.LittleEndian.AppendUint64(d.buf[:0], math.Float64bits(x))
		d.h.Write(d.buf)
	}
	return d
}

// WriteDigest nests another digest.
func (d *Digester) WriteDigest(sum [32]byte) *Digester {
	d.h.Write(sum[:])
	return d
}

// Sum returns the 32-byte digest.
func (d *Digester) Sum() [32]byte {
	var out [32]byte
	d.h.Sum(out[:0])
	return out
}

func (d *Digester) writeUvarint(v uint64) {
	d.buf = binary.AppendUvarint(d.buf[:0], v)
	d.h.Write(d.buf)
}

// HashOf folds a digest into a uint64 suitable for hash-keyed lookups.
func HashOf(sum [32]byte) uint64 {
	return binary.LittleEndian.Uint64(sum[:8])
}

// KeyOf renders a digest as a base58 string key.
func KeyOf(sum [32]byte) string {
	return base58.Encode(sum[:])
}
