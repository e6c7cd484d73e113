// Package compute runs the concept-style Φ search: it generates candidate
// cuts, evaluates them through an Evaluator, and reduces them to the
// minimum-information partition in each direction.
package compute

import (
	"cmp"
	"fmt"
	"math"
	"time"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/internal/util"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/system"
)

// PhiPrecision is the number of decimals at which Φ values are compared and
// hashed. Two values are equal iff they round to the same value here.
const PhiPrecision = am.MaxPrecision

// BigMip is the minimum-information cut of a subsystem in one direction.
type BigMip struct {
	Phi       float64
	Subsystem *system.Subsystem
	Cut       models.Cut
	// Elapsed is the wall time spent finding this result. It is not part of
	// equality or ordering.
	Elapsed time.Duration
}

// NullBigMip is the Φ = 0 result over the null cut.
func NullBigMip(sub *system.Subsystem) *BigMip {
	return &BigMip{Subsystem: sub, Cut: sub.NullCut()}
}

// Equal reports structural equality with Φ compared at PhiPrecision.
func (m *BigMip) Equal(o *BigMip) bool {
	if m == nil || o == nil {
		return m == o
	}
	return phiEqual(m.Phi, o.Phi) && m.Subsystem.Equal(o.Subsystem) && m.Cut.Equal(o.Cut)
}

// Digest covers the subsystem, Φ rounded to PhiPrecision, and the cut.
func (m *BigMip) Digest() [32]byte {
	return models.NewDigester("bigmip").
		WriteDigest(m.Subsystem.Digest()).
		WriteFloats([]float64{phiKey(m.Phi)}).
		WriteDigest(m.Cut.Digest()).
		Sum()
}

// Hash returns a uint64 hash of Digest. Equal values hash equally.
func (m *BigMip) Hash() uint64 { return models.HashOf(m.Digest()) }

// Compare orders by Φ, then by subsystem size. Results computed over
// different networks are incomparable.
func (m *BigMip) Compare(o *BigMip) (int, error) {
	return compareResults(m.Subsystem, m.Phi, o.Subsystem, o.Phi)
}

// Less reports m < o.
func (m *BigMip) Less(o *BigMip) (bool, error) {
	c, err := m.Compare(o)
	return c < 0, err
}

// GreaterOrEqual reports m >= o.
func (m *BigMip) GreaterOrEqual(o *BigMip) (bool, error) {
	c, err := m.Compare(o)
	return c >= 0, err
}

func (m *BigMip) String() string {
	return fmt.Sprintf("BigMip(Φ=%g, %s, %s)", m.Phi, m.Subsystem, m.Cut)
}

// BigMipConceptStyle pairs the past and future MIPs of a subsystem. Its Φ is
// the smaller of the two.
type BigMipConceptStyle struct {
	Subsystem *system.Subsystem
	MipPast   *BigMip
	MipFuture *BigMip
}

// Phi returns min(MipPast.Phi, MipFuture.Phi).
func (b *BigMipConceptStyle) Phi() float64 {
	return math.Min(b.MipPast.Phi, b.MipFuture.Phi)
}

// Min returns whichever directional MIP carries the smaller Φ, preferring
// the past on ties.
func (b *BigMipConceptStyle) Min() *BigMip {
	if b.MipFuture.Phi < b.MipPast.Phi {
		return b.MipFuture
	}
	return b.MipPast
}

// Elapsed is the total time spent on both directions.
func (b *BigMipConceptStyle) Elapsed() time.Duration {
	return b.MipPast.Elapsed + b.MipFuture.Elapsed
}

// Equal compares the subsystem, Φ and both MIPs.
func (b *BigMipConceptStyle) Equal(o *BigMipConceptStyle) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Subsystem.Equal(o.Subsystem) &&
		phiEqual(b.Phi(), o.Phi()) &&
		b.MipPast.Equal(o.MipPast) &&
		b.MipFuture.Equal(o.MipFuture)
}

// Digest covers the subsystem, rounded Φ and both MIPs.
func (b *BigMipConceptStyle) Digest() [32]byte {
	return models.NewDigester("bigmip-concept-style").
		WriteDigest(b.Subsystem.Digest()).
		WriteFloats([]float64{phiKey(b.Phi())}).
		WriteDigest(b.MipPast.Digest()).
		WriteDigest(b.MipFuture.Digest()).
		Sum()
}

// Hash returns a uint64 hash of Digest.
func (b *BigMipConceptStyle) Hash() uint64 { return models.HashOf(b.Digest()) }

// Compare orders like BigMip.Compare, using Phi().
func (b *BigMipConceptStyle) Compare(o *BigMipConceptStyle) (int, error) {
	return compareResults(b.Subsystem, b.Phi(), o.Subsystem, o.Phi())
}

// Less reports b < o.
func (b *BigMipConceptStyle) Less(o *BigMipConceptStyle) (bool, error) {
	c, err := b.Compare(o)
	return c < 0, err
}

// GreaterOrEqual reports b >= o.
func (b *BigMipConceptStyle) GreaterOrEqual(o *BigMipConceptStyle) (bool, error) {
	c, err := b.Compare(o)
	return c >= 0, err
}

func (b *BigMipConceptStyle) String() string {
	return fmt.Sprintf("BigMipConceptStyle(Φ=%g, %s, past=%s, future=%s)", b.Phi(), b.Subsystem, b.MipPast.Cut, b.MipFuture.Cut)
}

func compareResults(a *system.Subsystem, aPhi float64, b *system.Subsystem, bPhi float64) (int, error) {
	if !a.Network().Equal(b.Network()) {
		return 0, errors.Wrapf(errors.ErrIncomparable, "%s and %s belong to different networks", a, b)
	}
	if c := cmp.Compare(phiKey(aPhi), phiKey(bPhi)); c != 0 {
		return c, nil
	}
	return cmp.Compare(a.Len(), b.Len()), nil
}

func phiEqual(a, b float64) bool {
	return util.EqualAt(a, b, PhiPrecision)
}

// phiKey is the rounded Φ shared by equality, ordering and hashing.
func phiKey(phi float64) float64 {
	return util.RoundTo(phi, PhiPrecision)
}
