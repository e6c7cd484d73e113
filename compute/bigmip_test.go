package compute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/phi/errors"
	phitest "github.com/teranos/phi/internal/testing"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/system"
)

func referenceCut() models.Cut {
	return models.NewCut(models.Past, models.MustPartition(
		models.NewPart([]int{0}, []int{1}),
		models.NewPart([]int{1, 2}, []int{0, 2}),
	))
}

func mipOf(sub *system.Subsystem, phi float64) *BigMip {
	return &BigMip{Phi: phi, Subsystem: sub, Cut: referenceCut()}
}

func TestBigMip_Ordering(t *testing.T) {
	s := phitest.BasicSubsystem(t)
	n0n2 := phitest.N0N2Subsystem(t)
	noised := phitest.NoisedSubsystem(t)

	t.Run("phi orders first", func(t *testing.T) {
		less, err := mipOf(s, 1).Less(mipOf(s, 2))
		require.NoError(t, err)
		assert.True(t, less)

		ge, err := mipOf(s, 1).GreaterOrEqual(mipOf(s, 2))
		require.NoError(t, err)
		assert.False(t, ge)
	})

	t.Run("equal phi orders by subsystem size", func(t *testing.T) {
		ge, err := mipOf(s, 1).GreaterOrEqual(mipOf(n0n2, 1))
		require.NoError(t, err)
		assert.True(t, ge)

		c, err := mipOf(n0n2, 1).Compare(mipOf(s, 1))
		require.NoError(t, err)
		assert.Equal(t, -1, c)
	})

	t.Run("phi equal at precision ties", func(t *testing.T) {
		c, err := mipOf(s, 1).Compare(mipOf(s, 1+4e-7))
		require.NoError(t, err)
		assert.Zero(t, c)
	})

	t.Run("phi across a rounding boundary orders", func(t *testing.T) {
		c, err := mipOf(s, 0.5000004).Compare(mipOf(s, 0.5000006))
		require.NoError(t, err)
		assert.Equal(t, -1, c)
	})

	t.Run("different networks are incomparable", func(t *testing.T) {
		_, err := mipOf(s, 1).Less(mipOf(noised, 2))
		require.Error(t, err)
		assert.True(t, errors.IsIncomparable(err))

		_, err = mipOf(s, 1).GreaterOrEqual(mipOf(noised, 1))
		assert.True(t, errors.IsIncomparable(err))
	})
}

func TestBigMip_EqualAndHash(t *testing.T) {
	s := phitest.BasicSubsystem(t)

	a := mipOf(s, 0.5)
	b := mipOf(phitest.BasicSubsystem(t), 0.5+1e-9)
	b.Elapsed = 42
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.False(t, a.Equal(mipOf(s, 0.6)))
	assert.False(t, a.Equal(&BigMip{Phi: 0.5, Subsystem: s, Cut: s.NullCut()}))
	assert.False(t, a.Equal(mipOf(phitest.N0N2Subsystem(t), 0.5)))
	assert.False(t, a.Equal(nil))
}

func TestBigMip_EqualAgreesWithHash(t *testing.T) {
	s := phitest.BasicSubsystem(t)
	values := []float64{0.5, 0.5000004, 0.5000006, 0.5000014, 0.4999996, 0.50000049}

	for _, x := range values {
		for _, y := range values {
			a, b := mipOf(s, x), mipOf(s, y)
			assert.Equal(t, a.Equal(b), a.Hash() == b.Hash(), "phi %v vs %v", x, y)

			ca := &BigMipConceptStyle{Subsystem: s, MipPast: a, MipFuture: a}
			cb := &BigMipConceptStyle{Subsystem: s, MipPast: b, MipFuture: b}
			assert.Equal(t, ca.Equal(cb), ca.Hash() == cb.Hash(), "concept phi %v vs %v", x, y)

			c, err := a.Compare(b)
			require.NoError(t, err)
			assert.Equal(t, a.Equal(b), c == 0, "phi %v vs %v", x, y)
		}
	}

	// Equality is transitive.
	a, b, c := mipOf(s, 0.5000006), mipOf(s, 0.5000009), mipOf(s, 0.5000014)
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(c))
	assert.True(t, a.Equal(c))
	assert.False(t, mipOf(s, 0.5000004).Equal(a))
}

func TestNullBigMip(t *testing.T) {
	s := phitest.BasicSubsystem(t)
	null := NullBigMip(s)
	assert.Zero(t, null.Phi)
	assert.True(t, null.Cut.IsNull())
}

func TestBigMipConceptStyle(t *testing.T) {
	s := phitest.BasicSubsystem(t)
	n0n2 := phitest.N0N2Subsystem(t)
	noised := phitest.NoisedSubsystem(t)

	concept := func(sub *system.Subsystem, past, future float64) *BigMipConceptStyle {
		return &BigMipConceptStyle{Subsystem: sub, MipPast: mipOf(sub, past), MipFuture: mipOf(sub, future)}
	}

	b := concept(s, 2, 1)
	assert.Equal(t, 1.0, b.Phi())
	assert.Same(t, b.MipFuture, b.Min())
	tie := concept(s, 1, 1)
	assert.Same(t, tie.MipPast, tie.Min())

	assert.True(t, b.Equal(concept(s, 2, 1)))
	assert.Equal(t, b.Hash(), concept(s, 2, 1).Hash())
	assert.False(t, b.Equal(concept(s, 1, 2)), "swapped MIPs differ structurally")

	less, err := concept(s, 1, 1).Less(concept(s, 3, 2))
	require.NoError(t, err)
	assert.True(t, less)

	ge, err := concept(s, 1, 5).GreaterOrEqual(concept(n0n2, 1, 1))
	require.NoError(t, err)
	assert.True(t, ge)

	_, err = b.Compare(concept(noised, 1, 1))
	assert.True(t, errors.IsIncomparable(err))
}

func TestCodec_BigMipRoundTrip(t *testing.T) {
	s := phitest.BasicSubsystem(t)
	mip := mipOf(s, 1.25)
	mip.Elapsed = 1500

	data, err := models.Encode(mip)
	require.NoError(t, err)
	var got BigMip
	require.NoError(t, models.Decode(data, &got))
	assert.True(t, mip.Equal(&got))
	assert.Equal(t, mip.Hash(), got.Hash())
	assert.Equal(t, mip.Elapsed, got.Elapsed)

	concept := &BigMipConceptStyle{Subsystem: s, MipPast: mip, MipFuture: NullBigMip(s)}
	data, err = models.Encode(concept)
	require.NoError(t, err)
	var gotConcept BigMipConceptStyle
	require.NoError(t, models.Decode(data, &gotConcept))
	assert.True(t, concept.Equal(&gotConcept))
	assert.Equal(t, concept.Hash(), gotConcept.Hash())

	again, err := models.Encode(&gotConcept)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")
}

func TestCodec_BigMipRejectsIncomplete(t *testing.T) {
	data, err := models.Encode(bigMipConceptStyleWire{Subsystem: phitest.BasicSubsystem(t)})
	require.NoError(t, err)

	var got BigMipConceptStyle
	assert.True(t, errors.IsInvalidRequestError(models.Decode(data, &got)))
}
