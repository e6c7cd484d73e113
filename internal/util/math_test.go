package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.333333, RoundTo(1.0/3, 6))
	assert.Equal(t, 2.5, RoundTo(2.4999999, 6))
	assert.Equal(t, 1.0, RoundTo(1, 0))
	assert.False(t, math.Signbit(RoundTo(-1e-9, 6)))
}

func TestEqualAt(t *testing.T) {
	assert.True(t, EqualAt(1, 1+4e-7, 6))
	assert.False(t, EqualAt(1, 1+2e-6, 6))

	// Values straddling a rounding boundary are distinct even when closer
	// than one unit in the last place.
	assert.False(t, EqualAt(0.5000004, 0.5000006, 6))
	assert.True(t, EqualAt(0.5000006, 0.5000014, 6))
}
