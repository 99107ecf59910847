package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIMAP_RoundTripWithinOneQuantizationStep(t *testing.T) {
	const lo, hi = -90.0, 90.0
	const length = 4
	step := (hi - lo) / (math.Ldexp(1, 8*length) - 1)

	for _, v := range []float64{-90, -45.5, 0, 33.33, 89.999999} {
		buf := make([]byte, length)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteIMAP(lo, hi, v, wc, length, length))

		rc := NewReadCursor(buf)
		got, err := ReadIMAP(lo, hi, rc, length, length)
		require.NoError(t, err)
		assert.InDelta(t, v, got, step)
	}
}

func TestIMAP_Monotonic(t *testing.T) {
	const lo, hi = 0.0, 256.0
	const length = 1

	var prev float64 = -1
	for i := 0; i < 256; i++ {
		rc := NewReadCursor([]byte{byte(i)})
		got, err := ReadIMAP(lo, hi, rc, length, length)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestFLINT_RoundTripSymmetricDomain(t *testing.T) {
	const lo, hi = -90.0, 90.0
	const length = 4

	for _, v := range []float64{-90, -45.5, 0, 33.33, 89.999999} {
		buf := make([]byte, length)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteFLINT(lo, hi, v, wc, length, length))

		rc := NewReadCursor(buf)
		got, err := ReadFLINT(lo, hi, rc, length, length)
		require.NoError(t, err)
		assert.InDelta(t, v, got, 1e-3)
	}
}

func TestFLINT_UnsignedDomainNeverSetsSignBit(t *testing.T) {
	// Heading-like field: [0, 359.9945], never negative.
	const lo, hi = 0.0, 359.9945
	const length = 2

	buf := make([]byte, length)
	wc := NewWriteCursor(buf)
	require.NoError(t, WriteFLINT(lo, hi, 270.0, wc, length, length))
	assert.Zero(t, buf[0]&0x80, "sign bit must stay clear for a non-negative domain value")

	rc := NewReadCursor(buf)
	got, err := ReadFLINT(lo, hi, rc, length, length)
	require.NoError(t, err)
	assert.InDelta(t, 270.0, got, 0.01)
}
