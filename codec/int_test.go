package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteUint_RoundTrip(t *testing.T) {
	cases := []struct {
		value  uint64
		length int
	}{
		{0, 1}, {1, 1}, {255, 1}, {256, 2}, {65535, 2},
		{1 << 24, 4}, {1<<32 - 1, 4}, {1<<64 - 1, 8},
	}
	for _, tc := range cases {
		buf := make([]byte, tc.length)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteUint(wc, tc.value, tc.length, tc.length))

		rc := NewReadCursor(buf)
		got, err := ReadUint(rc, tc.length, tc.length)
		require.NoError(t, err)
		assert.Equal(t, tc.value, got)
	}
}

func TestReadInt_SignExtends(t *testing.T) {
	// -1 encoded in 2 bytes is 0xFFFF; read as int64 must stay -1, not 65535.
	rc := NewReadCursor([]byte{0xFF, 0xFF})
	got, err := ReadInt(rc, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, -1, got)
}

func TestWriteInt_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -128, 32767, -32768, 1 << 20, -(1 << 20)} {
		length := IntLength(v)
		buf := make([]byte, length)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteInt(wc, v, length, length))

		rc := NewReadCursor(buf)
		got, err := ReadInt(rc, length, length)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadUint_ZeroLengthIsZero(t *testing.T) {
	rc := NewReadCursor(nil)
	v, err := ReadUint(rc, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestReadUint_RejectsOverflowingLength(t *testing.T) {
	rc := NewReadCursor(make([]byte, 9))
	_, err := ReadUint(rc, 9, 9)
	require.Error(t, err)
}

func TestWriteUint_RejectsValueThatDoesNotFit(t *testing.T) {
	buf := make([]byte, 1)
	wc := NewWriteCursor(buf)
	require.Error(t, WriteUint(wc, 256, 1, 1))
}

func TestUintLength_MinimumBytes(t *testing.T) {
	assert.Equal(t, 1, UintLength(0))
	assert.Equal(t, 1, UintLength(255))
	assert.Equal(t, 2, UintLength(256))
	assert.Equal(t, 4, UintLength(1<<32-1))
	assert.Equal(t, 5, UintLength(1<<32))
}

func TestCursor_FailureDoesNotAdvance(t *testing.T) {
	rc := NewReadCursor([]byte{0x01})
	_, err := ReadUint(rc, 4, 4)
	require.Error(t, err)
	assert.Zero(t, rc.Pos())
}
