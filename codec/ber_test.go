package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBER_RoundTrip(t *testing.T) {
	cases := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x80}},
		{65535, []byte{0x82, 0xFF, 0xFF}},
		{16777216, []byte{0x84, 0x01, 0x00, 0x00, 0x00}},
	}

	for _, tc := range cases {
		buf := make([]byte, 16)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteBER(wc, tc.value, len(buf)))
		assert.Equal(t, tc.encoded, wc.Consumed())
		assert.Equal(t, len(tc.encoded), BERLength(tc.value))

		rc := NewReadCursor(wc.Consumed())
		got, err := ReadBER(rc, rc.Len())
		require.NoError(t, err)
		assert.Equal(t, tc.value, got)
		assert.Equal(t, rc.Len(), rc.Pos())
	}
}

func TestBER_Boundaries(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 255, 256, 1<<16 - 1, 1 << 16, 1<<32 - 1, 1 << 32, 1<<64 - 1} {
		buf := make([]byte, 16)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteBER(wc, v, len(buf)))
		assert.Len(t, wc.Consumed(), BERLength(v))

		rc := NewReadCursor(wc.Consumed())
		got, err := ReadBER(rc, rc.Len())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadBER_OverflowsBeyondMax(t *testing.T) {
	rc := NewReadCursor([]byte{0x82, 0xFF, 0xFF})
	_, err := ReadBER(rc, 2)
	require.Error(t, err)
}

func TestWriteBER_OverflowsBeyondMax(t *testing.T) {
	buf := make([]byte, 1)
	wc := NewWriteCursor(buf)
	require.Error(t, WriteBER(wc, 300, 1))
}
