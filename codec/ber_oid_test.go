package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBEROID_RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 255, 256, 1<<16 - 1, 1 << 16, 1<<32 - 1, 1 << 32, 1<<64 - 1} {
		buf := make([]byte, 16)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteBEROID(wc, v, len(buf)))
		assert.Equal(t, BEROIDLength(v), wc.Pos())

		rc := NewReadCursor(wc.Consumed())
		got, err := ReadBEROID(rc, rc.Len())
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, rc.Len(), rc.Pos())
	}
}

func TestReadBEROID_UnterminatedFailsWithinMax(t *testing.T) {
	// Every byte has the continuation bit set; never terminates.
	rc := NewReadCursor([]byte{0x81, 0x81, 0x81, 0x81})
	_, err := ReadBEROID(rc, 3)
	require.Error(t, err)
}

func TestBEROID_SingleTagValues(t *testing.T) {
	// LDS tags in the single byte range are the common case.
	for tag := uint64(0); tag < 128; tag++ {
		buf := make([]byte, 2)
		wc := NewWriteCursor(buf)
		require.NoError(t, WriteBEROID(wc, tag, len(buf)))
		assert.Equal(t, 1, wc.Pos())
	}
}
