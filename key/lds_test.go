package key

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLDS_RoundTrip(t *testing.T) {
	for _, v := range []LDS{0, 1, 127, 128, 65535, 1 << 20} {
		buf := make([]byte, 8)
		wc := codec.NewWriteCursor(buf)
		require.NoError(t, WriteLDS(wc, v, len(buf)))
		assert.Equal(t, v.Length(), wc.Pos())

		rc := codec.NewReadCursor(wc.Consumed())
		got, err := ReadLDS(rc, rc.Len())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
