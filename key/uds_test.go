package key

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// st0601Key is the published ST 0601 UAS Datalink top-level key.
var st0601Key = []byte{
	0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01,
	0x0E, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00,
}

func TestParseUDS_ST0601(t *testing.T) {
	k, err := ParseUDS(st0601Key)
	require.NoError(t, err)

	assert.True(t, k.IsValid())
	assert.Equal(t, CategoryGroup, k.Category())
	assert.Equal(t, GroupFlavorLocalSet, k.GroupFlavor())
}

func TestParseUDS_RejectsWrongLength(t *testing.T) {
	_, err := ParseUDS(st0601Key[:15])
	require.Error(t, err)
}

func TestUDS_InvalidPrefixFailsIsValid(t *testing.T) {
	bad := append([]byte(nil), st0601Key...)
	bad[0] = 0xFF
	k, err := ParseUDS(bad)
	require.NoError(t, err)
	assert.False(t, k.IsValid())
}

func TestUDS_EqualityIgnoresByte7(t *testing.T) {
	a, err := ParseUDS(st0601Key)
	require.NoError(t, err)

	other := append([]byte(nil), st0601Key...)
	other[7] = 0x55
	b, err := ParseUDS(other)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Zero(t, a.Compare(b))
}

func TestUDS_CompareOrdersByOtherBytes(t *testing.T) {
	a, err := ParseUDS(st0601Key)
	require.NoError(t, err)

	other := append([]byte(nil), st0601Key...)
	other[8] = 0xFF
	b, err := ParseUDS(other)
	require.NoError(t, err)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func TestReadWriteUDS_RoundTrip(t *testing.T) {
	rc := codec.NewReadCursor(st0601Key)
	k, err := ReadUDS(rc, rc.Len())
	require.NoError(t, err)
	assert.Equal(t, rc.Len(), rc.Pos())

	buf := make([]byte, UDSSize)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteUDS(wc, k, len(buf)))
	assert.Equal(t, st0601Key, buf)
}
