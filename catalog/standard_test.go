package catalog

import (
	"testing"

	"github.com/kwiver/goklv/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardForKey_RoundTrip(t *testing.T) {
	for _, s := range Standards() {
		k := KeyForStandard(s)
		assert.True(t, k.IsValid(), s.String())
		assert.Equal(t, s, StandardForKey(k), s.String())
	}
}

func TestStandardForKey_IgnoresByte7(t *testing.T) {
	b := ST0601Key.Bytes()
	b[7] = 0x42
	assert.Equal(t, ST0601, StandardForKey(key.NewUDS(b)))
}

func TestStandardForKey_UnknownKey(t *testing.T) {
	k, err := key.ParseUDS([]byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x7F, 0x7F, 0x7F, 0x7F, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, StandardUnknown, StandardForKey(k))
}

func TestLookups_BuildForEverySetStandard(t *testing.T) {
	for _, s := range Standards() {
		if s == ST1204 {
			assert.Nil(t, LookupFor(s))

			continue
		}
		require.NotNil(t, LookupFor(s), s.String())
	}
}

func TestPacketKeys_CoversEveryStandard(t *testing.T) {
	lookup := PacketKeys()
	for _, s := range Standards() {
		_, ok := lookup.ByKey(KeyForStandard(s))
		assert.True(t, ok, s.String())
	}
}

func TestTimestampTags(t *testing.T) {
	tag, ok := TimestampTag(ST0601)
	require.True(t, ok)
	assert.Equal(t, ST0601PrecisionTimestamp, tag)

	_, ok = TimestampTag(ST0102)
	assert.False(t, ok)
}
