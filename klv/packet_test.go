package klv

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUDS(t *testing.T, b []byte) key.UDS {
	t.Helper()

	k, err := key.ParseUDS(b)
	require.NoError(t, err)

	return k
}

func testPacketKey(t *testing.T) key.UDS {
	return mustUDS(t, []byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00})
}

func testPacketLookup(t *testing.T) *PacketKeyLookup {
	return NewPacketKeyLookup(map[key.UDS]Format{
		testPacketKey(t): LocalSetFormat{Lookup: testLookup(t)},
	})
}

func encodeTestPacket(t *testing.T) []byte {
	t.Helper()

	ls := NewLocalSetContainer()
	ls.Add(2, NewUint(1_000_000_000).WithLengthHint(8))
	ls.Add(3, NewString("HAWK"))
	p := Packet{Key: testPacketKey(t), Value: NewLocalSet(ls)}

	lookup := testPacketLookup(t)
	length, err := PacketLength(p, lookup)
	require.NoError(t, err)

	buf := make([]byte, length)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WritePacket(wc, p, len(buf), lookup))
	require.Equal(t, length, wc.Pos())

	return buf
}

func TestPacket_RoundTrip(t *testing.T) {
	buf := encodeTestPacket(t)

	rc := codec.NewReadCursor(buf)
	p, err := ReadPacket(rc, len(buf), testPacketLookup(t), nil)
	require.NoError(t, err)

	assert.True(t, p.Key.Equal(testPacketKey(t)))
	ls, ok := p.Value.LocalSet()
	require.True(t, ok)
	assert.Equal(t, 1, ls.Count(2))
	assert.Equal(t, 1, ls.Count(3))
}

func TestReadPacket_SkipsLeadingGarbage(t *testing.T) {
	buf := append([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}, encodeTestPacket(t)...)

	rc := codec.NewReadCursor(buf)
	p, err := ReadPacket(rc, len(buf), testPacketLookup(t), nil)
	require.NoError(t, err)
	assert.True(t, p.Key.Equal(testPacketKey(t)))
}

func TestReadPacket_FailsWithoutPrefix(t *testing.T) {
	rc := codec.NewReadCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	_, err := ReadPacket(rc, 8, testPacketLookup(t), nil)
	require.Error(t, err)
}

func TestReadPacket_UnregisteredKeyYieldsBlob(t *testing.T) {
	other := mustUDS(t, []byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x02, 0x02, 0x00, 0x00, 0x00})

	payload := []byte{0xCA, 0xFE}
	buf := make([]byte, 0, 16+1+len(payload))
	kb := other.Bytes()
	buf = append(buf, kb[:]...)
	buf = append(buf, byte(len(payload)))
	buf = append(buf, payload...)

	rc := codec.NewReadCursor(buf)
	p, err := ReadPacket(rc, len(buf), testPacketLookup(t), nil)
	require.NoError(t, err)

	b, ok := p.Value.Blob()
	require.True(t, ok)
	assert.Equal(t, payload, b)
}

func TestWritePacket_BlobPayloadForUnregisteredKey(t *testing.T) {
	other := mustUDS(t, []byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x02, 0x02, 0x00, 0x00, 0x00})
	p := Packet{Key: other, Value: NewBlob([]byte{0xCA, 0xFE})}

	lookup := testPacketLookup(t)
	length, err := PacketLength(p, lookup)
	require.NoError(t, err)
	assert.Equal(t, 16+1+2, length)

	buf := make([]byte, length)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WritePacket(wc, p, len(buf), lookup))

	rc := codec.NewReadCursor(buf)
	got, err := ReadPacket(rc, len(buf), lookup, nil)
	require.NoError(t, err)
	b, ok := got.Value.Blob()
	require.True(t, ok)
	assert.Equal(t, []byte{0xCA, 0xFE}, b)
}
