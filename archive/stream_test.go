package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_RoundTripEveryCodec(t *testing.T) {
	records := []Record{
		{Timestamp: 1_000_000, Data: []byte{0x06, 0x0E, 0x2B, 0x34, 0x01, 0x02, 0x03}},
		{Timestamp: 2_000_000, Data: bytes.Repeat([]byte{0xAB, 0x00, 0xCD}, 500)},
		{Timestamp: 2_000_001, Data: []byte{}},
	}

	for _, comp := range []Compression{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, comp)
		require.NoError(t, err, comp.String())

		for _, r := range records {
			require.NoError(t, w.WriteRecord(r.Timestamp, r.Data))
		}

		r, err := NewReader(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)

		for i, want := range records {
			got, err := r.ReadRecord()
			require.NoError(t, err, "%s record %d", comp, i)
			assert.Equal(t, want.Timestamp, got.Timestamp)
			if len(want.Data) == 0 {
				assert.Empty(t, got.Data)
			} else {
				assert.Equal(t, want.Data, got.Data)
			}
		}

		_, err = r.ReadRecord()
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestNewReader_RejectsBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{'N', 'O', 'P', 'E', 1, 0}))
	require.Error(t, err)
}

func TestNewReader_RejectsUnknownCompression(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{'G', 'K', 'L', 'V', 1, 0xFF}))
	require.Error(t, err)
}

func TestCodecFor_Unknown(t *testing.T) {
	_, err := CodecFor(Compression(200))
	require.Error(t, err)
}
