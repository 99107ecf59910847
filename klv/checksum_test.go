package klv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Check vectors for CRC-16-CCITT (false) with the 16 appended zero bits:
// the augmentation makes the empty input come out as 0x1D0F and
// "123456789" as 0x0B84 (the widely quoted 0x29B1 is the non-augmented
// variant's check value).
func TestCRC16CCITT_KnownVectors(t *testing.T) {
	assert.Equal(t, uint64(0x1D0F), CRC16CCITT{}.Evaluate(nil, nil))
	assert.Equal(t, uint64(0x0B84), CRC16CCITT{}.Evaluate(nil, []byte("123456789")))
}

func TestCRC32MPEG_KnownVector(t *testing.T) {
	assert.Equal(t, uint64(0x0376E6E7), CRC32MPEG{}.Evaluate(nil, []byte("123456789")))
}

func TestSum16_WordOrder(t *testing.T) {
	// Byte 0 is the high byte of word 0.
	assert.Equal(t, uint64(0x0102), Sum16{}.Evaluate(nil, []byte{0x01, 0x02}))
	// Odd length: a zero byte is effectively appended.
	assert.Equal(t, uint64(0x0100), Sum16{}.Evaluate(nil, []byte{0x01}))
	// Header bytes fold in before the data.
	assert.Equal(t, uint64(0x0103), Sum16{}.Evaluate([]byte{0x01, 0x02}, []byte{0x00, 0x01}))
}

func TestChecksums_SingleByteAlterationChangesValue(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	for _, alg := range []ChecksumAlgorithm{Sum16{}, CRC16CCITT{}, CRC32MPEG{}} {
		base := alg.Evaluate(nil, data)
		for i := range data {
			altered := append([]byte(nil), data...)
			altered[i] ^= 0x01
			assert.NotEqual(t, base, alg.Evaluate(nil, altered),
				"%s must change when byte %d changes", alg.Name(), i)
		}
	}
}
