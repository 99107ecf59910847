package archive

import "github.com/klauspost/compress/s2"

// S2Codec compresses records with S2, the Snappy-compatible format tuned
// for speed over ratio. A good default for live capture, where the writer
// must keep up with the incoming packet stream.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec returns an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress compresses data as a single S2 block.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores a single S2 block.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
