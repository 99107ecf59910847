// Package archive is a compressed container format for recorded
// KLV/STANAG 4607 byte streams: a small header naming the compression
// codec, then length-prefixed records, each holding one packet's raw
// encoded bytes. It exists so captures can be replayed in tests and
// tooling without shipping multi-megabyte raw .klv files.
//
// The record framing reuses this module's own BER length encoding.
package archive

import (
	"fmt"
)

// Compression selects the record compression algorithm.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Compressor compresses one record's bytes.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated except
//     for NoOpCodec, which returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one record's bytes. Implementations validate the
// input format and return an error if the data is corrupted or uses an
// incompatible format.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions; every built-in compression implements it.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Compression]Codec{
	CompressionNone: NewNoOpCodec(),
	CompressionZstd: NewZstdCodec(),
	CompressionS2:   NewS2Codec(),
	CompressionLZ4:  NewLZ4Codec(),
}

// CodecFor retrieves the built-in Codec for c.
func CodecFor(c Compression) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression: %s", c)
}
