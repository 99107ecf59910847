// Package hash provides the fast, non-cryptographic hashing used to key
// lookup tables that would otherwise need a concatenated string key: the
// demuxer's ST 1108 metric-index table and the muxer's merge cache, which
// groups provisional packets by a tuple of parent fields.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Builder accumulates heterogeneous fields into a single xxHash64 digest.
// Unlike concatenating fields into a string key, Builder never allocates an
// intermediate buffer for the parts it is given as fixed-width integers.
type Builder struct {
	d xxhash.Digest
}

// NewBuilder returns a Builder ready to accumulate fields.
func NewBuilder() *Builder {
	b := &Builder{}
	b.d.Reset()

	return b
}

// WriteString folds a string field into the digest, including its length so
// that ("ab","c") and ("a","bc") never collide.
func (b *Builder) WriteString(s string) *Builder {
	var lenBuf [8]byte
	putUint64(lenBuf[:], uint64(len(s)))
	_, _ = b.d.Write(lenBuf[:])
	_, _ = b.d.Write([]byte(s))

	return b
}

// WriteUint64 folds a fixed-width integer field into the digest.
func (b *Builder) WriteUint64(v uint64) *Builder {
	var buf [8]byte
	putUint64(buf[:], v)
	_, _ = b.d.Write(buf[:])

	return b
}

// WriteBytes folds a raw byte field into the digest, length-prefixed.
func (b *Builder) WriteBytes(p []byte) *Builder {
	var lenBuf [8]byte
	putUint64(lenBuf[:], uint64(len(p)))
	_, _ = b.d.Write(lenBuf[:])
	_, _ = b.d.Write(p)

	return b
}

// Sum64 returns the accumulated digest.
func (b *Builder) Sum64() uint64 {
	return b.d.Sum64()
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}
