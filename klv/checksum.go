// Checksum packet formats. Each
// LocalSetFormat/UniversalSetFormat may be configured with a trailing
// ChecksumAlgorithm; the set format itself is responsible for locating the
// trailing tag and invoking Evaluate over the bytes that precede it (see
// setformat.go), since the algorithm needs the whole preceding payload, not
// just the trailer's own bytes.
//
// Each algorithm folds the trailer's own header bytes (tag + length) into
// the computation before the trailer value itself, so that evaluating a
// complete, valid packet (header bytes included, value excluded) yields
// the documented constant.
package klv

import (
	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
)

// ChecksumAlgorithm computes and verifies one of the three checksum
// variants used by the MISB standards this module models.
type ChecksumAlgorithm interface {
	// Name identifies the algorithm for diagnostics, e.g. "sum16".
	Name() string

	// ValueLength is the width in bytes of the trailing numeric checksum (2
	// or 4).
	ValueLength() int

	// Evaluate computes the checksum over header (the trailer's own tag+length
	// bytes) followed by data (every byte of the set that precedes the
	// trailer, not including the trailer's header or value).
	Evaluate(header, data []byte) uint64
}

// Sum16 is the ST 0601 16-bit running sum: bytes are summed as alternating
// high/low bytes of 16-bit words, byte 0 being the high byte of word 0. An
// odd-length input is treated as if a zero byte were appended.
type Sum16 struct{}

func (Sum16) Name() string       { return "sum16" }
func (Sum16) ValueLength() int   { return 2 }

func (Sum16) Evaluate(header, data []byte) uint64 {
	var sum uint16
	odd := false
	apply := func(b byte) {
		if odd {
			sum += uint16(b)
		} else {
			sum += uint16(b) << 8
		}
		odd = !odd
	}
	for _, b := range header {
		apply(b)
	}
	for _, b := range data {
		apply(b)
	}
	if odd {
		apply(0)
	}

	return uint64(sum)
}

// crc16CCITTTable is the bit-reversal-free (MSB-first) CRC-16-CCITT table
// for polynomial 0x1021, built once at package init. The standard library's
// hash/crc32 (and any CRC package in this corpus) only supports reflected
// (LSB-first) polynomials, which CRC-16-CCITT as MISB defines it is not —
// see DESIGN.md for why this table is hand-built instead of imported.
var crc16CCITTTable = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}

	return table
}()

// CRC16CCITT is the CRC-16-CCITT (false) variant: polynomial
// 0x1021, initial value 0xFFFF, 16 bits of zero appended before
// finalization, no reflection, no output XOR.
type CRC16CCITT struct{}

func (CRC16CCITT) Name() string     { return "crc16ccitt" }
func (CRC16CCITT) ValueLength() int { return 2 }

func (CRC16CCITT) Evaluate(header, data []byte) uint64 {
	crc := uint16(0xFFFF)
	step := func(b byte) {
		crc = (crc << 8) ^ crc16CCITTTable[byte(crc>>8)^b]
	}
	for _, b := range header {
		step(b)
	}
	for _, b := range data {
		step(b)
	}
	step(0)
	step(0)

	return uint64(crc)
}

// crc32MPEGTable is the non-reflected CRC-32/MPEG-2 table for polynomial
// 0x04C11DB7.
var crc32MPEGTable = func() [256]uint32 {
	var table [256]uint32
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for b := 0; b < 8; b++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ 0x04C11DB7
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}

	return table
}()

// CRC32MPEG is the CRC-32/MPEG-2 variant: polynomial
// 0x04C11DB7, initial value 0xFFFFFFFF, no reflection, no output XOR.
type CRC32MPEG struct{}

func (CRC32MPEG) Name() string     { return "crc32mpeg" }
func (CRC32MPEG) ValueLength() int { return 4 }

func (CRC32MPEG) Evaluate(header, data []byte) uint64 {
	crc := uint32(0xFFFFFFFF)
	step := func(b byte) {
		crc = (crc << 8) ^ crc32MPEGTable[byte(crc>>24)^b]
	}
	for _, b := range header {
		step(b)
	}
	for _, b := range data {
		step(b)
	}

	return uint64(crc)
}

// ChecksumFormat is the Format registered under a set's checksum tag. It
// only knows how to read/write the trailing numeric value itself; evaluating
// and verifying the checksum against the preceding payload is the enclosing
// LocalSetFormat/UniversalSetFormat's job (it alone knows where the payload
// starts).
type ChecksumFormat struct {
	Algorithm ChecksumAlgorithm
}

func (f ChecksumFormat) TypeName() string { return "checksum_" + f.Algorithm.Name() }

func (f ChecksumFormat) FixedLength() int { return f.Algorithm.ValueLength() }

func (f ChecksumFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != f.Algorithm.ValueLength() {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Algorithm.ValueLength(), length)
	}

	v, err := codec.ReadUint(c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewUint(v), nil
}

func (f ChecksumFormat) Write(c *codec.Cursor, v Value, max int) error {
	u, ok := v.Uint()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Algorithm.ValueLength(), -1)
	}

	return codec.WriteUint(c, u, f.Algorithm.ValueLength(), max)
}

func (f ChecksumFormat) LengthOf(Value) (int, error) { return f.Algorithm.ValueLength(), nil }

// ErrChecksumMismatch marks a trailing checksum that does not match the
// computed value. Mismatches are logged and the packet is still returned,
// so the application layer decides whether to use it.
var ErrChecksumMismatch = errs.ErrMetadata
