// Package key implements the two key types that identify a KLV tag: the
// 16-byte SMPTE Universal key (UDS) used by universal sets and top-level
// packets, and the small BER-OID encoded Local key (LDS) used inside local
// sets.
package key

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
)

// UDSSize is the fixed byte length of a Universal key.
const UDSSize = 16

// udsPrefix is the fixed SMPTE 336 prefix every valid UDS key starts with.
var udsPrefix = [4]byte{0x06, 0x0E, 0x2B, 0x34}

// Category is the top-level classification carried in byte 4 of a UDS key.
type Category uint8

const (
	CategoryUnknown Category = 0
	CategorySingle  Category = 1
	CategoryGroup   Category = 2
	CategoryWrapper Category = 3
	CategoryLabel   Category = 4
	CategoryPrivate Category = 5
)

func (c Category) String() string {
	switch c {
	case CategorySingle:
		return "single"
	case CategoryGroup:
		return "group"
	case CategoryWrapper:
		return "wrapper"
	case CategoryLabel:
		return "label"
	case CategoryPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// GroupFlavor is the sub-classification carried in the low 3 bits of byte 5
// when Category is CategoryGroup.
type GroupFlavor uint8

const (
	GroupFlavorReserved     GroupFlavor = 0
	GroupFlavorUniversal    GroupFlavor = 1
	GroupFlavorGlobal       GroupFlavor = 2
	GroupFlavorLocalSet     GroupFlavor = 3
	GroupFlavorVariablePack GroupFlavor = 4
	GroupFlavorFixedPack    GroupFlavor = 5
)

func (f GroupFlavor) String() string {
	switch f {
	case GroupFlavorUniversal:
		return "universal"
	case GroupFlavorGlobal:
		return "global"
	case GroupFlavorLocalSet:
		return "local_set"
	case GroupFlavorVariablePack:
		return "variable_pack"
	case GroupFlavorFixedPack:
		return "fixed_pack"
	default:
		return "reserved"
	}
}

// UDS is a 16-byte SMPTE Universal key. The zero value is not a valid key;
// construct one with ReadUDS, ParseUDS or NewUDS.
type UDS struct {
	bytes [UDSSize]byte
}

// NewUDS copies the given 16 bytes into a UDS key without validating them;
// use IsValid to check afterward.
func NewUDS(b [UDSSize]byte) UDS {
	return UDS{bytes: b}
}

// ParseUDS copies a 16-byte slice into a UDS key, failing if it is not
// exactly 16 bytes long.
func ParseUDS(b []byte) (UDS, error) {
	if len(b) != UDSSize {
		return UDS{}, fmt.Errorf("%w: UDS key must be %d bytes, got %d", errs.ErrMetadata, UDSSize, len(b))
	}

	var k UDS
	copy(k.bytes[:], b)

	return k, nil
}

// ReadUDS reads exactly 16 bytes from c as a UDS key, without validating
// the prefix — callers that must reject invalid keys should call IsValid.
func ReadUDS(c *codec.Cursor, max int) (UDS, error) {
	b, err := c.ReadBytes(UDSSize, max)
	if err != nil {
		return UDS{}, err
	}

	var k UDS
	copy(k.bytes[:], b)

	return k, nil
}

// WriteUDS writes the key's 16 bytes verbatim.
func WriteUDS(c *codec.Cursor, k UDS, max int) error {
	return c.WriteBytes(k.bytes[:], max)
}

// Bytes returns the key's 16 raw bytes.
func (k UDS) Bytes() [UDSSize]byte { return k.bytes }

// IsValid reports whether the key carries the fixed SMPTE 336 prefix and has
// the high bit clear in bytes 4-7.
func (k UDS) IsValid() bool {
	for i, b := range udsPrefix {
		if k.bytes[i] != b {
			return false
		}
	}
	for i := 4; i < 8; i++ {
		if k.bytes[i]&0x80 != 0 {
			return false
		}
	}

	return true
}

// Category returns the key's top-level classification (byte 4).
func (k UDS) Category() Category {
	return Category(k.bytes[4])
}

// GroupFlavor returns the group sub-classification (the low 3 bits of byte
// 5). It is only meaningful when Category is CategoryGroup.
func (k UDS) GroupFlavor() GroupFlavor {
	return GroupFlavor(k.bytes[5] & 0x07)
}

// LengthEncodingHint returns the bits of byte 5 above the group flavor. This
// core does not interpret them further; they are exposed for diagnostics and
// for formats that need to round-trip a key byte-for-byte.
func (k UDS) LengthEncodingHint() uint8 {
	return k.bytes[5] >> 3
}

// Equal compares two UDS keys ignoring byte 7, which SMPTE 336 reserves and
// does not require producers to zero.
func (k UDS) Equal(other UDS) bool {
	return k.Compare(other) == 0
}

// Compare orders two UDS keys lexicographically over bytes 0-6 and 8-15,
// skipping the reserved byte 7. It returns -1, 0 or 1.
func (k UDS) Compare(other UDS) int {
	for i := 0; i < UDSSize; i++ {
		if i == 7 {
			continue
		}
		if k.bytes[i] != other.bytes[i] {
			if k.bytes[i] < other.bytes[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// String renders the key as hyphenated hex pairs, e.g. "06-0E-2B-34-...".
func (k UDS) String() string {
	buf := make([]byte, 0, UDSSize*3-1)
	for i, b := range k.bytes {
		if i > 0 {
			buf = append(buf, '-')
		}
		buf = append(buf, hexDigit(b>>4), hexDigit(b&0xF))
	}

	return string(buf)
}

func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}

	return 'A' + b - 10
}
