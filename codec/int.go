package codec

import (
	"fmt"

	"github.com/kwiver/goklv/errs"
)

// ReadUint reads length bytes as a big-endian unsigned integer. length must
// be between 0 and 8 inclusive; length == 0 returns 0 without consuming any
// bytes. Reading more than 8 bytes fails with errs.ErrTypeOverflow since the
// result would not fit in a uint64.
func ReadUint(c *Cursor, length, max int) (uint64, error) {
	if length == 0 {
		return 0, nil
	}
	if length > 8 {
		return 0, fmt.Errorf("%w: %d-byte unsigned integer exceeds 64 bits", errs.ErrTypeOverflow, length)
	}

	b, err := c.ReadBytes(length, max)
	if err != nil {
		return 0, err
	}

	var v uint64
	for _, by := range b {
		v = (v << 8) | uint64(by)
	}

	return v, nil
}

// ReadInt reads length bytes as a big-endian two's-complement signed
// integer, sign-extending to 64 bits.
func ReadInt(c *Cursor, length, max int) (int64, error) {
	if length == 0 {
		return 0, nil
	}
	if length > 8 {
		return 0, fmt.Errorf("%w: %d-byte signed integer exceeds 64 bits", errs.ErrTypeOverflow, length)
	}

	u, err := ReadUint(c, length, max)
	if err != nil {
		return 0, err
	}

	signBit := uint64(1) << (8*length - 1)
	if u&signBit != 0 {
		// Sign-extend: set every bit above the read width.
		u |= ^uint64(0) << (8 * length)
	}

	return int64(u), nil
}

// UintLength returns the minimum number of bytes required to hold value,
// at least 1.
func UintLength(value uint64) int {
	n := 1
	for value > 0xFF {
		value >>= 8
		n++
	}

	return n
}

// IntLength returns the minimum number of bytes required to hold value in
// two's-complement form, at least 1.
func IntLength(value int64) int {
	if value >= 0 {
		// One extra bit is needed to keep the sign bit clear.
		n := 1
		for value > 0x7F {
			value >>= 8
			n++
		}

		return n
	}

	n := 1
	for value < -0x80 {
		value >>= 8
		n++
	}

	return n
}

// WriteUint writes value as length big-endian bytes, zero-padding on the
// left as needed. It fails with errs.ErrTypeOverflow if value does not fit
// in length bytes.
func WriteUint(c *Cursor, value uint64, length, max int) error {
	if length > 8 {
		return fmt.Errorf("%w: %d-byte field exceeds 64 bits", errs.ErrTypeOverflow, length)
	}
	if length < 8 && value>>(8*length) != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bytes", errs.ErrTypeOverflow, value, length)
	}

	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		buf[i] = byte(value)
		value >>= 8
	}

	return c.WriteBytes(buf, max)
}

// WriteInt writes value as length big-endian two's-complement bytes.
func WriteInt(c *Cursor, value int64, length, max int) error {
	u := uint64(value)
	if length < 8 {
		hi := value >> (8*length - 1)
		if hi != 0 && hi != -1 {
			return fmt.Errorf("%w: value %d does not fit in %d bytes", errs.ErrTypeOverflow, value, length)
		}
		// Keep only the low length bytes of the two's-complement form.
		u &= (uint64(1) << (8 * length)) - 1
	}

	return WriteUint(c, u, length, max)
}
