package codec

import (
	"fmt"

	"github.com/kwiver/goklv/errs"
)

// ReadBEROID reads a BER-OID encoded unsigned integer: each byte
// contributes its low 7 bits, most significant group first, with the high
// bit indicating "more bytes follow". It fails with errs.ErrBufferOverflow
// if no terminating byte (high bit clear) appears within max bytes, and with
// errs.ErrTypeOverflow if accumulating the value would overflow 64 bits.
func ReadBEROID(c *Cursor, max int) (uint64, error) {
	start := c.Pos()
	var v uint64
	for i := 0; ; i++ {
		if i >= max {
			_ = c.SeekTo(start)

			return 0, fmt.Errorf("%w: BER-OID not terminated within %d bytes", errs.ErrBufferOverflow, max)
		}

		b, err := c.ReadBytes(1, max-i)
		if err != nil {
			_ = c.SeekTo(start)

			return 0, err
		}

		if v > (^uint64(0))>>7 {
			_ = c.SeekTo(start)

			return 0, fmt.Errorf("%w: BER-OID value exceeds 64 bits", errs.ErrTypeOverflow)
		}
		v = (v << 7) | uint64(b[0]&0x7F)

		if b[0]&0x80 == 0 {
			return v, nil
		}
	}
}

// BEROIDLength returns the number of bytes WriteBEROID would emit for value.
func BEROIDLength(value uint64) int {
	n := 1
	for value >>= 7; value > 0; value >>= 7 {
		n++
	}

	return n
}

// WriteBEROID writes value as a BER-OID encoded integer.
func WriteBEROID(c *Cursor, value uint64, max int) error {
	n := BEROIDLength(value)
	if n > max {
		return fmt.Errorf("%w: BER-OID needs %d bytes, max is %d", errs.ErrBufferOverflow, n, max)
	}

	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(value & 0x7F)
		if i != n-1 {
			buf[i] |= 0x80
		}
		value >>= 7
	}

	return c.WriteBytes(buf, max)
}
