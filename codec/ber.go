package codec

import (
	"fmt"

	"github.com/kwiver/goklv/errs"
)

// ReadBER reads a BER length field: short form (the lead byte is the value,
// when its high bit is 0) or long form (lead byte 0x80|n, followed by n
// big-endian bytes). max bounds the total bytes consumed, including the
// lead byte.
func ReadBER(c *Cursor, max int) (uint64, error) {
	start := c.Pos()
	lead, err := c.ReadBytes(1, max)
	if err != nil {
		return 0, err
	}

	if lead[0]&0x80 == 0 {
		return uint64(lead[0]), nil
	}

	n := int(lead[0] &^ 0x80)
	v, err := ReadUint(c, n, max-1)
	if err != nil {
		_ = c.SeekTo(start)

		return 0, fmt.Errorf("ber long form: %w", err)
	}

	return v, nil
}

// BERLength returns the number of bytes WriteBER would emit for value: 1 for
// short form, 1+IntLength(value)'s unsigned equivalent for long form.
func BERLength(value uint64) int {
	if value < 128 {
		return 1
	}

	return 1 + UintLength(value)
}

// WriteBER writes value in short form when it fits in 7 bits, long form
// otherwise.
func WriteBER(c *Cursor, value uint64, max int) error {
	if value < 128 {
		return c.WriteBytes([]byte{byte(value)}, max)
	}

	n := UintLength(value)
	if n > 127 {
		return fmt.Errorf("%w: BER long-form length %d does not fit in 7 bits", errs.ErrTypeOverflow, n)
	}

	start := c.Pos()
	if err := c.WriteBytes([]byte{0x80 | byte(n)}, max); err != nil {
		return err
	}

	if err := WriteUint(c, value, n, max-1); err != nil {
		_ = c.SeekTo(start)

		return err
	}

	return nil
}
