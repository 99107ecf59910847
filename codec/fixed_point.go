// IMAP and FLINT are the two fixed-point float encodings from MISB ST 1201
// used throughout KLV and STANAG payloads (sensor position, dwell area,
// velocities, ...). Both map a length-byte integer onto a caller-supplied
// domain [lo, hi]; they differ in how the integer's bits are interpreted.
//
// IMAP treats the integer as plain unsigned and folds lo in as an additive
// offset: value = integer * (hi-lo) / (2^(8L)-1) + lo.
//
// FLINT reserves the integer's top bit as an explicit sign flag and maps the
// remaining 8L-1 bits to the magnitude [0, hi-lo]:
// value = sign * magnitude * (hi-lo) / (2^(8L-1)-1). Symmetric domains
// like latitude [-90,90] and strictly non-negative domains like heading
// [0,359.99] both use this layout; for an unsigned-domain field the top
// bit is present in the wire format and simply never set. That is why
// FLINT's value formula has no "+lo" term the way IMAP's does: the sign
// bit already centers the encoding on zero.
package codec

import (
	"fmt"
	"math"

	"github.com/kwiver/goklv/errs"
)

// ReadIMAP reads a length-byte IMAP fixed-point value in the domain [lo, hi].
func ReadIMAP(lo, hi float64, c *Cursor, length, max int) (float64, error) {
	if length == 0 {
		return 0, nil
	}
	if length > 8 {
		return 0, fmt.Errorf("%w: IMAP length %d exceeds 8 bytes", errs.ErrTypeOverflow, length)
	}

	u, err := ReadUint(c, length, max)
	if err != nil {
		return 0, err
	}

	denom := math.Ldexp(1, 8*length) - 1

	return float64(u)*(hi-lo)/denom + lo, nil
}

// WriteIMAP writes value, quantized to the nearest representable
// length-byte IMAP integer in the domain [lo, hi]. Values outside [lo, hi]
// are clamped.
func WriteIMAP(lo, hi, value float64, c *Cursor, length, max int) error {
	if length > 8 {
		return fmt.Errorf("%w: IMAP length %d exceeds 8 bytes", errs.ErrTypeOverflow, length)
	}

	denom := math.Ldexp(1, 8*length) - 1
	u := math.Round((clamp(value, lo, hi) - lo) * denom / (hi - lo))

	return WriteUint(c, uint64(u), length, max)
}

// ReadFLINT reads a length-byte FLINT fixed-point value. The wire format
// reserves the integer's top bit as a sign flag; the remaining 8L-1 bits
// scale over [0, hi-lo].
func ReadFLINT(lo, hi float64, c *Cursor, length, max int) (float64, error) {
	if length == 0 {
		return 0, nil
	}
	if length > 8 {
		return 0, fmt.Errorf("%w: FLINT length %d exceeds 8 bytes", errs.ErrTypeOverflow, length)
	}

	u, err := ReadUint(c, length, max)
	if err != nil {
		return 0, err
	}

	magBits := uint(8*length - 1)
	signBit := uint64(1) << magBits
	magMask := signBit - 1

	magnitude := u & magMask
	denom := float64(int64(magMask))
	value := float64(magnitude) * (hi - lo) / denom

	if u&signBit != 0 {
		value = -value
	}

	return value, nil
}

// WriteFLINT writes value, quantized to the nearest representable
// length-byte FLINT integer.
func WriteFLINT(lo, hi, value float64, c *Cursor, length, max int) error {
	if length > 8 {
		return fmt.Errorf("%w: FLINT length %d exceeds 8 bytes", errs.ErrTypeOverflow, length)
	}

	magBits := uint(8*length - 1)
	maxMag := (uint64(1) << magBits) - 1
	denom := float64(int64(maxMag))

	sign := uint64(0)
	mag := value
	if mag < 0 {
		sign = uint64(1) << magBits
		mag = -mag
	}
	if mag > hi-lo {
		mag = hi - lo
	}

	magnitude := uint64(math.Round(mag * denom / (hi - lo)))
	if magnitude > maxMag {
		magnitude = maxMag
	}

	return WriteUint(c, sign|magnitude, length, max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
