// Package codec implements the primitive binary codec underlying every KLV
// and STANAG 4607 value: variable-length big-endian integers, BER and
// BER-OID length/integer encodings, and the IMAP/FLINT fixed-point float
// encodings from MISB ST 1201.
//
// Every read/write function in this package takes a *Cursor and a max byte
// budget, and either advances the cursor by exactly the number of bytes
// consumed and returns a value, or leaves the cursor untouched and returns
// one of errs.ErrBufferOverflow / errs.ErrTypeOverflow. This "rewind on
// failure" contract means callers never have to manually unwind a
// partially advanced position after an error.
package codec

import (
	"fmt"

	"github.com/kwiver/goklv/errs"
)

// Cursor is a forward-only read/write position over a byte buffer.
//
// Cursor is not safe for concurrent use; it is intended to be created,
// threaded through a single parse or serialize call, and discarded.
type Cursor struct {
	buf []byte
	pos int
}

// NewReadCursor wraps buf for reading starting at position 0.
func NewReadCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewWriteCursor wraps buf for writing starting at position 0. buf's length
// is the write capacity; writes that would exceed it fail with
// errs.ErrBufferOverflow.
func NewWriteCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset into the underlying buffer.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread/unwritten bytes left in the buffer.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes returns the unread/unwritten suffix of the buffer.
func (c *Cursor) Bytes() []byte { return c.buf[c.pos:] }

// Consumed returns the bytes read or written so far.
func (c *Cursor) Consumed() []byte { return c.buf[:c.pos] }

// peek returns the next n bytes without advancing the cursor, failing if
// fewer than n bytes remain or n exceeds max.
func (c *Cursor) peek(n, max int) ([]byte, error) {
	if n > max {
		return nil, fmt.Errorf("%w: need %d bytes, max is %d", errs.ErrBufferOverflow, n, max)
	}
	if n > c.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, %d remain", errs.ErrBufferOverflow, n, c.Remaining())
	}

	return c.buf[c.pos : c.pos+n], nil
}

// Advance moves the cursor forward by n bytes, failing without moving it if
// that would run past the end of the buffer.
func (c *Cursor) Advance(n int) error {
	if n < 0 || n > c.Remaining() {
		return fmt.Errorf("%w: cannot advance %d, %d remain", errs.ErrBufferOverflow, n, c.Remaining())
	}
	c.pos += n

	return nil
}

// SeekTo moves the cursor back to an earlier absolute position. It exists
// for the rewind-on-failure idiom: a caller records Pos() before a
// multi-step parse and seeks back when a later step fails, so the failed
// bytes can be re-read as a blob.
func (c *Cursor) SeekTo(pos int) error {
	if pos < 0 || pos > c.pos {
		return fmt.Errorf("%w: cannot seek to %d from %d", errs.ErrBufferOverflow, pos, c.pos)
	}
	c.pos = pos

	return nil
}

// ReadBytes returns the next n bytes and advances the cursor past them.
// max bounds n the same way every other read function in this package is
// bounded, so a caller parsing a nested value can pass the remaining length
// budget for that value rather than the whole buffer.
func (c *Cursor) ReadBytes(n, max int) ([]byte, error) {
	b, err := c.peek(n, max)
	if err != nil {
		return nil, err
	}
	c.pos += n

	return b, nil
}

// WriteBytes appends p to the buffer at the current position, failing
// without writing if p would not fit within max bytes or the buffer's
// remaining capacity.
func (c *Cursor) WriteBytes(p []byte, max int) error {
	if len(p) > max {
		return fmt.Errorf("%w: need %d bytes, max is %d", errs.ErrBufferOverflow, len(p), max)
	}
	if len(p) > c.Remaining() {
		return fmt.Errorf("%w: need %d bytes, %d remain", errs.ErrBufferOverflow, len(p), c.Remaining())
	}
	copy(c.buf[c.pos:], p)
	c.pos += len(p)

	return nil
}
