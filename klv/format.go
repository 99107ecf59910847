package klv

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/logging"
)

// Format reads and writes one semantic type's wire representation
//. A Format is stateless with respect to any one Value; all
// state (domain bounds, fixed widths, nested tag tables) is configured at
// construction.
type Format interface {
	// Read parses length bytes from c into a Value. length is whatever the
	// enclosing framing (local/universal set triple, fixed packet field)
	// declared for this occurrence; a variable-width Format uses it as the
	// wire width, a fixed-width Format must confirm it matches FixedLength.
	Read(c *codec.Cursor, length, max int) (Value, error)

	// Write encodes v to c. The number of bytes written is whatever
	// LengthOf(v) reports.
	Write(c *codec.Cursor, v Value, max int) error

	// LengthOf reports how many bytes Write would emit for v.
	LengthOf(v Value) (int, error)

	// FixedLength returns the format's required wire width, or 0 if the
	// format accepts any width (including a width carried by v's length
	// hint).
	FixedLength() int

	// TypeName names the semantic type, e.g. "uint", "imap(-90,90)".
	TypeName() string
}

// readAsBlobOnFailure runs parse and, on error, falls back to treating the
// bytes already consumed from c as an opaque Blob, logging the failure
// instead of propagating it. This backs LocalSetFormat/UniversalSetFormat's
// contract that one malformed field never aborts parsing the whole set.
func readAsBlobOnFailure(log logging.Logger, tagName string, c *codec.Cursor, length, max int, parse func() (Value, error)) (Value, error) {
	start := c.Pos()

	v, err := parse()
	if err == nil {
		return v, nil
	}

	if log != nil {
		log.Warnw("field parse failed, preserving as blob", "tag", tagName, "error", err)
	}

	// Rewind: parse() may have partially advanced the cursor before failing.
	if c.Pos() != start {
		if rerr := c.SeekTo(start); rerr != nil {
			return Value{}, rerr
		}
	}

	raw, rerr := c.ReadBytes(length, max)
	if rerr != nil {
		return Value{}, rerr
	}

	return NewBlob(raw), nil
}

// entryLength reports the wire length of v under f. An empty value
// occupies no bytes; an invalid (Blob) value round-trips its raw bytes
// regardless of the tag's nominal format.
func entryLength(f Format, v Value) (int, error) {
	if v.Empty() {
		return 0, nil
	}
	if b, ok := v.Blob(); ok {
		return len(b), nil
	}

	return f.LengthOf(v)
}

// writeEntry writes v under f with the same empty/Blob handling as
// entryLength.
func writeEntry(f Format, c *codec.Cursor, v Value, max int) error {
	if v.Empty() {
		return nil
	}
	if b, ok := v.Blob(); ok {
		return c.WriteBytes(b, max)
	}

	return f.Write(c, v, max)
}

// errWrongFixedLength reports a fixed-width format asked to read or write a
// length it does not support.
func errWrongFixedLength(typeName string, want, got int) error {
	return fmt.Errorf("%w: %s requires length %d, got %d", errs.ErrMetadata, typeName, want, got)
}
