package klv

import (
	"github.com/kwiver/goklv/codec"
)

// StringFormat reads and writes bounded ASCII strings. A zero Length accepts
// whatever width the framing declares; a nonzero Length requires exactly
// that many bytes.
type StringFormat struct {
	Length int
}

func (f StringFormat) TypeName() string { return "string" }

func (f StringFormat) FixedLength() int { return f.Length }

func (f StringFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if f.Length != 0 && length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	s, err := codec.ReadString(c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewString(s).WithLengthHint(length), nil
}

func (f StringFormat) Write(c *codec.Cursor, v Value, max int) error {
	s, ok := v.Str()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}
	n, err := f.LengthOf(v)
	if err != nil {
		return err
	}

	return codec.WriteString(c, s, n, max)
}

func (f StringFormat) LengthOf(v Value) (int, error) {
	if f.Length != 0 {
		return f.Length, nil
	}
	if n, ok := v.LengthHint(); ok {
		return n, nil
	}
	s, _ := v.Str()

	return len(s), nil
}

// BlobFormat reads and writes raw, un-interpreted bytes. It backs both
// tags that are genuinely opaque by design and the fallback path every
// other format takes when parsing fails.
type BlobFormat struct {
	Length int
}

func (f BlobFormat) TypeName() string { return "blob" }

func (f BlobFormat) FixedLength() int { return f.Length }

func (f BlobFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if f.Length != 0 && length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	b, err := codec.ReadBlob(c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewBlob(b).WithLengthHint(length), nil
}

func (f BlobFormat) Write(c *codec.Cursor, v Value, max int) error {
	b, ok := v.Blob()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}

	return codec.WriteBlob(c, b, max)
}

func (f BlobFormat) LengthOf(v Value) (int, error) {
	if f.Length != 0 {
		return f.Length, nil
	}
	b, _ := v.Blob()

	return len(b), nil
}

// EnumFormat reads a fixed-width unsigned integer and resolves it to a name
// via Names, falling back to Unknown for out-of-range codes.
type EnumFormat struct {
	Length  int
	Names   map[uint64]string
	Unknown string
}

func (f EnumFormat) TypeName() string { return "enum" }

func (f EnumFormat) FixedLength() int { return f.Length }

func (f EnumFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if f.Length != 0 && length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	u, err := codec.ReadUint(c, length, max)
	if err != nil {
		return Value{}, err
	}

	name, ok := f.Names[u]
	if !ok {
		name = f.Unknown
	}

	return NewEnum(EnumValue{Raw: u, Name: name}), nil
}

func (f EnumFormat) Write(c *codec.Cursor, v Value, max int) error {
	e, ok := v.Enum()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}
	n, err := f.LengthOf(v)
	if err != nil {
		return err
	}

	return codec.WriteUint(c, e.Raw, n, max)
}

func (f EnumFormat) LengthOf(Value) (int, error) {
	if f.Length != 0 {
		return f.Length, nil
	}

	return 1, nil
}
