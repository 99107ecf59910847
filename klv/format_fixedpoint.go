package klv

import (
	"github.com/kwiver/goklv/codec"
)

// IMAPFormat reads and writes MISB ST 1201 IMAP fixed-point floats over the
// domain [Lo, Hi].
type IMAPFormat struct {
	Lo, Hi float64
	Length int
}

func (f IMAPFormat) TypeName() string { return "imap" }

func (f IMAPFormat) FixedLength() int { return f.Length }

func (f IMAPFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	v, err := codec.ReadIMAP(f.Lo, f.Hi, c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewFloat(v), nil
}

func (f IMAPFormat) Write(c *codec.Cursor, v Value, max int) error {
	fv, ok := v.Float()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}

	return codec.WriteIMAP(f.Lo, f.Hi, fv, c, f.Length, max)
}

func (f IMAPFormat) LengthOf(Value) (int, error) { return f.Length, nil }

// FLINTFormat reads and writes MISB ST 1201 FLINT fixed-point floats over
// the domain [Lo, Hi].
type FLINTFormat struct {
	Lo, Hi float64
	Length int
}

func (f FLINTFormat) TypeName() string { return "flint" }

func (f FLINTFormat) FixedLength() int { return f.Length }

func (f FLINTFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	v, err := codec.ReadFLINT(f.Lo, f.Hi, c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewFloat(v), nil
}

func (f FLINTFormat) Write(c *codec.Cursor, v Value, max int) error {
	fv, ok := v.Float()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}

	return codec.WriteFLINT(f.Lo, f.Hi, fv, c, f.Length, max)
}

func (f FLINTFormat) LengthOf(Value) (int, error) { return f.Length, nil }

// BEROIDLengthFormat reads and writes a BER-OID encoded unsigned integer as
// a Value's sole content, used for fields whose wire width is itself
// variable-length encoded (e.g. MIIS ID's length-prefixed siblings).
type BEROIDLengthFormat struct{}

func (f BEROIDLengthFormat) TypeName() string { return "ber_oid" }

func (f BEROIDLengthFormat) FixedLength() int { return 0 }

func (f BEROIDLengthFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length == 0 {
		return Value{}, nil
	}

	u, err := codec.ReadBEROID(c, max)
	if err != nil {
		return Value{}, err
	}

	return NewUint(u), nil
}

func (f BEROIDLengthFormat) Write(c *codec.Cursor, v Value, max int) error {
	u, ok := v.Uint()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 0, -1)
	}

	return codec.WriteBEROID(c, u, max)
}

func (f BEROIDLengthFormat) LengthOf(v Value) (int, error) {
	u, _ := v.Uint()

	return codec.BEROIDLength(u), nil
}
