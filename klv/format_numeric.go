package klv

import (
	"github.com/kwiver/goklv/codec"
)

// UintFormat reads and writes unsigned integers. A zero Length accepts
// whatever width the framing declares (and re-emits the original width via
// Value's length hint when present); a nonzero Length requires exactly that
// many bytes.
type UintFormat struct {
	Length int
}

func (f UintFormat) TypeName() string { return "uint" }

func (f UintFormat) FixedLength() int { return f.Length }

func (f UintFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if f.Length != 0 && length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	v, err := codec.ReadUint(c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewUint(v).WithLengthHint(length), nil
}

func (f UintFormat) Write(c *codec.Cursor, v Value, max int) error {
	u, ok := v.Uint()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}
	n, err := f.LengthOf(v)
	if err != nil {
		return err
	}

	return codec.WriteUint(c, u, n, max)
}

func (f UintFormat) LengthOf(v Value) (int, error) {
	if f.Length != 0 {
		return f.Length, nil
	}
	if n, ok := v.LengthHint(); ok {
		return n, nil
	}
	u, _ := v.Uint()

	return codec.UintLength(u), nil
}

// IntFormat reads and writes two's-complement signed integers, with the
// same fixed/variable width rule as UintFormat.
type IntFormat struct {
	Length int
}

func (f IntFormat) TypeName() string { return "int" }

func (f IntFormat) FixedLength() int { return f.Length }

func (f IntFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if f.Length != 0 && length != f.Length {
		return Value{}, errWrongFixedLength(f.TypeName(), f.Length, length)
	}

	v, err := codec.ReadInt(c, length, max)
	if err != nil {
		return Value{}, err
	}

	return NewInt(v).WithLengthHint(length), nil
}

func (f IntFormat) Write(c *codec.Cursor, v Value, max int) error {
	i, ok := v.Int()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.Length, -1)
	}
	n, err := f.LengthOf(v)
	if err != nil {
		return err
	}

	return codec.WriteInt(c, i, n, max)
}

func (f IntFormat) LengthOf(v Value) (int, error) {
	if f.Length != 0 {
		return f.Length, nil
	}
	if n, ok := v.LengthHint(); ok {
		return n, nil
	}
	i, _ := v.Int()

	return codec.IntLength(i), nil
}

// Float32Format reads and writes IEEE-754 single-precision floats, always 4
// bytes.
type Float32Format struct{}

func (f Float32Format) TypeName() string { return "float32" }

func (f Float32Format) FixedLength() int { return 4 }

func (f Float32Format) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != 4 {
		return Value{}, errWrongFixedLength(f.TypeName(), 4, length)
	}
	u, err := codec.ReadUint(c, 4, max)
	if err != nil {
		return Value{}, err
	}

	return NewFloat(float64(float32FromBits(uint32(u)))), nil
}

func (f Float32Format) Write(c *codec.Cursor, v Value, max int) error {
	fv, ok := v.Float()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 4, -1)
	}

	return codec.WriteUint(c, uint64(float32Bits(float32(fv))), 4, max)
}

func (f Float32Format) LengthOf(Value) (int, error) { return 4, nil }

// Float64Format reads and writes IEEE-754 double-precision floats, always 8
// bytes.
type Float64Format struct{}

func (f Float64Format) TypeName() string { return "float64" }

func (f Float64Format) FixedLength() int { return 8 }

func (f Float64Format) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != 8 {
		return Value{}, errWrongFixedLength(f.TypeName(), 8, length)
	}
	u, err := codec.ReadUint(c, 8, max)
	if err != nil {
		return Value{}, err
	}

	return NewFloat(float64FromBits(u)), nil
}

func (f Float64Format) Write(c *codec.Cursor, v Value, max int) error {
	fv, ok := v.Float()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 8, -1)
	}

	return codec.WriteUint(c, float64Bits(fv), 8, max)
}

func (f Float64Format) LengthOf(Value) (int, error) { return 8, nil }
