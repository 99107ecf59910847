package klv

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
)

// MIISFormat reads and writes a fixed 16-byte ST 1204 MIIS ID.
type MIISFormat struct{}

func (f MIISFormat) TypeName() string { return "miis_id" }

func (f MIISFormat) FixedLength() int { return 16 }

func (f MIISFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != 16 {
		return Value{}, errWrongFixedLength(f.TypeName(), 16, length)
	}

	b, err := c.ReadBytes(16, max)
	if err != nil {
		return Value{}, err
	}

	var id MIISID
	copy(id[:], b)

	return NewRecord(id), nil
}

func (f MIISFormat) Write(c *codec.Cursor, v Value, max int) error {
	r, ok := v.Record()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 16, -1)
	}
	id, ok := r.(MIISID)
	if !ok {
		return fmt.Errorf("miis_id format given %T", r)
	}

	return c.WriteBytes(id[:], max)
}

func (f MIISFormat) LengthOf(Value) (int, error) { return 16, nil }

// MetricPeriodPackFormat reads and writes the ST 1108.2 Metric Period Pack:
// two 4-byte big-endian microsecond fields, offset then length.
type MetricPeriodPackFormat struct{}

func (f MetricPeriodPackFormat) TypeName() string { return "metric_period_pack" }

func (f MetricPeriodPackFormat) FixedLength() int { return 8 }

func (f MetricPeriodPackFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != 8 {
		return Value{}, errWrongFixedLength(f.TypeName(), 8, length)
	}

	offset, err := codec.ReadUint(c, 4, max)
	if err != nil {
		return Value{}, err
	}
	dur, err := codec.ReadUint(c, 4, max-4)
	if err != nil {
		return Value{}, err
	}

	return NewRecord(MetricPeriodPack{Offset: uint32(offset), Length: uint32(dur)}), nil
}

func (f MetricPeriodPackFormat) Write(c *codec.Cursor, v Value, max int) error {
	r, ok := v.Record()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 8, -1)
	}
	p, ok := r.(MetricPeriodPack)
	if !ok {
		return fmt.Errorf("metric_period_pack format given %T", r)
	}

	if err := codec.WriteUint(c, uint64(p.Offset), 4, max); err != nil {
		return err
	}

	return codec.WriteUint(c, uint64(p.Length), 4, max-4)
}

func (f MetricPeriodPackFormat) LengthOf(Value) (int, error) { return 8, nil }

// WindowCornersFormat reads and writes a ST 0601-style 4-corner window: four
// (lat, lon) pairs, each a 3-byte FLINT over [-90,90] / [0,360), 24 bytes
// total.
type WindowCornersFormat struct{}

const windowCornerFieldLen = 3

func (f WindowCornersFormat) TypeName() string { return "window_corners" }

func (f WindowCornersFormat) FixedLength() int { return 4 * 2 * windowCornerFieldLen }

func (f WindowCornersFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length != f.FixedLength() {
		return Value{}, errWrongFixedLength(f.TypeName(), f.FixedLength(), length)
	}

	read := func(lo, hi float64) (float64, error) {
		return codec.ReadFLINT(lo, hi, c, windowCornerFieldLen, max)
	}

	var w WindowCorners
	corners := []*[2]float64{&w.UpperLeft, &w.UpperRight, &w.LowerRight, &w.LowerLeft}
	for _, corner := range corners {
		lat, err := read(-90, 90)
		if err != nil {
			return Value{}, err
		}
		lon, err := read(0, 360)
		if err != nil {
			return Value{}, err
		}
		corner[0], corner[1] = lat, lon
	}

	return NewRecord(w), nil
}

func (f WindowCornersFormat) Write(c *codec.Cursor, v Value, max int) error {
	r, ok := v.Record()
	if !ok {
		return errWrongFixedLength(f.TypeName(), f.FixedLength(), -1)
	}
	w, ok := r.(WindowCorners)
	if !ok {
		return fmt.Errorf("window_corners format given %T", r)
	}

	write := func(lo, hi, val float64) error {
		return codec.WriteFLINT(lo, hi, val, c, windowCornerFieldLen, max)
	}

	corners := [][2]float64{w.UpperLeft, w.UpperRight, w.LowerRight, w.LowerLeft}
	for _, corner := range corners {
		if err := write(-90, 90, corner[0]); err != nil {
			return err
		}
		if err := write(0, 360, corner[1]); err != nil {
			return err
		}
	}

	return nil
}

func (f WindowCornersFormat) LengthOf(Value) (int, error) { return f.FixedLength(), nil }

// ControlCommandFormat reads and writes a ST 0601 tag-75 Control Command:
// BER-OID id, BER-length-prefixed command string, then an 8-byte
// microsecond timestamp.
type ControlCommandFormat struct{}

func (f ControlCommandFormat) TypeName() string { return "control_command" }

func (f ControlCommandFormat) FixedLength() int { return 0 }

func (f ControlCommandFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length == 0 {
		return Value{}, nil
	}

	raw, err := c.ReadBytes(length, max)
	if err != nil {
		return Value{}, err
	}
	sub := codec.NewReadCursor(raw)

	id, err := codec.ReadBEROID(sub, sub.Remaining())
	if err != nil {
		return Value{}, err
	}

	strLen, err := codec.ReadBER(sub, sub.Remaining())
	if err != nil {
		return Value{}, err
	}
	cmd, err := codec.ReadString(sub, int(strLen), sub.Remaining())
	if err != nil {
		return Value{}, err
	}

	ts, err := codec.ReadUint(sub, 8, sub.Remaining())
	if err != nil {
		return Value{}, err
	}

	return NewRecord(ControlCommand{ID: id, Command: cmd, Timestamp: ts}), nil
}

func (f ControlCommandFormat) Write(c *codec.Cursor, v Value, max int) error {
	r, ok := v.Record()
	if !ok {
		return errWrongFixedLength(f.TypeName(), 0, -1)
	}
	cc, ok := r.(ControlCommand)
	if !ok {
		return fmt.Errorf("control_command format given %T", r)
	}

	if err := codec.WriteBEROID(c, cc.ID, max); err != nil {
		return err
	}
	if err := codec.WriteBER(c, uint64(len(cc.Command)), max); err != nil {
		return err
	}
	if err := codec.WriteString(c, cc.Command, len(cc.Command), max); err != nil {
		return err
	}

	return codec.WriteUint(c, cc.Timestamp, 8, max)
}

func (f ControlCommandFormat) LengthOf(v Value) (int, error) {
	r, ok := v.Record()
	if !ok {
		return 0, fmt.Errorf("control_command format given non-record value")
	}
	cc, ok := r.(ControlCommand)
	if !ok {
		return 0, fmt.Errorf("control_command format given %T", r)
	}

	return codec.BEROIDLength(cc.ID) + codec.BERLength(uint64(len(cc.Command))) + len(cc.Command) + 8, nil
}
