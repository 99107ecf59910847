package klv

import "fmt"

// MIISID is the 128-bit Motion Imagery Identification System UUID carried
// by MISB ST 1204 (and referenced from ST 0601 tag 94).
type MIISID [16]byte

func (m MIISID) Equal(other Record) bool {
	o, ok := other.(MIISID)
	return ok && m == o
}

func (m MIISID) Less(other Record) bool {
	o, ok := other.(MIISID)
	if !ok {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return m[i] < o[i]
		}
	}

	return false
}

func (m MIISID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", m[0:4], m[4:6], m[6:8], m[8:10], m[10:16])
}

// MetricPeriodPack is the ST 1108.2 Metric Period Pack: the start (Offset)
// and duration (Length), in microseconds, of the window a quality metric
// local set applies to.
type MetricPeriodPack struct {
	Offset uint32
	Length uint32
}

func (m MetricPeriodPack) Equal(other Record) bool {
	o, ok := other.(MetricPeriodPack)
	return ok && m == o
}

func (m MetricPeriodPack) Less(other Record) bool {
	o, ok := other.(MetricPeriodPack)
	if !ok {
		return false
	}
	if m.Offset != o.Offset {
		return m.Offset < o.Offset
	}

	return m.Length < o.Length
}

func (m MetricPeriodPack) String() string {
	return fmt.Sprintf("period(offset=%d, length=%d)", m.Offset, m.Length)
}

// WindowCorners is a four-corner frame/target window as used by ST 0601's
// Corner Latitude/Longitude Point fields (tags 82-89, 96-101): four
// (lat, lon) offsets relative to a center point, in that order
// UpperLeft/UpperRight/LowerRight/LowerLeft.
type WindowCorners struct {
	UpperLeft  [2]float64
	UpperRight [2]float64
	LowerRight [2]float64
	LowerLeft  [2]float64
}

func (w WindowCorners) Equal(other Record) bool {
	o, ok := other.(WindowCorners)
	return ok && w == o
}

func (w WindowCorners) Less(other Record) bool {
	o, ok := other.(WindowCorners)
	if !ok {
		return false
	}
	a := [8]float64{w.UpperLeft[0], w.UpperLeft[1], w.UpperRight[0], w.UpperRight[1],
		w.LowerRight[0], w.LowerRight[1], w.LowerLeft[0], w.LowerLeft[1]}
	b := [8]float64{o.UpperLeft[0], o.UpperLeft[1], o.UpperRight[0], o.UpperRight[1],
		o.LowerRight[0], o.LowerRight[1], o.LowerLeft[0], o.LowerLeft[1]}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func (w WindowCorners) String() string {
	return fmt.Sprintf("corners(ul=%v, ur=%v, lr=%v, ll=%v)", w.UpperLeft, w.UpperRight, w.LowerRight, w.LowerLeft)
}

// ControlCommand is the ST 0601 tag 75 Control Command record: a numeric
// identifier, a free-text command string and a microsecond timestamp the
// command applies at.
type ControlCommand struct {
	ID        uint64
	Command   string
	Timestamp uint64
}

func (c ControlCommand) Equal(other Record) bool {
	o, ok := other.(ControlCommand)
	return ok && c == o
}

func (c ControlCommand) Less(other Record) bool {
	o, ok := other.(ControlCommand)
	if !ok {
		return false
	}
	if c.ID != o.ID {
		return c.ID < o.ID
	}
	if c.Command != o.Command {
		return c.Command < o.Command
	}

	return c.Timestamp < o.Timestamp
}

func (c ControlCommand) String() string {
	return fmt.Sprintf("command(id=%d, %q, ts=%d)", c.ID, c.Command, c.Timestamp)
}
