// Dwell segment framing. D1, the 48-bit existence mask, is read and
// written with github.com/bamiaux/iobit: the 8-byte D1 field devotes its
// upper 48 bits to the mask and its lower 16 to reserved padding, which
// iobit.Reader/Writer expresses directly as a 48-bit read followed by a
// 16-bit skip instead of hand-rolled shift/mask arithmetic.
package stanag

import (
	"fmt"

	"github.com/bamiaux/iobit"
	"github.com/kwiver/goklv/codec"
)

const existenceMaskFieldLength = 8

// ReadDwellSegment parses a Dwell segment payload of exactly length
// bytes.
func ReadDwellSegment(c *codec.Cursor, length, max int) (DwellSegment, error) {
	budget := max
	if length < budget {
		budget = length
	}

	maskBytes, err := c.ReadBytes(existenceMaskFieldLength, budget)
	if err != nil {
		return DwellSegment{}, fmt.Errorf("dwell segment: reading existence mask: %w", err)
	}
	budget -= existenceMaskFieldLength

	r := iobit.NewReader(maskBytes)
	mask := r.Uint64(48)
	r.Skip(16)

	var d DwellSegment
	d.ExistenceMask = mask

	if d.RevisitIndex, err = readU16(c, &budget); err != nil {
		return DwellSegment{}, err
	}
	if d.DwellIndex, err = readU16(c, &budget); err != nil {
		return DwellSegment{}, err
	}
	lastDwell, err := readU8(c, &budget)
	if err != nil {
		return DwellSegment{}, err
	}
	d.LastDwellOfRevisit = lastDwell != 0
	if d.TargetReportCount, err = readU16(c, &budget); err != nil {
		return DwellSegment{}, err
	}
	dwellTime, err := readU32(c, &budget)
	if err != nil {
		return DwellSegment{}, err
	}
	d.DwellTime = dwellTime

	if d.SensorPosition.Lat, err = readFLINT(c, &budget, -90, 90, 4); err != nil {
		return DwellSegment{}, err
	}
	if d.SensorPosition.Lon, err = readFLINT(c, &budget, 0, 360, 4); err != nil {
		return DwellSegment{}, err
	}
	alt, err := readI32(c, &budget)
	if err != nil {
		return DwellSegment{}, err
	}
	d.SensorPosition.Alt = alt

	if maskSet(mask, bitScaleFactLat) {
		d.HasScaleFactor = true
		if d.ScaleFactorLat, err = readFLINT(c, &budget, -1, 1, 4); err != nil {
			return DwellSegment{}, err
		}
		if d.ScaleFactorLon, err = readFLINT(c, &budget, -1, 1, 4); err != nil {
			return DwellSegment{}, err
		}
	}

	if maskSet(mask, bitSensorPosAlongTrack) {
		d.HasSensorPosUncertainty = true
		if d.SensorPosUncertAlongTrack, err = readFLINT(c, &budget, 0, 4096, 4); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorPosUncertCrossTrack, err = readFLINT(c, &budget, 0, 4096, 4); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorPosUncertAltitude, err = readIMAP(c, &budget, 0, 4096, 2); err != nil {
			return DwellSegment{}, err
		}
	}

	if maskSet(mask, bitSensorTrack) {
		d.HasSensorTrack = true
		if d.SensorTrack, err = readIMAP(c, &budget, 0, 360, 2); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorSpeed, err = readIMAP(c, &budget, 0, 1500, 4); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorVerticalVel, err = readFLINT(c, &budget, -128, 128, 1); err != nil {
			return DwellSegment{}, err
		}
	}

	if maskSet(mask, bitSensorTrackUncert) {
		d.HasSensorTrackUncert = true
		if d.SensorTrackUncert, err = readIMAP(c, &budget, 0, 20, 1); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorSpeedUncert, err = readIMAP(c, &budget, 0, 10, 1); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorVertVelUncert, err = readIMAP(c, &budget, 0, 10, 1); err != nil {
			return DwellSegment{}, err
		}
	}

	if maskSet(mask, bitPlatformOrientHeading) {
		d.HasPlatformOrientation = true
		if d.PlatformHeading, err = readIMAP(c, &budget, 0, 360, 2); err != nil {
			return DwellSegment{}, err
		}
		if d.PlatformPitch, err = readFLINT(c, &budget, -90, 90, 2); err != nil {
			return DwellSegment{}, err
		}
		if d.PlatformRoll, err = readFLINT(c, &budget, -180, 180, 2); err != nil {
			return DwellSegment{}, err
		}
	}

	if d.DwellArea.CenterLat, err = readFLINT(c, &budget, -90, 90, 4); err != nil {
		return DwellSegment{}, err
	}
	if d.DwellArea.CenterLon, err = readFLINT(c, &budget, 0, 360, 4); err != nil {
		return DwellSegment{}, err
	}
	if d.DwellArea.RangeHalfExtent, err = readIMAP(c, &budget, 0, 256, 2); err != nil {
		return DwellSegment{}, err
	}
	if d.DwellArea.AngleHalfExtent, err = readFLINT(c, &budget, 0, 360, 2); err != nil {
		return DwellSegment{}, err
	}

	if maskSet(mask, bitSensorOrientHeading) || maskSet(mask, bitSensorOrientPitch) || maskSet(mask, bitSensorOrientRoll) {
		d.HasSensorOrientation = true
		if d.SensorOrientation.Heading, err = readIMAP(c, &budget, 0, 360, 2); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorOrientation.Pitch, err = readFLINT(c, &budget, -90, 90, 2); err != nil {
			return DwellSegment{}, err
		}
		if d.SensorOrientation.Roll, err = readFLINT(c, &budget, -180, 180, 2); err != nil {
			return DwellSegment{}, err
		}
	}

	if maskSet(mask, bitMinimumDetectableVel) {
		d.HasMinimumDetectableVelocity = true
		v, err := readU8(c, &budget)
		if err != nil {
			return DwellSegment{}, err
		}
		d.MinimumDetectableVelocity = v
	}

	d.TargetReports = make([]TargetReport, 0, d.TargetReportCount)
	for i := 0; i < int(d.TargetReportCount); i++ {
		tr, err := readTargetReport(c, &budget, mask)
		if err != nil {
			return DwellSegment{}, fmt.Errorf("dwell segment: target report %d: %w", i, err)
		}
		d.TargetReports = append(d.TargetReports, tr)
	}

	return d, nil
}

func readTargetReport(c *codec.Cursor, budget *int, mask uint64) (TargetReport, error) {
	var tr TargetReport
	var err error

	if maskSet(mask, bitMTIReportIdx) {
		if tr.MTIReportIndex, err = readU16(c, budget); err != nil {
			return TargetReport{}, err
		}
	}

	if maskSet(mask, bitHiResLat) {
		tr.HasHiResPosition = true
		if tr.HiResLat, err = readFLINT(c, budget, -90, 90, 4); err != nil {
			return TargetReport{}, err
		}
		if tr.HiResLon, err = readFLINT(c, budget, 0, 360, 4); err != nil {
			return TargetReport{}, err
		}
	} else {
		if tr.DeltaLat, err = readFLINT(c, budget, -1, 1, 2); err != nil {
			return TargetReport{}, err
		}
		if tr.DeltaLon, err = readFLINT(c, budget, -1, 1, 2); err != nil {
			return TargetReport{}, err
		}
	}

	if maskSet(mask, bitGeodeticHeight) {
		h, err := readI16(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.GeodeticHeight = h
	}

	if maskSet(mask, bitVelLOS) {
		if tr.VelocityLOS, err = readFLINT(c, budget, -900, 900, 2); err != nil {
			return TargetReport{}, err
		}
		if tr.WrapVelocity, err = readIMAP(c, budget, 0, 900, 1); err != nil {
			return TargetReport{}, err
		}
	}

	if maskSet(mask, bitSNR) {
		v, err := readI8(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.SNR = v
	}

	if maskSet(mask, bitClass) {
		v, err := readU8(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.Classification = v
	}

	if maskSet(mask, bitClassProb) {
		v, err := readU8(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.ClassProbability = v
	}

	if maskSet(mask, bitMeasureSlantRange) {
		if tr.SlantRangeStdDev, err = readIMAP(c, budget, 0, 100, 1); err != nil {
			return TargetReport{}, err
		}
		if tr.CrossRangeStdDev, err = readIMAP(c, budget, 0, 100, 1); err != nil {
			return TargetReport{}, err
		}
		if tr.TargetVelStdDev, err = readIMAP(c, budget, 0, 100, 1); err != nil {
			return TargetReport{}, err
		}
		if _, err = readU8(c, budget); err != nil { // height std dev, not separately modelled
			return TargetReport{}, err
		}
	}

	if maskSet(mask, bitTruthTagAppl) {
		v1, err := readU32(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.TruthTag1 = v1
		v2, err := readU8(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.TruthTag2 = v2
	}

	if maskSet(mask, bitRadarCrossSect) {
		v, err := readI8(c, budget)
		if err != nil {
			return TargetReport{}, err
		}
		tr.RadarCrossSection = v
	}

	return tr, nil
}

// WriteDwellSegment serializes d as a Dwell segment payload.
func WriteDwellSegment(c *codec.Cursor, d DwellSegment, max int) error {
	start := c.Pos()
	budget := func() int { return max - (c.Pos() - start) }

	maskBuf := make([]byte, existenceMaskFieldLength)
	w := iobit.NewWriter(maskBuf)
	w.PutUint64(48, d.ExistenceMask)
	w.PutUint32(16, 0)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dwell segment: writing existence mask: %w", err)
	}
	if err := c.WriteBytes(maskBuf, budget()); err != nil {
		return err
	}

	if err := writeU16(c, budget, d.RevisitIndex); err != nil {
		return err
	}
	if err := writeU16(c, budget, d.DwellIndex); err != nil {
		return err
	}
	last := uint8(0)
	if d.LastDwellOfRevisit {
		last = 1
	}
	if err := writeU8(c, budget, last); err != nil {
		return err
	}
	if err := writeU16(c, budget, d.TargetReportCount); err != nil {
		return err
	}
	if err := writeU32(c, budget, d.DwellTime); err != nil {
		return err
	}
	if err := writeFLINT(c, budget, -90, 90, 4, d.SensorPosition.Lat); err != nil {
		return err
	}
	if err := writeFLINT(c, budget, 0, 360, 4, d.SensorPosition.Lon); err != nil {
		return err
	}
	if err := writeI32(c, budget, d.SensorPosition.Alt); err != nil {
		return err
	}

	if maskSet(d.ExistenceMask, bitScaleFactLat) {
		if err := writeFLINT(c, budget, -1, 1, 4, d.ScaleFactorLat); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -1, 1, 4, d.ScaleFactorLon); err != nil {
			return err
		}
	}

	if maskSet(d.ExistenceMask, bitSensorPosAlongTrack) {
		if err := writeFLINT(c, budget, 0, 4096, 4, d.SensorPosUncertAlongTrack); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, 0, 4096, 4, d.SensorPosUncertCrossTrack); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 4096, 2, d.SensorPosUncertAltitude); err != nil {
			return err
		}
	}

	if maskSet(d.ExistenceMask, bitSensorTrack) {
		if err := writeIMAP(c, budget, 0, 360, 2, d.SensorTrack); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 1500, 4, d.SensorSpeed); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -128, 128, 1, d.SensorVerticalVel); err != nil {
			return err
		}
	}

	if maskSet(d.ExistenceMask, bitSensorTrackUncert) {
		if err := writeIMAP(c, budget, 0, 20, 1, d.SensorTrackUncert); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 10, 1, d.SensorSpeedUncert); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 10, 1, d.SensorVertVelUncert); err != nil {
			return err
		}
	}

	if maskSet(d.ExistenceMask, bitPlatformOrientHeading) {
		if err := writeIMAP(c, budget, 0, 360, 2, d.PlatformHeading); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -90, 90, 2, d.PlatformPitch); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -180, 180, 2, d.PlatformRoll); err != nil {
			return err
		}
	}

	if err := writeFLINT(c, budget, -90, 90, 4, d.DwellArea.CenterLat); err != nil {
		return err
	}
	if err := writeFLINT(c, budget, 0, 360, 4, d.DwellArea.CenterLon); err != nil {
		return err
	}
	if err := writeIMAP(c, budget, 0, 256, 2, d.DwellArea.RangeHalfExtent); err != nil {
		return err
	}
	if err := writeFLINT(c, budget, 0, 360, 2, d.DwellArea.AngleHalfExtent); err != nil {
		return err
	}

	if maskSet(d.ExistenceMask, bitSensorOrientHeading) || maskSet(d.ExistenceMask, bitSensorOrientPitch) || maskSet(d.ExistenceMask, bitSensorOrientRoll) {
		if err := writeIMAP(c, budget, 0, 360, 2, d.SensorOrientation.Heading); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -90, 90, 2, d.SensorOrientation.Pitch); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -180, 180, 2, d.SensorOrientation.Roll); err != nil {
			return err
		}
	}

	if maskSet(d.ExistenceMask, bitMinimumDetectableVel) {
		if err := writeU8(c, budget, d.MinimumDetectableVelocity); err != nil {
			return err
		}
	}

	for i, tr := range d.TargetReports {
		if err := writeTargetReport(c, budget, d.ExistenceMask, tr); err != nil {
			return fmt.Errorf("dwell segment: target report %d: %w", i, err)
		}
	}

	return nil
}

func writeTargetReport(c *codec.Cursor, budget func() int, mask uint64, tr TargetReport) error {
	if maskSet(mask, bitMTIReportIdx) {
		if err := writeU16(c, budget, tr.MTIReportIndex); err != nil {
			return err
		}
	}

	if maskSet(mask, bitHiResLat) {
		if err := writeFLINT(c, budget, -90, 90, 4, tr.HiResLat); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, 0, 360, 4, tr.HiResLon); err != nil {
			return err
		}
	} else {
		if err := writeFLINT(c, budget, -1, 1, 2, tr.DeltaLat); err != nil {
			return err
		}
		if err := writeFLINT(c, budget, -1, 1, 2, tr.DeltaLon); err != nil {
			return err
		}
	}

	if maskSet(mask, bitGeodeticHeight) {
		if err := writeI16(c, budget, tr.GeodeticHeight); err != nil {
			return err
		}
	}

	if maskSet(mask, bitVelLOS) {
		if err := writeFLINT(c, budget, -900, 900, 2, tr.VelocityLOS); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 900, 1, tr.WrapVelocity); err != nil {
			return err
		}
	}

	if maskSet(mask, bitSNR) {
		if err := writeI8(c, budget, tr.SNR); err != nil {
			return err
		}
	}

	if maskSet(mask, bitClass) {
		if err := writeU8(c, budget, tr.Classification); err != nil {
			return err
		}
	}

	if maskSet(mask, bitClassProb) {
		if err := writeU8(c, budget, tr.ClassProbability); err != nil {
			return err
		}
	}

	if maskSet(mask, bitMeasureSlantRange) {
		if err := writeIMAP(c, budget, 0, 100, 1, tr.SlantRangeStdDev); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 100, 1, tr.CrossRangeStdDev); err != nil {
			return err
		}
		if err := writeIMAP(c, budget, 0, 100, 1, tr.TargetVelStdDev); err != nil {
			return err
		}
		if err := writeU8(c, budget, 0); err != nil {
			return err
		}
	}

	if maskSet(mask, bitTruthTagAppl) {
		if err := writeU32(c, budget, tr.TruthTag1); err != nil {
			return err
		}
		if err := writeU8(c, budget, tr.TruthTag2); err != nil {
			return err
		}
	}

	if maskSet(mask, bitRadarCrossSect) {
		if err := writeI8(c, budget, tr.RadarCrossSection); err != nil {
			return err
		}
	}

	return nil
}

// DwellSegmentLength reports the encoded payload size of d, derived from
// its existence mask and target-report count.
func DwellSegmentLength(d DwellSegment) int {
	total := existenceMaskFieldLength
	total += 2 + 2 + 1 + 2 + 4 // D2..D6
	total += 4 + 4 + 4         // D7..D9 sensor position

	mask := d.ExistenceMask
	if maskSet(mask, bitScaleFactLat) {
		total += 4 + 4
	}
	if maskSet(mask, bitSensorPosAlongTrack) {
		total += 4 + 4 + 2
	}
	if maskSet(mask, bitSensorTrack) {
		total += 2 + 4 + 1
	}
	if maskSet(mask, bitSensorTrackUncert) {
		total += 1 + 1 + 1
	}
	if maskSet(mask, bitPlatformOrientHeading) {
		total += 2 + 2 + 2
	}
	total += 4 + 4 + 2 + 2 // D24..D27 dwell area
	if maskSet(mask, bitSensorOrientHeading) || maskSet(mask, bitSensorOrientPitch) || maskSet(mask, bitSensorOrientRoll) {
		total += 2 + 2 + 2
	}
	if maskSet(mask, bitMinimumDetectableVel) {
		total++
	}

	total += len(d.TargetReports) * TargetReportLength(mask)

	return total
}

// TargetReportLength reports the per-report encoded size under mask.
func TargetReportLength(mask uint64) int {
	total := 0
	if maskSet(mask, bitMTIReportIdx) {
		total += 2
	}
	if maskSet(mask, bitHiResLat) {
		total += 4 + 4
	} else {
		total += 2 + 2
	}
	if maskSet(mask, bitGeodeticHeight) {
		total += 2
	}
	if maskSet(mask, bitVelLOS) {
		total += 2 + 1
	}
	if maskSet(mask, bitSNR) {
		total++
	}
	if maskSet(mask, bitClass) {
		total++
	}
	if maskSet(mask, bitClassProb) {
		total++
	}
	if maskSet(mask, bitMeasureSlantRange) {
		total += 1 + 1 + 1 + 1
	}
	if maskSet(mask, bitTruthTagAppl) {
		total += 4 + 1
	}
	if maskSet(mask, bitRadarCrossSect) {
		total++
	}

	return total
}

func readU8(c *codec.Cursor, budget *int) (uint8, error) {
	v, err := codec.ReadUint(c, 1, *budget)
	if err != nil {
		return 0, err
	}
	*budget--

	return uint8(v), nil
}

func readI8(c *codec.Cursor, budget *int) (int8, error) {
	v, err := codec.ReadInt(c, 1, *budget)
	if err != nil {
		return 0, err
	}
	*budget--

	return int8(v), nil
}

func readU16(c *codec.Cursor, budget *int) (uint16, error) {
	v, err := codec.ReadUint(c, 2, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= 2

	return uint16(v), nil
}

func readI16(c *codec.Cursor, budget *int) (int16, error) {
	v, err := codec.ReadInt(c, 2, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= 2

	return int16(v), nil
}

func readU32(c *codec.Cursor, budget *int) (uint32, error) {
	v, err := codec.ReadUint(c, 4, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= 4

	return uint32(v), nil
}

func readI32(c *codec.Cursor, budget *int) (int32, error) {
	v, err := codec.ReadInt(c, 4, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= 4

	return int32(v), nil
}

func readFLINT(c *codec.Cursor, budget *int, lo, hi float64, length int) (float64, error) {
	v, err := codec.ReadFLINT(lo, hi, c, length, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= length

	return v, nil
}

func readIMAP(c *codec.Cursor, budget *int, lo, hi float64, length int) (float64, error) {
	v, err := codec.ReadIMAP(lo, hi, c, length, *budget)
	if err != nil {
		return 0, err
	}
	*budget -= length

	return v, nil
}

func writeU8(c *codec.Cursor, budget func() int, v uint8) error {
	return codec.WriteUint(c, uint64(v), 1, budget())
}

func writeI8(c *codec.Cursor, budget func() int, v int8) error {
	return codec.WriteInt(c, int64(v), 1, budget())
}

func writeU16(c *codec.Cursor, budget func() int, v uint16) error {
	return codec.WriteUint(c, uint64(v), 2, budget())
}

func writeI16(c *codec.Cursor, budget func() int, v int16) error {
	return codec.WriteInt(c, int64(v), 2, budget())
}

func writeU32(c *codec.Cursor, budget func() int, v uint32) error {
	return codec.WriteUint(c, uint64(v), 4, budget())
}

func writeI32(c *codec.Cursor, budget func() int, v int32) error {
	return codec.WriteInt(c, int64(v), 4, budget())
}

func writeFLINT(c *codec.Cursor, budget func() int, lo, hi float64, length int, v float64) error {
	return codec.WriteFLINT(lo, hi, v, c, length, budget())
}

func writeIMAP(c *codec.Cursor, budget func() int, lo, hi float64, length int, v float64) error {
	return codec.WriteIMAP(lo, hi, v, c, length, budget())
}
