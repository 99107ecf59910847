package stanag

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mandatoryDwellLength is the fixed size of a dwell segment with no
// optional bits set and no target reports: mask, D2..D6, sensor position,
// dwell area.
const mandatoryDwellLength = 8 + (2 + 2 + 1 + 2 + 4) + (4 + 4 + 4) + (4 + 4 + 2 + 2)

// Only mandatory bits set, two target reports.
// The payload must equal the mandatory widths plus twice the minimum
// per-report width, and each parsed report holds only the position fields.
func TestDwellSegment_MandatoryOnlyWithTwoReports(t *testing.T) {
	d := DwellSegment{
		ExistenceMask:     0,
		RevisitIndex:      1,
		DwellIndex:        4,
		TargetReportCount: 2,
		DwellTime:         123456,
		SensorPosition:    SensorPosition{Lat: 33.5, Lon: 44.25, Alt: 8000},
		DwellArea:         DwellArea{CenterLat: 33.6, CenterLon: 44.5, RangeHalfExtent: 10, AngleHalfExtent: 45},
		TargetReports: []TargetReport{
			{DeltaLat: 0.25, DeltaLon: -0.5},
			{DeltaLat: -0.125, DeltaLon: 0.75},
		},
	}

	length := DwellSegmentLength(d)
	assert.Equal(t, mandatoryDwellLength+2*TargetReportLength(0), length)
	assert.Equal(t, 4, TargetReportLength(0), "minimum report is the delta lat/lon pair")

	buf := make([]byte, length)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteDwellSegment(wc, d, len(buf)))
	require.Equal(t, length, wc.Pos())

	rc := codec.NewReadCursor(buf)
	got, err := ReadDwellSegment(rc, length, len(buf))
	require.NoError(t, err)

	assert.Equal(t, uint16(2), got.TargetReportCount)
	require.Len(t, got.TargetReports, 2)
	for i, tr := range got.TargetReports {
		assert.False(t, tr.HasHiResPosition)
		assert.InDelta(t, d.TargetReports[i].DeltaLat, tr.DeltaLat, 1.0/32767)
		assert.InDelta(t, d.TargetReports[i].DeltaLon, tr.DeltaLon, 1.0/32767)
		assert.Zero(t, tr.SNR)
		assert.Zero(t, tr.Classification)
	}

	assert.InDelta(t, d.SensorPosition.Lat, got.SensorPosition.Lat, 1e-6)
	assert.InDelta(t, d.SensorPosition.Lon, got.SensorPosition.Lon, 1e-6)
	assert.Equal(t, d.SensorPosition.Alt, got.SensorPosition.Alt)
	assert.InDelta(t, d.DwellArea.RangeHalfExtent, got.DwellArea.RangeHalfExtent, 256.0/65535)
}

func TestDwellSegment_OptionalGroupsGatedByMask(t *testing.T) {
	mask := uint64(0)
	mask = maskWith(mask, bitSensorTrack, true)
	mask = maskWith(mask, bitMinimumDetectableVel, true)
	mask = maskWith(mask, bitSNR, true)
	mask = maskWith(mask, bitHiResLat, true)

	d := DwellSegment{
		ExistenceMask:             mask,
		RevisitIndex:              2,
		DwellIndex:                9,
		LastDwellOfRevisit:        true,
		TargetReportCount:         1,
		DwellTime:                 99,
		SensorPosition:            SensorPosition{Lat: -12.5, Lon: 200, Alt: -40},
		SensorTrack:               123.75,
		SensorSpeed:               440,
		SensorVerticalVel:         -6,
		HasSensorTrack:            true,
		DwellArea:                 DwellArea{CenterLat: -12, CenterLon: 199, RangeHalfExtent: 25, AngleHalfExtent: 90},
		MinimumDetectableVelocity: 3,
		HasMinimumDetectableVelocity: true,
		TargetReports: []TargetReport{
			{HasHiResPosition: true, HiResLat: -12.25, HiResLon: 199.5, SNR: -17},
		},
	}

	length := DwellSegmentLength(d)
	buf := make([]byte, length)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteDwellSegment(wc, d, len(buf)))
	require.Equal(t, length, wc.Pos())

	rc := codec.NewReadCursor(buf)
	got, err := ReadDwellSegment(rc, length, len(buf))
	require.NoError(t, err)

	assert.True(t, got.HasSensorTrack)
	assert.InDelta(t, d.SensorTrack, got.SensorTrack, 360.0/65535)
	assert.InDelta(t, d.SensorSpeed, got.SensorSpeed, 1500.0/(1<<32-1))
	assert.True(t, got.HasMinimumDetectableVelocity)
	assert.Equal(t, uint8(3), got.MinimumDetectableVelocity)
	assert.False(t, got.HasScaleFactor)
	assert.False(t, got.HasPlatformOrientation)

	require.Len(t, got.TargetReports, 1)
	tr := got.TargetReports[0]
	assert.True(t, tr.HasHiResPosition)
	assert.InDelta(t, -12.25, tr.HiResLat, 90.0/(1<<31-1)*2)
	assert.InDelta(t, 199.5, tr.HiResLon, 360.0/(1<<31-1)*2)
	assert.Equal(t, int8(-17), tr.SNR)
}

// Partially set sensor-orientation bits are coerced to the full group on
// read ("any bit set -> all three parsed").
func TestDwellSegment_SensorOrientationCoercion(t *testing.T) {
	mask := maskWith(0, bitSensorOrientPitch, true)

	d := DwellSegment{
		ExistenceMask:        mask,
		TargetReportCount:    0,
		SensorPosition:       SensorPosition{Lat: 1, Lon: 2, Alt: 3},
		DwellArea:            DwellArea{CenterLat: 1, CenterLon: 2, RangeHalfExtent: 1, AngleHalfExtent: 1},
		SensorOrientation:    SensorOrientation{Heading: 10, Pitch: -5, Roll: 2},
		HasSensorOrientation: true,
	}

	length := DwellSegmentLength(d)
	buf := make([]byte, length)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteDwellSegment(wc, d, len(buf)))

	rc := codec.NewReadCursor(buf)
	got, err := ReadDwellSegment(rc, length, len(buf))
	require.NoError(t, err)

	assert.True(t, got.HasSensorOrientation)
	assert.InDelta(t, 10, got.SensorOrientation.Heading, 360.0/65535)
	assert.InDelta(t, -5, got.SensorOrientation.Pitch, 90.0/32767*2)
	assert.InDelta(t, 2, got.SensorOrientation.Roll, 180.0/32767*2)
}
