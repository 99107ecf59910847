package stanag

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket_RoundTripMissionAndDwell(t *testing.T) {
	p := Packet{
		Header: testPacketHeader(),
		Segments: []Segment{
			{
				Header: SegmentHeader{Type: SegmentMission},
				Value: MissionSegment{
					MissionPlan:  "OP LOOKOUT",
					FlightPlan:   "FP-22",
					PlatformType: 9,
					RefYear:      2014, RefMonth: 6, RefDay: 30,
				},
			},
			{
				Header: SegmentHeader{Type: SegmentDwell},
				Value: DwellSegment{
					TargetReportCount: 1,
					SensorPosition:    SensorPosition{Lat: 10, Lon: 20, Alt: 5000},
					DwellArea:         DwellArea{CenterLat: 10, CenterLon: 20, RangeHalfExtent: 5, AngleHalfExtent: 30},
					TargetReports:     []TargetReport{{DeltaLat: 0.1, DeltaLon: 0.2}},
				},
			},
		},
	}

	size, err := p.Length()
	require.NoError(t, err)

	buf := make([]byte, size)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, p.WritePacket(wc, len(buf)))
	require.Equal(t, size, wc.Pos())

	rc := codec.NewReadCursor(buf)
	got, err := ReadPacket(rc, len(buf), nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(size), got.Header.PacketSize)
	require.Len(t, got.Segments, 2)

	mission, ok := got.Segments[0].Value.(MissionSegment)
	require.True(t, ok)
	assert.Equal(t, "OP LOOKOUT", mission.MissionPlan)

	dwell, ok := got.Segments[1].Value.(DwellSegment)
	require.True(t, ok)
	require.Len(t, dwell.TargetReports, 1)
}

func TestPacket_UnmodelledSegmentStoredOpaquely(t *testing.T) {
	p := Packet{
		Header: testPacketHeader(),
		Segments: []Segment{
			{Header: SegmentHeader{Type: SegmentFreeText}, Value: []byte("status nominal")},
			{
				Header: SegmentHeader{Type: SegmentMission},
				Value:  MissionSegment{MissionPlan: "A", RefYear: 2000, RefMonth: 1, RefDay: 1},
			},
		},
	}

	size, err := p.Length()
	require.NoError(t, err)

	buf := make([]byte, size)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, p.WritePacket(wc, len(buf)))

	rc := codec.NewReadCursor(buf)
	got, err := ReadPacket(rc, len(buf), nil)
	require.NoError(t, err)

	require.Len(t, got.Segments, 2, "the opaque segment must not break framing")
	blob, ok := got.Segments[0].Value.([]byte)
	require.True(t, ok)
	assert.Equal(t, []byte("status nominal"), blob)

	mission, ok := got.Segments[1].Value.(MissionSegment)
	require.True(t, ok)
	assert.Equal(t, "A", mission.MissionPlan)
}

func TestReadPacket_RejectsUndersizedSegment(t *testing.T) {
	header := testPacketHeader()
	header.PacketSize = packetHeaderLength + segmentHeaderLength

	buf := make([]byte, header.PacketSize)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WritePacketHeader(wc, header, len(buf)))
	require.NoError(t, WriteSegmentHeader(wc, SegmentHeader{Type: SegmentFreeText, Size: 2}, segmentHeaderLength))

	rc := codec.NewReadCursor(buf)
	_, err := ReadPacket(rc, len(buf), nil)
	require.Error(t, err)
}
