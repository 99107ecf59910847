package stanag

import (
	"testing"

	"github.com/kwiver/goklv/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPacketHeader() PacketHeader {
	return PacketHeader{
		VersionID:         "31",
		PacketSize:        32,
		Nationality:       "US",
		SecurityClass:     1,
		SecuritySystem:    "XN",
		SecurityCode:      0,
		ExerciseIndicator: 0,
		PlatformID:        "HUNTER",
		MissionID:         7,
		JobID:             13,
	}
}

func TestPacketHeader_RoundTrip(t *testing.T) {
	h := testPacketHeader()

	buf := make([]byte, packetHeaderLength)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WritePacketHeader(wc, h, len(buf)))
	require.Equal(t, packetHeaderLength, wc.Pos())

	rc := codec.NewReadCursor(buf)
	got, err := ReadPacketHeader(rc, len(buf))
	require.NoError(t, err)

	assert.Equal(t, h, got)
}

func TestPacketHeader_PlatformIDSpacePaddingTrimmed(t *testing.T) {
	h := testPacketHeader()
	h.PlatformID = "UAV1"

	buf := make([]byte, packetHeaderLength)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WritePacketHeader(wc, h, len(buf)))

	// The 10-byte field is space-padded on the wire.
	assert.Equal(t, []byte("UAV1      "), buf[14:24])

	rc := codec.NewReadCursor(buf)
	got, err := ReadPacketHeader(rc, len(buf))
	require.NoError(t, err)
	assert.Equal(t, "UAV1", got.PlatformID)
}

func TestSegmentHeader_RoundTrip(t *testing.T) {
	h := SegmentHeader{Type: SegmentDwell, Size: 56}

	buf := make([]byte, segmentHeaderLength)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteSegmentHeader(wc, h, len(buf)))

	rc := codec.NewReadCursor(buf)
	got, err := ReadSegmentHeader(rc, len(buf))
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestMissionSegment_RoundTrip(t *testing.T) {
	m := MissionSegment{
		MissionPlan:           "OP LOOKOUT",
		FlightPlan:            "FP-22",
		PlatformType:          9,
		PlatformConfiguration: "BLK2",
		RefYear:               2014,
		RefMonth:              6,
		RefDay:                30,
	}

	buf := make([]byte, missionSegmentLength)
	wc := codec.NewWriteCursor(buf)
	require.NoError(t, WriteMissionSegment(wc, m, len(buf)))
	require.Equal(t, missionSegmentLength, wc.Pos())

	rc := codec.NewReadCursor(buf)
	got, err := ReadMissionSegment(rc, missionSegmentLength, len(buf))
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
