package stanag

import (
	"strings"

	"github.com/kwiver/goklv/codec"
)

// missionSegmentLength is the fixed payload size of a Mission segment
//: 12 + 12 + 1 + 10 + 4 bytes.
const missionSegmentLength = 12 + 12 + 1 + 10 + 4

// ReadMissionSegment parses a Mission segment payload of exactly length
// bytes.
func ReadMissionSegment(c *codec.Cursor, length, max int) (MissionSegment, error) {
	sub := max
	if length < sub {
		sub = length
	}

	plan, err := codec.ReadString(c, 12, sub)
	if err != nil {
		return MissionSegment{}, err
	}
	flightPlan, err := codec.ReadString(c, 12, sub-12)
	if err != nil {
		return MissionSegment{}, err
	}
	platformType, err := codec.ReadUint(c, 1, sub-24)
	if err != nil {
		return MissionSegment{}, err
	}
	platformConfig, err := codec.ReadString(c, 10, sub-25)
	if err != nil {
		return MissionSegment{}, err
	}
	year, err := codec.ReadUint(c, 2, sub-35)
	if err != nil {
		return MissionSegment{}, err
	}
	month, err := codec.ReadUint(c, 1, sub-37)
	if err != nil {
		return MissionSegment{}, err
	}
	day, err := codec.ReadUint(c, 1, sub-38)
	if err != nil {
		return MissionSegment{}, err
	}

	return MissionSegment{
		MissionPlan:           strings.TrimRight(plan, " "),
		FlightPlan:            strings.TrimRight(flightPlan, " "),
		PlatformType:          uint8(platformType),
		PlatformConfiguration: strings.TrimRight(platformConfig, " "),
		RefYear:               uint16(year),
		RefMonth:              uint8(month),
		RefDay:                uint8(day),
	}, nil
}

// WriteMissionSegment serializes m as a Mission segment payload.
func WriteMissionSegment(c *codec.Cursor, m MissionSegment, max int) error {
	start := c.Pos()
	budget := func() int { return max - (c.Pos() - start) }

	if err := codec.WriteString(c, m.MissionPlan, 12, budget()); err != nil {
		return err
	}
	if err := codec.WriteString(c, m.FlightPlan, 12, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(m.PlatformType), 1, budget()); err != nil {
		return err
	}
	if err := codec.WriteString(c, m.PlatformConfiguration, 10, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(m.RefYear), 2, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(m.RefMonth), 1, budget()); err != nil {
		return err
	}

	return codec.WriteUint(c, uint64(m.RefDay), 1, budget())
}
