package stanag

import (
	"fmt"
	"strings"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
)

// packetHeaderLength is the fixed size of a STANAG 4607 packet header.
const packetHeaderLength = 32

// segmentHeaderLength is the fixed size of a STANAG 4607 segment header.
const segmentHeaderLength = 5

// ReadPacketHeader parses the 32-byte packet header.
func ReadPacketHeader(c *codec.Cursor, max int) (PacketHeader, error) {
	if max < packetHeaderLength {
		return PacketHeader{}, fmt.Errorf("%w: packet header needs %d bytes, max is %d", errs.ErrBufferOverflow, packetHeaderLength, max)
	}

	var h PacketHeader

	version, err := codec.ReadString(c, 2, max)
	if err != nil {
		return PacketHeader{}, err
	}
	h.VersionID = version

	size, err := codec.ReadUint(c, 4, max-2)
	if err != nil {
		return PacketHeader{}, err
	}
	h.PacketSize = uint32(size)

	nationality, err := codec.ReadString(c, 2, max-6)
	if err != nil {
		return PacketHeader{}, err
	}
	h.Nationality = nationality

	class, err := codec.ReadUint(c, 1, max-8)
	if err != nil {
		return PacketHeader{}, err
	}
	h.SecurityClass = uint8(class)

	system, err := codec.ReadString(c, 2, max-9)
	if err != nil {
		return PacketHeader{}, err
	}
	h.SecuritySystem = system

	code, err := codec.ReadUint(c, 2, max-11)
	if err != nil {
		return PacketHeader{}, err
	}
	h.SecurityCode = uint16(code)

	exercise, err := codec.ReadUint(c, 1, max-13)
	if err != nil {
		return PacketHeader{}, err
	}
	h.ExerciseIndicator = uint8(exercise)

	platformID, err := codec.ReadString(c, 10, max-14)
	if err != nil {
		return PacketHeader{}, err
	}
	h.PlatformID = strings.TrimRight(platformID, " ")

	missionID, err := codec.ReadUint(c, 4, max-24)
	if err != nil {
		return PacketHeader{}, err
	}
	h.MissionID = uint32(missionID)

	jobID, err := codec.ReadUint(c, 4, max-28)
	if err != nil {
		return PacketHeader{}, err
	}
	h.JobID = uint32(jobID)

	return h, nil
}

// WritePacketHeader serializes h as the fixed 32-byte packet header.
func WritePacketHeader(c *codec.Cursor, h PacketHeader, max int) error {
	start := c.Pos()
	budget := func() int { return max - (c.Pos() - start) }

	if err := codec.WriteString(c, h.VersionID, 2, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(h.PacketSize), 4, budget()); err != nil {
		return err
	}
	if err := codec.WriteString(c, h.Nationality, 2, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(h.SecurityClass), 1, budget()); err != nil {
		return err
	}
	if err := codec.WriteString(c, h.SecuritySystem, 2, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(h.SecurityCode), 2, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(h.ExerciseIndicator), 1, budget()); err != nil {
		return err
	}
	if err := codec.WriteString(c, h.PlatformID, 10, budget()); err != nil {
		return err
	}
	if err := codec.WriteUint(c, uint64(h.MissionID), 4, budget()); err != nil {
		return err
	}

	return codec.WriteUint(c, uint64(h.JobID), 4, budget())
}

// ReadSegmentHeader parses the fixed 5-byte segment header.
func ReadSegmentHeader(c *codec.Cursor, max int) (SegmentHeader, error) {
	if max < segmentHeaderLength {
		return SegmentHeader{}, fmt.Errorf("%w: segment header needs %d bytes, max is %d", errs.ErrBufferOverflow, segmentHeaderLength, max)
	}

	t, err := codec.ReadUint(c, 1, max)
	if err != nil {
		return SegmentHeader{}, err
	}

	size, err := codec.ReadUint(c, 4, max-1)
	if err != nil {
		return SegmentHeader{}, err
	}

	return SegmentHeader{Type: SegmentType(t), Size: uint32(size)}, nil
}

// WriteSegmentHeader serializes h as the fixed 5-byte segment header.
func WriteSegmentHeader(c *codec.Cursor, h SegmentHeader, max int) error {
	if err := codec.WriteUint(c, uint64(h.Type), 1, max); err != nil {
		return err
	}

	return codec.WriteUint(c, uint64(h.Size), 4, max-1)
}
