// Whole-packet framing: the 32-byte
// packet header, then segments until the header's declared packet size is
// consumed. Segment dispatch goes through a trait table in the same shape as
// the KLV catalog's tag traits: an enum-indexed record naming the segment
// and its read/write functions, with an opaque fallback for the segment
// types this core does not model.
package stanag

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/logging"
)

// segmentTrait describes how one segment type is parsed and serialized.
type segmentTrait struct {
	name  string
	read  func(c *codec.Cursor, length, max int) (any, error)
	write func(c *codec.Cursor, v any, max int) error
	size  func(v any) (int, error)
}

// blobSegmentTrait consumes exactly the declared payload as raw bytes so an
// unmodelled segment keeps the packet well-framed.
var blobSegmentTrait = segmentTrait{
	name: "OPAQUE",
	read: func(c *codec.Cursor, length, max int) (any, error) {
		b, err := c.ReadBytes(length, max)
		if err != nil {
			return nil, err
		}

		return append([]byte(nil), b...), nil
	},
	write: func(c *codec.Cursor, v any, max int) error {
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("%w: opaque segment holds %T, want []byte", errs.ErrBadCast, v)
		}

		return c.WriteBytes(b, max)
	},
	size: func(v any) (int, error) {
		b, ok := v.([]byte)
		if !ok {
			return 0, fmt.Errorf("%w: opaque segment holds %T, want []byte", errs.ErrBadCast, v)
		}

		return len(b), nil
	},
}

// segmentTraits maps the modelled segment types to their traits. Lookups
// for any other type fall back to blobSegmentTrait.
var segmentTraits = map[SegmentType]segmentTrait{
	SegmentMission: {
		name: "MISSION",
		read: func(c *codec.Cursor, length, max int) (any, error) {
			return ReadMissionSegment(c, length, max)
		},
		write: func(c *codec.Cursor, v any, max int) error {
			m, ok := v.(MissionSegment)
			if !ok {
				return fmt.Errorf("%w: mission segment holds %T", errs.ErrBadCast, v)
			}

			return WriteMissionSegment(c, m, max)
		},
		size: func(any) (int, error) { return missionSegmentLength, nil },
	},
	SegmentDwell: {
		name: "DWELL",
		read: func(c *codec.Cursor, length, max int) (any, error) {
			return ReadDwellSegment(c, length, max)
		},
		write: func(c *codec.Cursor, v any, max int) error {
			d, ok := v.(DwellSegment)
			if !ok {
				return fmt.Errorf("%w: dwell segment holds %T", errs.ErrBadCast, v)
			}

			return WriteDwellSegment(c, d, max)
		},
		size: func(v any) (int, error) {
			d, ok := v.(DwellSegment)
			if !ok {
				return 0, fmt.Errorf("%w: dwell segment holds %T", errs.ErrBadCast, v)
			}

			return DwellSegmentLength(d), nil
		},
	},
}

func traitFor(t SegmentType) segmentTrait {
	if tr, ok := segmentTraits[t]; ok {
		return tr
	}

	return blobSegmentTrait
}

// ReadPacket parses one full STANAG 4607 packet: header, then segments
// until the header's packet size is consumed.
func ReadPacket(c *codec.Cursor, max int, log logging.Logger) (Packet, error) {
	if log == nil {
		log = logging.Nop()
	}

	start := c.Pos()

	header, err := ReadPacketHeader(c, max)
	if err != nil {
		return Packet{}, fmt.Errorf("stanag packet: %w", err)
	}
	if header.PacketSize < packetHeaderLength {
		return Packet{}, fmt.Errorf("%w: packet size %d smaller than its header", errs.ErrMetadata, header.PacketSize)
	}

	p := Packet{Header: header}

	for c.Pos()-start < int(header.PacketSize) {
		remaining := int(header.PacketSize) - (c.Pos() - start)

		sh, err := ReadSegmentHeader(c, remaining)
		if err != nil {
			return Packet{}, fmt.Errorf("stanag packet: segment %d: %w", len(p.Segments), err)
		}
		if sh.Size < segmentHeaderLength {
			return Packet{}, fmt.Errorf("%w: segment size %d smaller than its header", errs.ErrMetadata, sh.Size)
		}
		payload := int(sh.Size) - segmentHeaderLength
		if payload > remaining-segmentHeaderLength {
			return Packet{}, fmt.Errorf("%w: segment of %d bytes overruns packet", errs.ErrBufferOverflow, sh.Size)
		}

		trait := traitFor(sh.Type)
		val, err := trait.read(c, payload, payload)
		if err != nil {
			return Packet{}, fmt.Errorf("stanag packet: %s segment: %w", trait.name, err)
		}

		p.Segments = append(p.Segments, Segment{Header: sh, Value: val})
	}

	return p, nil
}

// WritePacket serializes p, recomputing the packet size and each segment
// size from the held values rather than trusting stale header fields.
func (p Packet) WritePacket(c *codec.Cursor, max int) error {
	size, err := p.Length()
	if err != nil {
		return err
	}

	header := p.Header
	header.PacketSize = uint32(size)

	start := c.Pos()
	budget := func() int { return max - (c.Pos() - start) }

	if err := WritePacketHeader(c, header, budget()); err != nil {
		return err
	}

	for _, seg := range p.Segments {
		trait := traitFor(seg.Header.Type)
		payload, err := trait.size(seg.Value)
		if err != nil {
			return err
		}

		sh := seg.Header
		sh.Size = uint32(payload + segmentHeaderLength)
		if err := WriteSegmentHeader(c, sh, budget()); err != nil {
			return err
		}
		if err := trait.write(c, seg.Value, budget()); err != nil {
			return fmt.Errorf("stanag packet: %s segment: %w", trait.name, err)
		}
	}

	return nil
}

// Length reports the full encoded size of p, header included.
func (p Packet) Length() (int, error) {
	total := packetHeaderLength
	for _, seg := range p.Segments {
		trait := traitFor(seg.Header.Type)
		payload, err := trait.size(seg.Value)
		if err != nil {
			return 0, err
		}
		total += segmentHeaderLength + payload
	}

	return total, nil
}
