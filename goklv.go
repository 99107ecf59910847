package goklv

import (
	"errors"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/logging"
)

// ParsePackets scans data for every top-level KLV packet it contains, using
// the full catalog of registered standards. Bytes between packets are
// skipped (and logged); a truncated trailing packet ends the scan.
func ParsePackets(data []byte, log logging.Logger) []klv.Packet {
	if log == nil {
		log = logging.Nop()
	}

	lookup := catalog.PacketKeys()
	c := codec.NewReadCursor(data)

	var out []klv.Packet
	for c.Remaining() > 0 {
		p, err := klv.ReadPacket(c, c.Remaining(), lookup, log)
		if err != nil {
			if !errors.Is(err, errs.ErrBufferOverflow) {
				log.Warnw("stopping packet scan", "offset", c.Pos(), "error", err)
			}

			break
		}
		out = append(out, p)
	}

	return out
}

// EncodePackets serializes packets back to back into one buffer.
func EncodePackets(packets []klv.Packet) ([]byte, error) {
	lookup := catalog.PacketKeys()

	total := 0
	for _, p := range packets {
		n, err := klv.PacketLength(p, lookup)
		if err != nil {
			return nil, err
		}
		total += n
	}

	buf := make([]byte, total)
	c := codec.NewWriteCursor(buf)
	for _, p := range packets {
		if err := klv.WritePacket(c, p, c.Remaining(), lookup); err != nil {
			return nil, err
		}
	}

	return buf, nil
}
