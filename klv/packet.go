// KLV packet framing: locating the next
// packet boundary in a byte stream, reading its 16-byte key and BER length,
// and dispatching to the top-level Format registered for that key.
package klv

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/logging"
)

// Packet is a top-level KLV packet: a 16-byte UDS key identifying the
// standard, paired with the parsed Value for its payload.
type Packet struct {
	Key   key.UDS
	Value Value
}

// PacketKeyLookup maps a top-level standard's UDS key to the Format used to
// parse/serialize its payload.
// Lookup ignores byte 7, matching key.UDS.Equal.
type PacketKeyLookup struct {
	byKey map[key.UDS]Format
}

// NewPacketKeyLookup builds a lookup from a map of standard key to its
// top-level Format (typically a LocalSetFormat or UniversalSetFormat).
func NewPacketKeyLookup(formats map[key.UDS]Format) *PacketKeyLookup {
	l := &PacketKeyLookup{byKey: make(map[key.UDS]Format, len(formats))}
	for k, f := range formats {
		l.byKey[k] = f
	}

	return l
}

// ByKey returns the Format registered for k, and whether one was found.
// Lookup first tries an exact map hit, then falls back to a byte-7-agnostic
// linear scan.
func (l *PacketKeyLookup) ByKey(k key.UDS) (Format, bool) {
	if l == nil {
		return nil, false
	}
	if f, ok := l.byKey[k]; ok {
		return f, true
	}
	for rk, f := range l.byKey {
		if rk.Equal(k) {
			return f, true
		}
	}

	return nil, false
}

// udsPrefixLen is the length of the fixed SMPTE 336 prefix ReadPacket scans
// for.
const udsPrefixLen = 4

var udsPrefixBytes = [udsPrefixLen]byte{0x06, 0x0E, 0x2B, 0x34}

// ReadPacket scans forward from c's current position for the next packet
// boundary, parses its key, BER length and payload, and returns the
// assembled Packet.
//
// Bytes skipped while scanning are logged but not otherwise surfaced; a
// malformed key found after scanning (one that does not carry the SMPTE
// prefix's required bit pattern beyond byte 3, or whose declared length or
// payload cannot be read) is reported as an unrecoverable framing error,
// since the scan may have matched the 4-byte prefix coincidentally.
func ReadPacket(c *codec.Cursor, max int, lookup *PacketKeyLookup, log logging.Logger) (Packet, error) {
	if log == nil {
		log = logging.Nop()
	}

	skipped, err := scanToPrefix(c, max)
	if err != nil {
		return Packet{}, err
	}
	if skipped > 0 {
		log.Warnw("skipped bytes scanning for packet key", "count", skipped)
	}

	k, err := key.ReadUDS(c, max-skipped)
	if err != nil {
		return Packet{}, fmt.Errorf("reading packet key: %w", err)
	}
	if !k.IsValid() {
		return Packet{}, fmt.Errorf("%w: packet key %s has an invalid prefix", errs.ErrMetadata, k)
	}

	remaining := max - skipped - key.UDSSize

	length, err := codec.ReadBER(c, remaining)
	if err != nil {
		return Packet{}, fmt.Errorf("reading packet length: %w", err)
	}
	remaining -= codec.BERLength(length)

	format, ok := lookup.ByKey(k)
	if !ok {
		v, err := BlobFormat{}.Read(c, int(length), remaining)
		if err != nil {
			return Packet{}, err
		}

		return Packet{Key: k, Value: v}, nil
	}

	v, err := format.Read(c, int(length), remaining)
	if err != nil {
		return Packet{}, fmt.Errorf("packet %s: %w", k, err)
	}

	return Packet{Key: k, Value: v}, nil
}

// scanToPrefix advances c past any bytes that do not start the fixed SMPTE
// 336 prefix, leaving the cursor positioned at the first byte of a
// candidate key. It returns the number of bytes skipped.
func scanToPrefix(c *codec.Cursor, max int) (int, error) {
	skipped := 0
	for {
		if c.Remaining() < udsPrefixLen {
			return skipped, fmt.Errorf("%w: no packet key found within %d bytes", errs.ErrBufferOverflow, max)
		}
		if skipped >= max {
			return skipped, fmt.Errorf("%w: no packet key found within %d bytes", errs.ErrBufferOverflow, max)
		}

		candidate := c.Bytes()[:udsPrefixLen]
		if candidate[0] == udsPrefixBytes[0] && candidate[1] == udsPrefixBytes[1] &&
			candidate[2] == udsPrefixBytes[2] && candidate[3] == udsPrefixBytes[3] {
			return skipped, nil
		}

		if err := c.Advance(1); err != nil {
			return skipped, err
		}
		skipped++
	}
}

// WritePacket serializes p as key(16) || BER(length) || payload.
func WritePacket(c *codec.Cursor, p Packet, max int, lookup *PacketKeyLookup) error {
	format, err := packetFormat(p, lookup)
	if err != nil {
		return err
	}

	length, err := entryLength(format, p.Value)
	if err != nil {
		return err
	}

	start := c.Pos()
	if err := key.WriteUDS(c, p.Key, max); err != nil {
		return err
	}
	if err := codec.WriteBER(c, uint64(length), max-(c.Pos()-start)); err != nil {
		return err
	}

	return writeEntry(format, c, p.Value, max-(c.Pos()-start))
}

// packetFormat resolves the format used to serialize p. A packet with no
// registered format still serializes when its value is a Blob (the raw-bytes
// path the demuxer uses for unknown standards).
func packetFormat(p Packet, lookup *PacketKeyLookup) (Format, error) {
	if format, ok := lookup.ByKey(p.Key); ok {
		return format, nil
	}
	if _, isBlob := p.Value.Blob(); isBlob {
		return BlobFormat{}, nil
	}

	return nil, fmt.Errorf("%w: no format registered for packet key %s", errs.ErrMetadata, p.Key)
}

// PacketLength reports the total encoded size of p: 16 + BER length of the
// payload length + the payload itself.
func PacketLength(p Packet, lookup *PacketKeyLookup) (int, error) {
	format, err := packetFormat(p, lookup)
	if err != nil {
		return 0, err
	}

	length, err := entryLength(format, p.Value)
	if err != nil {
		return 0, err
	}

	return key.UDSSize + codec.BERLength(uint64(length)) + length, nil
}
