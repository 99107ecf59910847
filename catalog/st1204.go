package catalog

import (
	"github.com/kwiver/goklv/klv"
)

// ST1204Key is the top-level UDS key for MISB ST 1204 (Motion Imagery
// Identification System, MIIS, Core Identifier).
var ST1204Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01, 0x0E, 0x01, 0x05, 0x05, 0x00, 0x00, 0x00, 0x00)

// ST1204Format returns the top-level Format for ST 1204 packets: the packet
// payload is the 16-byte MIIS Core Identifier value alone, with no
// surrounding set framing.
func ST1204Format() klv.Format {
	return klv.MIISFormat{}
}
