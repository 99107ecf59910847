package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST1010Key is the top-level UDS key for MISB ST 1010 (SMPTE Digital Cinema
// Compression Coefficients, SDCC).
var ST1010Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01, 0x0E, 0x01, 0x04, 0x03, 0x04, 0x00, 0x00, 0x00)

const (
	ST1010Version key.LDS = 1
	ST1010Payload key.LDS = 2
)

// st1010Traits keeps the SDCC coefficient payload (tag 2) opaque; parsing
// the SDCC matrix itself is out of scope for this catalog.
var st1010Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "VERSION", Tag: ST1010Version, Format: klv.UintFormat{Length: 1}, DisplayName: "SDCC Version", Multiplicity: klv.Optional},
	{EnumName: "PAYLOAD", Tag: ST1010Payload, Format: klv.BlobFormat{}, DisplayName: "SDCC Payload", Multiplicity: klv.Optional},
}

var st1010Lookup *klv.TagTraitsLookup

// ST1010Lookup returns the representative ST 1010 tag traits lookup.
func ST1010Lookup() *klv.TagTraitsLookup {
	if st1010Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st1010Traits)
		if err != nil {
			panic(err)
		}
		st1010Lookup = l
	}

	return st1010Lookup
}

// ST1010Format returns the top-level Format for ST 1010 packets: a local
// set with no checksum trailer.
func ST1010Format() klv.Format {
	return klv.LocalSetFormat{Lookup: ST1010Lookup()}
}
