package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST0806Key is the top-level UDS key for MISB ST 0806 (Remote Video
// Terminal, RVT).
var ST0806Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01, 0x0E, 0x01, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00)

const (
	ST0806Checksum      key.LDS = 1
	ST0806Version       key.LDS = 2
	ST0806POISet        key.LDS = 3
	ST0806AOISet        key.LDS = 4
	ST0806UserDefined   key.LDS = 5
)

// st0806Traits models only the RVT envelope; POI/AOI/user-defined nested
// local sets are explicitly out of scope and kept as opaque
// blobs so packets carrying them still frame correctly.
var st0806Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "CHECKSUM", Tag: ST0806Checksum, Format: klv.ChecksumFormat{Algorithm: klv.CRC32MPEG{}}, DisplayName: "Checksum", Multiplicity: klv.Required},
	{EnumName: "VERSION", Tag: ST0806Version, Format: klv.UintFormat{Length: 1}, DisplayName: "RVT LS Version Number", Multiplicity: klv.Optional},
	{EnumName: "POI_SET", Tag: ST0806POISet, Format: klv.BlobFormat{}, DisplayName: "Point of Interest Local Set", Multiplicity: klv.Unbounded},
	{EnumName: "AOI_SET", Tag: ST0806AOISet, Format: klv.BlobFormat{}, DisplayName: "Area of Interest Local Set", Multiplicity: klv.Unbounded},
	{EnumName: "USER_DEFINED_SET", Tag: ST0806UserDefined, Format: klv.BlobFormat{}, DisplayName: "User Defined Local Set", Multiplicity: klv.Unbounded},
}

var st0806Lookup *klv.TagTraitsLookup

// ST0806Lookup returns the representative ST 0806 tag traits lookup.
func ST0806Lookup() *klv.TagTraitsLookup {
	if st0806Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st0806Traits)
		if err != nil {
			panic(err)
		}
		st0806Lookup = l
	}

	return st0806Lookup
}

// ST0806Format returns the top-level Format for ST 0806 packets: a local set
// with a trailing CRC-32/MPEG-2 checksum under tag 1 (6-byte trailer
// [01, 04, CS_31..CS_0]).
func ST0806Format() klv.Format {
	return klv.LocalSetFormat{
		Lookup:      ST0806Lookup(),
		HasChecksum: true,
		ChecksumTag: ST0806Checksum,
		Algorithm:   klv.CRC32MPEG{},
	}
}
