package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST1002Key is the top-level UDS key for MISB ST 1002 (Range Imaging
// Metadata).
var ST1002Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x03, 0x0A, 0x00, 0x00, 0x00)

const (
	ST1002Checksum           key.LDS = 1
	ST1002PrecisionTimestamp key.LDS = 2
	ST1002RangeImageSource   key.LDS = 3
	ST1002Sections           key.LDS = 101
)

// st1002Traits keeps per-section range data (tag 101) opaque; section
// sub-parsing is explicitly out of scope.
var st1002Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "CHECKSUM", Tag: ST1002Checksum, Format: klv.ChecksumFormat{Algorithm: klv.CRC16CCITT{}}, DisplayName: "Checksum", Multiplicity: klv.Required},
	{EnumName: "PRECISION_TIMESTAMP", Tag: ST1002PrecisionTimestamp, Format: klv.UintFormat{Length: 8}, DisplayName: "Precision Timestamp", Multiplicity: klv.Required},
	{EnumName: "RANGE_IMAGE_SOURCE", Tag: ST1002RangeImageSource, Format: klv.StringFormat{}, DisplayName: "Range Image Source", Multiplicity: klv.Optional},
	{EnumName: "SECTIONS", Tag: ST1002Sections, Format: klv.BlobFormat{}, DisplayName: "Range Image Sections", Multiplicity: klv.Optional},
}

var st1002Lookup *klv.TagTraitsLookup

// ST1002Lookup returns the representative ST 1002 tag traits lookup.
func ST1002Lookup() *klv.TagTraitsLookup {
	if st1002Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st1002Traits)
		if err != nil {
			panic(err)
		}
		st1002Lookup = l
	}

	return st1002Lookup
}

// ST1002Format returns the top-level Format for ST 1002 packets: a local
// set with a trailing CRC-16-CCITT checksum under tag 1.
func ST1002Format() klv.Format {
	return klv.LocalSetFormat{
		Lookup:      ST1002Lookup(),
		HasChecksum: true,
		ChecksumTag: ST1002Checksum,
		Algorithm:   klv.CRC16CCITT{},
	}
}
