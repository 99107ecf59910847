package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST0903Key is the top-level UDS key for MISB ST 0903 (VMTI, Video Moving
// Target Indicator Metadata).
var ST0903Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x03, 0x06, 0x00, 0x00, 0x00)

const (
	ST0903Checksum              key.LDS = 1
	ST0903PrecisionTimestamp    key.LDS = 2
	ST0903VMTISystemName        key.LDS = 3
	ST0903Version               key.LDS = 4
	ST0903TotalTargetsDetected  key.LDS = 5
	ST0903NumberTargetsReported key.LDS = 6
	ST0903VTargetSeries         key.LDS = 101
)

// st0903Traits keeps VTarget Series (tag 101) as an opaque blob; its
// per-target sub-structure is explicitly out of scope.
var st0903Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "CHECKSUM", Tag: ST0903Checksum, Format: klv.ChecksumFormat{Algorithm: klv.CRC16CCITT{}}, DisplayName: "Checksum", Multiplicity: klv.Required},
	{EnumName: "PRECISION_TIMESTAMP", Tag: ST0903PrecisionTimestamp, Format: klv.UintFormat{Length: 8}, DisplayName: "Precision Timestamp", Multiplicity: klv.Required},
	{EnumName: "VMTI_SYSTEM_NAME", Tag: ST0903VMTISystemName, Format: klv.StringFormat{}, DisplayName: "VMTI System Name", Multiplicity: klv.Optional},
	{EnumName: "VERSION", Tag: ST0903Version, Format: klv.UintFormat{Length: 1}, DisplayName: "VMTI LS Version Number", Multiplicity: klv.Optional},
	{EnumName: "TOTAL_TARGETS_DETECTED", Tag: ST0903TotalTargetsDetected, Format: klv.UintFormat{Length: 2}, DisplayName: "Total Targets Detected", Multiplicity: klv.Optional},
	{EnumName: "NUMBER_TARGETS_REPORTED", Tag: ST0903NumberTargetsReported, Format: klv.UintFormat{Length: 2}, DisplayName: "Number of Targets Reported", Multiplicity: klv.Optional},
	{EnumName: "VTARGET_SERIES", Tag: ST0903VTargetSeries, Format: klv.BlobFormat{}, DisplayName: "VTarget Series", Multiplicity: klv.Optional},
}

var st0903Lookup *klv.TagTraitsLookup

// ST0903Lookup returns the representative ST 0903 tag traits lookup.
func ST0903Lookup() *klv.TagTraitsLookup {
	if st0903Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st0903Traits)
		if err != nil {
			panic(err)
		}
		st0903Lookup = l
	}

	return st0903Lookup
}

// ST0903Format returns the top-level Format for ST 0903 packets: a local set
// with a trailing CRC-16-CCITT checksum under tag 1.
func ST0903Format() klv.Format {
	return klv.LocalSetFormat{
		Lookup:      ST0903Lookup(),
		HasChecksum: true,
		ChecksumTag: ST0903Checksum,
		Algorithm:   klv.CRC16CCITT{},
	}
}
