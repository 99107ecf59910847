package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST1108Key is the top-level UDS key for MISB ST 1108 (Interpretability and
// Quality Metadata).
var ST1108Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x04, 0x04, 0x00, 0x00, 0x00, 0x00)

// Top-level ST 1108 tags.
const (
	ST1108Checksum           key.LDS = 1
	ST1108AssessmentPoint    key.LDS = 2
	ST1108MetricPeriodPack   key.LDS = 3
	ST1108CompressionType    key.LDS = 4
	ST1108CompressionLevel   key.LDS = 5
	ST1108CompressionProfile key.LDS = 6
	ST1108WindowCornersPack  key.LDS = 7
	ST1108MetricLocalSet     key.LDS = 8
)

// Nested ST 1108 METRIC_LOCAL_SET tags. A packet may carry several metric
// local sets sharing the same parent fields.
const (
	ST1108MetricName        key.LDS = 1
	ST1108MetricVersion     key.LDS = 2
	ST1108MetricImplementer key.LDS = 3
	ST1108MetricParameters  key.LDS = 4
	ST1108MetricTime        key.LDS = 5
	ST1108MetricValue       key.LDS = 6
)

var st1108AssessmentPointNames = map[uint64]string{
	0: "UNKNOWN",
	1: "INPUT_IMAGE",
	2: "OUTPUT_PRODUCT",
	3: "OTHER",
}

var st1108CompressionTypeNames = map[uint64]string{
	0: "UNCOMPRESSED",
	1: "JPEG2000",
	2: "MPEG2",
	3: "H264",
	4: "H265",
}

var st1108MetricTraits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "METRIC_NAME", Tag: ST1108MetricName, Format: klv.StringFormat{}, DisplayName: "Metric Name", Multiplicity: klv.Required},
	{EnumName: "METRIC_VERSION", Tag: ST1108MetricVersion, Format: klv.StringFormat{}, DisplayName: "Metric Version", Multiplicity: klv.Optional},
	{EnumName: "METRIC_IMPLEMENTER", Tag: ST1108MetricImplementer, Format: klv.StringFormat{}, DisplayName: "Metric Implementer", Multiplicity: klv.Optional},
	{EnumName: "METRIC_PARAMETERS", Tag: ST1108MetricParameters, Format: klv.StringFormat{}, DisplayName: "Metric Parameters", Multiplicity: klv.Optional},
	{EnumName: "METRIC_TIME", Tag: ST1108MetricTime, Format: klv.UintFormat{Length: 8}, DisplayName: "Metric Time", Multiplicity: klv.Optional},
	{EnumName: "METRIC_VALUE", Tag: ST1108MetricValue, Format: klv.Float64Format{}, DisplayName: "Metric Value", Multiplicity: klv.Required},
}

var st1108MetricLookup *klv.TagTraitsLookup

// ST1108MetricLookup returns the nested METRIC_LOCAL_SET tag traits lookup.
func ST1108MetricLookup() *klv.TagTraitsLookup {
	if st1108MetricLookup == nil {
		l, err := klv.NewTagTraitsLookup(st1108MetricTraits)
		if err != nil {
			panic(err)
		}
		st1108MetricLookup = l
	}

	return st1108MetricLookup
}

var st1108Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "CHECKSUM", Tag: ST1108Checksum, Format: klv.ChecksumFormat{Algorithm: klv.CRC16CCITT{}}, DisplayName: "Checksum", Multiplicity: klv.Required},
	{EnumName: "ASSESSMENT_POINT", Tag: ST1108AssessmentPoint, Format: klv.EnumFormat{Length: 1, Names: st1108AssessmentPointNames, Unknown: "UNKNOWN"}, DisplayName: "Assessment Point", Multiplicity: klv.Required},
	{EnumName: "METRIC_PERIOD_PACK", Tag: ST1108MetricPeriodPack, Format: klv.MetricPeriodPackFormat{}, DisplayName: "Metric Period Pack", Multiplicity: klv.Required},
	{EnumName: "COMPRESSION_TYPE", Tag: ST1108CompressionType, Format: klv.EnumFormat{Length: 1, Names: st1108CompressionTypeNames, Unknown: "UNCOMPRESSED"}, DisplayName: "Compression Type", Multiplicity: klv.Optional},
	{EnumName: "COMPRESSION_LEVEL", Tag: ST1108CompressionLevel, Format: klv.UintFormat{Length: 1}, DisplayName: "Compression Level", Multiplicity: klv.Optional},
	{EnumName: "COMPRESSION_PROFILE", Tag: ST1108CompressionProfile, Format: klv.StringFormat{}, DisplayName: "Compression Profile", Multiplicity: klv.Optional},
	{EnumName: "WINDOW_CORNERS_PACK", Tag: ST1108WindowCornersPack, Format: klv.WindowCornersFormat{}, DisplayName: "Window Corners Pack", Multiplicity: klv.Optional},
	{
		EnumName: "METRIC_LOCAL_SET", Tag: ST1108MetricLocalSet,
		Format:       klv.LocalSetFormat{Lookup: ST1108MetricLookup()},
		DisplayName:  "Metric Local Set",
		Multiplicity: klv.Unbounded,
		SubLookup:    ST1108MetricLookup(),
	},
}

var st1108Lookup *klv.TagTraitsLookup

// ST1108Lookup returns the representative ST 1108 tag traits lookup.
func ST1108Lookup() *klv.TagTraitsLookup {
	if st1108Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st1108Traits)
		if err != nil {
			panic(err)
		}
		st1108Lookup = l
	}

	return st1108Lookup
}

// ST1108Format returns the top-level Format for ST 1108 packets: a local
// set with a trailing CRC-16-CCITT checksum under tag 1.
func ST1108Format() klv.Format {
	return klv.LocalSetFormat{
		Lookup:      ST1108Lookup(),
		HasChecksum: true,
		ChecksumTag: ST1108Checksum,
		Algorithm:   klv.CRC16CCITT{},
	}
}
