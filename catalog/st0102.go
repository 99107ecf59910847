package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST0102Key is the top-level UDS key for MISB ST 0102 (Security Metadata
// Local Set) when carried as its own packet rather than nested inside
// ST 0601 tag 48.
var ST0102Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01, 0x0E, 0x01, 0x01, 0x02, 0x01, 0x00, 0x00, 0x00)

const (
	ST0102SecurityClassification key.LDS = 1
	ST0102ClassifyingCountry     key.LDS = 2
	ST0102SCIShiInfo             key.LDS = 3
	ST0102Caveats                key.LDS = 4
	ST0102ReleasingInstructions  key.LDS = 5
	ST0102ClassifiedBy           key.LDS = 6
	ST0102DerivedFrom            key.LDS = 7
	ST0102ClassificationReason   key.LDS = 8
	ST0102DeclassificationDate   key.LDS = 9
	ST0102MarkingSystem          key.LDS = 10
	ST0102OCCaveats              key.LDS = 11
)

var st0102SecurityClassificationNames = map[uint64]string{
	1: "UNCLASSIFIED",
	2: "RESTRICTED",
	3: "CONFIDENTIAL",
	4: "SECRET",
	5: "TOP_SECRET",
}

var st0102Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Tag: 0, Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "SECURITY_CLASSIFICATION", Tag: ST0102SecurityClassification, Format: klv.EnumFormat{Length: 1, Names: st0102SecurityClassificationNames, Unknown: "UNKNOWN"}, DisplayName: "Security Classification", Multiplicity: klv.Required},
	{EnumName: "CLASSIFYING_COUNTRY", Tag: ST0102ClassifyingCountry, Format: klv.StringFormat{}, DisplayName: "Classifying Country", Multiplicity: klv.Optional},
	{EnumName: "SCI_SHI_INFO", Tag: ST0102SCIShiInfo, Format: klv.StringFormat{}, DisplayName: "SCI/SHI Information", Multiplicity: klv.Optional},
	{EnumName: "CAVEATS", Tag: ST0102Caveats, Format: klv.StringFormat{}, DisplayName: "Caveats", Multiplicity: klv.Optional},
	{EnumName: "RELEASING_INSTRUCTIONS", Tag: ST0102ReleasingInstructions, Format: klv.StringFormat{}, DisplayName: "Releasing Instructions", Multiplicity: klv.Optional},
	{EnumName: "CLASSIFIED_BY", Tag: ST0102ClassifiedBy, Format: klv.StringFormat{}, DisplayName: "Classified By", Multiplicity: klv.Optional},
	{EnumName: "DERIVED_FROM", Tag: ST0102DerivedFrom, Format: klv.StringFormat{}, DisplayName: "Derived From", Multiplicity: klv.Optional},
	{EnumName: "CLASSIFICATION_REASON", Tag: ST0102ClassificationReason, Format: klv.StringFormat{}, DisplayName: "Classification Reason", Multiplicity: klv.Optional},
	{EnumName: "DECLASSIFICATION_DATE", Tag: ST0102DeclassificationDate, Format: klv.StringFormat{}, DisplayName: "Declassification Date", Multiplicity: klv.Optional},
	{EnumName: "MARKING_SYSTEM", Tag: ST0102MarkingSystem, Format: klv.StringFormat{}, DisplayName: "Classification/Marking System", Multiplicity: klv.Optional},
	{EnumName: "OC_CAVEATS", Tag: ST0102OCCaveats, Format: klv.StringFormat{}, DisplayName: "Object Country Coding Method", Multiplicity: klv.Optional},
}

var st0102Lookup *klv.TagTraitsLookup

// ST0102Lookup returns the representative ST 0102 tag traits lookup.
func ST0102Lookup() *klv.TagTraitsLookup {
	if st0102Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st0102Traits)
		if err != nil {
			panic(err)
		}
		st0102Lookup = l
	}

	return st0102Lookup
}

// ST0102Format returns the top-level Format for a standalone ST 0102
// packet (no checksum trailer in this representative model).
func ST0102Format() klv.Format {
	return klv.LocalSetFormat{Lookup: ST0102Lookup()}
}
