package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST0104Key is the top-level UDS key for MISB ST 0104 (Predator UAV Basic
// Universal Metadata Set).
var ST0104Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01, 0x0E, 0x01, 0x01, 0x01, 0x01, 0x00, 0x00, 0x00)

// ST0104 fields are individually keyed by UDS rather than a small LDS
// tag; the demuxer locates the timestamp via the USER_DEFINED_TIMESTAMP
// universal key.

// Synthetic local tags for ST 0104 fields. The wire format is a universal
// set, but the timeline's composite key is (standard, tag, index), so each
// 0104 field needs a small stable integer identity alongside its UDS key.
const (
	ST0104TagUserDefinedTimestamp key.LDS = 1
	ST0104TagPlatformDesignation  key.LDS = 2
	ST0104TagImageSourceSensor    key.LDS = 3
	ST0104TagSensorLatitude       key.LDS = 4
	ST0104TagSensorLongitude      key.LDS = 5
	ST0104TagSensorTrueAltitude   key.LDS = 6
	ST0104TagFrameCenterLatitude  key.LDS = 7
	ST0104TagFrameCenterLongitude key.LDS = 8
	ST0104TagStartDatetimeUTC     key.LDS = 9
)

var (
	ST0104UserDefinedTimestamp = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x03, 0x07, 0x02, 0x01, 0x01, 0x01, 0x05, 0x00, 0x00)
	ST0104PlatformDesignation = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x00, 0x00, 0x00)
	ST0104ImageSourceSensor   = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x02, 0x00, 0x00, 0x00)
	ST0104SensorLatitude      = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x03, 0x00, 0x00, 0x00)
	ST0104SensorLongitude     = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x04, 0x00, 0x00, 0x00)
	ST0104SensorTrueAltitude  = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x05, 0x00, 0x00, 0x00)
	ST0104FrameCenterLatitude = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x06, 0x00, 0x00, 0x00)
	ST0104FrameCenterLongitude = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x07, 0x00, 0x00, 0x00)
	ST0104StartDatetimeUTC    = uds(0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x08, 0x00, 0x00, 0x00)
)

var st0104Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "USER_DEFINED_TIMESTAMP", Tag: ST0104TagUserDefinedTimestamp, UDSKey: ST0104UserDefinedTimestamp, Format: klv.UintFormat{Length: 8}, DisplayName: "User Defined Timestamp (UTC)", Multiplicity: klv.Required},
	{EnumName: "PLATFORM_DESIGNATION", Tag: ST0104TagPlatformDesignation, UDSKey: ST0104PlatformDesignation, Format: klv.StringFormat{}, DisplayName: "Platform Designation", Multiplicity: klv.Optional},
	{EnumName: "IMAGE_SOURCE_SENSOR", Tag: ST0104TagImageSourceSensor, UDSKey: ST0104ImageSourceSensor, Format: klv.StringFormat{}, DisplayName: "Image Source Sensor", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_LATITUDE", Tag: ST0104TagSensorLatitude, UDSKey: ST0104SensorLatitude, Format: klv.Float64Format{}, DisplayName: "Sensor Latitude", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_LONGITUDE", Tag: ST0104TagSensorLongitude, UDSKey: ST0104SensorLongitude, Format: klv.Float64Format{}, DisplayName: "Sensor Longitude", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_TRUE_ALTITUDE", Tag: ST0104TagSensorTrueAltitude, UDSKey: ST0104SensorTrueAltitude, Format: klv.Float32Format{}, DisplayName: "Sensor True Altitude", Multiplicity: klv.Optional},
	{EnumName: "FRAME_CENTER_LATITUDE", Tag: ST0104TagFrameCenterLatitude, UDSKey: ST0104FrameCenterLatitude, Format: klv.Float64Format{}, DisplayName: "Frame Center Latitude", Multiplicity: klv.Optional},
	{EnumName: "FRAME_CENTER_LONGITUDE", Tag: ST0104TagFrameCenterLongitude, UDSKey: ST0104FrameCenterLongitude, Format: klv.Float64Format{}, DisplayName: "Frame Center Longitude", Multiplicity: klv.Optional},
	{EnumName: "START_DATETIME_UTC", Tag: ST0104TagStartDatetimeUTC, UDSKey: ST0104StartDatetimeUTC, Format: klv.StringFormat{}, DisplayName: "Start Date Time (UTC)", Multiplicity: klv.Optional},
}

var st0104Lookup *klv.TagTraitsLookup

// ST0104Lookup returns the representative ST 0104 tag traits lookup, indexed
// by UDS key (ST 0104 has no LDS encoding).
func ST0104Lookup() *klv.TagTraitsLookup {
	if st0104Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st0104Traits)
		if err != nil {
			panic(err)
		}
		st0104Lookup = l
	}

	return st0104Lookup
}

// ST0104Format returns the top-level Format for ST 0104 packets: a
// universal set, no checksum trailer.
func ST0104Format() klv.Format {
	return klv.UniversalSetFormat{Lookup: ST0104Lookup()}
}
