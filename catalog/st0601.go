package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// ST0601Key is the 16-byte top-level UDS key for MISB ST 0601 (UAS
// Datalink Local Set).
var ST0601Key = uds(0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x0E, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00)

// ST 0601 local-set tags referenced by name elsewhere in this module (demux,
// mux, vital). Values follow the published MISB ST 0601 tag numbers for the
// representative subset this core models.
const (
	ST0601Checksum                       key.LDS = 1
	ST0601PrecisionTimestamp             key.LDS = 2
	ST0601MissionID                      key.LDS = 3
	ST0601PlatformTailNumber             key.LDS = 4
	ST0601PlatformHeadingAngle           key.LDS = 5
	ST0601PlatformPitchAngle             key.LDS = 6
	ST0601PlatformRollAngle              key.LDS = 7
	ST0601PlatformDesignation            key.LDS = 10
	ST0601ImageSourceSensor              key.LDS = 11
	ST0601ImageCoordinateSystem          key.LDS = 12
	ST0601SensorLatitude                 key.LDS = 13
	ST0601SensorLongitude                key.LDS = 14
	ST0601SensorTrueAltitude             key.LDS = 15
	ST0601SensorHorizontalFOV            key.LDS = 16
	ST0601SensorVerticalFOV              key.LDS = 17
	ST0601SensorRelativeAzimuthAngle     key.LDS = 18
	ST0601SensorRelativeElevationAngle   key.LDS = 19
	ST0601SensorRelativeRollAngle        key.LDS = 20
	ST0601SlantRange                     key.LDS = 21
	ST0601TargetWidth                    key.LDS = 22
	ST0601FrameCenterLatitude            key.LDS = 23
	ST0601FrameCenterLongitude           key.LDS = 24
	ST0601FrameCenterElevation           key.LDS = 25
	ST0601OffsetCornerLatPoint1          key.LDS = 26
	ST0601OffsetCornerLonPoint1          key.LDS = 27
	ST0601OffsetCornerLatPoint2          key.LDS = 28
	ST0601OffsetCornerLonPoint2          key.LDS = 29
	ST0601OffsetCornerLatPoint3          key.LDS = 30
	ST0601OffsetCornerLonPoint3          key.LDS = 31
	ST0601OffsetCornerLatPoint4          key.LDS = 32
	ST0601OffsetCornerLonPoint4          key.LDS = 33
	ST0601WeaponFired                    key.LDS = 74
	ST0601FullCornerLatPoint1            key.LDS = 82
	ST0601FullCornerLonPoint1            key.LDS = 83
	ST0601FullCornerLatPoint2            key.LDS = 84
	ST0601FullCornerLonPoint2            key.LDS = 85
	ST0601FullCornerLatPoint3            key.LDS = 86
	ST0601FullCornerLonPoint3            key.LDS = 87
	ST0601FullCornerLatPoint4            key.LDS = 88
	ST0601FullCornerLonPoint4            key.LDS = 89
	ST0601ControlCommand                 key.LDS = 75
	ST0601ControlCommandVerificationList key.LDS = 76
	ST0601SecurityLocalSet               key.LDS = 48
	ST0601VersionNumber                  key.LDS = 65
	ST0601MIISCoreIdentifier             key.LDS = 94
	ST0601WavelengthsList                key.LDS = 101
	ST0601PayloadList                    key.LDS = 106
	ST0601WaypointList                   key.LDS = 143
	ST0601SegmentLocalSet                key.LDS = 144
	ST0601AmendLocalSet                  key.LDS = 145
)

// st0601Traits is built at package initialization; its initializer calls
// ST0102Lookup (needed for the nested security local set), so Go's
// initialization order builds the ST 0102 traits first.
var st0601Traits = []klv.TagTraits{
	{EnumName: "UNKNOWN", Tag: 0, Format: klv.BlobFormat{}, Multiplicity: klv.Unbounded},
	{EnumName: "CHECKSUM", Tag: ST0601Checksum, Format: klv.ChecksumFormat{Algorithm: klv.Sum16{}}, DisplayName: "Checksum", Multiplicity: klv.Required},
	{EnumName: "PRECISION_TIMESTAMP", Tag: ST0601PrecisionTimestamp, Format: klv.UintFormat{Length: 8}, DisplayName: "Precision Timestamp", Multiplicity: klv.Required},
	{EnumName: "MISSION_ID", Tag: ST0601MissionID, Format: klv.StringFormat{}, DisplayName: "Mission ID", Multiplicity: klv.Optional},
	{EnumName: "PLATFORM_TAIL_NUMBER", Tag: ST0601PlatformTailNumber, Format: klv.StringFormat{}, DisplayName: "Platform Tail Number", Multiplicity: klv.Optional},
	{EnumName: "PLATFORM_HEADING_ANGLE", Tag: ST0601PlatformHeadingAngle, Format: klv.IMAPFormat{Lo: 0, Hi: 360, Length: 2}, DisplayName: "Platform Heading Angle", Multiplicity: klv.Optional},
	{EnumName: "PLATFORM_PITCH_ANGLE", Tag: ST0601PlatformPitchAngle, Format: klv.FLINTFormat{Lo: -20, Hi: 20, Length: 2}, DisplayName: "Platform Pitch Angle", Multiplicity: klv.Optional},
	{EnumName: "PLATFORM_ROLL_ANGLE", Tag: ST0601PlatformRollAngle, Format: klv.FLINTFormat{Lo: -50, Hi: 50, Length: 2}, DisplayName: "Platform Roll Angle", Multiplicity: klv.Optional},
	{EnumName: "PLATFORM_DESIGNATION", Tag: ST0601PlatformDesignation, Format: klv.StringFormat{}, DisplayName: "Platform Designation", Multiplicity: klv.Optional},
	{EnumName: "IMAGE_SOURCE_SENSOR", Tag: ST0601ImageSourceSensor, Format: klv.StringFormat{}, DisplayName: "Image Source Sensor", Multiplicity: klv.Optional},
	{EnumName: "IMAGE_COORDINATE_SYSTEM", Tag: ST0601ImageCoordinateSystem, Format: klv.StringFormat{}, DisplayName: "Image Coordinate System", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_LATITUDE", Tag: ST0601SensorLatitude, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Sensor Latitude", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_LONGITUDE", Tag: ST0601SensorLongitude, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Sensor Longitude", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_TRUE_ALTITUDE", Tag: ST0601SensorTrueAltitude, Format: klv.IMAPFormat{Lo: -900, Hi: 19000, Length: 2}, DisplayName: "Sensor True Altitude", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_HORIZONTAL_FOV", Tag: ST0601SensorHorizontalFOV, Format: klv.IMAPFormat{Lo: 0, Hi: 180, Length: 2}, DisplayName: "Sensor Horizontal FOV", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_VERTICAL_FOV", Tag: ST0601SensorVerticalFOV, Format: klv.IMAPFormat{Lo: 0, Hi: 180, Length: 2}, DisplayName: "Sensor Vertical FOV", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_RELATIVE_AZIMUTH_ANGLE", Tag: ST0601SensorRelativeAzimuthAngle, Format: klv.IMAPFormat{Lo: 0, Hi: 360, Length: 4}, DisplayName: "Sensor Relative Azimuth Angle", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_RELATIVE_ELEVATION_ANGLE", Tag: ST0601SensorRelativeElevationAngle, Format: klv.FLINTFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Sensor Relative Elevation Angle", Multiplicity: klv.Optional},
	{EnumName: "SENSOR_RELATIVE_ROLL_ANGLE", Tag: ST0601SensorRelativeRollAngle, Format: klv.IMAPFormat{Lo: 0, Hi: 360, Length: 4}, DisplayName: "Sensor Relative Roll Angle", Multiplicity: klv.Optional},
	{EnumName: "SLANT_RANGE", Tag: ST0601SlantRange, Format: klv.IMAPFormat{Lo: 0, Hi: 5_000_000, Length: 4}, DisplayName: "Slant Range", Multiplicity: klv.Optional},
	{EnumName: "TARGET_WIDTH", Tag: ST0601TargetWidth, Format: klv.IMAPFormat{Lo: 0, Hi: 10_000, Length: 2}, DisplayName: "Target Width", Multiplicity: klv.Optional},
	{EnumName: "FRAME_CENTER_LATITUDE", Tag: ST0601FrameCenterLatitude, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Frame Center Latitude", Multiplicity: klv.Optional},
	{EnumName: "FRAME_CENTER_LONGITUDE", Tag: ST0601FrameCenterLongitude, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Frame Center Longitude", Multiplicity: klv.Optional},
	{EnumName: "FRAME_CENTER_ELEVATION", Tag: ST0601FrameCenterElevation, Format: klv.IMAPFormat{Lo: -900, Hi: 19000, Length: 2}, DisplayName: "Frame Center Elevation", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LATITUDE_POINT_1", Tag: ST0601OffsetCornerLatPoint1, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Latitude Point 1", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LONGITUDE_POINT_1", Tag: ST0601OffsetCornerLonPoint1, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Longitude Point 1", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LATITUDE_POINT_2", Tag: ST0601OffsetCornerLatPoint2, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Latitude Point 2", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LONGITUDE_POINT_2", Tag: ST0601OffsetCornerLonPoint2, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Longitude Point 2", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LATITUDE_POINT_3", Tag: ST0601OffsetCornerLatPoint3, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Latitude Point 3", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LONGITUDE_POINT_3", Tag: ST0601OffsetCornerLonPoint3, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Longitude Point 3", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LATITUDE_POINT_4", Tag: ST0601OffsetCornerLatPoint4, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Latitude Point 4", Multiplicity: klv.Optional},
	{EnumName: "OFFSET_CORNER_LONGITUDE_POINT_4", Tag: ST0601OffsetCornerLonPoint4, Format: klv.FLINTFormat{Lo: -0.075, Hi: 0.075, Length: 2}, DisplayName: "Offset Corner Longitude Point 4", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LATITUDE_POINT_1", Tag: ST0601FullCornerLatPoint1, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Corner Latitude Point 1 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LONGITUDE_POINT_1", Tag: ST0601FullCornerLonPoint1, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Corner Longitude Point 1 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LATITUDE_POINT_2", Tag: ST0601FullCornerLatPoint2, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Corner Latitude Point 2 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LONGITUDE_POINT_2", Tag: ST0601FullCornerLonPoint2, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Corner Longitude Point 2 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LATITUDE_POINT_3", Tag: ST0601FullCornerLatPoint3, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Corner Latitude Point 3 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LONGITUDE_POINT_3", Tag: ST0601FullCornerLonPoint3, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Corner Longitude Point 3 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LATITUDE_POINT_4", Tag: ST0601FullCornerLatPoint4, Format: klv.IMAPFormat{Lo: -90, Hi: 90, Length: 4}, DisplayName: "Corner Latitude Point 4 (Full)", Multiplicity: klv.Optional},
	{EnumName: "FULL_CORNER_LONGITUDE_POINT_4", Tag: ST0601FullCornerLonPoint4, Format: klv.IMAPFormat{Lo: -180, Hi: 180, Length: 4}, DisplayName: "Corner Longitude Point 4 (Full)", Multiplicity: klv.Optional},
	{EnumName: "SECURITY_LOCAL_SET", Tag: ST0601SecurityLocalSet, Format: klv.LocalSetFormat{Lookup: ST0102Lookup()}, DisplayName: "Security Local Set", Multiplicity: klv.Optional, SubLookup: ST0102Lookup()},
	{EnumName: "WEAPON_FIRED", Tag: ST0601WeaponFired, Format: klv.UintFormat{Length: 1}, DisplayName: "Weapon Fired", Multiplicity: klv.Unbounded},
	{EnumName: "CONTROL_COMMAND", Tag: ST0601ControlCommand, Format: klv.ControlCommandFormat{}, DisplayName: "Control Command", Multiplicity: klv.Unbounded},
	{EnumName: "CONTROL_COMMAND_VERIFICATION_LIST", Tag: ST0601ControlCommandVerificationList, Format: klv.BlobFormat{}, DisplayName: "Control Command Verification List", Multiplicity: klv.Unbounded},
	{EnumName: "UAS_LDS_VERSION_NUMBER", Tag: ST0601VersionNumber, Format: klv.UintFormat{Length: 1}, DisplayName: "UAS LDS Version Number", Multiplicity: klv.Optional},
	{EnumName: "MIIS_CORE_IDENTIFIER", Tag: ST0601MIISCoreIdentifier, Format: klv.MIISFormat{}, DisplayName: "MIIS Core Identifier", Multiplicity: klv.Optional},
	{EnumName: "WAVELENGTHS_LIST", Tag: ST0601WavelengthsList, Format: klv.BlobFormat{}, DisplayName: "Wavelengths List", Multiplicity: klv.Unbounded},
	{EnumName: "PAYLOAD_LIST", Tag: ST0601PayloadList, Format: klv.BlobFormat{}, DisplayName: "Payload List", Multiplicity: klv.Unbounded},
	{EnumName: "WAYPOINT_LIST", Tag: ST0601WaypointList, Format: klv.BlobFormat{}, DisplayName: "Waypoint List", Multiplicity: klv.Unbounded},
	{EnumName: "SEGMENT_LOCAL_SET", Tag: ST0601SegmentLocalSet, Format: klv.BlobFormat{}, DisplayName: "Segment Local Set", Multiplicity: klv.Unbounded},
	{EnumName: "AMEND_LOCAL_SET", Tag: ST0601AmendLocalSet, Format: klv.BlobFormat{}, DisplayName: "Amend Local Set", Multiplicity: klv.Unbounded},
}

var st0601Lookup *klv.TagTraitsLookup

// ST0601Lookup returns the representative ST 0601 tag traits lookup,
// building it on first use.
func ST0601Lookup() *klv.TagTraitsLookup {
	if st0601Lookup == nil {
		l, err := klv.NewTagTraitsLookup(st0601Traits)
		if err != nil {
			panic(err) // st0601Traits is a fixed non-empty literal; only programmer error reaches here
		}
		st0601Lookup = l
	}

	return st0601Lookup
}

// ST0601Format returns the top-level Format for ST 0601 packets: a local set
// with a trailing 16-bit running-sum checksum under tag 1.
func ST0601Format() klv.Format {
	return klv.LocalSetFormat{
		Lookup:      ST0601Lookup(),
		HasChecksum: true,
		ChecksumTag: ST0601Checksum,
		Algorithm:   klv.Sum16{},
	}
}
