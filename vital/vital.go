// Package vital implements the vital metadata projector: a one-way
// projection of the timeline at a single timestamp into a
// flat frame-level metadata bag holding only fields with a one-to-one
// mapping into a consuming system's vocabulary.
//
// The projection is table-driven: scalar fields come from an ordered
// candidate list per output name (preferring full-precision variants when
// several standards carry the same quantity), with a handful of special
// cases for geographic points, the corner quadrilateral, ST 0104 datetime
// strings, merged security sets and ST 1108 quality metrics.
package vital

import (
	"strings"
	"time"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/timeline"
)

// Metadata bag keys produced by Project.
const (
	KeyMissionID            = "mission_id"
	KeyPlatformDesignation  = "platform_designation"
	KeyPlatformTailNumber   = "platform_tail_number"
	KeyImageSourceSensor    = "image_source_sensor"
	KeyImageCoordinateSystem = "image_coordinate_system"
	KeyPlatformHeading      = "platform_heading"
	KeyPlatformPitch        = "platform_pitch"
	KeyPlatformRoll         = "platform_roll"
	KeySlantRange           = "slant_range"
	KeyTargetWidth          = "target_width"
	KeyHorizontalFOV        = "horizontal_fov"
	KeyVerticalFOV          = "vertical_fov"
	KeySensorLocation       = "sensor_location"
	KeyFrameCenter          = "frame_center"
	KeyCornerPoints         = "corner_points"
	KeyStartTimestamp       = "start_timestamp"
	KeySecurity             = "security"
	KeyMIISID               = "miis_id"
	KeyVNIIRS               = "vniirs"
	KeyGSD                  = "gsd"
)

// GeoPoint is a geodetic position. Alt is meaningful only when HasAlt is
// set; several source standards carry 2-D points.
type GeoPoint struct {
	Lat, Lon float64
	Alt      float64
	HasAlt   bool
}

// Quad is a four-corner image footprint in the ST 0601 corner order:
// upper-left, upper-right, lower-right, lower-left.
type Quad [4]GeoPoint

// Metadata is the projected frame-level bag. Values are native Go types:
// string, uint64, int64, float64, GeoPoint, Quad, or map[string]string for the
// merged security set.
type Metadata map[string]any

// source names one candidate timeline field for a scalar output.
type source struct {
	std catalog.Standard
	tag key.LDS
}

// scalarFields is the fixed correspondence table for fields that copy over
// directly. Candidates are tried in order; the first valid value wins.
var scalarFields = []struct {
	name    string
	sources []source
}{
	{KeyMissionID, []source{{catalog.ST0601, catalog.ST0601MissionID}}},
	{KeyPlatformDesignation, []source{
		{catalog.ST0601, catalog.ST0601PlatformDesignation},
		{catalog.ST0104, catalog.ST0104TagPlatformDesignation},
	}},
	{KeyPlatformTailNumber, []source{{catalog.ST0601, catalog.ST0601PlatformTailNumber}}},
	{KeyImageSourceSensor, []source{
		{catalog.ST0601, catalog.ST0601ImageSourceSensor},
		{catalog.ST0104, catalog.ST0104TagImageSourceSensor},
	}},
	{KeyImageCoordinateSystem, []source{{catalog.ST0601, catalog.ST0601ImageCoordinateSystem}}},
	{KeyPlatformHeading, []source{{catalog.ST0601, catalog.ST0601PlatformHeadingAngle}}},
	{KeyPlatformPitch, []source{{catalog.ST0601, catalog.ST0601PlatformPitchAngle}}},
	{KeyPlatformRoll, []source{{catalog.ST0601, catalog.ST0601PlatformRollAngle}}},
	{KeySlantRange, []source{{catalog.ST0601, catalog.ST0601SlantRange}}},
	{KeyTargetWidth, []source{{catalog.ST0601, catalog.ST0601TargetWidth}}},
	{KeyHorizontalFOV, []source{{catalog.ST0601, catalog.ST0601SensorHorizontalFOV}}},
	{KeyVerticalFOV, []source{{catalog.ST0601, catalog.ST0601SensorVerticalFOV}}},
}

// Project renders the timeline's state at t into a metadata bag.
func Project(tl *timeline.Timeline, t uint64) Metadata {
	md := Metadata{}

	for _, f := range scalarFields {
		for _, s := range f.sources {
			v := tl.AtIndexed(s.std, s.tag, 0, t)
			if !v.Valid() {
				continue
			}
			if put(md, f.name, v) {
				break
			}
		}
	}

	if p, ok := sensorLocation(tl, t); ok {
		md[KeySensorLocation] = p
	}
	center, hasCenter := frameCenter(tl, t)
	if hasCenter {
		md[KeyFrameCenter] = center
	}
	if q, ok := cornerPoints(tl, t, center, hasCenter); ok {
		md[KeyCornerPoints] = q
	}
	if ts, ok := startTimestamp(tl, t); ok {
		md[KeyStartTimestamp] = ts
	}
	if sec := securityFields(tl, t); len(sec) > 0 {
		md[KeySecurity] = sec
	}
	if id, ok := miisID(tl, t); ok {
		md[KeyMIISID] = id
	}
	projectMetrics(tl, t, md)

	return md
}

// put stores v under name using its native Go representation, reporting
// whether anything was stored.
func put(md Metadata, name string, v klv.Value) bool {
	switch v.Kind() {
	case klv.KindUint:
		u, _ := v.Uint()
		md[name] = u
	case klv.KindInt:
		i, _ := v.Int()
		md[name] = i
	case klv.KindFloat:
		f, _ := v.Float()
		md[name] = f
	case klv.KindString:
		s, _ := v.Str()
		md[name] = s
	case klv.KindEnum:
		e, _ := v.Enum()
		md[name] = e.Name
	default:
		return false
	}

	return true
}

// floatAt returns the float value of (std, tag, 0) at t, if one is in
// effect.
func floatAt(tl *timeline.Timeline, std catalog.Standard, tag key.LDS, t uint64) (float64, bool) {
	v := tl.AtIndexed(std, tag, 0, t)
	if f, ok := v.Float(); ok {
		return f, true
	}
	if u, ok := v.Uint(); ok {
		return float64(u), true
	}
	if i, ok := v.Int(); ok {
		return float64(i), true
	}

	return 0, false
}

// sensorLocation assembles the sensor's geographic point, preferring the ST
// 0601 full-precision fields over the ST 0104 doubles.
func sensorLocation(tl *timeline.Timeline, t uint64) (GeoPoint, bool) {
	candidates := []struct {
		std           catalog.Standard
		lat, lon, alt key.LDS
	}{
		{catalog.ST0601, catalog.ST0601SensorLatitude, catalog.ST0601SensorLongitude, catalog.ST0601SensorTrueAltitude},
		{catalog.ST0104, catalog.ST0104TagSensorLatitude, catalog.ST0104TagSensorLongitude, catalog.ST0104TagSensorTrueAltitude},
	}
	for _, c := range candidates {
		lat, okLat := floatAt(tl, c.std, c.lat, t)
		lon, okLon := floatAt(tl, c.std, c.lon, t)
		if !okLat || !okLon {
			continue
		}
		p := GeoPoint{Lat: lat, Lon: lon}
		if alt, ok := floatAt(tl, c.std, c.alt, t); ok {
			p.Alt, p.HasAlt = alt, true
		}

		return p, true
	}

	return GeoPoint{}, false
}

// frameCenter assembles the frame center point with the same preference
// order as sensorLocation.
func frameCenter(tl *timeline.Timeline, t uint64) (GeoPoint, bool) {
	lat, okLat := floatAt(tl, catalog.ST0601, catalog.ST0601FrameCenterLatitude, t)
	lon, okLon := floatAt(tl, catalog.ST0601, catalog.ST0601FrameCenterLongitude, t)
	if okLat && okLon {
		p := GeoPoint{Lat: lat, Lon: lon}
		if alt, ok := floatAt(tl, catalog.ST0601, catalog.ST0601FrameCenterElevation, t); ok {
			p.Alt, p.HasAlt = alt, true
		}

		return p, true
	}

	lat, okLat = floatAt(tl, catalog.ST0104, catalog.ST0104TagFrameCenterLatitude, t)
	lon, okLon = floatAt(tl, catalog.ST0104, catalog.ST0104TagFrameCenterLongitude, t)
	if okLat && okLon {
		return GeoPoint{Lat: lat, Lon: lon}, true
	}

	return GeoPoint{}, false
}

// cornerPoints assembles the image footprint quadrilateral: the ST 0601
// full corner points when present, otherwise the offset corners added to
// the frame center when the direct corners are absent.
func cornerPoints(tl *timeline.Timeline, t uint64, center GeoPoint, hasCenter bool) (Quad, bool) {
	fullTags := [4][2]key.LDS{
		{catalog.ST0601FullCornerLatPoint1, catalog.ST0601FullCornerLonPoint1},
		{catalog.ST0601FullCornerLatPoint2, catalog.ST0601FullCornerLonPoint2},
		{catalog.ST0601FullCornerLatPoint3, catalog.ST0601FullCornerLonPoint3},
		{catalog.ST0601FullCornerLatPoint4, catalog.ST0601FullCornerLonPoint4},
	}

	var q Quad
	complete := true
	for i, tags := range fullTags {
		lat, okLat := floatAt(tl, catalog.ST0601, tags[0], t)
		lon, okLon := floatAt(tl, catalog.ST0601, tags[1], t)
		if !okLat || !okLon {
			complete = false

			break
		}
		q[i] = GeoPoint{Lat: lat, Lon: lon}
	}
	if complete {
		return q, true
	}

	if !hasCenter {
		return Quad{}, false
	}

	offsetTags := [4][2]key.LDS{
		{catalog.ST0601OffsetCornerLatPoint1, catalog.ST0601OffsetCornerLonPoint1},
		{catalog.ST0601OffsetCornerLatPoint2, catalog.ST0601OffsetCornerLonPoint2},
		{catalog.ST0601OffsetCornerLatPoint3, catalog.ST0601OffsetCornerLonPoint3},
		{catalog.ST0601OffsetCornerLatPoint4, catalog.ST0601OffsetCornerLonPoint4},
	}
	for i, tags := range offsetTags {
		dLat, okLat := floatAt(tl, catalog.ST0601, tags[0], t)
		dLon, okLon := floatAt(tl, catalog.ST0601, tags[1], t)
		if !okLat || !okLon {
			return Quad{}, false
		}
		q[i] = GeoPoint{Lat: center.Lat + dLat, Lon: center.Lon + dLon}
	}

	return q, true
}

// st0104DatetimeLayouts are the layouts ST 0104 start datetimes appear in.
var st0104DatetimeLayouts = []string{
	"20060102T150405",
	"20060102150405",
}

// startTimestamp parses the ST 0104 start datetime string into UNIX
// microseconds.
func startTimestamp(tl *timeline.Timeline, t uint64) (uint64, bool) {
	v := tl.AtIndexed(catalog.ST0104, catalog.ST0104TagStartDatetimeUTC, 0, t)
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "Z"))

	for _, layout := range st0104DatetimeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}

		return uint64(parsed.UnixMicro()), true
	}

	return 0, false
}

// securityFields merges ST 0102 fields from the top-level 0102 timeline and
// any 0102 set embedded in ST 0601. The top-level packet is
// the more authoritative source, so its fields overwrite the embedded ones.
func securityFields(tl *timeline.Timeline, t uint64) map[string]string {
	out := map[string]string{}
	lookup := catalog.ST0102Lookup()

	collect := func(ls *klv.LocalSet) {
		for _, e := range ls.Entries() {
			if !e.Val.Valid() {
				continue
			}
			trait := lookup.ByTag(e.Key)
			if trait.EnumName == "UNKNOWN" {
				continue
			}
			out[trait.EnumName] = e.Val.String()
		}
	}

	if v := tl.AtIndexed(catalog.ST0601, catalog.ST0601SecurityLocalSet, 0, t); v.Valid() {
		if ls, ok := v.LocalSet(); ok {
			collect(ls)
		}
	}
	for _, kd := range tl.FindAll(catalog.ST0102) {
		if v, ok := kd.Map.At(t); ok && v.Valid() {
			trait := lookup.ByTag(kd.Key.Tag)
			if trait.EnumName != "UNKNOWN" {
				out[trait.EnumName] = v.String()
			}
		}
	}

	return out
}

// miisID returns the MIIS identifier in effect at t, from the ST 1204
// packet timeline or the ST 0601 core-identifier tag.
func miisID(tl *timeline.Timeline, t uint64) (string, bool) {
	for _, v := range []klv.Value{
		tl.AtIndexed(catalog.ST1204, 0, 0, t),
		tl.AtIndexed(catalog.ST0601, catalog.ST0601MIISCoreIdentifier, 0, t),
	} {
		if rec, ok := v.Record(); ok {
			if id, ok := rec.(klv.MIISID); ok {
				return id.String(), true
			}
		}
	}

	return "", false
}

// metricNames maps supported ST 1108 metric names to their bag keys.
var metricNames = map[string]string{
	"VNIIRS": KeyVNIIRS,
	"GSD":    KeyGSD,
}

// projectMetrics selects, per supported metric name, the most recently
// computed valid metric at or before t, using the embedded metric time when
// present and the interval start otherwise.
func projectMetrics(tl *timeline.Timeline, t uint64, md Metadata) {
	best := map[string]uint64{}

	for _, kd := range tl.FindAllTagged(catalog.ST1108, catalog.ST1108MetricLocalSet) {
		for _, span := range kd.Map.Spans() {
			if span.Interval.Lo > t {
				break
			}
			ms, ok := span.Value.LocalSet()
			if !ok {
				continue
			}
			nameVal, ok := ms.Find(catalog.ST1108MetricName)
			if !ok {
				continue
			}
			name, _ := nameVal.Str()
			bagKey, supported := metricNames[strings.ToUpper(strings.TrimSpace(name))]
			if !supported {
				continue
			}
			valueVal, ok := ms.Find(catalog.ST1108MetricValue)
			if !ok {
				continue
			}
			value, ok := valueVal.Float()
			if !ok {
				continue
			}

			computed := span.Interval.Lo
			if mt, ok := ms.Find(catalog.ST1108MetricTime); ok {
				if u, ok := mt.Uint(); ok {
					computed = u
				}
			}
			if computed > t {
				continue
			}

			if prev, seen := best[bagKey]; !seen || computed >= prev {
				best[bagKey] = computed
				md[bagKey] = value
			}
		}
	}
}
