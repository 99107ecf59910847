package vital

import (
	"testing"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put0(tl *timeline.Timeline, std catalog.Standard, tag key.LDS, v klv.Value) {
	m := tl.InsertOrFindIndexed(std, tag, 0)
	m.Set(timeline.Interval{Lo: 0, Hi: 1_000_000}, v)
}

func TestProject_ScalarFields(t *testing.T) {
	tl := timeline.New()
	put0(tl, catalog.ST0601, catalog.ST0601MissionID, klv.NewString("M1"))
	put0(tl, catalog.ST0601, catalog.ST0601SlantRange, klv.NewFloat(1234.5))

	md := Project(tl, 500)
	assert.Equal(t, "M1", md[KeyMissionID])
	assert.Equal(t, 1234.5, md[KeySlantRange])
	_, hasFOV := md[KeyHorizontalFOV]
	assert.False(t, hasFOV, "absent fields stay out of the bag")
}

func TestProject_SensorLocationPrefersST0601(t *testing.T) {
	tl := timeline.New()
	put0(tl, catalog.ST0104, catalog.ST0104TagSensorLatitude, klv.NewFloat(10))
	put0(tl, catalog.ST0104, catalog.ST0104TagSensorLongitude, klv.NewFloat(20))
	put0(tl, catalog.ST0601, catalog.ST0601SensorLatitude, klv.NewFloat(33.5))
	put0(tl, catalog.ST0601, catalog.ST0601SensorLongitude, klv.NewFloat(44.25))
	put0(tl, catalog.ST0601, catalog.ST0601SensorTrueAltitude, klv.NewFloat(8000))

	md := Project(tl, 500)
	p, ok := md[KeySensorLocation].(GeoPoint)
	require.True(t, ok)
	assert.Equal(t, 33.5, p.Lat, "the full-precision 0601 variant wins")
	assert.Equal(t, 44.25, p.Lon)
	assert.True(t, p.HasAlt)
	assert.Equal(t, 8000.0, p.Alt)
}

func TestProject_SensorLocationFallsBackToST0104(t *testing.T) {
	tl := timeline.New()
	put0(tl, catalog.ST0104, catalog.ST0104TagSensorLatitude, klv.NewFloat(10))
	put0(tl, catalog.ST0104, catalog.ST0104TagSensorLongitude, klv.NewFloat(20))

	md := Project(tl, 500)
	p, ok := md[KeySensorLocation].(GeoPoint)
	require.True(t, ok)
	assert.Equal(t, 10.0, p.Lat)
	assert.False(t, p.HasAlt)
}

func TestProject_FullCornersPreferred(t *testing.T) {
	tl := timeline.New()
	full := [][2]key.LDS{
		{catalog.ST0601FullCornerLatPoint1, catalog.ST0601FullCornerLonPoint1},
		{catalog.ST0601FullCornerLatPoint2, catalog.ST0601FullCornerLonPoint2},
		{catalog.ST0601FullCornerLatPoint3, catalog.ST0601FullCornerLonPoint3},
		{catalog.ST0601FullCornerLatPoint4, catalog.ST0601FullCornerLonPoint4},
	}
	for i, tags := range full {
		put0(tl, catalog.ST0601, tags[0], klv.NewFloat(float64(10+i)))
		put0(tl, catalog.ST0601, tags[1], klv.NewFloat(float64(20+i)))
	}

	md := Project(tl, 500)
	q, ok := md[KeyCornerPoints].(Quad)
	require.True(t, ok)
	assert.Equal(t, 10.0, q[0].Lat)
	assert.Equal(t, 23.0, q[3].Lon)
}

func TestProject_CornersComputedFromOffsetsAndCenter(t *testing.T) {
	tl := timeline.New()
	put0(tl, catalog.ST0601, catalog.ST0601FrameCenterLatitude, klv.NewFloat(30))
	put0(tl, catalog.ST0601, catalog.ST0601FrameCenterLongitude, klv.NewFloat(40))

	offsets := [][2]key.LDS{
		{catalog.ST0601OffsetCornerLatPoint1, catalog.ST0601OffsetCornerLonPoint1},
		{catalog.ST0601OffsetCornerLatPoint2, catalog.ST0601OffsetCornerLonPoint2},
		{catalog.ST0601OffsetCornerLatPoint3, catalog.ST0601OffsetCornerLonPoint3},
		{catalog.ST0601OffsetCornerLatPoint4, catalog.ST0601OffsetCornerLonPoint4},
	}
	for _, tags := range offsets {
		put0(tl, catalog.ST0601, tags[0], klv.NewFloat(0.01))
		put0(tl, catalog.ST0601, tags[1], klv.NewFloat(-0.02))
	}

	md := Project(tl, 500)
	q, ok := md[KeyCornerPoints].(Quad)
	require.True(t, ok)
	assert.InDelta(t, 30.01, q[0].Lat, 1e-9)
	assert.InDelta(t, 39.98, q[0].Lon, 1e-9)

	center, ok := md[KeyFrameCenter].(GeoPoint)
	require.True(t, ok)
	assert.Equal(t, 30.0, center.Lat)
}

func TestProject_StartTimestampParsesST0104Datetime(t *testing.T) {
	tl := timeline.New()
	put0(tl, catalog.ST0104, catalog.ST0104TagStartDatetimeUTC, klv.NewString("20140630T120000"))

	md := Project(tl, 500)
	ts, ok := md[KeyStartTimestamp].(uint64)
	require.True(t, ok)
	// 2014-06-30T12:00:00Z in UNIX microseconds.
	assert.Equal(t, uint64(1404129600000000), ts)
}

func TestProject_SecurityMergesTopLevelAndEmbedded(t *testing.T) {
	tl := timeline.New()

	embedded := klv.NewLocalSetContainer()
	embedded.Add(catalog.ST0102SecurityClassification, klv.NewUint(1))
	embedded.Add(catalog.ST0102ClassifyingCountry, klv.NewString("//US"))
	put0(tl, catalog.ST0601, catalog.ST0601SecurityLocalSet, klv.NewLocalSet(embedded))

	// The top-level 0102 packet carries a different classification; it must
	// win over the embedded copy.
	put0(tl, catalog.ST0102, catalog.ST0102SecurityClassification, klv.NewUint(3))

	md := Project(tl, 500)
	sec, ok := md[KeySecurity].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "3", sec["SECURITY_CLASSIFICATION"])
	assert.Equal(t, "//US", sec["CLASSIFYING_COUNTRY"])
}

func TestProject_MetricsSelectMostRecent(t *testing.T) {
	tl := timeline.New()

	mkMetric := func(name string, value float64, computed uint64) klv.Value {
		ms := klv.NewLocalSetContainer()
		ms.Add(catalog.ST1108MetricName, klv.NewString(name))
		ms.Add(catalog.ST1108MetricTime, klv.NewUint(computed))
		ms.Add(catalog.ST1108MetricValue, klv.NewFloat(value))

		return klv.NewLocalSet(ms)
	}

	m0 := tl.InsertOrFindIndexed(catalog.ST1108, catalog.ST1108MetricLocalSet, 0)
	m0.Set(timeline.Interval{Lo: 0, Hi: 100}, mkMetric("VNIIRS", 4.0, 10))
	m0.Set(timeline.Interval{Lo: 100, Hi: 200}, mkMetric("VNIIRS", 4.5, 150))
	m1 := tl.InsertOrFindIndexed(catalog.ST1108, catalog.ST1108MetricLocalSet, 1)
	m1.Set(timeline.Interval{Lo: 0, Hi: 200}, mkMetric("GSD", 0.25, 50))

	md := Project(tl, 180)
	assert.Equal(t, 4.5, md[KeyVNIIRS], "the metric computed most recently wins")
	assert.Equal(t, 0.25, md[KeyGSD])

	md = Project(tl, 90)
	assert.Equal(t, 4.0, md[KeyVNIIRS], "the later metric is not yet computed at t=90")
}

func TestProject_MIISIDFromST1204(t *testing.T) {
	tl := timeline.New()
	var id klv.MIISID
	id[0], id[15] = 0xAB, 0x01
	m := tl.InsertOrFindIndexed(catalog.ST1204, 0, 0)
	m.Set(timeline.Interval{Lo: 0, Hi: 100}, klv.NewRecord(id))

	md := Project(tl, 50)
	s, ok := md[KeyMIISID].(string)
	require.True(t, ok)
	assert.Equal(t, id.String(), s)
}
