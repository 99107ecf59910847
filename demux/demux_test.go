package demux

import (
	"testing"
	"time"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultDurMicros = uint64(30_000_000)

func st0601Packet(entries ...func(*klv.LocalSet)) klv.Packet {
	ls := klv.NewLocalSetContainer()
	for _, add := range entries {
		add(ls)
	}

	return klv.Packet{Key: catalog.ST0601Key, Value: klv.NewLocalSet(ls)}
}

func withTag(tag key.LDS, v klv.Value) func(*klv.LocalSet) {
	return func(ls *klv.LocalSet) { ls.Add(tag, v) }
}

func withTimestamp(t uint64) func(*klv.LocalSet) {
	return withTag(catalog.ST0601PrecisionTimestamp, klv.NewUint(t).WithLengthHint(8))
}

func newDemuxer(t *testing.T, tl *timeline.Timeline, opts ...Option) *Demuxer {
	t.Helper()

	d, err := New(tl, opts...)
	require.NoError(t, err)

	return d
}

// A minimum 0601 packet lands its
// timestamp and version number in the timeline at the packet time.
func TestDemux_ST0601MinimumPacket(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	ts := uint64(1_000_000_000)
	d.DemuxPacket(st0601Packet(
		withTimestamp(ts),
		withTag(catalog.ST0601VersionNumber, klv.NewUint(17).WithLengthHint(1)),
	))

	got := tl.AtIndexed(catalog.ST0601, catalog.ST0601PrecisionTimestamp, 0, ts)
	u, ok := got.Uint()
	require.True(t, ok)
	assert.Equal(t, ts, u)

	got = tl.AtIndexed(catalog.ST0601, catalog.ST0601VersionNumber, 0, ts)
	u, ok = got.Uint()
	require.True(t, ok)
	assert.Equal(t, uint64(17), u)

	// Default-effective interval: in effect 30s, not beyond.
	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601VersionNumber, 0, ts+defaultDurMicros-1).Valid())
	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601VersionNumber, 0, ts+defaultDurMicros).Empty())
}

func TestDemux_OutOfOrderPacketDropped(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	d.DemuxPacket(st0601Packet(withTimestamp(2_000_000)))
	before := tl.Keys()

	d.DemuxPacket(st0601Packet(
		withTimestamp(1_000_000),
		withTag(catalog.ST0601MissionID, klv.NewString("LATE")),
	))

	assert.Equal(t, before, tl.Keys(), "timeline unchanged by the late packet")
	assert.Equal(t, uint64(2_000_000), d.LastTimestamp())
}

func TestDemux_ChecksumNeverStored(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	d.DemuxPacket(st0601Packet(
		withTimestamp(1_000_000),
		withTag(catalog.ST0601Checksum, klv.NewUint(0xBEEF)),
	))

	_, ok := tl.FindIndexed(catalog.ST0601, catalog.ST0601Checksum, 0)
	assert.False(t, ok)
}

func TestDemux_PointEventStoredAtSingleMicrosecond(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	ts := uint64(5_000_000)
	d.DemuxPacket(st0601Packet(
		withTimestamp(ts),
		withTag(catalog.ST0601WeaponFired, klv.NewUint(1)),
	))

	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601WeaponFired, 0, ts).Valid())
	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601WeaponFired, 0, ts+1).Empty())
}

func TestDemux_ControlCommandIndexedByID(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	ts := uint64(1_000_000)
	d.DemuxPacket(st0601Packet(
		withTimestamp(ts),
		withTag(catalog.ST0601ControlCommand, klv.NewRecord(klv.ControlCommand{ID: 7, Command: "orbit"})),
		withTag(catalog.ST0601ControlCommand, klv.NewRecord(klv.ControlCommand{ID: 9, Command: "rtb"})),
	))

	v7 := tl.AtIndexed(catalog.ST0601, catalog.ST0601ControlCommand, 7, ts)
	rec, ok := v7.Record()
	require.True(t, ok)
	assert.Equal(t, uint64(7), rec.(klv.ControlCommand).ID)

	v9 := tl.AtIndexed(catalog.ST0601, catalog.ST0601ControlCommand, 9, ts)
	rec, ok = v9.Record()
	require.True(t, ok)
	assert.Equal(t, "rtb", rec.(klv.ControlCommand).Command)
}

// A single-instance tag that drops out of a later set is truncated to the
// inter-packet gap.
func TestDemux_ExplicitCancellation(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	t1 := uint64(1_000_000)
	t2 := uint64(3_000_000)

	d.DemuxPacket(st0601Packet(
		withTimestamp(t1),
		withTag(catalog.ST0601MissionID, klv.NewString("M1")),
	))
	d.DemuxPacket(st0601Packet(withTimestamp(t2)))

	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601MissionID, 0, t2-1).Valid())
	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601MissionID, 0, t2).Empty(),
		"interval truncated at the packet that omitted the tag")
}

func TestDemux_ConfigurableDefaultDuration(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl, WithDefaultDuration(2*time.Second))

	ts := uint64(1_000_000)
	d.DemuxPacket(st0601Packet(
		withTimestamp(ts),
		withTag(catalog.ST0601VersionNumber, klv.NewUint(17)),
	))

	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601VersionNumber, 0, ts+1_999_999).Valid())
	assert.True(t, tl.AtIndexed(catalog.ST0601, catalog.ST0601VersionNumber, 0, ts+2_000_000).Empty())
}

func TestDemux_ST0104UniversalSet(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	ts := uint64(4_000_000)
	us := klv.NewUniversalSetContainer()
	us.Add(catalog.ST0104UserDefinedTimestamp, klv.NewUint(ts).WithLengthHint(8))
	us.Add(catalog.ST0104PlatformDesignation, klv.NewString("PRED"))
	d.DemuxPacket(klv.Packet{Key: catalog.ST0104Key, Value: klv.NewUniversalSet(us)})

	v := tl.AtIndexed(catalog.ST0104, catalog.ST0104TagPlatformDesignation, 0, ts)
	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, "PRED", s)
}

func TestDemux_UnknownPacketStoredAsList(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	// Advance the clock with a known packet first.
	d.DemuxPacket(st0601Packet(withTimestamp(7_000_000)))

	unknownKey, err := key.ParseUDS([]byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01, 0x7F, 0x7F, 0x7F, 0x7F, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	p1 := klv.Packet{Key: unknownKey, Value: klv.NewBlob([]byte{1, 2})}
	p2 := klv.Packet{Key: unknownKey, Value: klv.NewBlob([]byte{3})}
	d.DemuxPacket(p1)
	d.DemuxPacket(p2)

	kds := tl.FindAll(catalog.StandardUnknown)
	require.Len(t, kds, 1, "one sub-timeline per unknown key")

	v, ok := kds[0].Map.At(7_000_000)
	require.True(t, ok)
	rec, ok := v.Record()
	require.True(t, ok)
	list, ok := rec.(klv.PacketList)
	require.True(t, ok)
	assert.Len(t, list, 2, "second packet at the same instant appends")
}

func TestDemux_ST1108MetricInterval(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	d.DemuxPacket(st1108Packet(1000, 100, "VNIIRS", 4.5))

	kds := tl.FindAllTagged(catalog.ST1108, catalog.ST1108MetricLocalSet)
	require.Len(t, kds, 1)

	v, ok := kds[0].Map.At(1050)
	require.True(t, ok)
	ms, ok := v.LocalSet()
	require.True(t, ok)
	name, _ := ms.Find(catalog.ST1108MetricName)
	s, _ := name.Str()
	assert.Equal(t, "VNIIRS", s)

	_, ok = kds[0].Map.At(1100)
	assert.False(t, ok, "interval ends at timestamp + offset")

	// Parent fields replicate under the same index.
	ap := tl.AtIndexed(catalog.ST1108, catalog.ST1108AssessmentPoint, kds[0].Key.Index, 1050)
	assert.True(t, ap.Valid())
}

func TestDemux_ST1108SameMetricReusesIndex(t *testing.T) {
	tl := timeline.New()
	d := newDemuxer(t, tl)

	d.DemuxPacket(st1108Packet(1000, 100, "VNIIRS", 4.5))
	d.DemuxPacket(st1108Packet(1100, 100, "VNIIRS", 4.5))
	d.DemuxPacket(st1108Packet(1200, 100, "GSD", 0.4))

	kds := tl.FindAllTagged(catalog.ST1108, catalog.ST1108MetricLocalSet)
	assert.Len(t, kds, 2, "equal metric identity shares an index; a new name allocates one")
}

// st1108Packet builds a quality packet holding one metric local set.
func st1108Packet(start, length uint32, name string, value float64) klv.Packet {
	metric := klv.NewLocalSetContainer()
	metric.Add(catalog.ST1108MetricName, klv.NewString(name))
	metric.Add(catalog.ST1108MetricVersion, klv.NewString("2"))
	metric.Add(catalog.ST1108MetricValue, klv.NewFloat(value))

	ls := klv.NewLocalSetContainer()
	ls.Add(catalog.ST1108AssessmentPoint, klv.NewEnum(klv.EnumValue{Raw: 2, Name: "OUTPUT_PRODUCT"}))
	ls.Add(catalog.ST1108MetricPeriodPack, klv.NewRecord(klv.MetricPeriodPack{Offset: start, Length: length}))
	ls.Add(catalog.ST1108MetricLocalSet, klv.NewLocalSet(metric))

	return klv.Packet{Key: catalog.ST1108Key, Value: klv.NewLocalSet(ls)}
}
