package timeline

import (
	"testing"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/klv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_InsertAssignsFreshIndices(t *testing.T) {
	tl := New()

	k1, _ := tl.Insert(catalog.ST0601, catalog.ST0601ControlCommand)
	k2, _ := tl.Insert(catalog.ST0601, catalog.ST0601ControlCommand)

	assert.Equal(t, uint64(0), k1.Index)
	assert.Equal(t, uint64(1), k2.Index)
}

func TestTimeline_FindSingleInstance(t *testing.T) {
	tl := New()
	_, m := tl.InsertOrFind(catalog.ST0601, catalog.ST0601VersionNumber)
	m.Set(Interval{Lo: 0, Hi: 10}, klv.NewUint(17))

	_, found, err := tl.Find(catalog.ST0601, catalog.ST0601VersionNumber)
	require.NoError(t, err)
	v, ok := found.At(5)
	require.True(t, ok)
	got, _ := v.Uint()
	assert.Equal(t, uint64(17), got)
}

func TestTimeline_FindFailsWhenAmbiguous(t *testing.T) {
	tl := New()
	tl.Insert(catalog.ST0601, catalog.ST0601WaypointList)
	tl.Insert(catalog.ST0601, catalog.ST0601WaypointList)

	_, _, err := tl.Find(catalog.ST0601, catalog.ST0601WaypointList)
	require.ErrorIs(t, err, errs.ErrAmbiguous)
}

func TestTimeline_FindFailsWhenAbsent(t *testing.T) {
	tl := New()
	_, _, err := tl.Find(catalog.ST0601, catalog.ST0601VersionNumber)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTimeline_AtReturnsEmptyOutsideIntervals(t *testing.T) {
	tl := New()
	_, m := tl.InsertOrFind(catalog.ST0601, catalog.ST0601VersionNumber)
	m.Set(Interval{Lo: 100, Hi: 200}, klv.NewUint(17))

	v, err := tl.At(catalog.ST0601, catalog.ST0601VersionNumber, 50)
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestTimeline_AllAtSpansIndices(t *testing.T) {
	tl := New()
	m0 := tl.InsertOrFindIndexed(catalog.ST0601, catalog.ST0601ControlCommand, 3)
	m1 := tl.InsertOrFindIndexed(catalog.ST0601, catalog.ST0601ControlCommand, 7)
	m0.Set(Interval{Lo: 0, Hi: 100}, klv.NewUint(1))
	m1.Set(Interval{Lo: 0, Hi: 100}, klv.NewUint(2))

	vs := tl.AllAt(catalog.ST0601, catalog.ST0601ControlCommand, 50)
	require.Len(t, vs, 2)
}

func TestTimeline_FindAllFiltersByStandard(t *testing.T) {
	tl := New()
	tl.InsertOrFind(catalog.ST0601, catalog.ST0601VersionNumber)
	tl.InsertOrFind(catalog.ST0903, catalog.ST0903Version)

	assert.Len(t, tl.FindAll(catalog.ST0601), 1)
	assert.Len(t, tl.FindAll(catalog.ST0903), 1)
	assert.Empty(t, tl.FindAll(catalog.ST1108))
}

func TestTimeline_InsertOrFindIndexedReusesExisting(t *testing.T) {
	tl := New()
	m1 := tl.InsertOrFindIndexed(catalog.ST1108, catalog.ST1108MetricLocalSet, 4)
	m2 := tl.InsertOrFindIndexed(catalog.ST1108, catalog.ST1108MetricLocalSet, 4)

	assert.Same(t, m1, m2)
}

func TestTimeline_Equal(t *testing.T) {
	build := func() *Timeline {
		tl := New()
		_, m := tl.InsertOrFind(catalog.ST0601, catalog.ST0601VersionNumber)
		m.Set(Interval{Lo: 0, Hi: 30}, klv.NewUint(17))

		return tl
	}

	a, b := build(), build()
	assert.True(t, a.Equal(b))

	_, m := b.InsertOrFind(catalog.ST0601, catalog.ST0601MissionID)
	m.Set(Interval{Lo: 0, Hi: 30}, klv.NewString("M1"))
	assert.False(t, a.Equal(b))
}
