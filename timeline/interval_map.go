// Package timeline implements the interval-map timeline: a map from composite (standard, tag, index) keys to an interval map over
// uint64 microsecond timestamps, holding the value of every tracked tag over
// time. The demuxer fills it from incoming packets and the muxer walks it to
// reconstitute a packet stream.
package timeline

import (
	"fmt"
	"sort"

	"github.com/kwiver/goklv/klv"
)

// Interval is a half-open time span [Lo, Hi) in microseconds.
type Interval struct {
	Lo, Hi uint64
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t uint64) bool { return t >= iv.Lo && t < iv.Hi }

// Overlaps reports whether iv and other share at least one instant.
func (iv Interval) Overlaps(other Interval) bool { return iv.Lo < other.Hi && other.Lo < iv.Hi }

// Empty reports whether the interval spans no time at all.
func (iv Interval) Empty() bool { return iv.Hi <= iv.Lo }

func (iv Interval) String() string { return fmt.Sprintf("[%d, %d)", iv.Lo, iv.Hi) }

// Span is one (interval, value) entry of an IntervalMap.
type Span struct {
	Interval Interval
	Value    klv.Value
}

// IntervalMap stores values over half-open, non-overlapping intervals of
// time. Set overwrites any
// overlapped portion of existing entries, and adjacent intervals holding
// equal values are coalesced automatically; adjacent intervals holding
// different values stay separate.
type IntervalMap struct {
	spans []Span // sorted by Interval.Lo, pairwise disjoint
}

// Len returns the number of stored intervals.
func (m *IntervalMap) Len() int { return len(m.spans) }

// Spans returns every stored (interval, value) entry in time order. The
// returned slice is the map's backing storage; callers must not modify it.
func (m *IntervalMap) Spans() []Span { return m.spans }

// Set records v over iv, overwriting whatever portion of existing entries iv
// overlaps. Setting an empty interval is a no-op.
func (m *IntervalMap) Set(iv Interval, v klv.Value) {
	if iv.Empty() {
		return
	}

	m.Erase(iv)

	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].Interval.Lo >= iv.Lo })
	m.spans = append(m.spans, Span{})
	copy(m.spans[i+1:], m.spans[i:])
	m.spans[i] = Span{Interval: iv, Value: v}

	m.coalesce(i)
}

// Erase removes iv from the map, trimming entries that straddle its
// boundaries.
func (m *IntervalMap) Erase(iv Interval) {
	if iv.Empty() {
		return
	}

	var out []Span
	for _, s := range m.spans {
		if !s.Interval.Overlaps(iv) {
			out = append(out, s)

			continue
		}
		if s.Interval.Lo < iv.Lo {
			out = append(out, Span{Interval: Interval{Lo: s.Interval.Lo, Hi: iv.Lo}, Value: s.Value})
		}
		if s.Interval.Hi > iv.Hi {
			out = append(out, Span{Interval: Interval{Lo: iv.Hi, Hi: s.Interval.Hi}, Value: s.Value})
		}
	}
	m.spans = out
}

// coalesce merges the span at index i with its neighbors when they are
// adjacent and hold equal values ([a,b) + [b,c) with equal values becomes
// [a,c)).
func (m *IntervalMap) coalesce(i int) {
	if i > 0 {
		prev := m.spans[i-1]
		cur := m.spans[i]
		if prev.Interval.Hi == cur.Interval.Lo && prev.Value.Equal(cur.Value) {
			m.spans[i-1].Interval.Hi = cur.Interval.Hi
			m.spans = append(m.spans[:i], m.spans[i+1:]...)
			i--
		}
	}
	if i+1 < len(m.spans) {
		cur := m.spans[i]
		next := m.spans[i+1]
		if cur.Interval.Hi == next.Interval.Lo && cur.Value.Equal(next.Value) {
			m.spans[i].Interval.Hi = next.Interval.Hi
			m.spans = append(m.spans[:i+1], m.spans[i+2:]...)
		}
	}
}

// At returns the value in effect at t, if any.
func (m *IntervalMap) At(t uint64) (klv.Value, bool) {
	s, ok := m.Find(t)
	if !ok {
		return klv.Value{}, false
	}

	return s.Value, true
}

// Find returns the span containing t, if any.
func (m *IntervalMap) Find(t uint64) (Span, bool) {
	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].Interval.Hi > t })
	if i < len(m.spans) && m.spans[i].Interval.Contains(t) {
		return m.spans[i], true
	}

	return Span{}, false
}

// FindRange returns every span intersecting iv, in time order.
func (m *IntervalMap) FindRange(iv Interval) []Span {
	var out []Span
	for _, s := range m.spans {
		if s.Interval.Overlaps(iv) {
			out = append(out, s)
		}
	}

	return out
}
