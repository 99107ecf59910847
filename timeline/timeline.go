package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// Key is the composite (standard, tag, index) identity of one sub-timeline
//. Index disambiguates concurrent instances of the same
// (standard, tag): either an externally meaningful id (a control command's
// id) or an arbitrary integer assigned on first insertion.
type Key struct {
	Standard catalog.Standard
	Tag      key.LDS
	Index    uint64
}

// Compare orders keys lexicographically over (standard, tag, index).
func (k Key) Compare(other Key) int {
	if k.Standard != other.Standard {
		if k.Standard < other.Standard {
			return -1
		}

		return 1
	}
	if k.Tag != other.Tag {
		if k.Tag < other.Tag {
			return -1
		}

		return 1
	}
	if k.Index != other.Index {
		if k.Index < other.Index {
			return -1
		}

		return 1
	}

	return 0
}

func (k Key) String() string {
	return fmt.Sprintf("%s/tag%d/%d", k.Standard, uint64(k.Tag), k.Index)
}

type entry struct {
	key Key
	m   *IntervalMap
}

// Timeline maps composite keys to interval maps. Entries
// are kept sorted by key so range queries over a standard or a
// (standard, tag) pair are contiguous scans.
//
// A Timeline is shared by reference between its owning caller, a demuxer
// and/or a muxer, all driven from one goroutine.
type Timeline struct {
	entries []entry
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// search returns the position of the first entry whose key is >= k.
func (tl *Timeline) search(k Key) int {
	return sort.Search(len(tl.entries), func(i int) bool { return tl.entries[i].key.Compare(k) >= 0 })
}

// Find returns the single sub-timeline for (std, tag). It fails with
// errs.ErrNotFound when none exists and errs.ErrAmbiguous when more than one
// index is live.
func (tl *Timeline) Find(std catalog.Standard, tag key.LDS) (Key, *IntervalMap, error) {
	matches := tl.FindAllTagged(std, tag)
	switch len(matches) {
	case 0:
		return Key{}, nil, fmt.Errorf("%w: no sub-timeline for %s tag %d", errs.ErrNotFound, std, tag)
	case 1:
		return matches[0].Key, matches[0].Map, nil
	default:
		return Key{}, nil, fmt.Errorf("%w: %d sub-timelines for %s tag %d", errs.ErrAmbiguous, len(matches), std, tag)
	}
}

// FindIndexed returns the sub-timeline for the exact composite key, if
// present.
func (tl *Timeline) FindIndexed(std catalog.Standard, tag key.LDS, index uint64) (*IntervalMap, bool) {
	k := Key{Standard: std, Tag: tag, Index: index}
	i := tl.search(k)
	if i < len(tl.entries) && tl.entries[i].key == k {
		return tl.entries[i].m, true
	}

	return nil, false
}

// Keyed pairs a composite key with its interval map, for range queries.
type Keyed struct {
	Key Key
	Map *IntervalMap
}

// FindAll returns every sub-timeline belonging to std, in key order.
func (tl *Timeline) FindAll(std catalog.Standard) []Keyed {
	var out []Keyed
	for i := tl.search(Key{Standard: std}); i < len(tl.entries); i++ {
		if tl.entries[i].key.Standard != std {
			break
		}
		out = append(out, Keyed{Key: tl.entries[i].key, Map: tl.entries[i].m})
	}

	return out
}

// FindAllTagged returns every sub-timeline for (std, tag), across all
// indices, in index order.
func (tl *Timeline) FindAllTagged(std catalog.Standard, tag key.LDS) []Keyed {
	var out []Keyed
	for i := tl.search(Key{Standard: std, Tag: tag}); i < len(tl.entries); i++ {
		e := tl.entries[i]
		if e.key.Standard != std || e.key.Tag != tag {
			break
		}
		out = append(out, Keyed{Key: e.key, Map: e.m})
	}

	return out
}

// At returns the value in effect at t for the single instance of (std, tag).
// The empty value is returned when no sub-timeline exists or none of its
// intervals contains t; ambiguity (more than one index) is an error.
func (tl *Timeline) At(std catalog.Standard, tag key.LDS, t uint64) (klv.Value, error) {
	matches := tl.FindAllTagged(std, tag)
	switch len(matches) {
	case 0:
		return klv.Value{}, nil
	case 1:
		v, _ := matches[0].Map.At(t)

		return v, nil
	default:
		return klv.Value{}, fmt.Errorf("%w: %d sub-timelines for %s tag %d", errs.ErrAmbiguous, len(matches), std, tag)
	}
}

// AtIndexed returns the value in effect at t for the exact composite key,
// else the empty value.
func (tl *Timeline) AtIndexed(std catalog.Standard, tag key.LDS, index uint64, t uint64) klv.Value {
	m, ok := tl.FindIndexed(std, tag, index)
	if !ok {
		return klv.Value{}
	}
	v, _ := m.At(t)

	return v
}

// AllAt returns every value in effect at t for (std, tag), across all
// indices, in index order.
func (tl *Timeline) AllAt(std catalog.Standard, tag key.LDS, t uint64) []klv.Value {
	var out []klv.Value
	for _, kd := range tl.FindAllTagged(std, tag) {
		if v, ok := kd.Map.At(t); ok {
			out = append(out, v)
		}
	}

	return out
}

// Insert creates a new sub-timeline for (std, tag) under a previously unused
// index: one greater than the current maximum, falling back to a linear scan
// when that would overflow.
func (tl *Timeline) Insert(std catalog.Standard, tag key.LDS) (Key, *IntervalMap) {
	matches := tl.FindAllTagged(std, tag)
	index := uint64(0)
	if len(matches) > 0 {
		maxIdx := matches[len(matches)-1].Key.Index
		if maxIdx == math.MaxUint64 {
			used := make(map[uint64]bool, len(matches))
			for _, kd := range matches {
				used[kd.Key.Index] = true
			}
			for used[index] {
				index++
			}
		} else {
			index = maxIdx + 1
		}
	}

	return tl.insertAt(Key{Standard: std, Tag: tag, Index: index})
}

// InsertOrFind returns the single sub-timeline for (std, tag), creating
// index 0 when none exists. More than one live index is a caller logic
// error; the lowest-indexed instance is returned.
func (tl *Timeline) InsertOrFind(std catalog.Standard, tag key.LDS) (Key, *IntervalMap) {
	matches := tl.FindAllTagged(std, tag)
	if len(matches) > 0 {
		return matches[0].Key, matches[0].Map
	}

	return tl.insertAt(Key{Standard: std, Tag: tag, Index: 0})
}

// InsertOrFindIndexed returns the sub-timeline for the exact composite key,
// creating it when absent.
func (tl *Timeline) InsertOrFindIndexed(std catalog.Standard, tag key.LDS, index uint64) *IntervalMap {
	if m, ok := tl.FindIndexed(std, tag, index); ok {
		return m
	}
	_, m := tl.insertAt(Key{Standard: std, Tag: tag, Index: index})

	return m
}

func (tl *Timeline) insertAt(k Key) (Key, *IntervalMap) {
	m := &IntervalMap{}
	i := tl.search(k)
	tl.entries = append(tl.entries, entry{})
	copy(tl.entries[i+1:], tl.entries[i:])
	tl.entries[i] = entry{key: k, m: m}

	return k, m
}

// Keys returns every live composite key, in key order.
func (tl *Timeline) Keys() []Key {
	out := make([]Key, len(tl.entries))
	for i, e := range tl.entries {
		out[i] = e.key
	}

	return out
}

// Equal reports whether tl and other hold the same keys with the same spans
// and values. It backs the demux/mux inverse property tests.
func (tl *Timeline) Equal(other *Timeline) bool {
	if len(tl.entries) != len(other.entries) {
		return false
	}
	for i := range tl.entries {
		a, b := tl.entries[i], other.entries[i]
		if a.key != b.key || len(a.m.spans) != len(b.m.spans) {
			return false
		}
		for j := range a.m.spans {
			sa, sb := a.m.spans[j], b.m.spans[j]
			if sa.Interval != sb.Interval || !sa.Value.Equal(sb.Value) {
				return false
			}
		}
	}

	return true
}
