package klv

import (
	"sort"
	"strings"

	"github.com/kwiver/goklv/key"
)

// setEntry is one (key, value) pair stored in a Set. A Set is a multimap:
// the same key may appear any number of times, as repeated tags are legal
// in both local and universal sets.
type setEntry[K any] struct {
	key K
	val Value
}

// Set is a generic ordered multimap from K to Value, backing both LocalSet
// (K = key.LDS) and UniversalSet (K = key.UDS). Insertion order among
// entries sharing a key is preserved; FullySorted additionally exposes a
// key-then-value total order for the stream format and for Compare.
//
// Go has no way to ask a type parameter for a three-way comparison
// method, so Set takes one explicitly at construction.
type Set[K any] struct {
	cmp     func(a, b K) int
	entries []setEntry[K]
}

func newSet[K any](cmp func(a, b K) int) *Set[K] {
	return &Set[K]{cmp: cmp}
}

// Add appends a (key, value) pair.
func (s *Set[K]) Add(k K, v Value) {
	s.entries = append(s.entries, setEntry[K]{key: k, val: v})
}

// Erase removes every entry for k and reports how many were removed.
func (s *Set[K]) Erase(k K) int {
	out := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if s.cmp(e.key, k) == 0 {
			removed++

			continue
		}
		out = append(out, e)
	}
	s.entries = out

	return removed
}

// Clear removes every entry.
func (s *Set[K]) Clear() { s.entries = nil }

// Len returns the total number of entries, across all keys.
func (s *Set[K]) Len() int { return len(s.entries) }

// Count returns the number of entries stored under k.
func (s *Set[K]) Count(k K) int {
	n := 0
	for _, e := range s.entries {
		if s.cmp(e.key, k) == 0 {
			n++
		}
	}

	return n
}

// Find returns the first entry stored under k, in insertion order.
func (s *Set[K]) Find(k K) (Value, bool) {
	for _, e := range s.entries {
		if s.cmp(e.key, k) == 0 {
			return e.val, true
		}
	}

	return Value{}, false
}

// At returns the index'th entry (0-based, in insertion order) stored under
// k.
func (s *Set[K]) At(k K, index int) (Value, bool) {
	i := 0
	for _, e := range s.entries {
		if s.cmp(e.key, k) != 0 {
			continue
		}
		if i == index {
			return e.val, true
		}
		i++
	}

	return Value{}, false
}

// AllAt returns every value stored under k, in insertion order.
func (s *Set[K]) AllAt(k K) []Value {
	var out []Value
	for _, e := range s.entries {
		if s.cmp(e.key, k) == 0 {
			out = append(out, e.val)
		}
	}

	return out
}

// Entries returns every (key, value) pair in insertion order, unlike
// FullySorted. Writers use this to preserve the order a set was built in
// (e.g. by a reader) rather than the canonical sorted order equality/Compare
// use.
func (s *Set[K]) Entries() []KV[K] {
	out := make([]KV[K], len(s.entries))
	for i, e := range s.entries {
		out[i] = KV[K]{Key: e.key, Val: e.val}
	}

	return out
}

// Keys returns the set of distinct keys present, each once, in first-seen
// order.
func (s *Set[K]) Keys() []K {
	var out []K
	for _, e := range s.entries {
		dup := false
		for _, k := range out {
			if s.cmp(k, e.key) == 0 {
				dup = true

				break
			}
		}
		if !dup {
			out = append(out, e.key)
		}
	}

	return out
}

// KV is one (key, value) pair as returned by FullySorted.
type KV[K any] struct {
	Key K
	Val Value
}

// FullySorted returns every entry ordered first by key, then by value.
func (s *Set[K]) FullySorted() []KV[K] {
	out := make([]KV[K], len(s.entries))
	for i, e := range s.entries {
		out[i] = KV[K]{Key: e.key, Val: e.val}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := s.cmp(out[i].Key, out[j].Key); c != 0 {
			return c < 0
		}

		return out[i].Val.Compare(out[j].Val) < 0
	})

	return out
}

// compareTo orders two sets size-major: a smaller set always sorts before a
// larger one, and equal-sized sets compare lexicographically over their
// FullySorted entries.
func (s *Set[K]) compareTo(other *Set[K], keyCompare func(a, b K) int) int {
	a := s.FullySorted()
	b := other.FullySorted()
	if c := compareInt64(int64(len(a)), int64(len(b))); c != 0 {
		return c
	}
	for i := range a {
		if c := keyCompare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := a[i].Val.Compare(b[i].Val); c != 0 {
			return c
		}
	}

	return 0
}

// LocalSet is a multimap of LDS tag to Value.
type LocalSet struct {
	*Set[key.LDS]
}

// NewLocalSetContainer returns an empty LocalSet.
func NewLocalSetContainer() *LocalSet {
	return &LocalSet{Set: newSet[key.LDS](func(a, b key.LDS) int { return compareUint64(uint64(a), uint64(b)) })}
}

// Equal reports whether ls and other hold the same entries under the total
// order defined by FullySorted.
func (ls *LocalSet) Equal(other *LocalSet) bool { return ls.Compare(other) == 0 }

// Compare orders ls against other.
func (ls *LocalSet) Compare(other *LocalSet) int {
	return ls.compareTo(other.Set, func(a, b key.LDS) int { return compareUint64(uint64(a), uint64(b)) })
}

// String renders ls as "{ key: value, ... }", sorted by key.
func (ls *LocalSet) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, kv := range ls.FullySorted() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(keyString(uint64(kv.Key)))
		sb.WriteString(": ")
		sb.WriteString(kv.Val.String())
	}
	sb.WriteString(" }")

	return sb.String()
}

// UniversalSet is a multimap of UDS key to Value.
type UniversalSet struct {
	*Set[key.UDS]
}

// NewUniversalSetContainer returns an empty UniversalSet.
func NewUniversalSetContainer() *UniversalSet {
	return &UniversalSet{Set: newSet[key.UDS](func(a, b key.UDS) int { return a.Compare(b) })}
}

// Equal reports whether us and other hold the same entries.
func (us *UniversalSet) Equal(other *UniversalSet) bool { return us.Compare(other) == 0 }

// Compare orders us against other.
func (us *UniversalSet) Compare(other *UniversalSet) int {
	return us.compareTo(other.Set, func(a, b key.UDS) int { return a.Compare(b) })
}

// String renders us as "{ key: value, ... }", sorted by key.
func (us *UniversalSet) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, kv := range us.FullySorted() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(kv.Key.String())
		sb.WriteString(": ")
		sb.WriteString(kv.Val.String())
	}
	sb.WriteString(" }")

	return sb.String()
}

func keyString(tag uint64) string {
	return "tag" + itoa(tag)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}

	return string(buf[i:])
}
