package klv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSet_EqualityIgnoresInsertionOrder(t *testing.T) {
	a := NewLocalSetContainer()
	a.Add(1, NewUint(10))
	a.Add(2, NewString("x"))
	a.Add(2, NewString("y"))

	b := NewLocalSetContainer()
	b.Add(2, NewString("y"))
	b.Add(1, NewUint(10))
	b.Add(2, NewString("x"))

	assert.True(t, a.Equal(b))
}

func TestLocalSet_EqualityIsMultisetEquality(t *testing.T) {
	a := NewLocalSetContainer()
	a.Add(2, NewString("x"))
	a.Add(2, NewString("x"))

	b := NewLocalSetContainer()
	b.Add(2, NewString("x"))

	assert.False(t, a.Equal(b))
}

func TestSet_CountFindAllAt(t *testing.T) {
	s := NewLocalSetContainer()
	s.Add(7, NewUint(1))
	s.Add(7, NewUint(2))
	s.Add(9, NewUint(3))

	assert.Equal(t, 2, s.Count(7))
	assert.Equal(t, 1, s.Count(9))
	assert.Zero(t, s.Count(8))

	v, ok := s.Find(9)
	require.True(t, ok)
	got, _ := v.Uint()
	assert.Equal(t, uint64(3), got)

	all := s.AllAt(7)
	require.Len(t, all, 2)
	first, _ := all[0].Uint()
	second, _ := all[1].Uint()
	assert.Equal(t, uint64(1), first, "insertion order retained")
	assert.Equal(t, uint64(2), second)
}

func TestSet_EraseRemovesEveryEntry(t *testing.T) {
	s := NewLocalSetContainer()
	s.Add(7, NewUint(1))
	s.Add(7, NewUint(2))
	s.Add(9, NewUint(3))

	assert.Equal(t, 2, s.Erase(7))
	assert.Zero(t, s.Count(7))
	assert.Equal(t, 1, s.Len())
}

func TestSet_FullySortedOrdersByKeyThenValue(t *testing.T) {
	s := NewLocalSetContainer()
	s.Add(9, NewUint(2))
	s.Add(7, NewUint(5))
	s.Add(9, NewUint(1))

	kvs := s.FullySorted()
	require.Len(t, kvs, 3)
	assert.Equal(t, uint64(7), uint64(kvs[0].Key))
	v1, _ := kvs[1].Val.Uint()
	v2, _ := kvs[2].Val.Uint()
	assert.Equal(t, uint64(1), v1)
	assert.Equal(t, uint64(2), v2)
}

func TestSet_CompareIsSizeMajor(t *testing.T) {
	small := NewLocalSetContainer()
	small.Add(1, NewUint(9))

	big := NewLocalSetContainer()
	big.Add(1, NewUint(1))
	big.Add(2, NewUint(2))

	// The first entries differ (9 > 1), but size is compared first, so the
	// smaller set sorts first.
	assert.Negative(t, small.Compare(big))
}
