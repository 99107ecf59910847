package goklv

import (
	"testing"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/klv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncodePackets_RoundTrip(t *testing.T) {
	ls := klv.NewLocalSetContainer()
	ls.Add(catalog.ST0601PrecisionTimestamp, klv.NewUint(1_000_000_000).WithLengthHint(8))
	ls.Add(catalog.ST0601MissionID, klv.NewString("M1"))
	p := klv.Packet{Key: catalog.ST0601Key, Value: klv.NewLocalSet(ls)}

	buf, err := EncodePackets([]klv.Packet{p, p})
	require.NoError(t, err)

	got := ParsePackets(buf, nil)
	require.Len(t, got, 2)
	for _, g := range got {
		assert.True(t, g.Key.Equal(catalog.ST0601Key))
		gls, ok := g.Value.LocalSet()
		require.True(t, ok)
		v, ok := gls.Find(catalog.ST0601MissionID)
		require.True(t, ok)
		s, _ := v.Str()
		assert.Equal(t, "M1", s)
	}
}

func TestParsePackets_SkipsGarbageBetweenPackets(t *testing.T) {
	ls := klv.NewLocalSetContainer()
	ls.Add(catalog.ST0601PrecisionTimestamp, klv.NewUint(5).WithLengthHint(8))
	p := klv.Packet{Key: catalog.ST0601Key, Value: klv.NewLocalSet(ls)}

	encoded, err := EncodePackets([]klv.Packet{p})
	require.NoError(t, err)

	buf := append([]byte{0x00, 0x11, 0x22}, encoded...)
	got := ParsePackets(buf, nil)
	assert.Len(t, got, 1)
}
