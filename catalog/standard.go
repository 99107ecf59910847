// Package catalog provides representative tag trait tables for a handful of
// MISB standards (ST 0102, 0104, 0601, 0806, 0903, 1002, 1010, 1108, 1204).
//
// These tables are a representative set, not an exhaustive transcription
// of each standard's full field dictionary. Specialized sub-set payloads
// (0806 POI/AOI/user-defined sets, 0903 VTarget series, 1002 sections,
// 1010 SDCC payloads, 1108 metric parameter sub-sets) are registered here
// as opaque Blob fields so a packet containing them still frames
// correctly; their contents are not interpreted.
package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// Standard identifies which MISB/STANAG family a packet or timeline entry
// belongs to. It is the first component of timeline's composite
// (standard, tag, index) key.
type Standard uint8

const (
	StandardUnknown Standard = iota
	ST0102
	ST0104
	ST0601
	ST0806
	ST0903
	ST1002
	ST1010
	ST1108
	ST1204
)

func (s Standard) String() string {
	switch s {
	case ST0102:
		return "ST0102"
	case ST0104:
		return "ST0104"
	case ST0601:
		return "ST0601"
	case ST0806:
		return "ST0806"
	case ST0903:
		return "ST0903"
	case ST1002:
		return "ST1002"
	case ST1010:
		return "ST1010"
	case ST1108:
		return "ST1108"
	case ST1204:
		return "ST1204"
	default:
		return "unknown"
	}
}

// uds builds a UDS key from 16 literal bytes, for readability at each
// standard's declaration site.
func uds(b0, b1, b2, b3, b4, b5, b6, b7, b8, b9, b10, b11, b12, b13, b14, b15 byte) key.UDS {
	return key.NewUDS([16]byte{b0, b1, b2, b3, b4, b5, b6, b7, b8, b9, b10, b11, b12, b13, b14, b15})
}

// Standards lists every standard this catalog registers, in Standard order.
func Standards() []Standard {
	return []Standard{ST0102, ST0104, ST0601, ST0806, ST0903, ST1002, ST1010, ST1108, ST1204}
}

// StandardForKey resolves a top-level packet key to its Standard, or
// StandardUnknown when the key is not a registered top-level standard.
// Matching ignores the key's reserved byte 7, like every other UDS lookup.
func StandardForKey(k key.UDS) Standard {
	for _, s := range Standards() {
		if KeyForStandard(s).Equal(k) {
			return s
		}
	}

	return StandardUnknown
}

// KeyForStandard returns the top-level packet key for s. The zero UDS key is
// returned for StandardUnknown.
func KeyForStandard(s Standard) key.UDS {
	switch s {
	case ST0102:
		return ST0102Key
	case ST0104:
		return ST0104Key
	case ST0601:
		return ST0601Key
	case ST0806:
		return ST0806Key
	case ST0903:
		return ST0903Key
	case ST1002:
		return ST1002Key
	case ST1010:
		return ST1010Key
	case ST1108:
		return ST1108Key
	case ST1204:
		return ST1204Key
	default:
		return key.UDS{}
	}
}

// LookupFor returns the tag traits lookup for s, or nil for standards whose
// payload is not a set (ST 1204) and for StandardUnknown.
func LookupFor(s Standard) *klv.TagTraitsLookup {
	switch s {
	case ST0102:
		return ST0102Lookup()
	case ST0104:
		return ST0104Lookup()
	case ST0601:
		return ST0601Lookup()
	case ST0806:
		return ST0806Lookup()
	case ST0903:
		return ST0903Lookup()
	case ST1002:
		return ST1002Lookup()
	case ST1010:
		return ST1010Lookup()
	case ST1108:
		return ST1108Lookup()
	default:
		return nil
	}
}

// TimestampTag returns the local tag carrying s's implicit timestamp, and
// whether s defines one.
func TimestampTag(s Standard) (key.LDS, bool) {
	switch s {
	case ST0104:
		return ST0104TagUserDefinedTimestamp, true
	case ST0601:
		return ST0601PrecisionTimestamp, true
	case ST0903:
		return ST0903PrecisionTimestamp, true
	case ST1002:
		return ST1002PrecisionTimestamp, true
	default:
		return 0, false
	}
}
