package klv

import (
	"fmt"

	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/key"
)

var errEmptyTraitsTable = fmt.Errorf("%w: tag traits table must not be empty", errs.ErrMetadata)

// Multiplicity is the closed integer interval over the count of entries a
// tag may appear under in its parent set. Max == 0
// means unbounded.
type Multiplicity struct {
	Min, Max int
}

// Contains reports whether n falls within the multiplicity interval.
func (m Multiplicity) Contains(n int) bool {
	if n < m.Min {
		return false
	}

	return m.Max == 0 || n <= m.Max
}

// Unbounded is the multiplicity used by tags with no upper limit on
// repetition.
var Unbounded = Multiplicity{Min: 0, Max: 0}

// Required is the multiplicity of a tag that must appear exactly once.
var Required = Multiplicity{Min: 1, Max: 1}

// Optional is the multiplicity of a tag that may appear at most once.
var Optional = Multiplicity{Min: 0, Max: 1}

// TagTraits is one tag's metadata record: the tag's keys in both key spaces, its human-readable identity, the Format
// that reads/writes its value, and the multiplicity contract its parent set
// enforces.
type TagTraits struct {
	// UDSKey is the tag's 16-byte identity when carried inside a universal
	// set, or as a top-level packet key.
	UDSKey key.UDS

	// Tag is the small integer identity used inside local sets. Tags that
	// only ever appear in a universal set (no local-set encoding defined)
	// leave this zero along with EnumName's sibling zero-tag "unknown" entry
	// being the only legitimate zero.
	Tag key.LDS

	// EnumName is the stable Go-identifier-shaped name for this tag, e.g.
	// "PRECISION_TIMESTAMP".
	EnumName string

	// Format reads/writes this tag's value.
	Format Format

	// DisplayName is the human-readable MISB field name.
	DisplayName string

	// Description is a short prose description, primarily for diagnostics.
	Description string

	// Multiplicity bounds how many times this tag may occur in one parent
	// set.
	Multiplicity Multiplicity

	// SubLookup, when non-nil, is the TagTraitsLookup used to parse this
	// tag's value when it is itself a nested local/universal set.
	SubLookup *TagTraitsLookup
}

// unknownTrait is returned by TagTraitsLookup on every miss, so that
// unknown tags decode as blobs instead of the lookup panicking or
// erroring.
var unknownTrait = &TagTraits{
	EnumName:     "UNKNOWN",
	Format:       BlobFormat{},
	DisplayName:  "Unknown",
	Description:  "Tag not present in this lookup's trait table.",
	Multiplicity: Unbounded,
}

// TagTraitsLookup indexes a flat slice of TagTraits by both LDS tag and UDS
// key. It is built once and is safe for concurrent reads
// from any number of goroutines since it is never mutated after
// NewTagTraitsLookup returns.
type TagTraitsLookup struct {
	byTag []TagTraits // registration order, returned by Traits(); ByTag uses byTagIdx
	byTagIdx map[key.LDS]*TagTraits
	byUDS    map[key.UDS]*TagTraits
}

// NewTagTraitsLookup builds a lookup from traits. It fails by returning an
// error if traits is empty.
func NewTagTraitsLookup(traits []TagTraits) (*TagTraitsLookup, error) {
	if len(traits) == 0 {
		return nil, errEmptyTraitsTable
	}

	l := &TagTraitsLookup{
		byTag:    append([]TagTraits(nil), traits...),
		byTagIdx: make(map[key.LDS]*TagTraits, len(traits)),
		byUDS:    make(map[key.UDS]*TagTraits, len(traits)),
	}
	for i := range l.byTag {
		t := &l.byTag[i]
		l.byTagIdx[t.Tag] = t
		if t.UDSKey.IsValid() {
			l.byUDS[t.UDSKey] = t
		}
	}

	return l, nil
}

// ByTag returns the trait registered for tag, or the "unknown" trait on
// miss.
func (l *TagTraitsLookup) ByTag(tag key.LDS) *TagTraits {
	if l == nil {
		return unknownTrait
	}
	if t, ok := l.byTagIdx[tag]; ok {
		return t
	}

	return unknownTrait
}

// ByUDSKey returns the trait registered for k, or the "unknown" trait on
// miss. Lookup ignores k's reserved byte 7, matching key.UDS.Equal.
func (l *TagTraitsLookup) ByUDSKey(k key.UDS) *TagTraits {
	if l == nil {
		return unknownTrait
	}
	if t, ok := l.byUDS[k]; ok {
		return t
	}
	for uk, t := range l.byUDS {
		if uk.Equal(k) {
			return t
		}
	}

	return unknownTrait
}

// Traits returns every registered trait, in registration order.
func (l *TagTraitsLookup) Traits() []TagTraits {
	if l == nil {
		return nil
	}

	return l.byTag
}

// Unknown returns the fallback trait every lookup returns on a miss.
func Unknown() *TagTraits { return unknownTrait }
