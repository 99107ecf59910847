// Package klv implements the tagged value model: the Value container, the
// format abstraction that reads/writes one semantic type, tag traits and
// their lookup tables, the Set containers, the KLV packet framer and the
// checksum packet formats.
//
// These pieces are mutually recursive — a Value may hold a LocalSet, a
// LocalSet holds Values, a LocalSetFormat needs a TagTraits lookup to
// parse its children, and TagTraits name a Format — so they live together
// in one package rather than splitting across import-cycle-prone
// packages.
package klv

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the variant held by a Value. Kind values are ordered;
// Value's total order compares Kind first, then payloads.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindUint
	KindInt
	KindFloat
	KindString
	KindBlob
	KindEnum
	KindRecord
	KindLocalSet
	KindUniversalSet
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindLocalSet:
		return "local_set"
	case KindUniversalSet:
		return "universal_set"
	default:
		return "unknown"
	}
}

// EnumValue is a generic enumerated field: a raw unsigned code plus the name
// it resolved to (or the format's configured "unknown" name when the code
// was not recognized — see EnumFormat).
type EnumValue struct {
	Raw  uint64
	Name string
}

// Record is the interface satisfied by every standard-specific payload this
// core models directly (MIISID, MetricPeriodPack, WindowCorners,
// ControlCommand). Keeping the interface small and closed avoids an
// open-ended type hierarchy behind the Value variant.
type Record interface {
	Equal(other Record) bool
	Less(other Record) bool
	String() string
}

// Value is a type-erased container holding one parsed field's contents
//. The zero Value is Empty.
type Value struct {
	kind Kind

	u    uint64 // Uint, and the bit pattern for Int
	f    float64
	s    string
	blob []byte
	enum EnumValue
	rec  Record
	ls   *LocalSet
	us   *UniversalSet

	lengthHint    int
	hasLengthHint bool
}

// Empty returns the empty Value.
func Empty() Value { return Value{} }

// NewUint wraps an unsigned integer.
func NewUint(v uint64) Value { return Value{kind: KindUint, u: v} }

// NewInt wraps a signed integer.
func NewInt(v int64) Value { return Value{kind: KindInt, u: uint64(v)} }

// NewFloat wraps a double.
func NewFloat(v float64) Value { return Value{kind: KindFloat, f: v} }

// NewString wraps a string.
func NewString(v string) Value { return Value{kind: KindString, s: v} }

// NewBlob wraps raw bytes that could not be parsed, or should be carried
// verbatim.
func NewBlob(v []byte) Value { return Value{kind: KindBlob, blob: v} }

// NewEnum wraps an enumerated value.
func NewEnum(v EnumValue) Value { return Value{kind: KindEnum, enum: v} }

// NewRecord wraps a standard-specific record.
func NewRecord(v Record) Value { return Value{kind: KindRecord, rec: v} }

// NewLocalSet wraps a nested local set.
func NewLocalSet(v *LocalSet) Value { return Value{kind: KindLocalSet, ls: v} }

// NewUniversalSet wraps a nested universal set.
func NewUniversalSet(v *UniversalSet) Value { return Value{kind: KindUniversalSet, us: v} }

// Kind returns the discriminator of the held variant.
func (v Value) Kind() Kind { return v.kind }

// Empty reports whether v holds no value at all.
func (v Value) Empty() bool { return v.kind == KindEmpty }

// Valid reports whether v holds a typed value that is not a Blob. A Blob
// means a lower-level parse failed and the original bytes were preserved
// as-is.
func (v Value) Valid() bool { return v.kind != KindEmpty && v.kind != KindBlob }

// LengthHint returns the byte length the value originally occupied (or
// should occupy), and whether one was ever set.
func (v Value) LengthHint() (int, bool) { return v.lengthHint, v.hasLengthHint }

// WithLengthHint returns a copy of v carrying the given length hint, so
// write-back can reuse the original variable-precision encoding.
func (v Value) WithLengthHint(n int) Value {
	v.lengthHint = n
	v.hasLengthHint = true

	return v
}

// Uint returns v's unsigned integer payload.
func (v Value) Uint() (uint64, bool) {
	if v.kind != KindUint {
		return 0, false
	}

	return v.u, true
}

// Int returns v's signed integer payload.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}

	return int64(v.u), true
}

// Float returns v's double payload.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}

	return v.f, true
}

// Str returns v's string payload.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.s, true
}

// Blob returns v's raw byte payload.
func (v Value) Blob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}

	return v.blob, true
}

// Enum returns v's enumerated payload.
func (v Value) Enum() (EnumValue, bool) {
	if v.kind != KindEnum {
		return EnumValue{}, false
	}

	return v.enum, true
}

// Record returns v's standard-specific record payload.
func (v Value) Record() (Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}

	return v.rec, true
}

// LocalSet returns v's nested local set.
func (v Value) LocalSet() (*LocalSet, bool) {
	if v.kind != KindLocalSet {
		return nil, false
	}

	return v.ls, true
}

// UniversalSet returns v's nested universal set.
func (v Value) UniversalSet() (*UniversalSet, bool) {
	if v.kind != KindUniversalSet {
		return nil, false
	}

	return v.us, true
}

// Equal reports whether v and other hold the same variant and payload.
// Two empty values are always equal.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

// Compare orders v against other: empty values sort first, then by Kind,
// then by payload. It returns -1, 0 or 1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}

		return 1
	}

	switch v.kind {
	case KindEmpty:
		return 0
	case KindUint:
		return compareUint64(v.u, other.u)
	case KindInt:
		return compareInt64(int64(v.u), int64(other.u))
	case KindFloat:
		return compareFloat64(v.f, other.f)
	case KindString:
		return strings.Compare(v.s, other.s)
	case KindBlob:
		return compareBytes(v.blob, other.blob)
	case KindEnum:
		if v.enum.Raw != other.enum.Raw {
			return compareUint64(v.enum.Raw, other.enum.Raw)
		}

		return strings.Compare(v.enum.Name, other.enum.Name)
	case KindRecord:
		if v.rec.Equal(other.rec) {
			return 0
		}
		if v.rec.Less(other.rec) {
			return -1
		}

		return 1
	case KindLocalSet:
		return v.ls.Compare(other.ls)
	case KindUniversalSet:
		return v.us.Compare(other.us)
	default:
		return 0
	}
}

// String renders v the way a nested set prints its entries: scalars print
// directly, sets print as "{ key: value, ... }" sorted by key.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindUint:
		return fmt.Sprintf("%d", v.u)
	case KindInt:
		return fmt.Sprintf("%d", int64(v.u))
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.blob))
	case KindEnum:
		return v.enum.Name
	case KindRecord:
		return v.rec.String()
	case KindLocalSet:
		return v.ls.String()
	case KindUniversalSet:
		return v.us.String()
	default:
		return "<unknown>"
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	return compareInt64(int64(len(a)), int64(len(b)))
}

// sortValues returns a stable, sorted copy of vs using Value.Compare.
func sortValues(vs []Value) []Value {
	out := append([]Value(nil), vs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })

	return out
}
