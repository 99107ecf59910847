// Package errs defines the sentinel errors shared by every goklv package.
//
// Recoverable format errors are handled locally by wrapping the offending
// bytes in a Blob value; unrecoverable framing errors are signalled with
// one of the sentinels below. Callers compare against them with errors.Is
// and add context with fmt.Errorf's %w verb.
package errs

import "errors"

var (
	// ErrBufferOverflow is returned when a read or write would exceed the
	// supplied maximum length.
	ErrBufferOverflow = errors.New("goklv: buffer overflow")

	// ErrTypeOverflow is returned when a decoded value does not fit in the
	// requested native type, or an encoded value does not fit in the
	// requested byte width.
	ErrTypeOverflow = errors.New("goklv: type overflow")

	// ErrMetadata signals a framing-level consistency check failure, such as
	// an invalid UDS key prefix or a fixed-length format asked to read a
	// disagreeing length.
	ErrMetadata = errors.New("goklv: metadata inconsistency")

	// ErrBadCast is returned when a Value is queried for a type its variant
	// does not hold.
	ErrBadCast = errors.New("goklv: bad value cast")

	// ErrAmbiguous is returned by Set/Timeline lookups that require exactly
	// one match but found more than one.
	ErrAmbiguous = errors.New("goklv: ambiguous lookup")

	// ErrNotFound is returned by Set/Timeline lookups that require an entry
	// to be present.
	ErrNotFound = errors.New("goklv: not found")
)
