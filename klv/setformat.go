// Local-set and universal-set framing: a sequence of (key, BER length,
// payload) triples, with an optional trailing checksum packet. Both
// formats share the same shape and differ only in how the per-entry key is
// read/written, so LocalSetFormat and UniversalSetFormat are written as
// near-mirrors of each other rather than factored through a generic
// helper.
package klv

import (
	"fmt"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/errs"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/logging"
)

// LocalSetFormat reads and writes a LocalSet: a sequence of
// (BER-OID tag, BER length, value) triples.
type LocalSetFormat struct {
	// Lookup resolves each tag to the TagTraits that knows how to read/write
	// its value. A tag with no match in Lookup decodes as a Blob.
	Lookup *TagTraitsLookup

	// HasChecksum, when true, means the set ends with a trailing checksum
	// packet under ChecksumTag, verified using Algorithm.
	HasChecksum bool
	ChecksumTag key.LDS
	Algorithm   ChecksumAlgorithm

	// Logger receives checksum-mismatch and malformed-field diagnostics.
	// A nil Logger discards them.
	Logger logging.Logger
}

func (f LocalSetFormat) TypeName() string { return "local_set" }

func (f LocalSetFormat) FixedLength() int { return 0 }

func (f LocalSetFormat) log() logging.Logger {
	if f.Logger == nil {
		return logging.Nop()
	}

	return f.Logger
}

// Read parses exactly length bytes from c as a sequence of triples.
func (f LocalSetFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length == 0 {
		return Value{}, nil
	}

	raw, err := c.ReadBytes(length, max)
	if err != nil {
		return Value{}, err
	}

	sub := codec.NewReadCursor(raw)
	ls := NewLocalSetContainer()

	for sub.Remaining() > 0 {
		tagStart := sub.Pos()

		tag, err := key.ReadLDS(sub, sub.Remaining())
		if err != nil {
			return Value{}, fmt.Errorf("local set: reading tag at offset %d: %w", tagStart, err)
		}

		entryLen, err := codec.ReadBER(sub, sub.Remaining())
		if err != nil {
			return Value{}, fmt.Errorf("local set: reading length for tag %d: %w", tag, err)
		}
		valStart := sub.Pos()

		if f.HasChecksum && tag == f.ChecksumTag {
			cf := ChecksumFormat{Algorithm: f.Algorithm}
			v, err := cf.Read(sub, int(entryLen), sub.Remaining())
			if err != nil {
				return Value{}, fmt.Errorf("local set: reading checksum: %w", err)
			}

			header := raw[tagStart:valStart]
			data := raw[0:tagStart]
			computed := f.Algorithm.Evaluate(header, data)
			if got, _ := v.Uint(); got != computed {
				f.log().Warnw("checksum mismatch", "algorithm", f.Algorithm.Name(), "computed", computed, "got", got)
			}

			ls.Add(tag, v)

			continue
		}

		trait := f.Lookup.ByTag(tag)
		v, err := readAsBlobOnFailure(f.log(), trait.EnumName, sub, int(entryLen), sub.Remaining(), func() (Value, error) {
			return trait.Format.Read(sub, int(entryLen), sub.Remaining())
		})
		if err != nil {
			return Value{}, fmt.Errorf("local set: tag %d (%s): %w", tag, trait.EnumName, err)
		}

		ls.Add(tag, v)
	}

	return NewLocalSet(ls).WithLengthHint(length), nil
}

// Write encodes v's LocalSet as a sequence of triples, appending a freshly
// computed checksum trailer when HasChecksum is set; the trailer value is
// computed over the already-serialized preceding bytes.
func (f LocalSetFormat) Write(c *codec.Cursor, v Value, max int) error {
	ls, ok := v.LocalSet()
	if !ok {
		return fmt.Errorf("%w: local_set format given non-local-set value", errs.ErrBadCast)
	}

	start := c.Pos()
	budget := max

	for _, e := range ls.Entries() {
		if f.HasChecksum && e.Key == f.ChecksumTag {
			continue // recomputed below, not carried over verbatim
		}

		trait := f.Lookup.ByTag(e.Key)
		entryLen, err := entryLength(trait.Format, e.Val)
		if err != nil {
			return fmt.Errorf("local set: tag %d (%s): %w", e.Key, trait.EnumName, err)
		}

		if err := key.WriteLDS(c, e.Key, budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		if err := codec.WriteBER(c, uint64(entryLen), budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		if err := writeEntry(trait.Format, c, e.Val, budget); err != nil {
			return fmt.Errorf("local set: tag %d (%s): %w", e.Key, trait.EnumName, err)
		}
		budget = max - (c.Pos() - start)
	}

	if f.HasChecksum {
		headerStart := c.Pos()
		if err := key.WriteLDS(c, f.ChecksumTag, budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		ln := f.Algorithm.ValueLength()
		if err := codec.WriteBER(c, uint64(ln), budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)
		valStart := c.Pos()

		header := c.Consumed()[headerStart:valStart]
		data := c.Consumed()[start:headerStart]
		computed := f.Algorithm.Evaluate(header, data)

		if err := codec.WriteUint(c, computed, ln, budget); err != nil {
			return err
		}
	}

	return nil
}

// LengthOf reports the total encoded size of v's LocalSet, including the
// checksum trailer if configured.
func (f LocalSetFormat) LengthOf(v Value) (int, error) {
	ls, ok := v.LocalSet()
	if !ok {
		return 0, fmt.Errorf("%w: local_set format given non-local-set value", errs.ErrBadCast)
	}

	total := 0
	for _, e := range ls.Entries() {
		if f.HasChecksum && e.Key == f.ChecksumTag {
			continue
		}

		trait := f.Lookup.ByTag(e.Key)
		entryLen, err := entryLength(trait.Format, e.Val)
		if err != nil {
			return 0, err
		}

		total += e.Key.Length() + codec.BERLength(uint64(entryLen)) + entryLen
	}

	if f.HasChecksum {
		ln := f.Algorithm.ValueLength()
		total += f.ChecksumTag.Length() + codec.BERLength(uint64(ln)) + ln
	}

	return total, nil
}

// UniversalSetFormat reads and writes a UniversalSet: a sequence of
// (16-byte UDS key, BER length, value) triples.
type UniversalSetFormat struct {
	Lookup *TagTraitsLookup

	HasChecksum bool
	ChecksumKey key.UDS
	Algorithm   ChecksumAlgorithm

	Logger logging.Logger
}

func (f UniversalSetFormat) TypeName() string { return "universal_set" }

func (f UniversalSetFormat) FixedLength() int { return 0 }

func (f UniversalSetFormat) log() logging.Logger {
	if f.Logger == nil {
		return logging.Nop()
	}

	return f.Logger
}

func (f UniversalSetFormat) Read(c *codec.Cursor, length, max int) (Value, error) {
	if length == 0 {
		return Value{}, nil
	}

	raw, err := c.ReadBytes(length, max)
	if err != nil {
		return Value{}, err
	}

	sub := codec.NewReadCursor(raw)
	us := NewUniversalSetContainer()

	for sub.Remaining() > 0 {
		tagStart := sub.Pos()

		k, err := key.ReadUDS(sub, sub.Remaining())
		if err != nil {
			return Value{}, fmt.Errorf("universal set: reading key at offset %d: %w", tagStart, err)
		}

		entryLen, err := codec.ReadBER(sub, sub.Remaining())
		if err != nil {
			return Value{}, fmt.Errorf("universal set: reading length for key %s: %w", k, err)
		}
		valStart := sub.Pos()

		if f.HasChecksum && k.Equal(f.ChecksumKey) {
			cf := ChecksumFormat{Algorithm: f.Algorithm}
			v, err := cf.Read(sub, int(entryLen), sub.Remaining())
			if err != nil {
				return Value{}, fmt.Errorf("universal set: reading checksum: %w", err)
			}

			header := raw[tagStart:valStart]
			data := raw[0:tagStart]
			computed := f.Algorithm.Evaluate(header, data)
			if got, _ := v.Uint(); got != computed {
				f.log().Warnw("checksum mismatch", "algorithm", f.Algorithm.Name(), "computed", computed, "got", got)
			}

			us.Add(k, v)

			continue
		}

		trait := f.Lookup.ByUDSKey(k)
		v, err := readAsBlobOnFailure(f.log(), trait.EnumName, sub, int(entryLen), sub.Remaining(), func() (Value, error) {
			return trait.Format.Read(sub, int(entryLen), sub.Remaining())
		})
		if err != nil {
			return Value{}, fmt.Errorf("universal set: key %s (%s): %w", k, trait.EnumName, err)
		}

		us.Add(k, v)
	}

	return NewUniversalSet(us).WithLengthHint(length), nil
}

func (f UniversalSetFormat) Write(c *codec.Cursor, v Value, max int) error {
	us, ok := v.UniversalSet()
	if !ok {
		return fmt.Errorf("%w: universal_set format given non-universal-set value", errs.ErrBadCast)
	}

	start := c.Pos()
	budget := max

	for _, e := range us.Entries() {
		if f.HasChecksum && e.Key.Equal(f.ChecksumKey) {
			continue
		}

		trait := f.Lookup.ByUDSKey(e.Key)
		entryLen, err := entryLength(trait.Format, e.Val)
		if err != nil {
			return fmt.Errorf("universal set: key %s (%s): %w", e.Key, trait.EnumName, err)
		}

		if err := key.WriteUDS(c, e.Key, budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		if err := codec.WriteBER(c, uint64(entryLen), budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		if err := writeEntry(trait.Format, c, e.Val, budget); err != nil {
			return fmt.Errorf("universal set: key %s (%s): %w", e.Key, trait.EnumName, err)
		}
		budget = max - (c.Pos() - start)
	}

	if f.HasChecksum {
		headerStart := c.Pos()
		if err := key.WriteUDS(c, f.ChecksumKey, budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)

		ln := f.Algorithm.ValueLength()
		if err := codec.WriteBER(c, uint64(ln), budget); err != nil {
			return err
		}
		budget = max - (c.Pos() - start)
		valStart := c.Pos()

		header := c.Consumed()[headerStart:valStart]
		data := c.Consumed()[start:headerStart]
		computed := f.Algorithm.Evaluate(header, data)

		if err := codec.WriteUint(c, computed, ln, budget); err != nil {
			return err
		}
	}

	return nil
}

func (f UniversalSetFormat) LengthOf(v Value) (int, error) {
	us, ok := v.UniversalSet()
	if !ok {
		return 0, fmt.Errorf("%w: universal_set format given non-universal-set value", errs.ErrBadCast)
	}

	total := 0
	for _, e := range us.Entries() {
		if f.HasChecksum && e.Key.Equal(f.ChecksumKey) {
			continue
		}

		trait := f.Lookup.ByUDSKey(e.Key)
		entryLen, err := entryLength(trait.Format, e.Val)
		if err != nil {
			return 0, err
		}

		total += key.UDSSize + codec.BERLength(uint64(entryLen)) + entryLen
	}

	if f.HasChecksum {
		ln := f.Algorithm.ValueLength()
		total += key.UDSSize + codec.BERLength(uint64(ln)) + ln
	}

	return total, nil
}
