// Package demux implements the packet-to-timeline demuxer: it consumes
// top-level KLV packets in chronological order and accumulates their field values into a timeline.Timeline, applying each
// standard's timing convention and the implicit-cancellation rule for
// single-instance tags.
package demux

import (
	"time"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/internal/hash"
	"github.com/kwiver/goklv/internal/options"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/logging"
	"github.com/kwiver/goklv/timeline"
)

// DefaultDuration is how long a value stays in effect when the packet's
// timestamp is its only temporal anchor.
const DefaultDuration = 30 * time.Second

// instState remembers, per single-instance composite key, the interval of
// the most recent insertion and whether it used the default duration, so a
// later packet that omits the tag can truncate it (explicit cancellation).
type instState struct {
	iv         timeline.Interval
	defaultDur bool
}

// Demuxer accumulates packets into a shared Timeline. It must be driven from
// a single goroutine, and packets must arrive in non-decreasing timestamp
// order; out-of-order packets are dropped with a warning.
type Demuxer struct {
	tl  *timeline.Timeline
	log logging.Logger

	defaultDur uint64 // microseconds
	last       uint64

	unknownIdx map[key.UDS]uint64
	metricIdx  map[uint64]uint64
	state      map[timeline.Key]instState
}

// Option configures a Demuxer.
type Option = options.Option[*Demuxer]

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return options.NoError(func(d *Demuxer) { d.log = l })
}

// WithDefaultDuration overrides the 30-second default-effective interval for
// packets anchored only by their own timestamp.
func WithDefaultDuration(dur time.Duration) Option {
	return options.NoError(func(d *Demuxer) { d.defaultDur = uint64(dur.Microseconds()) })
}

// New returns a Demuxer writing into tl.
func New(tl *timeline.Timeline, opts ...Option) (*Demuxer, error) {
	d := &Demuxer{
		tl:         tl,
		log:        logging.Nop(),
		defaultDur: uint64(DefaultDuration.Microseconds()),
		unknownIdx: make(map[key.UDS]uint64),
		metricIdx:  make(map[uint64]uint64),
		state:      make(map[timeline.Key]instState),
	}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// LastTimestamp returns the derived timestamp of the most recent accepted
// packet.
func (d *Demuxer) LastTimestamp() uint64 { return d.last }

// DefaultDurationMicros returns the configured default-effective interval in
// microseconds. A caller wiring a muxer to the same timeline can compare it
// with the muxer's default duration; cancellation detection on both sides
// agrees only when the two match.
func (d *Demuxer) DefaultDurationMicros() uint64 { return d.defaultDur }

// DemuxPacket dispatches p on its top-level key and updates the timeline.
// Malformed or unknown packets never fail; they are stored raw or dropped
// with a warning.
func (d *Demuxer) DemuxPacket(p klv.Packet) {
	switch catalog.StandardForKey(p.Key) {
	case catalog.ST0104:
		d.demux0104(p)
	case catalog.ST0601:
		d.demuxLocalSet(catalog.ST0601, p)
	case catalog.ST1108:
		d.demux1108(p)
	case catalog.ST0102:
		d.demuxLocalSet(catalog.ST0102, p)
	case catalog.ST0806:
		d.demuxLocalSet(catalog.ST0806, p)
	case catalog.ST0903:
		d.demuxLocalSet(catalog.ST0903, p)
	case catalog.ST1002:
		d.demuxLocalSet(catalog.ST1002, p)
	case catalog.ST1010:
		d.demuxLocalSet(catalog.ST1010, p)
	case catalog.ST1204:
		d.demux1204(p)
	default:
		d.demuxUnknown(p)
	}
}

// checkOrder enforces the monotonic-timestamp contract. It returns false,
// after logging, when t precedes the last accepted timestamp.
func (d *Demuxer) checkOrder(t uint64) bool {
	if t < d.last {
		d.log.Warnw("dropping out-of-order packet", "timestamp", t, "last", d.last)

		return false
	}
	d.last = t

	return true
}

// isPointEvent reports whether a ST 0601 tag is a point event, stored at a
// single-microsecond interval instead of the default duration.
func isPointEvent(tag key.LDS) bool {
	switch tag {
	case catalog.ST0601WeaponFired,
		catalog.ST0601ControlCommandVerificationList,
		catalog.ST0601SegmentLocalSet,
		catalog.ST0601AmendLocalSet:
		return true
	default:
		return false
	}
}

// demuxLocalSet handles ST 0601 and the other local-set standards: derive
// the timestamp from the standard's implicit timestamp tag (falling back to
// the last accepted timestamp when the standard defines none), then store
// every entry over the default-effective interval, with the 0601 special
// cases for point events and control commands.
func (d *Demuxer) demuxLocalSet(std catalog.Standard, p klv.Packet) {
	ls, ok := p.Value.LocalSet()
	if !ok {
		d.demuxUnknown(p)

		return
	}

	lookup := catalog.LookupFor(std)

	t := d.last
	if tsTag, defined := catalog.TimestampTag(std); defined {
		tsVal, found := ls.Find(tsTag)
		if !found {
			d.log.Warnw("packet missing timestamp tag, storing raw", "standard", std.String())
			d.demuxUnknown(p)

			return
		}
		ts, isUint := tsVal.Uint()
		if !isUint {
			d.log.Warnw("packet timestamp is not an integer, storing raw", "standard", std.String())
			d.demuxUnknown(p)

			return
		}
		t = ts
	}

	if !d.checkOrder(t) {
		return
	}

	d.cancelAbsent(std, t, ls)

	checksumTag, hasChecksum := checksumTagOf(std)

	occurrence := map[key.LDS]uint64{}
	for _, e := range ls.Entries() {
		tag := e.Key
		if hasChecksum && tag == checksumTag {
			continue
		}

		if std == catalog.ST0601 {
			if isPointEvent(tag) {
				idx := occurrence[tag]
				occurrence[tag]++
				m := d.tl.InsertOrFindIndexed(std, tag, idx)
				m.Set(timeline.Interval{Lo: t, Hi: t + 1}, e.Val)

				continue
			}
			if tag == catalog.ST0601ControlCommand {
				d.demuxControlCommand(t, e.Val)

				continue
			}
		}

		idx := occurrence[tag]
		occurrence[tag]++
		k := timeline.Key{Standard: std, Tag: tag, Index: idx}
		m := d.tl.InsertOrFindIndexed(std, tag, idx)
		iv := timeline.Interval{Lo: t, Hi: t + d.defaultDur}
		m.Set(iv, e.Val)

		if singleInstance(lookup, tag) {
			d.state[k] = instState{iv: iv, defaultDur: true}
		}
	}
}

// demuxControlCommand stores a control command under its own id as the
// sub-timeline index, preserving independent histories per command.
func (d *Demuxer) demuxControlCommand(t uint64, v klv.Value) {
	rec, ok := v.Record()
	if !ok {
		d.log.Warnw("control command did not parse, skipping")

		return
	}
	cc, ok := rec.(klv.ControlCommand)
	if !ok {
		d.log.Warnw("control command has unexpected record type", "type", rec.String())

		return
	}

	m := d.tl.InsertOrFindIndexed(catalog.ST0601, catalog.ST0601ControlCommand, cc.ID)
	m.Set(timeline.Interval{Lo: t, Hi: t + d.defaultDur}, v)
}

// demux0104 handles the ST 0104 universal set: the timestamp is located via
// the USER_DEFINED_TIMESTAMP universal key, and every other entry is stored
// under its trait's synthetic local tag.
func (d *Demuxer) demux0104(p klv.Packet) {
	us, ok := p.Value.UniversalSet()
	if !ok {
		d.demuxUnknown(p)

		return
	}

	lookup := catalog.ST0104Lookup()

	tsVal, found := us.Find(catalog.ST0104UserDefinedTimestamp)
	if !found {
		d.log.Warnw("0104 packet missing user-defined timestamp, storing raw")
		d.demuxUnknown(p)

		return
	}
	t, isUint := tsVal.Uint()
	if !isUint {
		d.log.Warnw("0104 timestamp is not an integer, storing raw")
		d.demuxUnknown(p)

		return
	}

	if !d.checkOrder(t) {
		return
	}

	present := klv.NewLocalSetContainer()
	for _, e := range us.Entries() {
		trait := lookup.ByUDSKey(e.Key)
		present.Add(trait.Tag, e.Val)
	}
	d.cancelAbsent(catalog.ST0104, t, present)

	occurrence := map[key.LDS]uint64{}
	for _, e := range us.Entries() {
		if e.Key.Equal(catalog.ST0104UserDefinedTimestamp) {
			continue
		}
		trait := lookup.ByUDSKey(e.Key)
		idx := occurrence[trait.Tag]
		occurrence[trait.Tag]++

		k := timeline.Key{Standard: catalog.ST0104, Tag: trait.Tag, Index: idx}
		m := d.tl.InsertOrFindIndexed(catalog.ST0104, trait.Tag, idx)
		iv := timeline.Interval{Lo: t, Hi: t + d.defaultDur}
		m.Set(iv, e.Val)

		if singleInstance(lookup, trait.Tag) {
			d.state[k] = instState{iv: iv, defaultDur: true}
		}
	}
}

// demux1108 handles ST 1108 quality packets: the metric period pack supplies
// the packet's own effective interval, and each metric local set is filed
// under an index chosen per unique parent-field combination so concurrent
// metrics keep independent histories.
func (d *Demuxer) demux1108(p klv.Packet) {
	ls, ok := p.Value.LocalSet()
	if !ok {
		d.demuxUnknown(p)

		return
	}

	periodVal, found := ls.Find(catalog.ST1108MetricPeriodPack)
	if !found {
		d.log.Warnw("1108 packet missing metric period pack, storing raw")
		d.demuxUnknown(p)

		return
	}
	rec, _ := periodVal.Record()
	period, ok := rec.(klv.MetricPeriodPack)
	if !ok {
		d.log.Warnw("1108 metric period pack did not parse, storing raw")
		d.demuxUnknown(p)

		return
	}

	t := uint64(period.Offset)
	if !d.checkOrder(t) {
		return
	}
	iv := timeline.Interval{Lo: t, Hi: t + uint64(period.Length)}

	parentTags := []key.LDS{
		catalog.ST1108AssessmentPoint,
		catalog.ST1108CompressionType,
		catalog.ST1108CompressionLevel,
		catalog.ST1108CompressionProfile,
		catalog.ST1108WindowCornersPack,
	}

	for _, metricVal := range ls.AllAt(catalog.ST1108MetricLocalSet) {
		idx := d.metricIndex(ls, metricVal)

		m := d.tl.InsertOrFindIndexed(catalog.ST1108, catalog.ST1108MetricLocalSet, idx)
		m.Set(iv, metricVal)

		for _, tag := range parentTags {
			if v, ok := ls.Find(tag); ok {
				pm := d.tl.InsertOrFindIndexed(catalog.ST1108, tag, idx)
				pm.Set(iv, v)
			}
		}
	}
}

// metricIndex allocates or reuses the sub-timeline index for one metric
// local set, keyed by the hash of its identity fields plus the parent
// context: assessment point, window corners, metric name, version,
// implementer and parameters.
func (d *Demuxer) metricIndex(parent *klv.LocalSet, metricVal klv.Value) uint64 {
	b := hash.NewBuilder()

	if v, ok := parent.Find(catalog.ST1108AssessmentPoint); ok {
		b.WriteString(v.String())
	}
	if v, ok := parent.Find(catalog.ST1108WindowCornersPack); ok {
		b.WriteString(v.String())
	}

	if ms, ok := metricVal.LocalSet(); ok {
		for _, tag := range []key.LDS{
			catalog.ST1108MetricName,
			catalog.ST1108MetricVersion,
			catalog.ST1108MetricImplementer,
			catalog.ST1108MetricParameters,
		} {
			if v, ok := ms.Find(tag); ok {
				b.WriteString(v.String())
			}
			b.WriteUint64(uint64(tag))
		}
	}

	h := b.Sum64()
	if idx, ok := d.metricIdx[h]; ok {
		return idx
	}

	k, _ := d.tl.Insert(catalog.ST1108, catalog.ST1108MetricLocalSet)
	d.metricIdx[h] = k.Index

	return k.Index
}

// demux1204 stores a MIIS ID packet. ST 1204 carries no timestamp of its
// own, so the last accepted timestamp anchors its default-effective
// interval.
func (d *Demuxer) demux1204(p klv.Packet) {
	m := d.tl.InsertOrFindIndexed(catalog.ST1204, 0, 0)
	m.Set(timeline.Interval{Lo: d.last, Hi: d.last + d.defaultDur}, p.Value)
}

// demuxUnknown files a packet under a dedicated per-key index, appending
// to the packet list already stored at the current instant when one
// exists.
func (d *Demuxer) demuxUnknown(p klv.Packet) {
	idx, ok := d.unknownIdx[p.Key]
	if !ok {
		k, _ := d.tl.Insert(catalog.StandardUnknown, 0)
		idx = k.Index
		d.unknownIdx[p.Key] = idx
	}

	m := d.tl.InsertOrFindIndexed(catalog.StandardUnknown, 0, idx)
	iv := timeline.Interval{Lo: d.last, Hi: d.last + 1}

	list := klv.PacketList{p}
	if existing, ok := m.At(d.last); ok {
		if rec, ok := existing.Record(); ok {
			if prev, ok := rec.(klv.PacketList); ok {
				list = append(append(klv.PacketList{}, prev...), p)
			}
		}
	}
	m.Set(iv, klv.NewRecord(list))
}

// cancelAbsent truncates the default-duration interval of every
// single-instance tag that was in effect but is absent from the current
// set (explicit cancellation).
func (d *Demuxer) cancelAbsent(std catalog.Standard, t uint64, present *klv.LocalSet) {
	for k, st := range d.state {
		if k.Standard != std || !st.defaultDur || st.iv.Hi <= t {
			continue
		}
		if _, found := present.Find(k.Tag); found {
			continue
		}
		if m, ok := d.tl.FindIndexed(k.Standard, k.Tag, k.Index); ok {
			m.Erase(timeline.Interval{Lo: t, Hi: st.iv.Hi})
		}
		delete(d.state, k)
	}
}

// singleInstance reports whether a tag may appear at most once per set.
func singleInstance(lookup *klv.TagTraitsLookup, tag key.LDS) bool {
	m := lookup.ByTag(tag).Multiplicity

	return m.Max == 1
}

// checksumTagOf returns the trailing checksum tag for standards that carry
// one, so the demuxer never files checksums into the timeline.
func checksumTagOf(std catalog.Standard) (key.LDS, bool) {
	switch std {
	case catalog.ST0601:
		return catalog.ST0601Checksum, true
	case catalog.ST0806:
		return catalog.ST0806Checksum, true
	case catalog.ST0903:
		return catalog.ST0903Checksum, true
	case catalog.ST1002:
		return catalog.ST1002Checksum, true
	case catalog.ST1108:
		return catalog.ST1108Checksum, true
	default:
		return 0, false
	}
}
