// Package mux implements the timeline-to-packet muxer: it walks a
// timeline.Timeline at client-declared frame times and reconstitutes a chronological stream of well-formed packets, with the ST
// 0601 list/point-event/cancellation special cases and ST 1108 period
// merging.
package mux

import (
	"math"
	"sort"
	"time"

	"github.com/kwiver/goklv/catalog"
	"github.com/kwiver/goklv/internal/hash"
	"github.com/kwiver/goklv/internal/options"
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
	"github.com/kwiver/goklv/logging"
	"github.com/kwiver/goklv/timeline"
)

// DefaultDuration mirrors demux.DefaultDuration; the muxer needs the same
// policy value to recognize truncated (cancelled) intervals.
const DefaultDuration = 30 * time.Second

// timedPacket is one produced packet tagged with its emission timestamp.
type timedPacket struct {
	ts uint64
	p  klv.Packet
}

// metricParentTags are the ST 1108 parent fields replicated per metric
// sub-timeline, in tag order. The deterministic tag order (not klv.Value's
// variant-tag order) keys the merge cache.
var metricParentTags = []key.LDS{
	catalog.ST1108AssessmentPoint,
	catalog.ST1108CompressionType,
	catalog.ST1108CompressionLevel,
	catalog.ST1108CompressionProfile,
	catalog.ST1108WindowCornersPack,
}

// provisional is one candidate ST 1108 packet before period merging.
type provisional struct {
	start, end uint64
	parents    []klv.Value // aligned with metricParentTags
	metric     klv.Value
}

// pendingMetric is a provisional packet held in the merge cache awaiting
// possible period extension by a later frame.
type pendingMetric struct {
	provisional
}

// Muxer walks a shared Timeline and produces packets frame by frame. Like
// the demuxer, it must be driven from a single goroutine, with
// non-decreasing SendFrame timestamps.
type Muxer struct {
	tl  *timeline.Timeline
	log logging.Logger

	defaultDur uint64 // microseconds

	produced  []timedPacket // sorted by ts
	frames    []uint64      // declared frame times, FIFO
	prevFrame uint64
	started   bool

	merge map[uint64]*pendingMetric
}

// Option configures a Muxer.
type Option = options.Option[*Muxer]

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return options.NoError(func(m *Muxer) { m.log = l })
}

// WithDefaultDuration overrides the default-effective interval used to
// recognize cancelled (truncated) intervals. It must match the demuxer that
// filled the timeline.
func WithDefaultDuration(dur time.Duration) Option {
	return options.NoError(func(m *Muxer) { m.defaultDur = uint64(dur.Microseconds()) })
}

// New returns a Muxer reading from tl.
func New(tl *timeline.Timeline, opts ...Option) (*Muxer, error) {
	m := &Muxer{
		tl:         tl,
		log:        logging.Nop(),
		defaultDur: uint64(DefaultDuration.Microseconds()),
		merge:      make(map[uint64]*pendingMetric),
	}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// SendFrame declares t as the next interesting frame time and produces
// the packets for it. Frames must be non-decreasing; an out-of-order call
// is logged and ignored.
func (m *Muxer) SendFrame(t uint64) {
	if m.started && t < m.prevFrame {
		m.log.Warnw("ignoring out-of-order frame", "timestamp", t, "prev", m.prevFrame)

		return
	}

	from := m.prevFrame
	if !m.started {
		from = 0
	}

	for _, std := range catalog.Standards() {
		switch std {
		case catalog.ST0104:
			m.produce0104(t)
		case catalog.ST1108:
			m.produce1108(from, t)
		case catalog.ST1204:
			m.produce1204(t)
		default:
			m.produceLocalSet(std, from, t)
		}
	}
	m.produceUnknown(from, t)

	m.frames = append(m.frames, t)
	m.prevFrame = t
	m.started = true
}

// NextFrameTime returns the earliest frame the client has declared but not
// yet received, or the maximum uint64 when none are queued.
func (m *Muxer) NextFrameTime() uint64 {
	if len(m.frames) == 0 {
		return math.MaxUint64
	}

	return m.frames[0]
}

// ReceiveFrame returns every produced packet due at or before the head
// frame, removing them and popping the frame queue. Calling it with no
// frames outstanding is logged and returns nothing.
func (m *Muxer) ReceiveFrame() []klv.Packet {
	if len(m.frames) == 0 {
		m.log.Warnw("receive called with no frames outstanding")

		return nil
	}
	head := m.frames[0]
	m.frames = m.frames[1:]

	// Flush every pending merge whose emission time (the merged period's
	// start, where flushPending emits it) has reached the head frame.
	// Period extension therefore spans SendFrame calls but not a frame the
	// client has already received.
	for h, pm := range m.merge {
		if pm.start <= head {
			m.flushPending(h)
		}
	}

	cut := sort.Search(len(m.produced), func(i int) bool { return m.produced[i].ts > head })
	out := make([]klv.Packet, 0, cut)
	for _, tp := range m.produced[:cut] {
		out = append(out, tp.p)
	}
	m.produced = append([]timedPacket(nil), m.produced[cut:]...)

	return out
}

// Flush drains the ST 1108 merge cache unconditionally and returns every
// packet still buffered, regardless of outstanding frames. Intended for
// shutdown, where waiting for further frames would leak pending merges.
func (m *Muxer) Flush() []klv.Packet {
	for h := range m.merge {
		m.flushPending(h)
	}

	out := make([]klv.Packet, 0, len(m.produced))
	for _, tp := range m.produced {
		out = append(out, tp.p)
	}
	m.produced = nil
	m.frames = nil

	return out
}

// emit inserts p into the produced stream at ts, keeping the stream sorted.
func (m *Muxer) emit(ts uint64, p klv.Packet) {
	i := sort.Search(len(m.produced), func(i int) bool { return m.produced[i].ts > ts })
	m.produced = append(m.produced, timedPacket{})
	copy(m.produced[i+1:], m.produced[i:])
	m.produced[i] = timedPacket{ts: ts, p: p}
}

// produceLocalSet emits zero or one packet for a local-set standard at t:
// every tag with an interval containing t, plus the implicit timestamp tag,
// with the ST 0601 special cases.
func (m *Muxer) produceLocalSet(std catalog.Standard, from, t uint64) {
	tsTag, hasTS := catalog.TimestampTag(std)

	type gathered struct {
		tag key.LDS
		val klv.Value
	}
	var entries []gathered
	var verification []byte

	for _, kd := range m.tl.FindAll(std) {
		tag := kd.Key.Tag
		if hasTS && tag == tsTag {
			continue
		}

		if std == catalog.ST0601 && isPointEvent(tag) {
			for _, span := range kd.Map.FindRange(timeline.Interval{Lo: from, Hi: t}) {
				if tag == catalog.ST0601ControlCommandVerificationList {
					if b, ok := span.Value.Blob(); ok {
						verification = append(verification, b...)
					}

					continue
				}
				entries = append(entries, gathered{tag: tag, val: span.Value})
			}

			continue
		}

		if v, ok := kd.Map.At(t); ok {
			entries = append(entries, gathered{tag: tag, val: v})

			continue
		}

		if std == catalog.ST0601 && t > from {
			if span, ok := kd.Map.Find(from); ok &&
				span.Interval.Hi <= t &&
				span.Interval.Hi-span.Interval.Lo < m.defaultDur {
				// The value was cancelled mid-default-duration; tell the
				// consumer to drop it by emitting the tag with no payload.
				entries = append(entries, gathered{tag: tag, val: klv.Empty()})
			}
		}
	}

	if len(verification) > 0 {
		entries = append(entries, gathered{tag: catalog.ST0601ControlCommandVerificationList, val: klv.NewBlob(verification)})
	}

	if len(entries) == 0 {
		return
	}
	if hasTS {
		entries = append(entries, gathered{tag: tsTag, val: klv.NewUint(t).WithLengthHint(8)})
	}

	// Emit in ascending tag order so the serialized bytes (and thus the
	// trailing checksum) are deterministic across runs.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	set := klv.NewLocalSetContainer()
	for _, e := range entries {
		set.Add(e.tag, e.val)
	}

	m.emit(t, klv.Packet{Key: catalog.KeyForStandard(std), Value: klv.NewLocalSet(set)})
}

// produce0104 emits zero or one ST 0104 universal-set packet for t.
func (m *Muxer) produce0104(t uint64) {
	lookup := catalog.ST0104Lookup()

	set := klv.NewUniversalSetContainer()
	for _, kd := range m.tl.FindAll(catalog.ST0104) {
		if kd.Key.Tag == catalog.ST0104TagUserDefinedTimestamp {
			continue
		}
		if v, ok := kd.Map.At(t); ok {
			trait := lookup.ByTag(kd.Key.Tag)
			if !trait.UDSKey.IsValid() {
				continue
			}
			set.Add(trait.UDSKey, v)
		}
	}

	if set.Len() == 0 {
		return
	}
	set.Add(catalog.ST0104UserDefinedTimestamp, klv.NewUint(t).WithLengthHint(8))

	m.emit(t, klv.Packet{Key: catalog.ST0104Key, Value: klv.NewUniversalSet(set)})
}

// produce1204 emits a MIIS ID packet when an identifier is in effect at t.
func (m *Muxer) produce1204(t uint64) {
	v := m.tl.AtIndexed(catalog.ST1204, 0, 0, t)
	if v.Empty() {
		return
	}

	m.emit(t, klv.Packet{Key: catalog.ST1204Key, Value: v})
}

// produceUnknown re-emits every stored unknown packet whose instant falls in
// [from, t), at its original timestamp.
func (m *Muxer) produceUnknown(from, t uint64) {
	for _, kd := range m.tl.FindAll(catalog.StandardUnknown) {
		for _, span := range kd.Map.FindRange(timeline.Interval{Lo: from, Hi: t}) {
			rec, ok := span.Value.Record()
			if !ok {
				continue
			}
			list, ok := rec.(klv.PacketList)
			if !ok {
				continue
			}
			for _, p := range list {
				m.emit(span.Interval.Lo, p)
			}
		}
	}
}

// produce1108 walks every metric sub-timeline over [from, t), extracts the
// sub-intervals where the parent fields needed for a valid packet are
// present, merges adjacent equal provisional packets, and feeds the result
// through the cross-frame merge cache.
func (m *Muxer) produce1108(from, t uint64) {
	if t <= from && m.started {
		return
	}

	var provisionals []provisional
	window := timeline.Interval{Lo: from, Hi: t}

	for _, kd := range m.tl.FindAllTagged(catalog.ST1108, catalog.ST1108MetricLocalSet) {
		idx := kd.Key.Index
		for _, span := range kd.Map.FindRange(window) {
			iv := span.Interval
			if iv.Lo < window.Lo {
				iv.Lo = window.Lo
			}
			if iv.Hi > window.Hi {
				iv.Hi = window.Hi
			}

			parents := make([]klv.Value, len(metricParentTags))
			for i, tag := range metricParentTags {
				parents[i] = m.tl.AtIndexed(catalog.ST1108, tag, idx, iv.Lo)
			}
			// ASSESSMENT_POINT is required; without it no valid packet can
			// be emitted for this sub-interval.
			if parents[0].Empty() {
				continue
			}

			provisionals = append(provisionals, provisional{
				start:   iv.Lo,
				end:     iv.Hi,
				parents: parents,
				metric:  span.Value,
			})
		}
	}
	if len(provisionals) == 0 {
		return
	}

	sort.SliceStable(provisionals, func(i, j int) bool {
		if c := compareContent(provisionals[i], provisionals[j]); c != 0 {
			return c < 0
		}

		return provisionals[i].start < provisionals[j].start
	})

	merged := provisionals[:1]
	for _, p := range provisionals[1:] {
		last := &merged[len(merged)-1]
		if compareContent(*last, p) == 0 && last.end == p.start {
			last.end = p.end

			continue
		}
		merged = append(merged, p)
	}

	for _, p := range merged {
		h := contentHash(p)
		if pm, ok := m.merge[h]; ok && pm.end >= p.start && compareContent(pm.provisional, p) == 0 {
			if p.end > pm.end {
				pm.end = p.end
			}

			continue
		}
		if _, ok := m.merge[h]; ok {
			m.flushPending(h)
		}
		m.merge[h] = &pendingMetric{provisional: p}
	}
}

// flushPending emits the cached provisional packet under h and removes it.
func (m *Muxer) flushPending(h uint64) {
	pm, ok := m.merge[h]
	if !ok {
		return
	}
	delete(m.merge, h)

	period := klv.NewRecord(klv.MetricPeriodPack{
		Offset: uint32(pm.start),
		Length: uint32(pm.end - pm.start),
	})
	set := klv.NewLocalSetContainer()
	for i, tag := range metricParentTags {
		if tag > catalog.ST1108MetricPeriodPack && set.Count(catalog.ST1108MetricPeriodPack) == 0 {
			set.Add(catalog.ST1108MetricPeriodPack, period)
		}
		if !pm.parents[i].Empty() {
			set.Add(tag, pm.parents[i])
		}
	}
	set.Add(catalog.ST1108MetricLocalSet, pm.metric)

	m.emit(pm.start, klv.Packet{Key: catalog.ST1108Key, Value: klv.NewLocalSet(set)})
}

// compareContent orders two provisional packets by their parent tuple and
// metric set, ignoring the period.
func compareContent(a, b provisional) int {
	for i := range a.parents {
		if c := a.parents[i].Compare(b.parents[i]); c != 0 {
			return c
		}
	}

	return a.metric.Compare(b.metric)
}

// contentHash keys the merge cache by parent tuple plus metric set, in
// deterministic tag order.
func contentHash(p provisional) uint64 {
	b := hash.NewBuilder()
	for i, tag := range metricParentTags {
		b.WriteUint64(uint64(tag))
		b.WriteString(p.parents[i].String())
	}
	b.WriteString(p.metric.String())

	return b.Sum64()
}

// isPointEvent mirrors the demuxer's point-event classification for ST 0601.
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
