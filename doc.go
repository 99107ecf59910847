// Package goklv parses, represents, composes and emits MISB KLV metadata
// (ST 0102, 0104, 0601, 0806, 0903, 1002, 1010, 1108, 1204) and NATO
// STANAG 4607 GMTI packets.
//
// The heavy lifting lives in the subpackages:
//
//   - codec: primitive binary codec (big-endian ints, BER, BER-OID,
//     IMAP/FLINT fixed-point floats)
//   - key: 16-byte SMPTE universal keys and BER-OID local keys
//   - klv: the Value container, per-type formats, tag traits, local and
//     universal sets, packet framing and checksum trailers
//   - catalog: representative per-standard tag trait tables
//   - stanag: STANAG 4607 packet/segment framing (Mission, Dwell)
//   - timeline: the interval-map timeline of tag values over time
//   - demux, mux: stateful converters between packet streams and a timeline
//   - vital: projection of the timeline into a flat frame-level bag
//   - archive: a compressed container for recorded packet streams
//
// This package holds thin conveniences over those pieces for the common
// whole-buffer cases.
package goklv
