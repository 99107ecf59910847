package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/kwiver/goklv/codec"
	"github.com/kwiver/goklv/internal/pool"
)

// File layout: magic, format version, compression byte, then records. Each
// record is an 8-byte big-endian microsecond timestamp, a BER length, and
// that many bytes of (possibly compressed) packet data.
var magic = [4]byte{'G', 'K', 'L', 'V'}

const formatVersion = 1

// Record is one replayed entry: the packet's original timestamp and its raw
// encoded bytes, exactly as they were recorded.
type Record struct {
	Timestamp uint64
	Data      []byte
}

// Writer records a chronological packet stream to an io.Writer.
type Writer struct {
	w     io.Writer
	codec Codec
}

// NewWriter writes the stream header to w and returns a Writer recording
// with the given compression.
func NewWriter(w io.Writer, comp Compression) (*Writer, error) {
	cd, err := CodecFor(comp)
	if err != nil {
		return nil, err
	}

	header := [6]byte{magic[0], magic[1], magic[2], magic[3], formatVersion, byte(comp)}
	if _, err := w.Write(header[:]); err != nil {
		return nil, fmt.Errorf("archive: writing header: %w", err)
	}

	return &Writer{w: w, codec: cd}, nil
}

// WriteRecord appends one packet's raw bytes at ts.
func (w *Writer) WriteRecord(ts uint64, raw []byte) error {
	compressed, err := w.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("archive: compressing record: %w", err)
	}

	bb := pool.GetPacketBuffer()
	defer pool.PutPacketBuffer(bb)

	var head [8 + 10]byte
	c := codec.NewWriteCursor(head[:])
	if err := codec.WriteUint(c, ts, 8, len(head)); err != nil {
		return err
	}
	if err := codec.WriteBER(c, uint64(len(compressed)), len(head)-8); err != nil {
		return err
	}
	bb.MustWrite(c.Consumed())
	bb.MustWrite(compressed)

	if _, err := bb.WriteTo(w.w); err != nil {
		return fmt.Errorf("archive: writing record: %w", err)
	}

	return nil
}

// Reader replays a recorded packet stream from an io.Reader.
type Reader struct {
	r     io.Reader
	codec Codec
}

// NewReader validates the stream header and returns a Reader.
func NewReader(r io.Reader) (*Reader, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("archive: reading header: %w", err)
	}
	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] || header[3] != magic[3] {
		return nil, errors.New("archive: bad magic")
	}
	if header[4] != formatVersion {
		return nil, fmt.Errorf("archive: unsupported format version %d", header[4])
	}

	cd, err := CodecFor(Compression(header[5]))
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, codec: cd}, nil
}

// ReadRecord returns the next record, or io.EOF when the stream is
// exhausted.
func (r *Reader) ReadRecord() (Record, error) {
	var tsBuf [8]byte
	if _, err := io.ReadFull(r.r, tsBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}

		return Record{}, fmt.Errorf("archive: reading record timestamp: %w", err)
	}
	c := codec.NewReadCursor(tsBuf[:])
	ts, err := codec.ReadUint(c, 8, 8)
	if err != nil {
		return Record{}, err
	}

	length, err := readBERFrom(r.r)
	if err != nil {
		return Record{}, fmt.Errorf("archive: reading record length: %w", err)
	}

	compressed := make([]byte, length)
	if _, err := io.ReadFull(r.r, compressed); err != nil {
		return Record{}, fmt.Errorf("archive: reading record body: %w", err)
	}

	data, err := r.codec.Decompress(compressed)
	if err != nil {
		return Record{}, fmt.Errorf("archive: decompressing record: %w", err)
	}

	return Record{Timestamp: ts, Data: data}, nil
}

// readBERFrom reads one BER-encoded length from a stream, byte by byte,
// since the record length is not known in advance.
func readBERFrom(r io.Reader) (uint64, error) {
	var lead [1]byte
	if _, err := io.ReadFull(r, lead[:]); err != nil {
		return 0, err
	}
	if lead[0]&0x80 == 0 {
		return uint64(lead[0]), nil
	}

	n := int(lead[0] & 0x7F)
	if n == 0 || n > 8 {
		return 0, fmt.Errorf("invalid BER length of %d bytes", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}

	v := uint64(0)
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}

	return v, nil
}
