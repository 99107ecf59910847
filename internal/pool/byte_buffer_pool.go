// Package pool provides pooled byte buffers for packet encode/decode
// paths: one default pool sized for a single KLV/STANAG packet and one for
// a batch of packets written by a muxer frame. Small buffers grow by the
// default packet-buffer size at a time; large buffers grow by 25%.
package pool

import (
	"io"
	"sync"
)

// Default and max-retained sizes for the two pools below.
const (
	PacketBufferDefaultSize  = 4 * 1024   // 4KiB, comfortably larger than a typical ST 0601 packet
	PacketBufferMaxThreshold = 128 * 1024 // 128KiB
	FrameBufferDefaultSize   = 64 * 1024  // 64KiB, a full muxer frame across standards
	FrameBufferMaxThreshold  = 1024 * 1024
)

// ByteBuffer is a growable byte slice wrapper that can be reset and reused
// without discarding its backing array.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating.
//
// For small buffers (up to 4x the default size), it grows by the default size to
// minimize reallocations; for larger buffers it grows by 25% of current
// capacity to balance memory usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PacketBufferDefaultSize
	if cap(bb.B) > 4*PacketBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed. It
// implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. It implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers, discarding buffers that have
// grown past maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	packetPool = NewByteBufferPool(PacketBufferDefaultSize, PacketBufferMaxThreshold)
	framePool  = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
)

// GetPacketBuffer retrieves a ByteBuffer from the default single-packet pool.
func GetPacketBuffer() *ByteBuffer { return packetPool.Get() }

// PutPacketBuffer returns a ByteBuffer to the default single-packet pool.
func PutPacketBuffer(bb *ByteBuffer) { packetPool.Put(bb) }

// GetFrameBuffer retrieves a ByteBuffer from the default multi-packet frame pool.
func GetFrameBuffer() *ByteBuffer { return framePool.Get() }

// PutFrameBuffer returns a ByteBuffer to the default multi-packet frame pool.
func PutFrameBuffer(bb *ByteBuffer) { framePool.Put(bb) }
