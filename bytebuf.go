// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

// minBufferCap is the smallest allocation a ByteBuffer makes.
const minBufferCap = 64

// ByteBuffer is a growable contiguous byte region with independent read
// and write cursors.
//
// Bytes are appended at the write cursor and consumed from the read cursor.
// The cursors satisfy 0 <= r <= w <= Cap() at all times. When the buffer
// drains completely both cursors return to the origin, which is the only
// implicit compaction; [ByteBuffer.Compact] is the explicit one.
//
// The zero value is an empty buffer ready to use.
//
// ByteBuffer is not safe for concurrent use. Ownership moves between
// goroutines only through [ByteBuffer.Move] under external synchronization.
type ByteBuffer struct {
	buf []byte // len(buf) == cap(buf); buf[0] is the origin
	r   int    // read cursor
	w   int    // write cursor
}

// NewByteBuffer creates a buffer with room for at least capacity bytes.
// Capacity rounds up to the next power of 2. A capacity of 0 defers
// allocation to the first append.
//
// Panics if capacity < 0.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity < 0 {
		panic("pktq: capacity must be >= 0")
	}
	b := &ByteBuffer{}
	if capacity > 0 {
		b.buf = make([]byte, roundToPow2(max(capacity, minBufferCap)))
	}
	return b
}

// Len returns the number of unread bytes.
func (b *ByteBuffer) Len() int {
	return b.w - b.r
}

// Cap returns the size of the current allocation.
func (b *ByteBuffer) Cap() int {
	return len(b.buf)
}

// Empty reports whether the buffer holds no unread bytes.
func (b *ByteBuffer) Empty() bool {
	return b.r == b.w
}

// Offset returns the distance of the read cursor from the origin.
func (b *ByteBuffer) Offset() int {
	return b.r
}

// Bytes returns the unread region [r, w).
//
// The slice aliases the buffer and is valid only until the next call that
// mutates the buffer (Append, Extend, DeleteFront, Move, Compact, Reset).
func (b *ByteBuffer) Bytes() []byte {
	return b.buf[b.r:b.w:b.w]
}

// Append copies p to the write cursor, growing the allocation if needed.
func (b *ByteBuffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	copy(b.Extend(len(p)), p)
}

// Extend reserves n bytes at the write cursor and returns them for the
// caller to fill. The write cursor advances past the reserved bytes
// immediately, so the caller must write all n bytes before the buffer is
// read again.
//
// Panics if n < 0.
func (b *ByteBuffer) Extend(n int) []byte {
	if n < 0 {
		panic("pktq: negative extend")
	}
	b.grow(n)
	p := b.buf[b.w : b.w+n : b.w+n]
	b.w += n
	return p
}

// grow makes room for n more bytes at the write cursor.
// Reallocation copies only the unread region, so the consumed prefix is
// dropped along the way.
func (b *ByteBuffer) grow(n int) {
	if b.w+n <= len(b.buf) {
		return
	}
	live := b.w - b.r
	need := live + n
	if need < 0 {
		panic("pktq: buffer size overflow")
	}
	size := roundToPow2(max(need, 2*len(b.buf), minBufferCap))
	buf := make([]byte, size)
	copy(buf, b.buf[b.r:b.w])
	b.buf = buf
	b.r, b.w = 0, live
}

// DeleteFront discards n bytes from the read cursor. When the buffer
// becomes empty both cursors reset to the origin.
//
// Panics if n < 0 or n > Len().
func (b *ByteBuffer) DeleteFront(n int) {
	if n < 0 || n > b.w-b.r {
		panic("pktq: DeleteFront past write cursor")
	}
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Move transfers the contents of b to dst and leaves b empty.
//
// When dst is empty the two allocations are exchanged: dst takes b's
// memory and cursors without copying a byte, and b keeps dst's former
// allocation as spare capacity. When dst still holds unread bytes, b's
// bytes are appended after them so FIFO order is preserved.
//
// No caller may hold a slice from [ByteBuffer.Bytes] or
// [ByteBuffer.Extend] of either buffer across a Move.
//
// Panics if dst == b.
func (b *ByteBuffer) Move(dst *ByteBuffer) {
	if dst == b {
		panic("pktq: move to self")
	}
	if dst.Empty() {
		dst.buf, b.buf = b.buf, dst.buf
		dst.r, dst.w = b.r, b.w
		b.r, b.w = 0, 0
		return
	}
	dst.Append(b.Bytes())
	b.r, b.w = 0, 0
}

// Compact reclaims the consumed prefix once the read cursor has drifted at
// least threshold bytes past the origin without the buffer draining.
// The unread region is shifted down to the origin, and the allocation is
// shrunk when unread bytes fill a quarter of it or less.
//
// Reports whether a compaction happened. A threshold <= 0 disables it.
func (b *ByteBuffer) Compact(threshold int) bool {
	if threshold <= 0 || b.r < threshold || b.r == b.w {
		return false
	}
	live := copy(b.buf, b.buf[b.r:b.w])
	b.r, b.w = 0, live
	if len(b.buf) > minBufferCap && live*4 <= len(b.buf) {
		buf := make([]byte, roundToPow2(max(live*2, minBufferCap)))
		copy(buf, b.buf[:live])
		b.buf = buf
	}
	return true
}

// Reset discards all unread bytes and keeps the allocation.
func (b *ByteBuffer) Reset() {
	b.r, b.w = 0, 0
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
